package bibtex

import (
	"fmt"
	"os"
	"strings"
	"unicode"
)

// ParseFile reads and parses a .bib file, returning entries in file order.
func ParseFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	entries, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return entries, nil
}

// Parse parses BibTeX source text, returning entries in input order.
//
// Handles brace- and quote-delimited field values (with nested braces),
// bare numeric values, and skips @comment and @preamble blocks as well as
// any text between entries. @string abbreviations are not expanded.
func Parse(src string) ([]Entry, error) {
	p := &parser{src: []rune(src)}
	var entries []Entry

	for {
		if !p.seek('@') {
			break
		}
		p.pos++ // consume '@'

		entryType := strings.ToLower(p.readIdent())
		if entryType == "" {
			continue
		}
		switch entryType {
		case "comment", "preamble", "string":
			p.skipBlock()
			continue
		}

		entry, err := p.readEntry(entryType)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

type parser struct {
	src []rune
	pos int
}

// seek advances to the next occurrence of r, returning false at end of input.
func (p *parser) seek(r rune) bool {
	for p.pos < len(p.src) {
		if p.src[p.pos] == r {
			return true
		}
		p.pos++
	}
	return false
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

// readIdent reads a run of letters and digits.
func (p *parser) readIdent() string {
	start := p.pos
	for p.pos < len(p.src) {
		r := p.src[p.pos]
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		p.pos++
	}
	return string(p.src[start:p.pos])
}

// skipBlock consumes a balanced {...} or (...) block following @comment etc.
func (p *parser) skipBlock() {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return
	}
	open := p.src[p.pos]
	var close rune
	switch open {
	case '{':
		close = '}'
	case '(':
		close = ')'
	default:
		return
	}
	depth := 0
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				p.pos++
				return
			}
		}
		p.pos++
	}
}

// readEntry parses "{key, field = value, ...}" after the entry type.
func (p *parser) readEntry(entryType string) (Entry, error) {
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != '{' {
		return Entry{}, fmt.Errorf("entry @%s: expected '{'", entryType)
	}
	p.pos++

	key := p.readUntil(',', '}')
	entry := NewEntry(strings.TrimSpace(key), entryType)
	if entry.ID == "" {
		return Entry{}, fmt.Errorf("entry @%s: missing citation key", entryType)
	}

	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return Entry{}, fmt.Errorf("entry %s: unterminated entry", entry.ID)
		}
		switch p.src[p.pos] {
		case '}':
			p.pos++
			return entry, nil
		case ',':
			p.pos++
			continue
		}

		name := strings.ToLower(strings.TrimSpace(p.readUntil('=', '}')))
		if p.pos >= len(p.src) || p.src[p.pos] != '=' {
			// Trailing junk before the closing brace; ignore it.
			continue
		}
		p.pos++ // consume '='

		value, err := p.readValue(entry.ID)
		if err != nil {
			return Entry{}, err
		}
		if name != "" {
			entry.Fields[name] = value
		}
	}
}

// readUntil reads up to (not including) the first occurrence of any stop rune.
func (p *parser) readUntil(stops ...rune) string {
	start := p.pos
	for p.pos < len(p.src) {
		r := p.src[p.pos]
		for _, s := range stops {
			if r == s {
				return string(p.src[start:p.pos])
			}
		}
		p.pos++
	}
	return string(p.src[start:p.pos])
}

// readValue parses a field value: {braced}, "quoted", or a bare word.
func (p *parser) readValue(entryID string) (string, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return "", fmt.Errorf("entry %s: unterminated field value", entryID)
	}

	switch p.src[p.pos] {
	case '{':
		depth := 0
		start := p.pos + 1
		for p.pos < len(p.src) {
			switch p.src[p.pos] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					v := string(p.src[start:p.pos])
					p.pos++
					return strings.TrimSpace(collapseSpace(v)), nil
				}
			}
			p.pos++
		}
		return "", fmt.Errorf("entry %s: unbalanced braces in field value", entryID)

	case '"':
		p.pos++
		start := p.pos
		depth := 0 // braces may nest inside quoted values
		for p.pos < len(p.src) {
			switch p.src[p.pos] {
			case '{':
				depth++
			case '}':
				depth--
			case '"':
				if depth == 0 {
					v := string(p.src[start:p.pos])
					p.pos++
					return strings.TrimSpace(collapseSpace(v)), nil
				}
			}
			p.pos++
		}
		return "", fmt.Errorf("entry %s: unterminated quoted value", entryID)

	default:
		// Bare value: number or abbreviation, up to comma or closing brace.
		v := p.readUntil(',', '}')
		return strings.TrimSpace(v), nil
	}
}

// collapseSpace normalizes internal whitespace runs (including newlines from
// wrapped .bib files) to single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
