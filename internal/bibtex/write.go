package bibtex

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// fieldOrder lists the fields written first, in this order. Remaining fields
// follow alphabetically.
var fieldOrder = []string{"author", "title", "journal", "booktitle", "year"}

// Format renders a single entry as BibTeX with two-space indentation.
func Format(e Entry) string {
	entryType := e.Type
	if entryType == "" {
		entryType = "article"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s,\n", entryType, e.ID)

	written := make(map[string]bool, len(e.Fields))
	for _, name := range fieldOrder {
		if v, ok := e.Fields[name]; ok {
			fmt.Fprintf(&b, "  %s = {%s},\n", name, v)
			written[name] = true
		}
	}

	rest := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		if !written[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		fmt.Fprintf(&b, "  %s = {%s},\n", name, e.Fields[name])
	}

	b.WriteString("}\n")
	return b.String()
}

// FormatList renders entries in order, separated by blank lines.
func FormatList(entries []Entry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = Format(e)
	}
	return strings.Join(parts, "\n")
}

// WriteFile writes entries to a .bib file, replacing existing content.
func WriteFile(path string, entries []Entry) error {
	if err := os.WriteFile(path, []byte(FormatList(entries)), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
