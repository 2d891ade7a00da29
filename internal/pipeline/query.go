package pipeline

import (
	"strings"

	"github.com/fixbib/fixbib/internal/bibtex"
)

// BuildQuery derives a search query from an entry's fields.
//
// A title that is non-empty after brace stripping always wins. Otherwise
// the first author's name (the text before the first " and ") is joined with
// the year. The second return is false when no field yields a non-empty
// query; such entries must never be searched.
func BuildQuery(e bibtex.Entry) (string, bool) {
	title := strings.TrimSpace(strings.Trim(e.Field("title"), "{}"))
	if title != "" {
		return title, true
	}

	var parts []string
	if author := e.Field("author"); author != "" {
		first, _, _ := strings.Cut(author, " and ")
		if first = strings.TrimSpace(first); first != "" {
			parts = append(parts, first)
		}
	}
	if year := strings.TrimSpace(e.Field("year")); year != "" {
		parts = append(parts, year)
	}

	query := strings.Join(parts, " ")
	if query == "" {
		return "", false
	}
	return query, true
}
