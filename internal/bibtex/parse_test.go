package bibtex

import (
	"path/filepath"
	"testing"
)

func TestParse_BasicEntry(t *testing.T) {
	src := `@article{smith2020,
  author = {Smith, John and Doe, Jane},
  title = {A Study of Things},
  journal = {Nature},
  year = {2020},
}`

	entries, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Parse() returned %d entries, want 1", len(entries))
	}

	e := entries[0]
	if e.ID != "smith2020" {
		t.Errorf("ID = %q, want smith2020", e.ID)
	}
	if e.Type != "article" {
		t.Errorf("Type = %q, want article", e.Type)
	}
	if got := e.Field("author"); got != "Smith, John and Doe, Jane" {
		t.Errorf("author = %q", got)
	}
	if got := e.Field("year"); got != "2020" {
		t.Errorf("year = %q, want 2020", got)
	}
}

func TestParse_NestedBraces(t *testing.T) {
	src := `@article{key1, title = {Deep {L}earning with {CNN}s}, year = {2019}}`

	entries, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got := entries[0].Field("title"); got != "Deep {L}earning with {CNN}s" {
		t.Errorf("title = %q, nested braces should be preserved", got)
	}
}

func TestParse_QuotedAndBareValues(t *testing.T) {
	src := `@inproceedings{conf1,
  title = "A Quoted {Title}",
  year = 2021,
  pages = {1--10}
}`

	entries, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	e := entries[0]
	if got := e.Field("title"); got != "A Quoted {Title}" {
		t.Errorf("title = %q", got)
	}
	if got := e.Field("year"); got != "2021" {
		t.Errorf("bare year = %q, want 2021", got)
	}
	if got := e.Field("pages"); got != "1--10" {
		t.Errorf("pages = %q", got)
	}
}

func TestParse_MultipleEntriesInOrder(t *testing.T) {
	src := `
Some stray text that is not an entry.

@article{first, title = {First}, year = {2001}}

@comment{this is ignored entirely}

@misc{second, title = {Second}}
@book{third, title = {Third}}
`

	entries, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Parse() returned %d entries, want 3", len(entries))
	}
	for i, want := range []string{"first", "second", "third"} {
		if entries[i].ID != want {
			t.Errorf("entries[%d].ID = %q, want %q", i, entries[i].ID, want)
		}
	}
}

func TestParse_WrappedFieldValues(t *testing.T) {
	src := `@article{wrap1,
  title = {A Title That
           Wraps Across Lines},
}`

	entries, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got := entries[0].Field("title"); got != "A Title That Wraps Across Lines" {
		t.Errorf("title = %q, wrapped whitespace should collapse", got)
	}
}

func TestParse_UnbalancedBraces(t *testing.T) {
	src := `@article{bad, title = {never closed`
	if _, err := Parse(src); err == nil {
		t.Error("Parse() should fail on unbalanced braces")
	}
}

func TestParseFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.bib")

	entries := []Entry{
		{
			ID:   "a1",
			Type: "article",
			Fields: map[string]string{
				"author":  "Smith, John",
				"title":   "{Deep Learning}",
				"journal": "IEEE Transactions",
				"year":    "2018",
				"volume":  "12",
			},
		},
		{
			ID:     "b2",
			Type:   "misc",
			Fields: map[string]string{"title": "Second Entry"},
		},
	}

	if err := WriteFile(path, entries); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	got, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("round trip returned %d entries, want 2", len(got))
	}
	if got[0].ID != "a1" || got[1].ID != "b2" {
		t.Errorf("round trip IDs = %q, %q", got[0].ID, got[1].ID)
	}
	if got[0].Field("title") != "{Deep Learning}" {
		t.Errorf("title = %q, braces should survive the round trip", got[0].Field("title"))
	}
	if got[0].Field("volume") != "12" {
		t.Errorf("volume = %q, want 12", got[0].Field("volume"))
	}
}

func TestParseFile_Missing(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "nope.bib")); err == nil {
		t.Error("ParseFile() should fail for a missing file")
	}
}
