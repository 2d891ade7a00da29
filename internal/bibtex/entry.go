// Package bibtex reads and writes BibTeX bibliography files.
package bibtex

// Entry represents a single BibTeX record.
//
// Field names are stored lowercase. The set of fields is open-ended;
// the rest of the system only ever inspects title, author, and year.
type Entry struct {
	// ID is the citation key (the text between "@type{" and the first comma).
	ID string

	// Type is the entry type (article, inproceedings, misc, ...), lowercase.
	Type string

	// Fields maps lowercase field names to their raw values with the
	// outermost delimiters removed.
	Fields map[string]string
}

// NewEntry creates an entry with an initialized field map.
func NewEntry(id, entryType string) Entry {
	return Entry{ID: id, Type: entryType, Fields: make(map[string]string)}
}

// Field returns the value for a field name, or "" if absent.
func (e Entry) Field(name string) string {
	return e.Fields[name]
}

// HasField reports whether the entry has a non-empty value for name.
func (e Entry) HasField(name string) bool {
	return e.Fields[name] != ""
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	c := Entry{ID: e.ID, Type: e.Type, Fields: make(map[string]string, len(e.Fields))}
	for k, v := range e.Fields {
		c.Fields[k] = v
	}
	return c
}
