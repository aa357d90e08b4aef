package addressbook

import (
	"slices"
	"strings"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// Book maps contact names to their records. Iteration follows insertion
// order; replacing a record keeps the position of the name.
//
// A Book is not safe for concurrent use.
type Book struct {
	records map[string]*Record
	order   []string
}

// NewBook returns an empty address book.
func NewBook() *Book {
	return &Book{records: make(map[string]*Record)}
}

// Add stores record under its name, replacing any record with the same name.
func (b *Book) Add(record *Record) {
	if b.records == nil {
		b.records = make(map[string]*Record)
	}
	name := record.Name().Value()
	if _, exists := b.records[name]; !exists {
		b.order = append(b.order, name)
	}
	b.records[name] = record
}

// Find returns the record stored under name.
func (b *Book) Find(name string) (*Record, bool) {
	r, ok := b.records[name]
	return r, ok
}

// Delete removes the record stored under name. Unknown names are ignored.
func (b *Book) Delete(name string) {
	if _, ok := b.records[name]; !ok {
		return
	}
	delete(b.records, name)
	if i := slices.Index(b.order, name); i >= 0 {
		b.order = slices.Delete(b.order, i, i+1)
	}
}

// Len returns the number of records.
func (b *Book) Len() int {
	return len(b.records)
}

// Records returns the records in insertion order.
func (b *Book) Records() []*Record {
	out := make([]*Record, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.records[name])
	}
	return out
}

// String renders one record per line. An empty book renders as "".
func (b *Book) String() string {
	lines := make([]string, 0, len(b.order))
	for _, r := range b.Records() {
		lines = append(lines, r.String())
	}
	return strings.Join(lines, config.RecordSeparator)
}
