package catalog

import (
	"previewgen/internal/timecode"
)

// Entry is one catalogued screw. Preview holds the inline encoded frame once
// generated; an empty value means "not yet generated".
type Entry struct {
	ID        int                `json:"id"`
	Title     string             `json:"title,omitempty"`
	Timestamp timecode.Timestamp `json:"timestamp"`
	Notes     string             `json:"notes,omitempty"`
	Preview   string             `json:"preview,omitempty"`
}

// HasPreview reports whether the entry already carries a generated preview.
func (e *Entry) HasPreview() bool {
	return e.Preview != ""
}

// Catalog is the ordered set of entries, loaded and saved wholesale.
type Catalog struct {
	Entries []Entry
}

// Index builds an id-to-entry lookup over the live entries. Entries are
// addressed by pointer so pipeline mutations land in the catalog that is
// eventually saved. Built once per run, never persisted.
func (c *Catalog) Index() map[int]*Entry {
	index := make(map[int]*Entry, len(c.Entries))
	for i := range c.Entries {
		index[c.Entries[i].ID] = &c.Entries[i]
	}
	return index
}

// IDs returns every entry identifier in catalog order.
func (c *Catalog) IDs() []int {
	ids := make([]int, 0, len(c.Entries))
	for i := range c.Entries {
		ids = append(ids, c.Entries[i].ID)
	}
	return ids
}

// MissingPreviewIDs returns the identifiers of entries without a preview,
// preserving catalog order.
func (c *Catalog) MissingPreviewIDs() []int {
	ids := make([]int, 0, len(c.Entries))
	for i := range c.Entries {
		if !c.Entries[i].HasPreview() {
			ids = append(ids, c.Entries[i].ID)
		}
	}
	return ids
}

// DuplicateIDs reports identifiers that appear more than once. Identifiers
// are unique by invariant; duplicates indicate a hand-edited catalog.
func (c *Catalog) DuplicateIDs() []int {
	seen := make(map[int]int, len(c.Entries))
	var dups []int
	for i := range c.Entries {
		id := c.Entries[i].ID
		seen[id]++
		if seen[id] == 2 {
			dups = append(dups, id)
		}
	}
	return dups
}
