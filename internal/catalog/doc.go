// Package catalog owns the screw catalog: the entry model, the id lookup
// built once per run, and the JSON store with its backup-then-write save
// discipline.
package catalog
