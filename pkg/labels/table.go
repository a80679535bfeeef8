package labels

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ErrLabelCycle is returned when an override maps a code to a label that is
// itself a code in the table.
var ErrLabelCycle = errors.New("label is also a code")

// Table maps internal diagnostic codes to display labels. A Table is never
// modified after construction and is safe for concurrent use.
type Table struct {
	entries map[string]string
}

var defaultTable = &Table{entries: canonical}

// Default returns the canonical process-wide table.
func Default() *Table {
	return defaultTable
}

// New builds a table from entries after checking it for code chains.
func New(entries map[string]string) (*Table, error) {
	t := &Table{entries: maps.Clone(entries)}
	if t.entries == nil {
		t.entries = map[string]string{}
	}
	if err := t.check(); err != nil {
		return nil, err
	}
	return t, nil
}

// Lookup returns the display label for code, or code itself when the table
// has no entry for it.
func (t *Table) Lookup(code string) string {
	if label, ok := t.entries[code]; ok {
		return label
	}
	return code
}

// Get returns the label for code and whether the table has one.
func (t *Table) Get(code string) (string, bool) {
	label, ok := t.entries[code]
	return label, ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Codes returns all codes in sorted order.
func (t *Table) Codes() []string {
	return slices.Sorted(maps.Keys(t.entries))
}

// Entries returns a copy of the code → label mapping.
func (t *Table) Entries() map[string]string {
	return maps.Clone(t.entries)
}

// WithOverrides returns a new table with overrides applied on top of t.
// Empty codes or labels and overrides that would make a label resolve again
// as a code are rejected.
func (t *Table) WithOverrides(overrides map[string]string) (*Table, error) {
	if len(overrides) == 0 {
		return t, nil
	}

	merged := maps.Clone(t.entries)
	for code, label := range overrides {
		if code == "" || label == "" {
			return nil, fmt.Errorf("invalid override %q = %q: code and label must be non-empty", code, label)
		}
		merged[code] = label
	}
	return New(merged)
}

// check enforces that resolving is a single step: no label may also be a
// code, otherwise resolving twice would walk a chain.
func (t *Table) check() error {
	for _, code := range slices.Sorted(maps.Keys(t.entries)) {
		label := t.entries[code]
		if label == code {
			continue
		}
		if _, ok := t.entries[label]; ok {
			return fmt.Errorf("%w: %q -> %q", ErrLabelCycle, code, label)
		}
	}
	return nil
}
