package store

import (
	"sort"

	"github.com/matsen/refcite/internal/reference"
)

// Usage tracks the references cited during one rendering pass.
// Each pass should use its own Usage so that passes do not leak into
// each other's bibliographies.
type Usage struct {
	ids map[string]struct{}
}

// NewUsage returns an empty Usage.
func NewUsage() *Usage {
	return &Usage{ids: make(map[string]struct{})}
}

// MarkUsed records that name was cited.
func (u *Usage) MarkUsed(name string) {
	u.ids[reference.Identifier(name)] = struct{}{}
}

// Reset clears all marks, starting a new pass.
func (u *Usage) Reset() {
	clear(u.ids)
}

// Len returns the number of distinct cited references.
func (u *Usage) Len() int {
	return len(u.ids)
}

// IDs returns the identifiers of cited references, sorted.
func (u *Usage) IDs() []string {
	ids := make([]string, 0, len(u.ids))
	for id := range u.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
