// Package conflict assigns storage names to imported records and resolves
// collisions with records already in storage.
package conflict

import (
	"errors"
	"sort"

	"github.com/matsen/refcite/internal/storage"
)

var (
	// ErrSuffixExhausted is returned when all suffixes a..z of a series are taken.
	ErrSuffixExhausted = errors.New("all name suffixes a-z are taken")
	// ErrAborted is returned when the decider chooses not to save the record.
	ErrAborted = errors.New("import aborted")
	// ErrRenameBlocked is returned when rename-and-add would overwrite an
	// existing base+"b" record.
	ErrRenameBlocked = errors.New("rename target already exists")
	// ErrNoAuthor is returned when no candidate name can be built.
	ErrNoAuthor = errors.New("record has no author")
)

// Choice is the answer to a bare-name collision.
type Choice int

const (
	Abort        Choice = iota // Leave storage untouched
	Overwrite                  // Replace the existing record
	RenameAndAdd               // Move the existing record to "a", add the new one as "b"
)

func (c Choice) String() string {
	switch c {
	case Overwrite:
		return "overwrite"
	case RenameAndAdd:
		return "rename"
	default:
		return "abort"
	}
}

// ParseChoice maps "overwrite", "rename" and "abort" to a Choice.
func ParseChoice(s string) (Choice, bool) {
	switch s {
	case "overwrite":
		return Overwrite, true
	case "rename":
		return RenameAndAdd, true
	case "abort":
		return Abort, true
	}
	return Abort, false
}

// Decider is consulted when the candidate's bare identifier is already stored.
// existingID is the identifier of the stored record.
type Decider func(existingID string) (Choice, error)

// Fixed returns a Decider that always answers c.
func Fixed(c Choice) Decider {
	return func(string) (Choice, error) { return c, nil }
}

// Action describes what a Plan does to storage.
type Action string

const (
	ActionNew         Action = "new"         // Name was free
	ActionSuffixed    Action = "suffixed"    // Next free letter of an existing series
	ActionOverwritten Action = "overwritten" // Existing record replaced
	ActionRenamed     Action = "renamed"     // Existing record moved to "a", new one added as "b"
	ActionSkipped     Action = "skipped"     // Nothing written
)

// Plan is the outcome of Resolve. It is executed by Apply.
type Plan struct {
	Name   string // Name assigned to the new record
	Key    string // Identifier the new record is written under
	Action Action

	// Set for ActionRenamed only.
	RenameFrom string
	RenameTo   string
}

// IDSet is the set of identifiers present in storage.
type IDSet map[string]struct{}

// NewIDSet returns a set holding ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// IDSetFrom lists the keys of st.
func IDSetFrom(st storage.Storage) (IDSet, error) {
	keys, err := st.Keys()
	if err != nil {
		return nil, err
	}
	return NewIDSet(keys...), nil
}

func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Add(id string) {
	s[id] = struct{}{}
}

func (s IDSet) Remove(id string) {
	delete(s, id)
}

// Sorted returns the identifiers in order.
func (s IDSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Update applies the effect of an executed plan to the set.
func (s IDSet) Update(p Plan) {
	switch p.Action {
	case ActionSkipped:
		return
	case ActionRenamed:
		s.Remove(p.RenameFrom)
		s.Add(p.RenameTo)
	}
	s.Add(p.Key)
}
