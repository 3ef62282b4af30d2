package conflict

import (
	"fmt"
	"strings"

	"github.com/matsen/refcite/internal/reference"
)

const suffixes = "abcdefghijklmnopqrstuvwxyz"

// Candidate returns the default name for rec: the first author's surname and
// the year, e.g. "Smith 2020".
func Candidate(rec reference.Record) (string, error) {
	surname := rec.FirstAuthorSurname()
	if surname == "" {
		return "", ErrNoAuthor
	}
	year := strings.TrimSpace(rec.Year)
	if year == "" {
		return "", fmt.Errorf("%w %q", reference.ErrMissingField, "year")
	}
	return surname + " " + year, nil
}

// Resolve decides the name a new record with the given candidate name is
// stored under.
//
// If a lettered series exists (base+"a" is stored), the first free letter is
// used. Otherwise, if the bare name is stored, decide chooses between
// overwriting it, renaming it to base+"a" and adding the new record as
// base+"b", or aborting. A nil decide aborts.
func Resolve(candidate string, ids IDSet, decide Decider) (Plan, error) {
	base := reference.Identifier(candidate)

	if ids.Has(base + "a") {
		for _, r := range suffixes {
			key := base + string(r)
			if !ids.Has(key) {
				return Plan{Name: candidate + string(r), Key: key, Action: ActionSuffixed}, nil
			}
		}
		return Plan{}, fmt.Errorf("%w: %s", ErrSuffixExhausted, candidate)
	}

	if !ids.Has(base) {
		return Plan{Name: candidate, Key: base, Action: ActionNew}, nil
	}

	choice := Abort
	if decide != nil {
		var err error
		if choice, err = decide(base); err != nil {
			return Plan{}, fmt.Errorf("deciding on %s: %w", base, err)
		}
	}

	switch choice {
	case Overwrite:
		return Plan{Name: candidate, Key: base, Action: ActionOverwritten}, nil
	case RenameAndAdd:
		if ids.Has(base + "b") {
			return Plan{}, fmt.Errorf("%w: cannot rename %s, %s is taken", ErrRenameBlocked, base, base+"b")
		}
		return Plan{
			Name:       candidate + "b",
			Key:        base + "b",
			Action:     ActionRenamed,
			RenameFrom: base,
			RenameTo:   base + "a",
		}, nil
	default:
		return Plan{}, fmt.Errorf("%w: %s already exists", ErrAborted, base)
	}
}
