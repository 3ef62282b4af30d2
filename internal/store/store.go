// Package store loads a directory of reference records into memory and
// answers lookups for citation rendering.
//
// A Store is read-only once loaded. Importing into the same directory while a
// rendering pass holds a Store is not detected; callers must not run both at
// once.
package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/matsen/refcite/internal/reference"
	"github.com/matsen/refcite/internal/storage"
)

// TemplatePrefix marks storage keys that hold templates rather than records.
const TemplatePrefix = "template"

var (
	// ErrMalformedStore is returned by Load when stored records are corrupt.
	ErrMalformedStore = errors.New("malformed store")
	// ErrNotFound is returned by Get for unknown names.
	ErrNotFound = errors.New("reference not found")
)

// MalformedStoreError reports the location of a corrupt record.
// It matches ErrMalformedStore with errors.Is.
type MalformedStoreError struct {
	Path   string // Record file (or key, for non-file storage)
	Reason string
	Err    error // Underlying cause, may be nil
}

func (e *MalformedStoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", ErrMalformedStore, e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", ErrMalformedStore, e.Path, e.Reason)
}

func (e *MalformedStoreError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedStore, e.Err}
	}
	return []error{ErrMalformedStore}
}

// Store is an in-memory index of records keyed by identifier.
type Store struct {
	items map[string]reference.Record
}

// filePather is implemented by storages backed by files.
type filePather interface {
	FilePath(key string) string
}

// LoadDir loads all records from a directory of YAML files.
func LoadDir(dir string) (*Store, error) {
	return Load(storage.NewDir(dir))
}

// Load reads and validates every record in src. Keys starting with
// TemplatePrefix are skipped. Any invalid record aborts the whole load.
func Load(src storage.Storage) (*Store, error) {
	keys, err := src.Keys()
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}

	location := func(key string) string {
		if fp, ok := src.(filePather); ok {
			return fp.FilePath(key)
		}
		return key
	}

	s := &Store{items: make(map[string]reference.Record, len(keys))}
	for _, key := range keys {
		if strings.HasPrefix(key, TemplatePrefix) {
			continue
		}

		fields, err := src.Read(key)
		if err != nil {
			return nil, &MalformedStoreError{Path: location(key), Reason: "unparsable content", Err: err}
		}

		name, _ := fields["name"].(string)
		if strings.TrimSpace(name) == "" {
			return nil, &MalformedStoreError{Path: location(key), Reason: "missing 'name'"}
		}

		var rec reference.Record
		if err := storage.Decode(fields, &rec); err != nil {
			return nil, &MalformedStoreError{Path: location(key), Reason: "invalid record", Err: err}
		}

		id := rec.ID()
		if id != key {
			return nil, &MalformedStoreError{
				Path:   location(key),
				Reason: fmt.Sprintf("name %q does not match identifier %q", rec.Name, key),
			}
		}
		if _, dup := s.items[id]; dup {
			return nil, &MalformedStoreError{Path: location(key), Reason: fmt.Sprintf("reference name %q already defined", rec.Name)}
		}
		s.items[id] = rec
	}

	return s, nil
}

// New builds a Store from records already in memory.
// It applies the same identifier checks as Load.
func New(records ...reference.Record) (*Store, error) {
	s := &Store{items: make(map[string]reference.Record, len(records))}
	for _, rec := range records {
		if strings.TrimSpace(rec.Name) == "" {
			return nil, &MalformedStoreError{Path: "(memory)", Reason: "missing 'name'"}
		}
		if _, dup := s.items[rec.ID()]; dup {
			return nil, &MalformedStoreError{Path: rec.ID(), Reason: fmt.Sprintf("reference name %q already defined", rec.Name)}
		}
		s.items[rec.ID()] = rec
	}
	return s, nil
}

// Get returns the record with the given name, ignoring case.
func (s *Store) Get(name string) (reference.Record, error) {
	rec, ok := s.items[reference.Identifier(name)]
	if !ok {
		return reference.Record{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return rec, nil
}

// Contains reports whether a record with the given name exists, ignoring case.
func (s *Store) Contains(name string) bool {
	_, ok := s.items[reference.Identifier(name)]
	return ok
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.items)
}

// All returns every record sorted by identifier.
func (s *Store) All() []reference.Record {
	ids := make([]string, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	recs := make([]reference.Record, len(ids))
	for i, id := range ids {
		recs[i] = s.items[id]
	}
	return recs
}

// Used returns the records marked in u, sorted by identifier.
// Marked names missing from the store are skipped.
func (s *Store) Used(u *Usage) []reference.Record {
	var recs []reference.Record
	for _, id := range u.IDs() {
		if rec, ok := s.items[id]; ok {
			recs = append(recs, rec)
		}
	}
	return recs
}
