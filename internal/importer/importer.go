package importer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/matsen/refcite/internal/bibtex"
	"github.com/matsen/refcite/internal/conflict"
	"github.com/matsen/refcite/internal/storage"
)

// Result reports the outcome of importing one entry.
type Result struct {
	Key       string          `json:"key"` // BibTeX citation key of the source entry
	Name      string          `json:"name,omitempty"`
	ID        string          `json:"id,omitempty"`
	Action    conflict.Action `json:"action"`
	RenamedTo string          `json:"renamed_to,omitempty"` // New key of a record moved aside
	Error     string          `json:"error,omitempty"`
}

// Importer writes entries to Storage one at a time. IDs must reflect the
// keys present in Storage; the importer keeps it current after each write.
type Importer struct {
	Storage storage.Storage
	IDs     conflict.IDSet
	Decide  conflict.Decider
	Logger  *slog.Logger
}

// New returns an Importer with its ID set read from st.
func New(st storage.Storage, decide conflict.Decider, logger *slog.Logger) (*Importer, error) {
	ids, err := conflict.IDSetFrom(st)
	if err != nil {
		return nil, fmt.Errorf("listing stored records: %w", err)
	}
	return &Importer{Storage: st, IDs: ids, Decide: decide, Logger: logger}, nil
}

func (im *Importer) logger() *slog.Logger {
	if im.Logger == nil {
		return slog.Default()
	}
	return im.Logger
}

// Import converts, names and stores a single entry. On error nothing has
// been written and the result's Action is ActionSkipped.
func (im *Importer) Import(e bibtex.Entry) (Result, error) {
	res := Result{Key: e.Key, Action: conflict.ActionSkipped}

	fail := func(err error) (Result, error) {
		err = fmt.Errorf("entry %s: %w", e.Key, err)
		res.Error = err.Error()
		im.logger().Warn("entry not imported", "key", e.Key, "error", err)
		return res, err
	}

	rec, err := FromEntry(e)
	if err != nil {
		return fail(err)
	}
	candidate, err := conflict.Candidate(rec)
	if err != nil {
		return fail(err)
	}
	plan, err := conflict.Resolve(candidate, im.IDs, im.Decide)
	if err != nil {
		return fail(err)
	}
	if err := conflict.Apply(im.Storage, plan, rec); err != nil {
		return fail(err)
	}
	im.IDs.Update(plan)

	res.Name = plan.Name
	res.ID = plan.Key
	res.Action = plan.Action
	res.RenamedTo = plan.RenameTo

	attrs := []any{"key", e.Key, "name", plan.Name, "action", string(plan.Action)}
	if plan.Action == conflict.ActionRenamed {
		attrs = append(attrs, "renamed_from", plan.RenameFrom, "renamed_to", plan.RenameTo)
	}
	im.logger().Info("imported", attrs...)
	return res, nil
}

// ImportAll imports entries in order. A failing entry does not stop the
// batch; the returned error joins every per-entry error.
func (im *Importer) ImportAll(entries []bibtex.Entry) ([]Result, error) {
	results := make([]Result, 0, len(entries))
	var errs []error
	for _, e := range entries {
		res, err := im.Import(e)
		if err != nil {
			errs = append(errs, err)
		}
		results = append(results, res)
	}
	return results, errors.Join(errs...)
}
