package conflict

import (
	"errors"
	"fmt"

	"github.com/matsen/refcite/internal/reference"
	"github.com/matsen/refcite/internal/storage"
)

// Apply writes rec to st as described by plan. rec.Name is replaced by
// plan.Name.
//
// For ActionRenamed the steps are: read the existing record, write it under
// its new key, write the new record, delete the old key. If any step fails,
// keys written so far are removed again and the old record is left in place.
func Apply(st storage.Storage, plan Plan, rec reference.Record) error {
	if plan.Action == ActionSkipped {
		return nil
	}

	rec.Name = plan.Name
	if rec.ID() != plan.Key {
		return fmt.Errorf("name %q does not match key %q", rec.Name, plan.Key)
	}
	fields, err := storage.Encode(rec)
	if err != nil {
		return err
	}

	if plan.Action != ActionRenamed {
		if err := st.Write(plan.Key, fields); err != nil {
			return fmt.Errorf("writing %s: %w", plan.Key, err)
		}
		return nil
	}

	old, err := st.Read(plan.RenameFrom)
	if err != nil {
		return fmt.Errorf("reading %s: %w", plan.RenameFrom, err)
	}
	oldName, _ := old["name"].(string)
	renamed := oldName + "a"
	if reference.Identifier(renamed) != plan.RenameTo {
		return fmt.Errorf("stored name %q in %s does not match its key", oldName, plan.RenameFrom)
	}
	old["name"] = renamed

	var written []string
	rollback := func(cause error) error {
		for _, key := range written {
			if err := st.Delete(key); err != nil {
				cause = errors.Join(cause, fmt.Errorf("rolling back %s: %w", key, err))
			}
		}
		return cause
	}

	if err := st.Write(plan.RenameTo, old); err != nil {
		return rollback(fmt.Errorf("writing %s: %w", plan.RenameTo, err))
	}
	written = append(written, plan.RenameTo)

	if err := st.Write(plan.Key, fields); err != nil {
		return rollback(fmt.Errorf("writing %s: %w", plan.Key, err))
	}
	written = append(written, plan.Key)

	if err := st.Delete(plan.RenameFrom); err != nil {
		return rollback(fmt.Errorf("deleting %s: %w", plan.RenameFrom, err))
	}
	return nil
}
