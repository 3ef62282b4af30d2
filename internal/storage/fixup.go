package storage

import (
	"errors"
	"fmt"
)

// ErrFieldExists is returned by RenameField for records that already hold
// the target field.
var ErrFieldExists = errors.New("target field already present")

// RenameField moves field from to field to in every record that has it and
// returns the changed keys. Records that already have the target field are
// left alone and reported in the joined error. The name field cannot be
// renamed since it determines the record's key.
func RenameField(st Storage, from, to string) ([]string, error) {
	if from == "" || to == "" || from == to {
		return nil, fmt.Errorf("invalid field rename %q -> %q", from, to)
	}
	if from == "name" || to == "name" {
		return nil, errors.New("the name field cannot be renamed")
	}

	keys, err := st.Keys()
	if err != nil {
		return nil, err
	}

	var changed []string
	var errs []error
	for _, key := range keys {
		fields, err := st.Read(key)
		if err != nil {
			return changed, err
		}
		value, ok := fields[from]
		if !ok {
			continue
		}
		if _, exists := fields[to]; exists {
			errs = append(errs, fmt.Errorf("%s: %w: %s", key, ErrFieldExists, to))
			continue
		}
		delete(fields, from)
		fields[to] = value
		if err := st.Write(key, fields); err != nil {
			return changed, err
		}
		changed = append(changed, key)
	}
	return changed, errors.Join(errs...)
}
