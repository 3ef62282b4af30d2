package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Ext is the file extension of record files.
const Ext = ".yaml"

// Dir stores each record as <key>.yaml in a flat directory.
type Dir struct {
	Path string
}

// NewDir returns a Dir rooted at path. The directory is not created.
func NewDir(path string) *Dir {
	return &Dir{Path: path}
}

// FilePath returns the file backing a key.
func (d *Dir) FilePath(key string) string {
	return filepath.Join(d.Path, key+Ext)
}

// Exists reports whether a record file exists for key.
func (d *Dir) Exists(key string) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}
	_, err := os.Stat(d.FilePath(key))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("checking %s: %w", d.FilePath(key), err)
}

// Read parses the record file for key.
func (d *Dir) Read(key string) (Fields, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	path := d.FilePath(key)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	fields, err := unmarshalFields(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return fields, nil
}

// Write replaces the record file for key. The content is written to a
// temporary file first and renamed into place, so readers never observe a
// partially written record.
func (d *Dir) Write(key string, fields Fields) (err error) {
	if err := ValidateKey(key); err != nil {
		return err
	}
	data, err := Marshal(fields)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(d.Path, ".tmp-"+key+"-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", key, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", key, err)
	}
	if err = os.Rename(tmp.Name(), d.FilePath(key)); err != nil {
		return fmt.Errorf("renaming into %s: %w", d.FilePath(key), err)
	}
	return nil
}

// Delete removes the record file for key.
func (d *Dir) Delete(key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := os.Remove(d.FilePath(key)); err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// Keys lists the keys of all record files, sorted. Hidden files and
// subdirectories are skipped.
func (d *Dir) Keys() ([]string, error) {
	entries, err := os.ReadDir(d.Path)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", d.Path, err)
	}

	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != Ext {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, Ext))
	}
	sort.Strings(keys)
	return keys, nil
}
