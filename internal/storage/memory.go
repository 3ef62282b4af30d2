package storage

import (
	"fmt"
	"io/fs"
	"sort"
)

// Memory is an in-process Storage, used for dry runs and tests.
// Stored Fields are copied on the way in and out.
type Memory struct {
	records map[string][]byte
}

// NewMemory returns an empty Memory storage.
func NewMemory() *Memory {
	return &Memory{records: make(map[string][]byte)}
}

// CopyOf snapshots every record of src into a new Memory storage.
func CopyOf(src Storage) (*Memory, error) {
	m := NewMemory()
	keys, err := src.Keys()
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		fields, err := src.Read(k)
		if err != nil {
			return nil, err
		}
		if err := m.Write(k, fields); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Memory) Exists(key string) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}
	_, ok := m.records[key]
	return ok, nil
}

func (m *Memory) Read(key string) (Fields, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	data, ok := m.records[key]
	if !ok {
		return nil, fmt.Errorf("reading %s: %w", key, fs.ErrNotExist)
	}
	fields, err := unmarshalFields(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", key, err)
	}
	return fields, nil
}

func (m *Memory) Write(key string, fields Fields) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	data, err := Marshal(fields)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	m.records[key] = data
	return nil
}

func (m *Memory) Delete(key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if _, ok := m.records[key]; !ok {
		return fmt.Errorf("deleting %s: %w", key, fs.ErrNotExist)
	}
	delete(m.records, key)
	return nil
}

func (m *Memory) Keys() ([]string, error) {
	keys := make([]string, 0, len(m.records))
	for k := range m.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// PutRaw stores raw document bytes under key without validation.
// Tests use it to plant corrupt records.
func (m *Memory) PutRaw(key string, data []byte) {
	m.records[key] = data
}
