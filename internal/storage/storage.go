// Package storage handles record persistence: one YAML document per record
// key, plus an ephemeral SQLite index for full-text queries.
package storage

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidKey is returned for keys that cannot name a storage location.
var ErrInvalidKey = errors.New("invalid storage key")

// Fields is the raw content of one stored record.
type Fields map[string]any

// Storage is a key-value-at-a-path interface over record locations.
//
// Read of a missing key returns an error wrapping fs.ErrNotExist.
type Storage interface {
	Exists(key string) (bool, error)
	Read(key string) (Fields, error)
	Write(key string, fields Fields) error
	Delete(key string) error
	Keys() ([]string, error) // Sorted
}

// ValidateKey rejects keys that are empty or would escape the storage root.
func ValidateKey(key string) error {
	if key == "" || key == "." || key == ".." ||
		strings.ContainsAny(key, `/\`) || strings.ContainsRune(key, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// Encode converts a typed value (usually a reference.Record) to Fields.
func Encode(v any) (Fields, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding fields: %w", err)
	}
	fields, err := unmarshalFields(data)
	if err != nil {
		return nil, fmt.Errorf("encoding fields: %w", err)
	}
	return fields, nil
}

// unmarshalFields parses one stored YAML document. Scalars that YAML would
// resolve to timestamps (date: 2001-03-15) keep their source text.
// An empty document gives empty Fields.
func unmarshalFields(data []byte) (Fields, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		return Fields{}, nil
	}
	keepTimestampText(&doc)

	var fields Fields
	if err := doc.Decode(&fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = Fields{}
	}
	return fields, nil
}

func keepTimestampText(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!timestamp" {
		n.Tag = "!!str"
	}
	for _, c := range n.Content {
		keepTimestampText(c)
	}
}

// Decode converts Fields into a typed value.
func Decode(fields Fields, v any) error {
	data, err := yaml.Marshal(fields)
	if err != nil {
		return fmt.Errorf("decoding fields: %w", err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding fields: %w", err)
	}
	return nil
}

// Marshal renders Fields as the YAML document stored on disk.
// Keys are emitted in sorted order, so equal Fields give equal bytes.
func Marshal(fields Fields) ([]byte, error) {
	return yaml.Marshal(map[string]any(fields))
}
