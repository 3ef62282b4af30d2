package storage

import (
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/matsen/refcite/internal/reference"
	"github.com/zeebo/blake3"
	_ "modernc.org/sqlite"
)

// Index is an ephemeral SQLite full-text index over the record files.
// It is always rebuilt from the YAML records and never written back.
type Index struct {
	db *sql.DB
}

// Hit is one search result.
type Hit struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Year  string `json:"year"`
	Title string `json:"title"`
}

// OpenIndex opens or creates an index database at path.
func OpenIndex(path string) (*Index, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createIndexSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating index schema: %w", err)
	}
	return &Index{db: db}, nil
}

// Close closes the database connection.
func (ix *Index) Close() error {
	return ix.db.Close()
}

func createIndexSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS refs (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			year TEXT NOT NULL,
			title TEXT,
			authors_json TEXT NOT NULL,
			content_hash TEXT NOT NULL
		);

		CREATE VIRTUAL TABLE IF NOT EXISTS refs_fts USING fts5(
			id,
			name,
			title,
			authors_text,
			keywords,
			abstract
		);
	`
	_, err := db.Exec(schema)
	return err
}

// ContentHash returns a BLAKE3 digest of the record's stored form.
func ContentHash(rec reference.Record) (string, error) {
	fields, err := Encode(rec)
	if err != nil {
		return "", err
	}
	data, err := Marshal(fields)
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Rebuild replaces the index content with the given records.
func (ix *Index) Rebuild(records []reference.Record) (int, error) {
	tx, err := ix.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM refs"); err != nil {
		return 0, fmt.Errorf("clearing refs table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM refs_fts"); err != nil {
		return 0, fmt.Errorf("clearing refs_fts table: %w", err)
	}

	refsStmt, err := tx.Prepare(`
		INSERT INTO refs (id, name, type, year, title, authors_json, content_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing refs insert: %w", err)
	}
	defer refsStmt.Close()

	ftsStmt, err := tx.Prepare(`
		INSERT INTO refs_fts (id, name, title, authors_text, keywords, abstract)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for _, rec := range records {
		authorsJSON, err := json.Marshal(rec.Authors)
		if err != nil {
			return 0, fmt.Errorf("marshaling authors for %s: %w", rec.ID(), err)
		}
		hash, err := ContentHash(rec)
		if err != nil {
			return 0, fmt.Errorf("hashing %s: %w", rec.ID(), err)
		}

		if _, err := refsStmt.Exec(rec.ID(), rec.Name, string(rec.Type), rec.Year, rec.Title, string(authorsJSON), hash); err != nil {
			return 0, fmt.Errorf("inserting ref %s: %w", rec.ID(), err)
		}
		if _, err := ftsStmt.Exec(rec.ID(), rec.Name, rec.Title,
			strings.Join(rec.Authors, "; "), strings.Join(rec.Keywords, "; "), rec.Abstract); err != nil {
			return 0, fmt.Errorf("inserting fts for %s: %w", rec.ID(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing index: %w", err)
	}
	return len(records), nil
}

// Search performs a full-text search over names, titles, authors, keywords
// and abstracts.
func (ix *Index) Search(query string, limit int) ([]Hit, error) {
	ftsQuery := prepareFTSQuery(query)
	if ftsQuery == "" {
		return nil, errors.New("empty search query")
	}

	rows, err := ix.db.Query(`
		SELECT id, name, type, year, title
		FROM refs
		WHERE id IN (SELECT id FROM refs_fts WHERE refs_fts MATCH ?)
		ORDER BY id
		LIMIT ?`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		var title sql.NullString
		if err := rows.Scan(&h.ID, &h.Name, &h.Type, &h.Year, &title); err != nil {
			return nil, err
		}
		h.Title = title.String
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// Count returns the number of indexed records.
func (ix *Index) Count() (int, error) {
	var count int
	err := ix.db.QueryRow("SELECT COUNT(*) FROM refs").Scan(&count)
	return count, err
}

// Stale reports whether the index content differs from the given records.
func (ix *Index) Stale(records []reference.Record) (bool, error) {
	rows, err := ix.db.Query("SELECT id, content_hash FROM refs")
	if err != nil {
		return false, fmt.Errorf("reading index hashes: %w", err)
	}
	defer rows.Close()

	indexed := make(map[string]string)
	for rows.Next() {
		var id, hash string
		if err := rows.Scan(&id, &hash); err != nil {
			return false, err
		}
		indexed[id] = hash
	}
	if err := rows.Err(); err != nil {
		return false, err
	}

	if len(indexed) != len(records) {
		return true, nil
	}
	for _, rec := range records {
		hash, err := ContentHash(rec)
		if err != nil {
			return false, err
		}
		if indexed[rec.ID()] != hash {
			return true, nil
		}
	}
	return false, nil
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	// If query contains special chars, quote it
	if strings.ContainsAny(query, "\"*+-:(){}[]^~") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
