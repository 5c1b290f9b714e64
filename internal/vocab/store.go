package vocab

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store persists the editable vocabulary between runs in a SQLite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the vocabulary database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening vocabulary database: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS terms (
			position INTEGER PRIMARY KEY,
			term TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the saved terms in order. A fresh database yields an empty
// list.
func (s *Store) Load() ([]string, error) {
	rows, err := s.db.Query(`SELECT term FROM terms ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying terms: %w", err)
	}
	defer rows.Close()

	var terms []string
	for rows.Next() {
		var term string
		if err := rows.Scan(&term); err != nil {
			return nil, fmt.Errorf("scanning term: %w", err)
		}
		terms = append(terms, term)
	}
	return terms, rows.Err()
}

// Save replaces the saved vocabulary with terms, preserving their order.
func (s *Store) Save(terms []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM terms`); err != nil {
		return fmt.Errorf("clearing terms: %w", err)
	}
	for i, term := range terms {
		if _, err := tx.Exec(`INSERT INTO terms (position, term) VALUES (?, ?)`, i, term); err != nil {
			return fmt.Errorf("inserting term: %w", err)
		}
	}

	return tx.Commit()
}
