// internal/store/postgres.go
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	_ "github.com/lib/pq"

	appErrors "github.com/kisumu-health/sha-connect-backend/internal/errors"
)

// PostgresStore keeps each table as a single jsonb document row, preserving
// the whole-table overwrite semantics the outbox engine expects. Used when
// several outreach desks share one campaign database instead of a local
// data directory.
type PostgresStore struct {
	DB *sql.DB
}

// OpenPostgres connects using the same env variables the rest of the stack
// reads (DB_USER, DB_PASSWORD, DB_HOST, DB_PORT, DB_NAME) and creates the
// backing table if it is missing.
func OpenPostgres() (*PostgresStore, error) {
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	name := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		user, pass, host, port, name,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	s := &PostgresStore{DB: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate() error {
	_, err := s.DB.Exec(`
        CREATE TABLE IF NOT EXISTS app_tables (
            name TEXT PRIMARY KEY,
            doc  JSONB NOT NULL DEFAULT '[]'::jsonb
        )
    `)
	if err != nil {
		return appErrors.NewStorageError("init", "app_tables", err)
	}
	return nil
}

func (s *PostgresStore) ReadTable(name string, out any) error {
	var doc []byte
	err := s.DB.QueryRow(`SELECT doc FROM app_tables WHERE name = $1`, name).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil // absent table reads as empty
	}
	if err != nil {
		return appErrors.NewStorageError("read", name, err)
	}
	if err := json.Unmarshal(doc, out); err != nil {
		return appErrors.NewStorageError("read", name, err)
	}
	return nil
}

func (s *PostgresStore) WriteTable(name string, rows any) error {
	doc, err := json.Marshal(rows)
	if err != nil {
		return appErrors.NewStorageError("write", name, err)
	}
	_, err = s.DB.Exec(`
        INSERT INTO app_tables (name, doc)
        VALUES ($1, $2)
        ON CONFLICT (name) DO UPDATE SET doc = EXCLUDED.doc
    `, name, doc)
	if err != nil {
		return appErrors.NewStorageError("write", name, err)
	}
	return nil
}
