package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Repository owns the SQLite connection shared by the entry, user and
// balance-summary repositories.
type Repository struct {
	db   *sql.DB
	path string
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	r := &Repository{db: db, path: dbPath}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return r, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Entries returns the entry repository bound to this connection.
func (r *Repository) Entries() *EntryRepository {
	return &EntryRepository{db: r.db}
}

// Users returns the user repository bound to this connection.
func (r *Repository) Users() *UserRepository {
	return &UserRepository{db: r.db}
}

// Balances returns the balance-summary repository bound to this connection.
func (r *Repository) Balances() *BalanceRepository {
	return &BalanceRepository{db: r.db}
}
