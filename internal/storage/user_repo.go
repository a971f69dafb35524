package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Andreprogdev/minhasfinancas-api/internal/core"
)

// UserRepository persists users in SQLite. It implements
// ledger.UserRepository.
type UserRepository struct {
	db *sql.DB
}

func (r *UserRepository) Insert(ctx context.Context, u core.User) (core.User, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (name, email, password) VALUES (?, ?, ?)`,
		u.Name, u.Email, u.Password)
	if err != nil {
		return core.User{}, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.User{}, fmt.Errorf("user last insert id: %w", err)
	}
	u.ID = id
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*core.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password FROM users WHERE email = ?`, email)

	var u core.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM users WHERE email = ?`, email)

	var n int
	if err := row.Scan(&n); err != nil {
		return false, fmt.Errorf("count users by email: %w", err)
	}
	return n > 0, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*core.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password FROM users WHERE id = ?`, id)

	var u core.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	return &u, nil
}
