package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Andreprogdev/minhasfinancas-api/internal/core"
)

// EntryRepository persists ledger entries in SQLite. It implements
// ledger.EntryRepository.
type EntryRepository struct {
	db *sql.DB
}

const entryColumns = "id, description, month, year, value, type, status, user_id, created_at"

func (r *EntryRepository) Insert(ctx context.Context, e core.Entry) (core.Entry, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO entries (description, month, year, value, type, status, user_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Description, e.Month, e.Year, e.Value.String(), string(e.Type), string(e.Status), e.UserID, e.CreatedAt)
	if err != nil {
		return core.Entry{}, fmt.Errorf("insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Entry{}, fmt.Errorf("entry last insert id: %w", err)
	}
	e.ID = id
	return e, nil
}

func (r *EntryRepository) Update(ctx context.Context, e core.Entry) (core.Entry, error) {
	_, err := r.db.ExecContext(ctx,
		`UPDATE entries
		 SET description = ?, month = ?, year = ?, value = ?, type = ?, status = ?, user_id = ?
		 WHERE id = ?`,
		e.Description, e.Month, e.Year, e.Value.String(), string(e.Type), string(e.Status), e.UserID, e.ID)
	if err != nil {
		return core.Entry{}, fmt.Errorf("update entry %d: %w", e.ID, err)
	}
	return e, nil
}

func (r *EntryRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete entry %d: %w", id, err)
	}
	return nil
}

func (r *EntryRepository) FindByID(ctx context.Context, id int64) (*core.Entry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)

	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find entry %d: %w", id, err)
	}
	return &e, nil
}

// Find compiles the populated filter fields into a conjunctive WHERE clause.
// Zero-valued fields are wildcards.
func (r *EntryRepository) Find(ctx context.Context, f core.EntryFilter) ([]core.Entry, error) {
	var (
		conds []string
		args  []any
	)
	if f.UserID != 0 {
		conds = append(conds, "user_id = ?")
		args = append(args, f.UserID)
	}
	if f.Description != "" {
		conds = append(conds, "description = ?")
		args = append(args, f.Description)
	}
	if f.Month != 0 {
		conds = append(conds, "month = ?")
		args = append(args, f.Month)
	}
	if f.Year != 0 {
		conds = append(conds, "year = ?")
		args = append(args, f.Year)
	}
	if f.Type != "" {
		conds = append(conds, "type = ?")
		args = append(args, string(f.Type))
	}
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(f.Status))
	}

	query := `SELECT ` + entryColumns + ` FROM entries`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find entries: %w", err)
	}
	defer rows.Close()

	var out []core.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return out, nil
}

// SumByTypeAndStatus totals one user's entry values for the given type and
// status. Values are stored as decimal text, so the sum happens in Go.
func (r *EntryRepository) SumByTypeAndStatus(ctx context.Context, userID int64, typ core.EntryType, status core.EntryStatus) (decimal.Decimal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT value FROM entries WHERE user_id = ? AND type = ? AND status = ?`,
		userID, string(typ), string(status))
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum entries: %w", err)
	}
	defer rows.Close()

	sum := decimal.Zero
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return decimal.Zero, fmt.Errorf("scan value: %w", err)
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.Zero, fmt.Errorf("parse stored value %q: %w", raw, err)
		}
		sum = sum.Add(v)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("iterate values: %w", err)
	}
	return sum, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (core.Entry, error) {
	var (
		e      core.Entry
		value  string
		typ    string
		status string
	)
	if err := row.Scan(&e.ID, &e.Description, &e.Month, &e.Year, &value, &typ, &status, &e.UserID, &e.CreatedAt); err != nil {
		return core.Entry{}, err
	}

	v, err := decimal.NewFromString(value)
	if err != nil {
		return core.Entry{}, fmt.Errorf("parse stored value %q: %w", value, err)
	}
	e.Value = v
	e.Type = core.EntryType(typ)
	e.Status = core.EntryStatus(status)
	return e, nil
}
