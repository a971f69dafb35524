package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BalanceRepository maintains the user_balances summary table. The worker is
// its only writer; the rows are a derived cache of the realized balance, the
// entries table stays the source of truth.
type BalanceRepository struct {
	db *sql.DB
}

// BalanceSummary is one materialized per-user balance row.
type BalanceSummary struct {
	UserID      int64
	Balance     decimal.Decimal
	RefreshedAt time.Time
}

// Upsert writes the summary row for a user.
func (r *BalanceRepository) Upsert(ctx context.Context, userID int64, balance decimal.Decimal) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_balances (user_id, balance, refreshed_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET balance = excluded.balance, refreshed_at = excluded.refreshed_at`,
		userID, balance.String(), time.Now())
	if err != nil {
		return fmt.Errorf("upsert balance for user %d: %w", userID, err)
	}
	return nil
}

// Get returns (nil, nil) when the user has no summary row yet.
func (r *BalanceRepository) Get(ctx context.Context, userID int64) (*BalanceSummary, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT user_id, balance, refreshed_at FROM user_balances WHERE user_id = ?`, userID)

	var (
		s   BalanceSummary
		raw string
	)
	err := row.Scan(&s.UserID, &raw, &s.RefreshedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get balance for user %d: %w", userID, err)
	}

	b, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("parse stored balance %q: %w", raw, err)
	}
	s.Balance = b
	return &s, nil
}

// UserIDs lists every user with at least one entry, for the periodic full
// refresh.
func (r *BalanceRepository) UserIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT user_id FROM entries`)
	if err != nil {
		return nil, fmt.Errorf("list user ids: %w", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user ids: %w", err)
	}
	return out, nil
}
