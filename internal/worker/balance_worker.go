package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Andreprogdev/minhasfinancas-api/internal/amqp"
	"github.com/Andreprogdev/minhasfinancas-api/internal/core"
)

type (
	// BalanceReader computes the current balance from the ledger.
	// *ledger.EntryService satisfies it.
	BalanceReader interface {
		Balance(ctx context.Context, userID int64, status core.EntryStatus) (decimal.Decimal, error)
	}

	// SummaryWriter persists materialized balance rows.
	// *storage.BalanceRepository satisfies it.
	SummaryWriter interface {
		Upsert(ctx context.Context, userID int64, balance decimal.Decimal) error
		UserIDs(ctx context.Context) ([]int64, error)
	}
)

// BalanceWorker keeps the user_balances summary table in step with the
// ledger. Entry events trigger a refresh for the affected user; a periodic
// full pass covers events lost while the broker or worker was down.
type BalanceWorker struct {
	reader    BalanceReader
	summaries SummaryWriter
	interval  time.Duration
}

func NewBalanceWorker(reader BalanceReader, summaries SummaryWriter, interval time.Duration) *BalanceWorker {
	return &BalanceWorker{
		reader:    reader,
		summaries: summaries,
		interval:  interval,
	}
}

// HandleEntryEvent refreshes the summary row of the user named in the
// message. The entry ID is only logged: the refresh always recomputes from
// the ledger, so event ordering does not matter.
func (w *BalanceWorker) HandleEntryEvent(msg *amqp.EntryEventMessage) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slog.InfoContext(ctx, "processing entry event",
		"action", msg.Action,
		"entry_id", msg.EntryID,
		"user_id", msg.UserID)

	return w.RefreshUser(ctx, msg.UserID)
}

// RefreshUser recomputes and stores one user's realized balance.
func (w *BalanceWorker) RefreshUser(ctx context.Context, userID int64) error {
	balance, err := w.reader.Balance(ctx, userID, core.StatusRealized)
	if err != nil {
		return fmt.Errorf("compute balance for user %d: %w", userID, err)
	}
	if err := w.summaries.Upsert(ctx, userID, balance); err != nil {
		return fmt.Errorf("store balance for user %d: %w", userID, err)
	}

	slog.InfoContext(ctx, "balance summary refreshed",
		"user_id", userID,
		"balance", balance.String())
	return nil
}

// RefreshAll recomputes the summary for every user with entries. Errors are
// collected per user so one bad row does not stop the pass.
func (w *BalanceWorker) RefreshAll(ctx context.Context) error {
	ids, err := w.summaries.UserIDs(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	var failed int
	for _, id := range ids {
		if err := w.RefreshUser(ctx, id); err != nil {
			slog.ErrorContext(ctx, "failed to refresh balance", "user_id", id, "error", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("refresh pass: %d of %d users failed", failed, len(ids))
	}
	return nil
}

// Run performs the periodic full refresh until ctx is done.
func (w *BalanceWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.RefreshAll(ctx); err != nil {
				slog.ErrorContext(ctx, "periodic refresh failed", "error", err)
			}
		}
	}
}
