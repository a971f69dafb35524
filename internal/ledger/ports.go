package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Andreprogdev/minhasfinancas-api/internal/core"
)

// Ports for the persistence adapters. The SQLite implementations live in
// internal/storage; internal/ledger/memory carries mutex-guarded in-memory
// versions used by tests and the dev backend.
type (
	EntryRepository interface {
		// Insert persists a new entry and returns it with the assigned ID.
		Insert(ctx context.Context, e core.Entry) (core.Entry, error)

		// Update replaces the stored record identified by e.ID.
		Update(ctx context.Context, e core.Entry) (core.Entry, error)

		// Delete removes the entry with the given ID.
		Delete(ctx context.Context, id int64) error

		// FindByID returns (nil, nil) when the entry does not exist.
		FindByID(ctx context.Context, id int64) (*core.Entry, error)

		// Find returns all entries matching the populated filter fields.
		Find(ctx context.Context, f core.EntryFilter) ([]core.Entry, error)

		// SumByTypeAndStatus totals the values of one user's entries with the
		// given type and status. Zero when there are none.
		SumByTypeAndStatus(ctx context.Context, userID int64, typ core.EntryType, status core.EntryStatus) (decimal.Decimal, error)
	}

	UserRepository interface {
		Insert(ctx context.Context, u core.User) (core.User, error)

		// FindByEmail returns (nil, nil) when no user has that email.
		FindByEmail(ctx context.Context, email string) (*core.User, error)

		ExistsByEmail(ctx context.Context, email string) (bool, error)

		// FindByID returns (nil, nil) when the user does not exist.
		FindByID(ctx context.Context, id int64) (*core.User, error)
	}

	// EventPublisher receives a best-effort notification after each
	// successful entry mutation. A nil publisher disables publishing.
	EventPublisher interface {
		PublishEntryEvent(ctx context.Context, action string, entryID, userID int64) error
	}
)
