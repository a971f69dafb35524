package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Andreprogdev/minhasfinancas-api/internal/core"
)

// Entry event actions published after successful mutations.
const (
	EventEntrySaved         = "saved"
	EventEntryUpdated       = "updated"
	EventEntryDeleted       = "deleted"
	EventEntryStatusChanged = "status_changed"
)

// EntryService enforces the ledger lifecycle: which entries may exist, how
// they are created, replaced, removed, and how their status moves. All rules
// run here; the repository only persists what the service already accepted.
type EntryService struct {
	repo   EntryRepository
	events EventPublisher
	now    func() time.Time
}

func NewEntryService(repo EntryRepository, events EventPublisher) *EntryService {
	return &EntryService{
		repo:   repo,
		events: events,
		now:    time.Now,
	}
}

// Save validates and persists a new entry. Invalid entries never reach the
// store. New entries default to PENDING and get the current time as
// registration date.
func (s *EntryService) Save(ctx context.Context, e core.Entry) (core.Entry, error) {
	if e.Status == "" {
		e.Status = core.StatusPending
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	if err := e.Validate(); err != nil {
		return core.Entry{}, err
	}

	saved, err := s.repo.Insert(ctx, e)
	if err != nil {
		return core.Entry{}, fmt.Errorf("insert entry: %w", err)
	}

	slog.InfoContext(ctx, "entry saved",
		"id", saved.ID,
		"user_id", saved.UserID,
		"type", saved.Type,
		"value", saved.Value.String())

	s.publish(ctx, EventEntrySaved, saved.ID, saved.UserID)
	return saved, nil
}

// Update validates and replaces a stored entry. Calling it with an entry that
// was never persisted is a bug in the caller, not a business condition, and
// panics before the store is touched.
func (s *EntryService) Update(ctx context.Context, e core.Entry) (core.Entry, error) {
	updated, err := s.applyUpdate(ctx, e)
	if err != nil {
		return core.Entry{}, err
	}
	s.publish(ctx, EventEntryUpdated, updated.ID, updated.UserID)
	return updated, nil
}

// applyUpdate is the shared write path of Update and ChangeStatus: the
// precondition, the revalidation and the store write, with no event. Each
// caller publishes its own single event for the mutation.
func (s *EntryService) applyUpdate(ctx context.Context, e core.Entry) (core.Entry, error) {
	mustHaveID(e)
	if err := e.Validate(); err != nil {
		return core.Entry{}, err
	}

	updated, err := s.repo.Update(ctx, e)
	if err != nil {
		return core.Entry{}, fmt.Errorf("update entry %d: %w", e.ID, err)
	}

	slog.InfoContext(ctx, "entry updated", "id", updated.ID, "user_id", updated.UserID)
	return updated, nil
}

// Delete removes a stored entry. Only existence matters: no field validation
// runs. The same unsaved-entry precondition as Update applies.
func (s *EntryService) Delete(ctx context.Context, e core.Entry) error {
	mustHaveID(e)

	if err := s.repo.Delete(ctx, e.ID); err != nil {
		return fmt.Errorf("delete entry %d: %w", e.ID, err)
	}

	slog.InfoContext(ctx, "entry deleted", "id", e.ID, "user_id", e.UserID)

	s.publish(ctx, EventEntryDeleted, e.ID, e.UserID)
	return nil
}

// ChangeStatus sets the status and writes through the update path, so the
// full record is revalidated and the unsaved-entry precondition applies.
// There is no transition table: any status may be set from any other. One
// status change publishes exactly one event.
func (s *EntryService) ChangeStatus(ctx context.Context, e core.Entry, status core.EntryStatus) (core.Entry, error) {
	e.Status = status
	updated, err := s.applyUpdate(ctx, e)
	if err != nil {
		return core.Entry{}, err
	}
	s.publish(ctx, EventEntryStatusChanged, updated.ID, updated.UserID)
	return updated, nil
}

// FindByID returns (nil, nil) when the entry does not exist. Absence is not
// an error here.
func (s *EntryService) FindByID(ctx context.Context, id int64) (*core.Entry, error) {
	return s.repo.FindByID(ctx, id)
}

// Search returns the entries matching every populated filter field.
func (s *EntryService) Search(ctx context.Context, f core.EntryFilter) ([]core.Entry, error) {
	return s.repo.Find(ctx, f)
}

// Balance returns income minus expenses for the user's entries with the given
// status. REALIZED gives the "current balance". Zero when nothing matches.
func (s *EntryService) Balance(ctx context.Context, userID int64, status core.EntryStatus) (decimal.Decimal, error) {
	income, err := s.repo.SumByTypeAndStatus(ctx, userID, core.Income, status)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum income: %w", err)
	}
	expenses, err := s.repo.SumByTypeAndStatus(ctx, userID, core.Expense, status)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum expenses: %w", err)
	}
	return income.Sub(expenses), nil
}

func (s *EntryService) publish(ctx context.Context, action string, entryID, userID int64) {
	if s.events == nil {
		return
	}
	// Best effort: the mutation already succeeded, a lost event only delays
	// the balance summary refresh.
	if err := s.events.PublishEntryEvent(ctx, action, entryID, userID); err != nil {
		slog.WarnContext(ctx, "failed to publish entry event",
			"action", action,
			"id", entryID,
			"error", err)
	}
}

// mustHaveID panics when the entry was never persisted. Update and Delete on
// an unsaved entry is a programming-contract violation.
func mustHaveID(e core.Entry) {
	if e.ID == 0 {
		panic("ledger: entry has no id; save it before updating or deleting")
	}
}
