package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Andreprogdev/minhasfinancas-api/internal/core"
	"github.com/Andreprogdev/minhasfinancas-api/internal/ledger/memory"
)

func newEntryService(t *testing.T) (*EntryService, *memory.EntryStore) {
	t.Helper()
	store := memory.NewEntryStore()
	return NewEntryService(store, nil), store
}

func testEntry(userID int64) core.Entry {
	return core.Entry{
		Description: "Salario",
		Month:       1,
		Year:        2019,
		Value:       decimal.NewFromInt(10),
		Type:        core.Income,
		UserID:      userID,
	}
}

func TestSaveAssignsIDAndDefaultsToPending(t *testing.T) {
	svc, _ := newEntryService(t)
	ctx := context.Background()

	saved, err := svc.Save(ctx, testEntry(1))
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.Equal(t, core.StatusPending, saved.Status)
	assert.False(t, saved.CreatedAt.IsZero())
}

func TestSaveKeepsExplicitStatus(t *testing.T) {
	svc, _ := newEntryService(t)

	e := testEntry(1)
	e.Status = core.StatusRealized
	saved, err := svc.Save(context.Background(), e)
	require.NoError(t, err)
	assert.Equal(t, core.StatusRealized, saved.Status)
}

func TestSaveRejectsUnknownStatus(t *testing.T) {
	svc, store := newEntryService(t)

	e := testEntry(1)
	e.Status = "BOGUS"
	_, err := svc.Save(context.Background(), e)
	require.ErrorIs(t, err, core.ErrInvalidStatus)
	assert.Zero(t, store.Len())
}

func TestSaveInvalidEntryNeverTouchesStore(t *testing.T) {
	svc, store := newEntryService(t)

	e := testEntry(1)
	e.Description = ""
	_, err := svc.Save(context.Background(), e)
	require.ErrorIs(t, err, core.ErrInvalidDescription)
	assert.Zero(t, store.Len(), "invalid entry must not be inserted")
}

func TestUpdateReplacesStoredRecord(t *testing.T) {
	svc, _ := newEntryService(t)
	ctx := context.Background()

	saved, err := svc.Save(ctx, testEntry(1))
	require.NoError(t, err)

	saved.Description = "Salario ajustado"
	saved.Value = decimal.NewFromInt(12)
	updated, err := svc.Update(ctx, saved)
	require.NoError(t, err)

	got, err := svc.FindByID(ctx, updated.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Salario ajustado", got.Description)
	assert.True(t, got.Value.Equal(decimal.NewFromInt(12)))
}

func TestUpdateInvalidEntryRejected(t *testing.T) {
	svc, _ := newEntryService(t)
	ctx := context.Background()

	saved, err := svc.Save(ctx, testEntry(1))
	require.NoError(t, err)

	saved.Month = 13
	_, err = svc.Update(ctx, saved)
	require.ErrorIs(t, err, core.ErrInvalidMonth)
}

func TestUpdateUnsavedEntryPanics(t *testing.T) {
	svc, store := newEntryService(t)

	require.Panics(t, func() {
		_, _ = svc.Update(context.Background(), testEntry(1))
	})
	assert.Zero(t, store.Len())
}

func TestDeleteRemovesEntry(t *testing.T) {
	svc, _ := newEntryService(t)
	ctx := context.Background()

	saved, err := svc.Save(ctx, testEntry(1))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, saved))

	got, err := svc.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteUnsavedEntryPanics(t *testing.T) {
	svc, _ := newEntryService(t)

	require.Panics(t, func() {
		_ = svc.Delete(context.Background(), testEntry(1))
	})
}

func TestChangeStatusRoundTrips(t *testing.T) {
	svc, _ := newEntryService(t)
	ctx := context.Background()

	saved, err := svc.Save(ctx, testEntry(1))
	require.NoError(t, err)

	_, err = svc.ChangeStatus(ctx, saved, core.StatusRealized)
	require.NoError(t, err)

	got, err := svc.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, core.StatusRealized, got.Status)

	// No transition table: cancelled is reachable from realized too.
	got2, err := svc.ChangeStatus(ctx, *got, core.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, core.StatusCancelled, got2.Status)
}

func TestChangeStatusValidatesFullRecord(t *testing.T) {
	svc, _ := newEntryService(t)
	ctx := context.Background()

	saved, err := svc.Save(ctx, testEntry(1))
	require.NoError(t, err)

	saved.Year = 1
	_, err = svc.ChangeStatus(ctx, saved, core.StatusRealized)
	require.ErrorIs(t, err, core.ErrInvalidYear)
}

func TestFindByIDAbsentIsSoftEmpty(t *testing.T) {
	svc, _ := newEntryService(t)

	got, err := svc.FindByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSearchByDescriptionOnly(t *testing.T) {
	svc, _ := newEntryService(t)
	ctx := context.Background()

	a := testEntry(1)
	a.Description = "Aluguel"
	a.Type = core.Expense
	_, err := svc.Save(ctx, a)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		b := testEntry(1)
		b.Month = i + 2
		_, err := svc.Save(ctx, b)
		require.NoError(t, err)
	}

	got, err := svc.Search(ctx, core.EntryFilter{Description: "Salario"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, e := range got {
		assert.Equal(t, "Salario", e.Description)
	}
}

func TestBalanceSumsRealizedIncomeMinusExpenses(t *testing.T) {
	svc, _ := newEntryService(t)
	ctx := context.Background()

	add := func(userID int64, typ core.EntryType, status core.EntryStatus, value int64) {
		t.Helper()
		e := testEntry(userID)
		e.Type = typ
		e.Status = status
		e.Value = decimal.NewFromInt(value)
		_, err := svc.Save(ctx, e)
		require.NoError(t, err)
	}

	add(1, core.Income, core.StatusRealized, 100)
	add(1, core.Income, core.StatusRealized, 50)
	add(1, core.Expense, core.StatusRealized, 30)
	add(1, core.Income, core.StatusPending, 999) // wrong status, ignored
	add(2, core.Income, core.StatusRealized, 77) // other user, ignored

	got, err := svc.Balance(ctx, 1, core.StatusRealized)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(120)), "got %s", got)
}

func TestBalanceZeroWithoutEntries(t *testing.T) {
	svc, _ := newEntryService(t)

	got, err := svc.Balance(context.Background(), 1, core.StatusRealized)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

// recordingPublisher captures published events and can fail on demand.
type recordingPublisher struct {
	actions []string
	fail    bool
}

func (p *recordingPublisher) PublishEntryEvent(_ context.Context, action string, _, _ int64) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.actions = append(p.actions, action)
	return nil
}

func TestLifecycleEventsPublished(t *testing.T) {
	store := memory.NewEntryStore()
	pub := &recordingPublisher{}
	svc := NewEntryService(store, pub)
	ctx := context.Background()

	saved, err := svc.Save(ctx, testEntry(1))
	require.NoError(t, err)

	saved.Description = "Salario ajustado"
	updated, err := svc.Update(ctx, saved)
	require.NoError(t, err)

	// One mutation, one event: a status change must not also emit "updated".
	_, err = svc.ChangeStatus(ctx, updated, core.StatusRealized)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, updated))

	assert.Equal(t, []string{
		EventEntrySaved,
		EventEntryUpdated,
		EventEntryStatusChanged,
		EventEntryDeleted,
	}, pub.actions)
}

func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	store := memory.NewEntryStore()
	svc := NewEntryService(store, &recordingPublisher{fail: true})

	saved, err := svc.Save(context.Background(), testEntry(1))
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
}
