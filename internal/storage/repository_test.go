package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Andreprogdev/minhasfinancas-api/internal/core"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "financas.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func seedUser(t *testing.T, repo *Repository) core.User {
	t.Helper()
	u, err := repo.Users().Insert(context.Background(), core.User{
		Name:     "Andre",
		Email:    "andre@example.com",
		Password: "secret",
	})
	require.NoError(t, err)
	require.NotZero(t, u.ID)
	return u
}

func seedEntry(t *testing.T, repo *Repository, userID int64, mutate func(*core.Entry)) core.Entry {
	t.Helper()
	e := core.Entry{
		Description: "Salario",
		Month:       1,
		Year:        2019,
		Value:       decimal.NewFromInt(10),
		Type:        core.Income,
		Status:      core.StatusPending,
		UserID:      userID,
	}
	if mutate != nil {
		mutate(&e)
	}
	saved, err := repo.Entries().Insert(context.Background(), e)
	require.NoError(t, err)
	return saved
}

func TestEntryRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, repo)

	saved := seedEntry(t, repo, u.ID, func(e *core.Entry) {
		e.Value = decimal.RequireFromString("10.50")
	})
	require.NotZero(t, saved.ID)

	got, err := repo.Entries().FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Salario", got.Description)
	assert.True(t, got.Value.Equal(decimal.RequireFromString("10.50")))
	assert.Equal(t, core.Income, got.Type)
	assert.Equal(t, core.StatusPending, got.Status)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestEntryFindByIDAbsent(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.Entries().FindByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEntryUpdateAndDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, repo)
	saved := seedEntry(t, repo, u.ID, nil)

	saved.Status = core.StatusRealized
	saved.Description = "Salario de janeiro"
	_, err := repo.Entries().Update(ctx, saved)
	require.NoError(t, err)

	got, err := repo.Entries().FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, core.StatusRealized, got.Status)
	assert.Equal(t, "Salario de janeiro", got.Description)

	require.NoError(t, repo.Entries().Delete(ctx, saved.ID))
	got, err = repo.Entries().FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEntryFindByFilter(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, repo)

	seedEntry(t, repo, u.ID, nil)
	seedEntry(t, repo, u.ID, func(e *core.Entry) { e.Month = 2 })
	seedEntry(t, repo, u.ID, func(e *core.Entry) {
		e.Description = "Aluguel"
		e.Type = core.Expense
	})

	t.Run("by description only", func(t *testing.T) {
		got, err := repo.Entries().Find(ctx, core.EntryFilter{Description: "Salario"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("by month and type", func(t *testing.T) {
		got, err := repo.Entries().Find(ctx, core.EntryFilter{Month: 1, Type: core.Income})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("empty filter returns everything", func(t *testing.T) {
		got, err := repo.Entries().Find(ctx, core.EntryFilter{})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})
}

func TestSumByTypeAndStatus(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, repo)

	seedEntry(t, repo, u.ID, func(e *core.Entry) {
		e.Status = core.StatusRealized
		e.Value = decimal.RequireFromString("100.25")
	})
	seedEntry(t, repo, u.ID, func(e *core.Entry) {
		e.Status = core.StatusRealized
		e.Value = decimal.RequireFromString("49.75")
	})
	seedEntry(t, repo, u.ID, func(e *core.Entry) {
		e.Type = core.Expense
		e.Status = core.StatusRealized
		e.Value = decimal.NewFromInt(30)
	})

	income, err := repo.Entries().SumByTypeAndStatus(ctx, u.ID, core.Income, core.StatusRealized)
	require.NoError(t, err)
	assert.True(t, income.Equal(decimal.NewFromInt(150)), "got %s", income)

	expenses, err := repo.Entries().SumByTypeAndStatus(ctx, u.ID, core.Expense, core.StatusRealized)
	require.NoError(t, err)
	assert.True(t, expenses.Equal(decimal.NewFromInt(30)))

	none, err := repo.Entries().SumByTypeAndStatus(ctx, u.ID, core.Income, core.StatusCancelled)
	require.NoError(t, err)
	assert.True(t, none.IsZero())
}

func TestUserRepository(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, repo)

	t.Run("find by email", func(t *testing.T) {
		got, err := repo.Users().FindByEmail(ctx, "andre@example.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, u.ID, got.ID)
	})

	t.Run("find by unknown email", func(t *testing.T) {
		got, err := repo.Users().FindByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("exists by email", func(t *testing.T) {
		ok, err := repo.Users().ExistsByEmail(ctx, "andre@example.com")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.Users().ExistsByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("find by id", func(t *testing.T) {
		got, err := repo.Users().FindByID(ctx, u.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Andre", got.Name)
	})
}

func TestBalanceSummaryUpsertAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, repo)

	got, err := repo.Balances().Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Balances().Upsert(ctx, u.ID, decimal.NewFromInt(120)))
	require.NoError(t, repo.Balances().Upsert(ctx, u.ID, decimal.NewFromInt(90)))

	got, err = repo.Balances().Get(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(90)))

	seedEntry(t, repo, u.ID, nil)
	ids, err := repo.Balances().UserIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{u.ID}, ids)
}
