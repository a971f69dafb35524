// Package memory carries in-memory repository implementations, used by the
// tests and as the dev backend when no database path is configured.
package memory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Andreprogdev/minhasfinancas-api/internal/core"
)

type EntryStore struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]core.Entry
}

func NewEntryStore() *EntryStore {
	return &EntryStore{nextID: 1, items: make(map[int64]core.Entry)}
}

func (s *EntryStore) Insert(_ context.Context, e core.Entry) (core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextID
	s.nextID++
	s.items[e.ID] = e
	return e, nil
}

func (s *EntryStore) Update(_ context.Context, e core.Entry) (core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[e.ID] = e
	return e, nil
}

func (s *EntryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

func (s *EntryStore) FindByID(_ context.Context, id int64) (*core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (s *EntryStore) Find(_ context.Context, f core.EntryFilter) ([]core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Entry
	for _, e := range s.items {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *EntryStore) SumByTypeAndStatus(_ context.Context, userID int64, typ core.EntryType, status core.EntryStatus) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := decimal.Zero
	for _, e := range s.items {
		if e.UserID == userID && e.Type == typ && e.Status == status {
			sum = sum.Add(e.Value)
		}
	}
	return sum, nil
}

// Len reports the number of stored entries. Test helper.
func (s *EntryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

type UserStore struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]core.User
}

func NewUserStore() *UserStore {
	return &UserStore{nextID: 1, items: make(map[int64]core.User)}
}

func (s *UserStore) Insert(_ context.Context, u core.User) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.nextID
	s.nextID++
	s.items[u.ID] = u
	return u, nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.items {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *UserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, err := s.FindByEmail(ctx, email)
	return u != nil, err
}

func (s *UserStore) FindByID(_ context.Context, id int64) (*core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}
