package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  EntryType = "INCOME"
	Expense EntryType = "EXPENSE"
)

const (
	StatusPending   EntryStatus = "PENDING"
	StatusRealized  EntryStatus = "REALIZED"
	StatusCancelled EntryStatus = "CANCELLED"
)

type (
	EntryType   string
	EntryStatus string

	// User owns ledger entries. Password is compared by plain equality,
	// preserving the behavior of the system this service replaced. That is a
	// known deficiency; a salted hash belongs here before any public exposure.
	User struct {
		ID       int64
		Name     string
		Email    string
		Password string
	}

	// Entry is a single ledger record ("lançamento"): an income or expense
	// booked against a month/year for one user. ID is zero until persisted.
	Entry struct {
		ID          int64
		Description string
		Month       int
		Year        int
		Value       decimal.Decimal
		Type        EntryType
		Status      EntryStatus
		UserID      int64
		CreatedAt   time.Time
	}

	// EntryFilter selects entries by example: zero-valued fields are
	// wildcards, populated fields must all match.
	EntryFilter struct {
		UserID      int64
		Description string
		Month       int
		Year        int
		Type        EntryType
		Status      EntryStatus
	}
)

// Valid reports whether t is one of the known entry types.
func (t EntryType) Valid() bool {
	return t == Income || t == Expense
}

// Valid reports whether s is one of the known lifecycle statuses.
func (s EntryStatus) Valid() bool {
	return s == StatusPending || s == StatusRealized || s == StatusCancelled
}

// Validate checks the entry's fields in a fixed order and returns the first
// failure. The order is part of the contract: callers surface the message
// as-is, so "invalid month" must not be reported while the description is
// still bad.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return ErrInvalidDescription
	}
	if e.Month < 1 || e.Month > 12 {
		return ErrInvalidMonth
	}
	if e.Year < 1000 || e.Year > 9999 {
		return ErrInvalidYear
	}
	if e.UserID == 0 {
		return ErrMissingUser
	}
	if e.Value.Sign() <= 0 {
		return ErrInvalidValue
	}
	if !e.Type.Valid() {
		return ErrInvalidType
	}
	if !e.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// IsZero reports whether the filter carries no criteria at all.
func (f EntryFilter) IsZero() bool {
	return f == EntryFilter{}
}

// Matches reports whether the entry satisfies every populated filter field.
func (f EntryFilter) Matches(e Entry) bool {
	if f.UserID != 0 && e.UserID != f.UserID {
		return false
	}
	if f.Description != "" && e.Description != f.Description {
		return false
	}
	if f.Month != 0 && e.Month != f.Month {
		return false
	}
	if f.Year != 0 && e.Year != f.Year {
		return false
	}
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	return true
}
