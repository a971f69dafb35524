package core

import "errors"

// Validation errors. The messages are user-facing: the HTTP layer returns
// them verbatim in error responses.
var (
	ErrInvalidDescription = errors.New("invalid description")
	ErrInvalidMonth       = errors.New("invalid month")
	ErrInvalidYear        = errors.New("invalid year")
	ErrMissingUser        = errors.New("missing user")
	ErrInvalidValue       = errors.New("invalid value")
	ErrInvalidType        = errors.New("invalid entry type")
	ErrInvalidStatus      = errors.New("invalid status")
)

// Business rule and authentication errors.
var (
	ErrEmailTaken      = errors.New("email already registered")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
)

// IsValidationError reports whether err is one of the entry field checks.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidDescription) ||
		errors.Is(err, ErrInvalidMonth) ||
		errors.Is(err, ErrInvalidYear) ||
		errors.Is(err, ErrMissingUser) ||
		errors.Is(err, ErrInvalidValue) ||
		errors.Is(err, ErrInvalidType) ||
		errors.Is(err, ErrInvalidStatus)
}

// IsAuthError reports whether err is an authentication failure. Unknown email
// and wrong password stay distinguishable on purpose; the ported system
// reported them separately.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrInvalidPassword)
}
