package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Andreprogdev/minhasfinancas-api/internal/core"
)

// UserService resolves and registers the users that own ledger entries.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Authenticate looks the user up by email and compares the stored password
// with the supplied one, exact and case-sensitive. Unknown email and wrong
// password return distinct errors on purpose.
//
// The plain-equality comparison is carried over from the system this service
// replaced. It is a known deficiency, kept so behavior stays byte-compatible.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (core.User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return core.User{}, fmt.Errorf("find user by email: %w", err)
	}
	if u == nil {
		return core.User{}, core.ErrUserNotFound
	}
	if u.Password != password {
		return core.User{}, core.ErrInvalidPassword
	}
	return *u, nil
}

// Register persists a new user after checking that the email is not taken.
func (s *UserService) Register(ctx context.Context, u core.User) (core.User, error) {
	taken, err := s.repo.ExistsByEmail(ctx, u.Email)
	if err != nil {
		return core.User{}, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return core.User{}, core.ErrEmailTaken
	}

	saved, err := s.repo.Insert(ctx, u)
	if err != nil {
		return core.User{}, fmt.Errorf("insert user: %w", err)
	}

	slog.InfoContext(ctx, "user registered", "id", saved.ID, "email", saved.Email)
	return saved, nil
}

// FindByID returns (nil, nil) when the user does not exist.
func (s *UserService) FindByID(ctx context.Context, id int64) (*core.User, error) {
	return s.repo.FindByID(ctx, id)
}
