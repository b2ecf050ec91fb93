package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Users reads and writes user records.
type Users struct {
	db *bun.DB
}

// NewUsers returns a user store backed by the given database.
func NewUsers(db *bun.DB) *Users {
	return &Users{db: db}
}

// GetByID returns the user with the given id, or nil when no such user
// exists.
func (s *Users) GetByID(ctx context.Context, id int64) (*User, error) {
	user := &User{}
	err := s.db.NewSelect().Model(user).Where("usr.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to query user by id")
	}
	return user, nil
}

// GetByUsername returns the user with the given username, or nil when no
// such user exists.
func (s *Users) GetByUsername(ctx context.Context, username string) (*User, error) {
	user := &User{}
	err := s.db.NewSelect().Model(user).Where("usr.username = ?", username).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to query user by username")
	}
	return user, nil
}

// GetByEmail returns the user with the given email, or nil when no such
// user exists.
func (s *Users) GetByEmail(ctx context.Context, email string) (*User, error) {
	user := &User{}
	err := s.db.NewSelect().Model(user).Where("usr.email = ?", email).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to query user by email")
	}
	return user, nil
}

// Create inserts a new user record.
func (s *Users) Create(ctx context.Context, user *User) (*User, error) {
	if user.TimeCreated.IsZero() {
		user.TimeCreated = time.Now()
	}
	if _, err := s.db.NewInsert().Model(user).Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryConflict, "could not create user")
	}
	return user, nil
}

// EmailIsTaken reports whether any user already registered the email.
func (s *Users) EmailIsTaken(ctx context.Context, email string) (bool, error) {
	taken, err := s.db.NewSelect().Model((*User)(nil)).Where("email = ?", email).Exists(ctx)
	if err != nil {
		return false, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check email uniqueness")
	}
	return taken, nil
}

// UsernameIsTaken reports whether any user already registered the username.
func (s *Users) UsernameIsTaken(ctx context.Context, username string) (bool, error) {
	taken, err := s.db.NewSelect().Model((*User)(nil)).Where("username = ?", username).Exists(ctx)
	if err != nil {
		return false, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check username uniqueness")
	}
	return taken, nil
}

// EmailConfirm flips the verification flag for the user.
func (s *Users) EmailConfirm(ctx context.Context, user *User) error {
	user.IsVerified = true
	_, err := s.db.NewUpdate().Model(user).Column("is_verified").WherePK().Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to confirm user email")
	}
	return nil
}

// TrackOnline persists a fresh last-online timestamp for the user.
func (s *Users) TrackOnline(ctx context.Context, user *User) error {
	now := time.Now()
	user.TimeOnline = &now
	_, err := s.db.NewUpdate().Model(user).Column("time_online").WherePK().Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update user online time")
	}
	return nil
}

// Count returns the total number of users.
func (s *Users) Count(ctx context.Context) (int, error) {
	count, err := s.db.NewSelect().Model((*User)(nil)).Count(ctx)
	if err != nil {
		return 0, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to count users")
	}
	return count, nil
}
