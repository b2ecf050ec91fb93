package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Sessions reads and writes login session records. Sessions are treated as
// immutable once created: closing a session only flips its active flag.
type Sessions struct {
	db *bun.DB
}

// NewSessions returns a session store backed by the given database.
func NewSessions(db *bun.DB) *Sessions {
	return &Sessions{db: db}
}

// Create opens a new session for the owner, minting a fresh per-session
// token secret and recording the client fingerprint.
func (s *Sessions) Create(ctx context.Context, ownerID int64, clientIP, clientUserAgent string) (*UserSession, error) {
	secret, err := newTokenSecret()
	if err != nil {
		return nil, err
	}

	session := &UserSession{
		OwnerID:         ownerID,
		TokenSecret:     secret,
		IsActive:        true,
		ClientIP:        clientIP,
		ClientUserAgent: clientUserAgent,
		TimeCreated:     time.Now(),
	}
	if _, err := s.db.NewInsert().Model(session).Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not create session")
	}
	return session, nil
}

// GetByID returns the session with the given id, or nil when no such
// session exists.
func (s *Sessions) GetByID(ctx context.Context, id int64) (*UserSession, error) {
	session := &UserSession{}
	err := s.db.NewSelect().Model(session).Where("uss.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to query session by id")
	}
	return session, nil
}

// GetLast returns the most recently opened session for the owner, or nil
// when the owner never logged in.
func (s *Sessions) GetLast(ctx context.Context, ownerID int64) (*UserSession, error) {
	session := &UserSession{}
	err := s.db.NewSelect().Model(session).
		Where("uss.owner_id = ?", ownerID).
		Order("id DESC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to query last session")
	}
	return session, nil
}

// Deactivate closes the session. The record itself is kept forever.
func (s *Sessions) Deactivate(ctx context.Context, session *UserSession) error {
	session.IsActive = false
	_, err := s.db.NewUpdate().Model(session).Column("is_active").WherePK().Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to deactivate session")
	}
	return nil
}

// Count returns the total number of sessions ever opened.
func (s *Sessions) Count(ctx context.Context) (int, error) {
	count, err := s.db.NewSelect().Model((*UserSession)(nil)).Count(ctx)
	if err != nil {
		return 0, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to count sessions")
	}
	return count, nil
}

// CountActive returns the number of sessions that are still open.
func (s *Sessions) CountActive(ctx context.Context) (int, error) {
	count, err := s.db.NewSelect().Model((*UserSession)(nil)).Where("is_active = ?", true).Count(ctx)
	if err != nil {
		return 0, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to count active sessions")
	}
	return count, nil
}

// newTokenSecret mints the per-session HMAC key. The secret never leaves
// the store layer except as the signing key handed to the token codec.
func newTokenSecret() (string, error) {
	var secret [32]byte
	if _, err := rand.Read(secret[:]); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to generate session secret")
	}
	return hex.EncodeToString(secret[:]), nil
}
