package auth_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Shikharishere/api/auth"
	"github.com/Shikharishere/api/store"
)

// MockSessionStore implements auth.SessionStore for testing
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) GetByID(ctx context.Context, id int64) (*store.UserSession, error) {
	args := m.Called(ctx, id)
	session, _ := args.Get(0).(*store.UserSession)
	return session, args.Error(1)
}

func (m *MockSessionStore) GetLast(ctx context.Context, ownerID int64) (*store.UserSession, error) {
	args := m.Called(ctx, ownerID)
	session, _ := args.Get(0).(*store.UserSession)
	return session, args.Error(1)
}

func (m *MockSessionStore) Deactivate(ctx context.Context, session *store.UserSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockSessionStore) CountActive(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockUserStore implements auth.UserStore for testing
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*store.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*store.User)
	return user, args.Error(1)
}

func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*store.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*store.User)
	return user, args.Error(1)
}

func (m *MockUserStore) EmailIsTaken(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserStore) UsernameIsTaken(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserStore) EmailConfirm(ctx context.Context, user *store.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) TrackOnline(ctx context.Context, user *store.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// silentLogger keeps test output clean
type silentLogger struct{}

func (silentLogger) Debug(format string, args ...any) {}
func (silentLogger) Info(format string, args ...any)  {}
func (silentLogger) Warn(format string, args ...any)  {}
func (silentLogger) Error(format string, args ...any) {}

// fakeRequest implements auth.Request over plain maps
type fakeRequest struct {
	headers   map[string]string
	query     map[string]string
	ip        string
	userAgent string
}

var _ auth.Request = (*fakeRequest)(nil)

func (r *fakeRequest) Header(name string) string {
	return r.headers[name]
}

func (r *fakeRequest) Query(name string) string {
	return r.query[name]
}

func (r *fakeRequest) IP() string {
	return r.ip
}

func (r *fakeRequest) UserAgent() string {
	return r.userAgent
}
