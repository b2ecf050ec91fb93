package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Shikharishere/api/auth"
	"github.com/Shikharishere/api/store"
)

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name        string
		headers     map[string]string
		query       map[string]string
		sessionMode bool
		want        string
	}{
		{
			name:    "bearer header",
			headers: map[string]string{auth.HeaderAuthorization: "Bearer abc.def.ghi"},
			want:    "abc.def.ghi",
		},
		{
			name:    "bare header without scheme",
			headers: map[string]string{auth.HeaderAuthorization: "abc.def.ghi"},
			want:    "abc.def.ghi",
		},
		{
			name:    "header wins over query",
			headers: map[string]string{auth.HeaderAuthorization: "Bearer from-header"},
			query:   map[string]string{auth.QueryAccessToken: "from-query"},
			want:    "from-header",
		},
		{
			name:  "query fallback",
			query: map[string]string{auth.QueryAccessToken: "from-query"},
			want:  "from-query",
		},
		{
			name: "nothing present",
			want: "",
		},
		{
			name:        "session mode ignores header and access_token",
			headers:     map[string]string{auth.HeaderAuthorization: "Bearer from-header"},
			query:       map[string]string{auth.QueryAccessToken: "from-query", auth.QuerySessionToken: "from-session"},
			sessionMode: true,
			want:        "from-session",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &fakeRequest{headers: tt.headers, query: tt.query}
			assert.Equal(t, tt.want, auth.ExtractToken(req, tt.sessionMode))
		})
	}
}

func TestSignalFromRequest(t *testing.T) {
	req := &fakeRequest{ip: "10.0.0.1", userAgent: "test-agent"}
	signal := auth.SignalFromRequest(req)
	assert.Equal(t, auth.ClientSignal{IP: "10.0.0.1", UserAgent: "test-agent"}, signal)
}

func TestAuthContextRoundTrip(t *testing.T) {
	authCtx := &auth.AuthContext{User: &store.User{ID: 1}}

	ctx := auth.WithContext(context.Background(), authCtx)
	got, ok := auth.FromContext(ctx)
	assert.True(t, ok)
	assert.Same(t, authCtx, got)

	_, ok = auth.FromContext(context.Background())
	assert.False(t, ok)
}

func TestFingerprintChecker(t *testing.T) {
	session := &store.UserSession{
		ClientIP:        "10.0.0.1",
		ClientUserAgent: "test-agent",
	}

	t.Run("matching signal passes", func(t *testing.T) {
		checker := &auth.FingerprintChecker{}
		err := checker.Check(context.Background(), session, auth.ClientSignal{IP: "10.0.0.1", UserAgent: "test-agent"})
		assert.NoError(t, err)
	})

	t.Run("ip mismatch", func(t *testing.T) {
		checker := &auth.FingerprintChecker{}
		err := checker.Check(context.Background(), session, auth.ClientSignal{IP: "203.0.113.9", UserAgent: "test-agent"})
		assert.True(t, auth.HasTextCode(err, auth.TextCodeSuspiciousClient))
	})

	t.Run("user agent mismatch", func(t *testing.T) {
		checker := &auth.FingerprintChecker{}
		err := checker.Check(context.Background(), session, auth.ClientSignal{IP: "10.0.0.1", UserAgent: "other-agent"})
		assert.True(t, auth.HasTextCode(err, auth.TextCodeSuspiciousClient))
	})

	t.Run("user agent mismatch ignored when relaxed", func(t *testing.T) {
		checker := &auth.FingerprintChecker{IgnoreUserAgent: true}
		err := checker.Check(context.Background(), session, auth.ClientSignal{IP: "10.0.0.1", UserAgent: "other-agent"})
		assert.NoError(t, err)
	})

	t.Run("empty recorded fingerprint is not enforced", func(t *testing.T) {
		checker := &auth.FingerprintChecker{}
		err := checker.Check(context.Background(), &store.UserSession{}, auth.ClientSignal{IP: "10.0.0.1", UserAgent: "test-agent"})
		assert.NoError(t, err)
	})
}
