package tokens_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shikharishere/api/tokens"
)

func TestTokenRoundTrip(t *testing.T) {
	key := []byte("my_secret_key")

	token := tokens.NewAccess("me", time.Hour, 1, 2, "email,sessions")
	raw, err := token.Sign(key)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	decoded, err := tokens.Decode(raw, tokens.KindAccess, key)
	require.NoError(t, err)

	assert.True(t, decoded.SignatureIsValid())
	assert.Equal(t, tokens.KindAccess, decoded.Kind())
	assert.Equal(t, "me", decoded.Issuer())
	assert.Equal(t, int64(1), decoded.UserID())
	assert.Equal(t, int64(2), decoded.SessionID())
	assert.Equal(t, "email,sessions", decoded.Scope())
	assert.Equal(t, raw, decoded.Raw())
}

func TestTokenTamperDetection(t *testing.T) {
	raw, err := tokens.NewAccess("me", time.Hour, 1, 2, "").Sign([]byte("my_secret_key"))
	require.NoError(t, err)

	t.Run("wrong key reports invalid signature without failing", func(t *testing.T) {
		decoded, err := tokens.Decode(raw, tokens.KindAccess, []byte("another_key"))
		require.NoError(t, err)

		assert.False(t, decoded.SignatureIsValid())
		assert.Equal(t, int64(1), decoded.UserID())
		assert.Equal(t, int64(2), decoded.SessionID())
	})

	t.Run("unsigned decode exposes routing info without a key", func(t *testing.T) {
		decoded, err := tokens.DecodeUnsigned(raw, tokens.KindAccess)
		require.NoError(t, err)

		assert.False(t, decoded.SignatureIsValid())
		assert.Equal(t, int64(1), decoded.UserID())
		assert.Equal(t, int64(2), decoded.SessionID())
	})

	t.Run("strict decode escalates a signature mismatch", func(t *testing.T) {
		_, err := tokens.DecodeVerified(raw, tokens.KindAccess, []byte("another_key"))
		require.Error(t, err)
		assert.ErrorIs(t, err, tokens.ErrTokenInvalidSignature)
	})

	t.Run("strict decode accepts the right key", func(t *testing.T) {
		decoded, err := tokens.DecodeVerified(raw, tokens.KindAccess, []byte("my_secret_key"))
		require.NoError(t, err)
		assert.True(t, decoded.SignatureIsValid())
	})
}

func TestTokenExpiry(t *testing.T) {
	key := []byte("my_secret_key")

	t.Run("live token decodes", func(t *testing.T) {
		raw, err := tokens.NewSession("me", time.Minute, 1, 2).Sign(key)
		require.NoError(t, err)

		decoded, err := tokens.Decode(raw, tokens.KindSession, key)
		require.NoError(t, err)
		assert.True(t, decoded.SignatureIsValid())
	})

	t.Run("expired token is rejected even unsigned", func(t *testing.T) {
		raw, err := tokens.NewSession("me", -time.Minute, 1, 2).Sign(key)
		require.NoError(t, err)

		_, err = tokens.Decode(raw, tokens.KindSession, key)
		assert.ErrorIs(t, err, tokens.ErrTokenExpired)

		_, err = tokens.DecodeUnsigned(raw, tokens.KindSession)
		assert.ErrorIs(t, err, tokens.ErrTokenExpired)
	})
}

func TestTokenKindMismatch(t *testing.T) {
	key := []byte("my_secret_key")

	raw, err := tokens.NewEmail("me", time.Hour, 1).Sign(key)
	require.NoError(t, err)

	_, err = tokens.Decode(raw, tokens.KindAccess, key)
	assert.ErrorIs(t, err, tokens.ErrTokenWrongType)

	_, err = tokens.DecodeUnsigned(raw, tokens.KindAccess)
	assert.ErrorIs(t, err, tokens.ErrTokenWrongType)
}

func TestTokenStructuralFailures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty string", raw: ""},
		{name: "not a jwt", raw: "garbage"},
		{name: "broken segments", raw: "a.b"},
		{name: "invalid base64 payload", raw: "eyJhbGciOiJIUzI1NiJ9.%%%%.sig"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokens.DecodeUnsigned(tt.raw, tokens.KindAccess)
			require.Error(t, err)
			assert.NotErrorIs(t, err, tokens.ErrTokenExpired)
			assert.NotErrorIs(t, err, tokens.ErrTokenWrongType)
		})
	}
}

func TestOAuthCodeClaims(t *testing.T) {
	key := []byte("oauth_code_secret")

	raw, err := tokens.NewOAuthCode("me", 5*time.Minute, 7, 3, 11, "email", "https://client.example/cb").Sign(key)
	require.NoError(t, err)

	decoded, err := tokens.DecodeVerified(raw, tokens.KindOAuthCode, key)
	require.NoError(t, err)

	assert.Equal(t, int64(7), decoded.UserID())
	assert.Equal(t, int64(3), decoded.SessionID())
	assert.Equal(t, int64(11), decoded.ClientID())
	assert.Equal(t, "email", decoded.Scope())
	assert.Equal(t, "https://client.example/cb", decoded.RedirectURI())
}

func TestDecodedFieldsMatchInput(t *testing.T) {
	key := []byte("my_secret_key")
	token := tokens.NewAccess("issuer", time.Hour, 42, 99, "oauth_clients")

	raw, err := token.Sign(key)
	require.NoError(t, err)

	decoded, err := tokens.Decode(raw, tokens.KindAccess, key)
	require.NoError(t, err)

	assert.Equal(t, token.UserID(), decoded.UserID())
	assert.Equal(t, token.SessionID(), decoded.SessionID())
	assert.Equal(t, token.Scope(), decoded.Scope())
	assert.Equal(t, token.Issuer(), decoded.Issuer())
	assert.WithinDuration(t, token.ExpiresAt(), decoded.ExpiresAt(), time.Second)
	assert.WithinDuration(t, token.IssuedAt(), decoded.IssuedAt(), time.Second)
}
