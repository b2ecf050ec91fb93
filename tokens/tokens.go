// Package tokens implements the self-contained signed token format used
// across the platform: HS256 JWTs with a `typ` discriminator separating
// access, session, refresh, OAuth authorization code, and
// email-confirmation tokens.
//
// Access and session tokens are signed with a per-session secret that is
// only discoverable through the session id embedded in the payload. The
// codec therefore splits decoding in two phases: DecodeUnsigned parses the
// payload without a key so callers can look the session up, and Decode
// re-parses with the session secret to verify the signature.
package tokens

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Kind discriminates token variants via the `typ` payload claim.
type Kind string

const (
	// KindAccess tokens authorize API calls and carry a scope.
	KindAccess Kind = "access"
	// KindSession tokens identify a login session without any scope.
	KindSession Kind = "session"
	// KindRefresh tokens exchange for fresh access tokens.
	KindRefresh Kind = "refresh"
	// KindOAuthCode tokens are short-lived OAuth authorization codes.
	KindOAuthCode Kind = "oauth_code"
	// KindEmail tokens confirm ownership of an email address.
	KindEmail Kind = "email"
)

var signingMethod = jwt.SigningMethodHS256

// Claims is the wire payload shared by every token kind. Field order is
// fixed by the struct so the serialized payload is deterministic.
type Claims struct {
	jwt.RegisteredClaims
	TokenKind string `json:"typ"`
	SessionID int64  `json:"sid,omitempty"`
	Scope     string `json:"scope,omitempty"`
	ClientID  int64  `json:"cid,omitempty"`
	// RedirectURI pins the OAuth authorization code to the redirect it
	// was issued for.
	RedirectURI string `json:"ruri,omitempty"`
}

// Token is a decoded or freshly constructed token. Tokens are stateless:
// they live in memory only long enough to be encoded or inspected.
type Token struct {
	claims         Claims
	userID         int64
	raw            string
	signatureValid bool
}

func newToken(kind Kind, issuer string, ttl time.Duration, userID int64) *Token {
	now := time.Now()
	return &Token{
		userID: userID,
		claims: Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    issuer,
				Subject:   strconv.FormatInt(userID, 10),
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
				ID:        uuid.NewString(),
			},
			TokenKind: string(kind),
		},
	}
}

// NewAccess constructs an access token bound to a session, carrying the
// given scope.
func NewAccess(issuer string, ttl time.Duration, userID, sessionID int64, scope string) *Token {
	token := newToken(KindAccess, issuer, ttl, userID)
	token.claims.SessionID = sessionID
	token.claims.Scope = scope
	return token
}

// NewSession constructs a session token bound to a session. Session tokens
// carry no scope.
func NewSession(issuer string, ttl time.Duration, userID, sessionID int64) *Token {
	token := newToken(KindSession, issuer, ttl, userID)
	token.claims.SessionID = sessionID
	return token
}

// NewRefresh constructs a refresh token bound to a session.
func NewRefresh(issuer string, ttl time.Duration, userID, sessionID int64) *Token {
	token := newToken(KindRefresh, issuer, ttl, userID)
	token.claims.SessionID = sessionID
	return token
}

// NewOAuthCode constructs an OAuth authorization code for the given client
// and redirect URI, carrying the granted scope.
func NewOAuthCode(issuer string, ttl time.Duration, userID, sessionID, clientID int64, scope, redirectURI string) *Token {
	token := newToken(KindOAuthCode, issuer, ttl, userID)
	token.claims.SessionID = sessionID
	token.claims.ClientID = clientID
	token.claims.Scope = scope
	token.claims.RedirectURI = redirectURI
	return token
}

// NewEmail constructs an email-confirmation token for the given user.
func NewEmail(issuer string, ttl time.Duration, userID int64) *Token {
	return newToken(KindEmail, issuer, ttl, userID)
}

// Sign serializes the token and signs it with the given key.
func (t *Token) Sign(key []byte) (string, error) {
	signed, err := jwt.NewWithClaims(signingMethod, t.claims).SignedString(key)
	if err != nil {
		return "", wrapSigningError(err)
	}
	t.raw = signed
	t.signatureValid = true
	return signed, nil
}

// Kind returns the token variant from the `typ` claim.
func (t *Token) Kind() Kind {
	return Kind(t.claims.TokenKind)
}

// UserID returns the token subject.
func (t *Token) UserID() int64 {
	return t.userID
}

// SessionID returns the id of the session this token is bound to, or zero
// for kinds without session binding.
func (t *Token) SessionID() int64 {
	return t.claims.SessionID
}

// Scope returns the scope string (access and OAuth code tokens only).
func (t *Token) Scope() string {
	return t.claims.Scope
}

// ClientID returns the OAuth client id (OAuth code tokens only).
func (t *Token) ClientID() int64 {
	return t.claims.ClientID
}

// RedirectURI returns the pinned redirect URI (OAuth code tokens only).
func (t *Token) RedirectURI() string {
	return t.claims.RedirectURI
}

// Issuer returns the issuing authority.
func (t *Token) Issuer() string {
	return t.claims.Issuer
}

// IssuedAt returns the issuance timestamp.
func (t *Token) IssuedAt() time.Time {
	if t.claims.IssuedAt == nil {
		return time.Time{}
	}
	return t.claims.IssuedAt.Time
}

// ExpiresAt returns the embedded absolute expiration.
func (t *Token) ExpiresAt() time.Time {
	if t.claims.ExpiresAt == nil {
		return time.Time{}
	}
	return t.claims.ExpiresAt.Time
}

// SignatureIsValid reports whether the embedded signature matched the key
// supplied to Decode. Tokens from DecodeUnsigned always report false.
func (t *Token) SignatureIsValid() bool {
	return t.signatureValid
}

// Raw returns the encoded form the token was decoded from or signed into.
func (t *Token) Raw() string {
	return t.raw
}
