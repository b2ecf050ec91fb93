package auth

import (
	"github.com/Shikharishere/api/store"
	"github.com/Shikharishere/api/tokens"
)

// IssueAccessToken mints an access token for the session, signed with the
// session secret.
func IssueAccessToken(cfg Config, session *store.UserSession, scope string) (string, error) {
	cfg = cfg.withDefaults()
	token := tokens.NewAccess(cfg.Issuer, cfg.AccessTokenTTL, session.OwnerID, session.ID, scope)
	return token.Sign([]byte(session.TokenSecret))
}

// IssueSessionToken mints a session token, signed with the session secret.
func IssueSessionToken(cfg Config, session *store.UserSession) (string, error) {
	cfg = cfg.withDefaults()
	token := tokens.NewSession(cfg.Issuer, cfg.SessionTokenTTL, session.OwnerID, session.ID)
	return token.Sign([]byte(session.TokenSecret))
}

// IssueRefreshToken mints a refresh token, signed with the session secret.
func IssueRefreshToken(cfg Config, session *store.UserSession) (string, error) {
	cfg = cfg.withDefaults()
	token := tokens.NewRefresh(cfg.Issuer, cfg.RefreshTokenTTL, session.OwnerID, session.ID)
	return token.Sign([]byte(session.TokenSecret))
}

// IssueOAuthCode mints an OAuth authorization code signed with the
// deployment-wide OAuth code secret.
func IssueOAuthCode(cfg Config, session *store.UserSession, clientID int64, scope, redirectURI string) (string, error) {
	cfg = cfg.withDefaults()
	token := tokens.NewOAuthCode(cfg.Issuer, cfg.OAuthCodeTTL, session.OwnerID, session.ID, clientID, scope, redirectURI)
	return token.Sign([]byte(cfg.OAuthCodeSecret))
}

// IssueEmailToken mints an email-confirmation token signed with the
// deployment-wide email token secret.
func IssueEmailToken(cfg Config, user *store.User) (string, error) {
	cfg = cfg.withDefaults()
	token := tokens.NewEmail(cfg.Issuer, cfg.EmailTokenTTL, user.ID)
	return token.Sign([]byte(cfg.EmailTokenSecret))
}
