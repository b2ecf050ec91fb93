package auth

import "time"

// Config carries the secrets, token lifetimes, and signup policy the auth
// core needs. It is threaded explicitly through every entry point; there
// is no package-level settings singleton.
type Config struct {
	// Issuer is stamped into every token this deployment mints.
	Issuer string

	AccessTokenTTL  time.Duration
	SessionTokenTTL time.Duration
	RefreshTokenTTL time.Duration
	OAuthCodeTTL    time.Duration
	EmailTokenTTL   time.Duration

	// EmailTokenSecret signs email-confirmation tokens. Unlike access and
	// session tokens these are keyed per purpose, not per session.
	EmailTokenSecret string
	// OAuthCodeSecret signs OAuth authorization codes.
	OAuthCodeSecret string

	// SignupValidateEmail enables the email format check during signup.
	SignupValidateEmail bool
	// SignupRejectNonAlpha rejects usernames with non-letter characters.
	SignupRejectNonAlpha bool
	// SignupRejectUppercase rejects usernames with uppercase letters.
	SignupRejectUppercase bool
}

// DefaultConfig returns a Config with production-shaped lifetimes and the
// strict signup policy. Secrets must still be supplied by the caller.
func DefaultConfig() Config {
	return Config{
		Issuer:                "api",
		AccessTokenTTL:        72 * time.Hour,
		SessionTokenTTL:       30 * 24 * time.Hour,
		RefreshTokenTTL:       30 * 24 * time.Hour,
		OAuthCodeTTL:          5 * time.Minute,
		EmailTokenTTL:         24 * time.Hour,
		SignupValidateEmail:   true,
		SignupRejectNonAlpha:  true,
		SignupRejectUppercase: true,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Issuer == "" {
		c.Issuer = def.Issuer
	}
	if c.AccessTokenTTL == 0 {
		c.AccessTokenTTL = def.AccessTokenTTL
	}
	if c.SessionTokenTTL == 0 {
		c.SessionTokenTTL = def.SessionTokenTTL
	}
	if c.RefreshTokenTTL == 0 {
		c.RefreshTokenTTL = def.RefreshTokenTTL
	}
	if c.OAuthCodeTTL == 0 {
		c.OAuthCodeTTL = def.OAuthCodeTTL
	}
	if c.EmailTokenTTL == 0 {
		c.EmailTokenTTL = def.EmailTokenTTL
	}
	return c
}
