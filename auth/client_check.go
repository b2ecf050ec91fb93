package auth

import (
	"context"

	"github.com/goliatone/go-errors"

	"github.com/Shikharishere/api/store"
)

// FingerprintChecker is the default ClientChecker: it compares the request
// IP and user agent against the values recorded when the session was
// opened.
type FingerprintChecker struct {
	// IgnoreUserAgent relaxes the check to the network address only, for
	// deployments where clients legitimately rotate user agents.
	IgnoreUserAgent bool
}

var _ ClientChecker = (*FingerprintChecker)(nil)

// Check fails with a suspicious-client error when the signal does not
// match the session fingerprint.
func (c *FingerprintChecker) Check(_ context.Context, session *store.UserSession, signal ClientSignal) error {
	if session.ClientIP != "" && signal.IP != "" && session.ClientIP != signal.IP {
		return suspiciousClient("ip")
	}
	if !c.IgnoreUserAgent && session.ClientUserAgent != "" && signal.UserAgent != "" &&
		session.ClientUserAgent != signal.UserAgent {
		return suspiciousClient("user_agent")
	}
	return nil
}

// The mismatched field is reported but the recorded fingerprint is not:
// the error reaches untrusted callers.
func suspiciousClient(field string) error {
	return errors.New(ErrSuspiciousClient.Message, ErrSuspiciousClient.Category).
		WithTextCode(ErrSuspiciousClient.TextCode).
		WithCode(errors.CodeForbidden).
		WithMetadata(map[string]any{"mismatch": field})
}
