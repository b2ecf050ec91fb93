package auth

import "github.com/goliatone/go-errors"

const (
	// TextCodeAuthRequired identifies requests that carried no token.
	TextCodeAuthRequired = "auth_required"
	// TextCodeInvalidToken identifies tokens rejected by the pipeline
	// (closed session, bad signature).
	TextCodeInvalidToken = "auth_invalid_token"
	// TextCodeIntegrityFailure identifies "should never happen" states: a
	// forged token referencing a vanished session or a mismatched owner.
	TextCodeIntegrityFailure = "auth_integrity_failure"
	// TextCodeUserDeactivated identifies authentication by banned users.
	TextCodeUserDeactivated = "user_deactivated"
	// TextCodeInvalidCredentials identifies failed signin attempts.
	TextCodeInvalidCredentials = "auth_invalid_credentials"
	// TextCodeEmailTaken identifies signup with an already registered email.
	TextCodeEmailTaken = "auth_email_taken"
	// TextCodeUsernameTaken identifies signup with a taken username.
	TextCodeUsernameTaken = "auth_username_taken"
	// TextCodeEmailInvalid identifies malformed signup emails.
	TextCodeEmailInvalid = "auth_email_invalid"
	// TextCodeUsernameInvalid identifies signup usernames violating policy.
	TextCodeUsernameInvalid = "auth_username_invalid"
	// TextCodePasswordInvalid identifies signup passwords violating policy.
	TextCodePasswordInvalid = "auth_password_invalid"
	// TextCodeSuspiciousClient identifies requests whose client signal does
	// not match the session fingerprint.
	TextCodeSuspiciousClient = "auth_suspicious_client"
)

// ErrAuthRequired is returned when no token is present on the request.
var ErrAuthRequired = errors.New("authentication required", errors.CategoryAuth).
	WithTextCode(TextCodeAuthRequired).
	WithCode(errors.CodeUnauthorized)

// ErrSessionClosed is returned for tokens bound to a deactivated session.
var ErrSessionClosed = errors.New("token is not usable as session was closed", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidToken).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidSignature is returned when the token signature does not verify
// against the session secret.
var ErrInvalidSignature = errors.New("unable to validate signature of the token", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidToken).
	WithCode(errors.CodeUnauthorized)

// ErrIntegrityFailure signals a tampered or impossible internal state. It
// is reported distinctly from ordinary auth errors so operators can alert
// on it; the resolver logs every occurrence at error level.
var ErrIntegrityFailure = errors.New("authentication system integrity check failed", errors.CategoryInternal).
	WithTextCode(TextCodeIntegrityFailure).
	WithCode(errors.CodeInternal)

// ErrUserDeactivated is returned when a deactivated user authenticates
// against a method that does not allow deactivated users.
var ErrUserDeactivated = errors.New("user account is deactivated", errors.CategoryAuth).
	WithTextCode(TextCodeUserDeactivated).
	WithCode(errors.CodeForbidden)

// ErrInvalidCredentials is returned for signin with an unknown user or a
// wrong password. The two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials for authentication", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrEmailTaken is returned when the signup email is already registered.
var ErrEmailTaken = errors.New("given email is already taken", errors.CategoryValidation).
	WithTextCode(TextCodeEmailTaken).
	WithCode(errors.CodeConflict)

// ErrUsernameTaken is returned when the signup username is already taken.
var ErrUsernameTaken = errors.New("given username is already taken", errors.CategoryValidation).
	WithTextCode(TextCodeUsernameTaken).
	WithCode(errors.CodeConflict)

// ErrEmailInvalid is returned when the signup email fails the format check.
var ErrEmailInvalid = errors.New("email is invalid", errors.CategoryValidation).
	WithTextCode(TextCodeEmailInvalid).
	WithCode(errors.CodeBadRequest)

// ErrSuspiciousClient is returned when the request comes from a device
// different from the one that opened the session.
var ErrSuspiciousClient = errors.New("request device does not match session client", errors.CategoryAuth).
	WithTextCode(TextCodeSuspiciousClient).
	WithCode(errors.CodeForbidden)

func usernameInvalid(message string) *errors.Error {
	return errors.New(message, errors.CategoryValidation).
		WithTextCode(TextCodeUsernameInvalid).
		WithCode(errors.CodeBadRequest)
}

func passwordInvalid(message string) *errors.Error {
	return errors.New(message, errors.CategoryValidation).
		WithTextCode(TextCodePasswordInvalid).
		WithCode(errors.CodeBadRequest)
}

// HasTextCode reports whether err is a rich error carrying the given
// stable text code. Callers match on text codes instead of error identity
// because pipeline errors may be cloned with extra metadata.
func HasTextCode(err error, textCode string) bool {
	var rich *errors.Error
	if errors.As(err, &rich) {
		return rich.TextCode == textCode
	}
	return false
}
