package tokens

import "github.com/goliatone/go-errors"

const (
	// TextCodeTokenInvalid identifies structurally broken tokens.
	TextCodeTokenInvalid = "token_invalid"
	// TextCodeTokenWrongType identifies tokens decoded as the wrong kind.
	TextCodeTokenWrongType = "token_wrong_type"
	// TextCodeTokenExpired identifies tokens past their embedded expiration.
	TextCodeTokenExpired = "token_expired"
	// TextCodeTokenInvalidSignature identifies signature mismatches on
	// strict decode paths.
	TextCodeTokenInvalidSignature = "token_invalid_signature"
)

// ErrTokenInvalid is returned when the token cannot be parsed at all.
var ErrTokenInvalid = errors.New("token is invalid", errors.CategoryAuth).
	WithTextCode(TextCodeTokenInvalid).
	WithCode(errors.CodeUnauthorized)

// ErrTokenWrongType is returned when the `typ` discriminator does not
// match the kind the decoder expected.
var ErrTokenWrongType = errors.New("token has wrong type", errors.CategoryAuth).
	WithTextCode(TextCodeTokenWrongType).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned when the token is past its expiration.
var ErrTokenExpired = errors.New("token has been expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenInvalidSignature is returned by DecodeVerified when the
// recomputed signature does not match the embedded one.
var ErrTokenInvalidSignature = errors.New("token has invalid signature", errors.CategoryAuth).
	WithTextCode(TextCodeTokenInvalidSignature).
	WithCode(errors.CodeUnauthorized)

func wrapParseError(err error) error {
	return errors.Wrap(err, ErrTokenInvalid.Category, ErrTokenInvalid.Message).
		WithTextCode(ErrTokenInvalid.TextCode).
		WithCode(errors.CodeUnauthorized)
}

func wrapSigningError(err error) error {
	return errors.Wrap(err, errors.CategoryInternal, "failed to sign token")
}
