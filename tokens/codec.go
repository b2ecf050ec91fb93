package tokens

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// unsignedParser skips both signature and claim validation: expiry is
// checked by the codec itself so the failure order stays structural →
// type → expiry → signature.
var unsignedParser = jwt.NewParser(
	jwt.WithValidMethods([]string{signingMethod.Alg()}),
	jwt.WithoutClaimsValidation(),
)

// DecodeUnsigned parses a token payload without verifying its signature.
// It is the discovery half of the two-phase decode: the session id it
// exposes is what makes the signing key for Decode discoverable. The
// returned token always reports an invalid signature.
func DecodeUnsigned(raw string, expect Kind) (*Token, error) {
	claims := &Claims{}
	if _, _, err := unsignedParser.ParseUnverified(raw, claims); err != nil {
		return nil, wrapParseError(err)
	}
	return fromClaims(raw, claims, expect)
}

// Decode parses a token and verifies its signature against the given key.
// A signature mismatch is not an error here: the token is returned with
// SignatureIsValid reporting false, and the caller's protocol decides
// whether that is fatal. All other failures are typed errors.
func Decode(raw string, expect Kind, key []byte) (*Token, error) {
	token, err := DecodeUnsigned(raw, expect)
	if err != nil {
		return nil, err
	}

	_, err = unsignedParser.ParseWithClaims(raw, &Claims{}, func(*jwt.Token) (any, error) {
		return key, nil
	})
	switch {
	case err == nil:
		token.signatureValid = true
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		token.signatureValid = false
	default:
		return nil, wrapParseError(err)
	}

	return token, nil
}

// DecodeVerified is the strict variant of Decode: a signature mismatch is
// escalated to ErrTokenInvalidSignature. Used for tokens signed with a
// fixed purpose secret (email confirmation, OAuth codes) where there is no
// unsigned-discovery protocol.
func DecodeVerified(raw string, expect Kind, key []byte) (*Token, error) {
	token, err := Decode(raw, expect, key)
	if err != nil {
		return nil, err
	}
	if !token.signatureValid {
		return nil, ErrTokenInvalidSignature
	}
	return token, nil
}

func fromClaims(raw string, claims *Claims, expect Kind) (*Token, error) {
	if Kind(claims.TokenKind) != expect {
		return nil, ErrTokenWrongType
	}

	if claims.ExpiresAt == nil {
		return nil, ErrTokenInvalid
	}
	if time.Now().After(claims.ExpiresAt.Time) {
		return nil, ErrTokenExpired
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, wrapParseError(err)
	}

	return &Token{
		claims: *claims,
		userID: userID,
		raw:    raw,
	}, nil
}
