package auth

import "strings"

// Transport locations tokens are read from.
const (
	// HeaderAuthorization is the preferred access token location.
	HeaderAuthorization = "Authorization"
	// QueryAccessToken is the fallback access token location.
	QueryAccessToken = "access_token"
	// QuerySessionToken is the only location session tokens are read from.
	QuerySessionToken = "session_token"

	authScheme = "Bearer"
)

// Request is the slice of an incoming HTTP request the resolver needs.
// Framework adapters (see the rest package) map their context onto it.
type Request interface {
	Header(name string) string
	Query(name string) string
	IP() string
	UserAgent() string
}

// ClientSignal is the originating device fingerprint of a request,
// compared against the fingerprint recorded on the session.
type ClientSignal struct {
	IP        string
	UserAgent string
}

// SignalFromRequest captures the client fingerprint of a request.
func SignalFromRequest(req Request) ClientSignal {
	return ClientSignal{IP: req.IP(), UserAgent: req.UserAgent()}
}

// ExtractToken pulls the raw token string from its transport location.
// Access tokens prefer the Authorization header (bearer scheme optional)
// over the access_token query parameter; session tokens are read from the
// session_token query parameter only.
func ExtractToken(req Request, onlySessionToken bool) string {
	if onlySessionToken {
		return req.Query(QuerySessionToken)
	}

	if header := req.Header(HeaderAuthorization); header != "" {
		return strings.TrimSpace(strings.TrimPrefix(header, authScheme+" "))
	}
	return req.Query(QueryAccessToken)
}
