package http

import "net/http"

// AuthInjector is a custom http.RoundTripper that authenticates catalog API requests.
// It wraps another http.RoundTripper, sets a bearer Authorization header,
// and appends the market's countryCode query parameter to every request.
type AuthInjector struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// authToken is the bearer token sent with every request.
	authToken string
	// countryCode is the two-letter market code appended as a query parameter.
	countryCode string
}

const (
	// authorizationHeader is the HTTP header name for request authentication.
	authorizationHeader = "Authorization"
	// countryCodeParameter is the query parameter carrying the market code.
	countryCodeParameter = "countryCode"
)

// NewAuthInjector creates and returns a new instance of AuthInjector.
// It takes an underlying http.RoundTripper, the bearer token,
// and the market country code to attach to each request.
func NewAuthInjector(next http.RoundTripper, authToken, countryCode string) http.RoundTripper {
	return &AuthInjector{
		next:        next,
		authToken:   authToken,
		countryCode: countryCode,
	}
}

// RoundTrip executes a single HTTP transaction with authentication attached.
// It implements the http.RoundTripper interface.
func (t *AuthInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(authorizationHeader) == "" {
		req.Header.Set(authorizationHeader, "Bearer "+t.authToken)
	}

	query := req.URL.Query()
	if query.Get(countryCodeParameter) == "" && t.countryCode != "" {
		query.Set(countryCodeParameter, t.countryCode)
		req.URL.RawQuery = query.Encode()
	}

	return t.next.RoundTrip(req)
}
