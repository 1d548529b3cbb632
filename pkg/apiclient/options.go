package apiclient

import "net/http"

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. The caller is then
// responsible for providing a cookie jar if refresh/logout need the
// HTTP-only session cookie.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithHeaderProvider sets the per-request header source, usually the
// session manager's AuthorizationHeader.
func WithHeaderProvider(fn HeaderProvider) Option {
	return func(c *Client) {
		c.headers = fn
	}
}
