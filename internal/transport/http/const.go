package http

import "time"

const (
	// DefaultTimeout is the default timeout duration for a whole exchange, redirects included.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxRedirects is the number of redirects followed before the exchange fails.
	DefaultMaxRedirects = 10

	// locationHeader is the HTTP header name carrying a redirect target.
	locationHeader = "Location"
	// userAgentHeader is the HTTP header name for User-Agent.
	userAgentHeader = "User-Agent"
	// contentTypeHeader is the HTTP header name for Content-Type.
	contentTypeHeader = "Content-Type"
)
