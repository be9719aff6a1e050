package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// RequestOptions describes the request sent to every URL.
type RequestOptions struct {
	// Method is the HTTP method. Empty means GET, or POST when Data is set.
	Method string
	// Headers holds "Name: value" lines.
	Headers []string
	// Data is sent as the request body when not empty.
	Data string
}

// defaultScheme is used for URLs given without one.
const defaultScheme = "https://"

// Static error definitions for better error handling.
var (
	// ErrInvalidHeader indicates that a header line is not in "Name: value" form.
	ErrInvalidHeader = errors.New("header must be in 'Name: value' form")
	// ErrInvalidURL indicates that a URL has no host.
	ErrInvalidURL = errors.New("invalid URL")
)

// BuildRequest creates the request sent to rawURL.
func BuildRequest(ctx context.Context, rawURL string, opts RequestOptions) (*http.Request, error) {
	target, err := normalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	method := strings.ToUpper(strings.TrimSpace(opts.Method))
	if method == "" {
		method = http.MethodGet
		if opts.Data != "" {
			method = http.MethodPost
		}
	}

	var body io.Reader = http.NoBody
	if opts.Data != "" {
		body = strings.NewReader(opts.Data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for _, line := range opts.Headers {
		name, value, found := strings.Cut(line, ":")
		name = strings.TrimSpace(name)

		if !found || name == "" {
			return nil, fmt.Errorf("%w: '%s'", ErrInvalidHeader, line)
		}

		value = strings.TrimSpace(value)

		// Go keeps the Host header outside of the header map.
		if strings.EqualFold(name, "Host") {
			req.Host = value

			continue
		}

		req.Header.Add(name, value)
	}

	return req, nil
}

func normalizeURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if !strings.Contains(rawURL, "://") {
		rawURL = defaultScheme + rawURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	if parsed.Host == "" {
		return "", fmt.Errorf("%w: '%s' has no host", ErrInvalidURL, rawURL)
	}

	return parsed.String(), nil
}
