package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// Chain collects the redirect hops of one exchange, oldest first.
// Hop bodies are buffered so they can be printed after the client has discarded them.
type Chain struct {
	mu   sync.Mutex
	hops []recordedHop
}

type recordedHop struct {
	resp    *http.Response
	content []byte
}

type chainContextKey struct{}

// WithChain returns a context that makes RedirectRecorder record hops into the returned chain.
func WithChain(ctx context.Context) (context.Context, *Chain) {
	chain := new(Chain)

	return context.WithValue(ctx, chainContextKey{}, chain), chain
}

// ChainFromContext returns the chain attached to ctx by WithChain.
func ChainFromContext(ctx context.Context) (*Chain, bool) {
	chain, ok := ctx.Value(chainContextKey{}).(*Chain)

	return chain, ok && chain != nil
}

// Len returns the number of recorded hops.
func (c *Chain) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.hops)
}

// History returns the recorded hops that precede final, oldest first.
// final itself is excluded, which matters when redirects are not followed
// and the last redirect response is the final one.
// Every returned response has a fresh body reader over the buffered content.
func (c *Chain) History(final *http.Response) []*http.Response {
	c.mu.Lock()
	defer c.mu.Unlock()

	history := make([]*http.Response, 0, len(c.hops))

	for _, hop := range c.hops {
		if hop.resp == final {
			continue
		}

		clone := *hop.resp
		clone.Body = io.NopCloser(bytes.NewReader(hop.content))
		history = append(history, &clone)
	}

	return history
}

func (c *Chain) add(resp *http.Response, content []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hops = append(c.hops, recordedHop{resp: resp, content: content})
}

// RedirectRecorder is a custom http.RoundTripper that records redirect responses
// into the Chain found in the request context.
// Requests without a chain pass through untouched.
type RedirectRecorder struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
}

// NewRedirectRecorder creates and returns a new instance of RedirectRecorder.
func NewRedirectRecorder(next http.RoundTripper) http.RoundTripper {
	return &RedirectRecorder{next: next}
}

// RoundTrip executes a single HTTP transaction and records the response when it is a redirect.
// It implements the http.RoundTripper interface.
func (t *RedirectRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	chain, ok := ChainFromContext(req.Context())
	if !ok || !isRedirect(resp) {
		return resp, nil
	}

	content, err := bufferBody(resp)
	if err != nil {
		return nil, err
	}

	if resp.Request == nil {
		resp.Request = req
	}

	chain.add(resp, content)

	return resp, nil
}

// isRedirect reports whether the client would follow resp.
func isRedirect(resp *http.Response) bool {
	switch resp.StatusCode {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return resp.Header.Get(locationHeader) != ""
	default:
		return false
	}
}

// bufferBody reads the whole body of resp and replaces it with an equivalent reader.
func bufferBody(resp *http.Response) ([]byte, error) {
	if resp.Body == nil || resp.Body == http.NoBody {
		return nil, nil
	}

	content, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	if err != nil {
		return nil, fmt.Errorf("failed to read redirect body: %w", err)
	}

	resp.Body = io.NopCloser(bytes.NewReader(content))

	return content, nil
}
