package client

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/oshokin/http-pprint/internal/config"
	"github.com/oshokin/http-pprint/internal/pprint"
	http_transport "github.com/oshokin/http-pprint/internal/transport/http"
	"github.com/oshokin/http-pprint/internal/utils"
)

// Client defines the interface for executing printable HTTP exchanges.
type Client interface {
	// Do executes req and returns the fully buffered response with its redirect history.
	Do(ctx context.Context, req *http.Request) (*pprint.Response, error)
	// DoAsync executes req and returns the response with its final body left unread.
	DoAsync(ctx context.Context, req *http.Request) (*pprint.AsyncResponse, error)
}

// ClientImpl implements the Client interface on top of net/http.
type ClientImpl struct {
	// httpClient is the HTTP client for making requests.
	httpClient *http.Client
	// showProgress enables the progress bar for cooperative body retrieval.
	showProgress bool
	// progressWriter receives the progress bar.
	progressWriter io.Writer
}

// Option customizes a ClientImpl.
type Option func(c *ClientImpl)

// Static error definitions for better error handling.
var (
	// ErrTooManyRedirects indicates that the redirect limit was reached.
	ErrTooManyRedirects = errors.New("too many redirects")
)

// WithProgressWriter sends the progress bar to w instead of stderr.
func WithProgressWriter(w io.Writer) Option {
	return func(c *ClientImpl) {
		c.progressWriter = w
	}
}

// NewClient creates and returns a new instance of ClientImpl.
// Requests flow through User-Agent injection, debug logging and redirect recording,
// in that order, before reaching the network.
func NewClient(cfg *config.Config, opts ...Option) Client {
	timeout := cfg.ParsedTimeout
	if timeout <= 0 {
		timeout = http_transport.DefaultTimeout
	}

	client := &ClientImpl{
		httpClient: &http.Client{
			Transport: http_transport.NewUserAgentInjector(
				http_transport.NewLogTransport(
					http_transport.NewRedirectRecorder(http.DefaultTransport),
					cfg.ParsedMaxLogLength),
				utils.NewStaticUserAgentProvider(cfg.UserAgent)),
			CheckRedirect: redirectPolicy(cfg.FollowRedirects, cfg.MaxRedirects),
			Timeout:       timeout,
		},
		showProgress:   cfg.ShowProgress,
		progressWriter: os.Stderr,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes req and returns the fully buffered response with its redirect history.
func (c *ClientImpl) Do(ctx context.Context, req *http.Request) (*pprint.Response, error) {
	resp, history, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}

	converted, err := pprint.FromHTTPResponse(resp)
	if err != nil {
		return nil, err
	}

	for _, hop := range history {
		convertedHop, hopErr := pprint.FromHTTPResponse(hop)
		if hopErr != nil {
			return nil, hopErr
		}

		converted.History = append(converted.History, convertedHop)
	}

	return converted, nil
}

// DoAsync executes req and returns the response with its final body left unread.
// The caller retrieves the body through the returned response, which closes it.
func (c *ClientImpl) DoAsync(ctx context.Context, req *http.Request) (*pprint.AsyncResponse, error) {
	resp, history, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}

	if c.showProgress {
		resp.Body = newProgressBody(resp.Body, resp.ContentLength, c.progressWriter)
	}

	converted, err := pprint.NewAsyncResponse(resp, history)
	if err != nil {
		_ = resp.Body.Close()

		return nil, err
	}

	return converted, nil
}

// send executes req and returns the final response with the hops that led to it.
func (c *ClientImpl) send(ctx context.Context, req *http.Request) (*http.Response, []*http.Response, error) {
	if req == nil {
		return nil, nil, pprint.ErrNilRequest
	}

	ctx, chain := http_transport.WithChain(ctx)

	resp, err := c.httpClient.Do(req.WithContext(ctx)) //nolint:bodyclose // The body is handed over to the caller.
	if err != nil {
		return nil, nil, fmt.Errorf("failed to execute request: %w", err)
	}

	return resp, chain.History(resp), nil
}

// redirectPolicy follows up to maxRedirects redirects, or none when follow is false.
func redirectPolicy(follow bool, maxRedirects int) func(req *http.Request, via []*http.Request) error {
	return func(_ *http.Request, via []*http.Request) error {
		if !follow {
			return http.ErrUseLastResponse
		}

		// via holds every request sent so far, so its length is the number of redirects plus one.
		if len(via) > maxRedirects {
			return fmt.Errorf("%w: stopped after %d", ErrTooManyRedirects, maxRedirects)
		}

		return nil
	}
}
