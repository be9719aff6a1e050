package pprint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// AsyncResponse is a response whose body has not been read yet.
// Content, Text and JSON retrieve the body on first use and honor context cancellation;
// the body is read once and kept. It is not safe for concurrent use.
type AsyncResponse struct {
	// StatusCode is the numeric status, e.g. 200.
	StatusCode int
	// Reason is the reason phrase, e.g. OK.
	Reason string
	// Version encodes the protocol version as major*10+minor; zero when unknown.
	Version int
	// Header holds the response header fields.
	Header *Headers
	// Request is the request that produced this response.
	Request *Request
	// History holds the responses of earlier redirect hops, oldest first.
	History []*AsyncResponse

	head     *http.Response
	body     io.ReadCloser
	consumed bool
	content  []byte
	err      error
}

// NewAsyncResponse wraps resp without reading its body.
// history holds the responses of earlier redirect hops, oldest first.
func NewAsyncResponse(resp *http.Response, history []*http.Response) (*AsyncResponse, error) {
	if resp == nil {
		return nil, ErrNilResponse
	}

	r := &AsyncResponse{
		StatusCode: resp.StatusCode,
		Reason:     reasonPhrase(resp),
		Version:    protocolVersion(resp),
		Header:     HeadersFromHTTP(resp.Header),
		Request:    originatingRequest(resp.Request),
		head:       resp,
		body:       resp.Body,
	}

	for _, hop := range history {
		asyncHop, err := NewAsyncResponse(hop, nil)
		if err != nil {
			return nil, err
		}

		r.History = append(r.History, asyncHop)
	}

	return r, nil
}

// Redirected reports whether the response is the end of a redirect chain.
func (r *AsyncResponse) Redirected() bool {
	return len(r.History) > 0
}

// Content waits for the raw body.
// A cancelled context aborts the retrieval and is returned as an error.
func (r *AsyncResponse) Content(ctx context.Context) ([]byte, error) {
	if r.consumed {
		return r.content, r.err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	r.consumed = true

	if r.body == nil || r.body == http.NoBody {
		return nil, nil
	}

	defer r.body.Close() //nolint:errcheck // The body is fully read or abandoned here.

	// Closing the body unblocks a read that is waiting on a stalled peer.
	stop := context.AfterFunc(ctx, func() {
		_ = r.body.Close()
	})
	defer stop()

	content, err := io.ReadAll(&contextReader{ctx: ctx, r: r.body})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}

		r.err = fmt.Errorf("failed to read response body: %w", err)

		return nil, r.err
	}

	r.content = content

	return content, nil
}

// Close releases bodies that were never retrieved, history included.
func (r *AsyncResponse) Close() error {
	var errs []error

	for _, hop := range r.History {
		errs = append(errs, hop.Close())
	}

	if !r.consumed && r.body != nil {
		r.consumed = true
		r.err = ErrBodyAlreadyConsumed

		errs = append(errs, r.body.Close())
	}

	return errors.Join(errs...)
}

// Text waits for the body and decodes it with the declared or detected charset.
func (r *AsyncResponse) Text(ctx context.Context) (string, error) {
	content, err := r.Content(ctx)
	if err != nil {
		return "", err
	}

	text, _ := detectText(content, r.Header.Get(contentTypeHeader))

	return text, nil
}

// JSON waits for the body and returns it when it is valid JSON.
func (r *AsyncResponse) JSON(ctx context.Context) (json.RawMessage, error) {
	content, err := r.Content(ctx)
	if err != nil {
		return nil, err
	}

	if !json.Valid(content) {
		return nil, ErrInvalidJSON
	}

	return json.RawMessage(content), nil
}

// Buffer waits for the body and returns an equivalent buffered Response, history included.
func (r *AsyncResponse) Buffer(ctx context.Context) (*Response, error) {
	buffered, err := r.buffer(ctx)
	if err != nil {
		return nil, err
	}

	for _, hop := range r.History {
		bufferedHop, hopErr := hop.buffer(ctx)
		if hopErr != nil {
			return nil, hopErr
		}

		buffered.History = append(buffered.History, bufferedHop)
	}

	return buffered, nil
}

func (r *AsyncResponse) buffer(ctx context.Context) (*Response, error) {
	content, err := r.Content(ctx)
	if err != nil {
		return nil, err
	}

	buffered := newResponse(r.head, content)
	buffered.Request = r.Request

	return buffered, nil
}

// PrintResponseContext waits for the body of resp and prints it.
func (p *Printer) PrintResponseContext(ctx context.Context, resp *AsyncResponse) error {
	if resp == nil {
		return ErrNilResponse
	}

	buffered, err := resp.buffer(ctx)
	if err != nil {
		return err
	}

	return p.PrintResponse(buffered)
}

// PrintResponseSummaryContext is the cooperative counterpart of PrintResponseSummary.
// Only the bodies that are printed, the final one and the first hop's, are retrieved.
func (p *Printer) PrintResponseSummaryContext(ctx context.Context, resp *AsyncResponse) error {
	if resp == nil {
		return ErrNilResponse
	}

	buffered, err := resp.buffer(ctx)
	if err != nil {
		return err
	}

	if resp.Redirected() {
		original, originalErr := resp.History[0].buffer(ctx)
		if originalErr != nil {
			return originalErr
		}

		buffered.History = []*Response{original}
	}

	return p.PrintResponseSummary(buffered)
}

// contextReader stops reading once its context is done.
type contextReader struct {
	ctx context.Context //nolint:containedctx // The reader lives only for one retrieval.
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}

	return c.r.Read(p)
}
