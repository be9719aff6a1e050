package pprint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

// FromHTTPRequest converts a net/http request.
// The body is read through GetBody when possible, so the request can still be sent;
// otherwise it is read and replaced with an equivalent reader.
func FromHTTPRequest(req *http.Request) (*Request, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	r := requestHead(req)

	body, err := readRequestBody(req)
	if err != nil {
		return nil, err
	}

	r.Body = body

	return r, nil
}

// FromHTTPResponse converts a net/http response, buffering its body.
// The body of resp is replaced with an equivalent reader so it can still be consumed.
func FromHTTPResponse(resp *http.Response) (*Response, error) {
	if resp == nil {
		return nil, ErrNilResponse
	}

	var content []byte

	if resp.Body != nil && resp.Body != http.NoBody {
		var err error

		content, err = io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}

		resp.Body = io.NopCloser(bytes.NewReader(content))
	}

	return newResponse(resp, content), nil
}

// newResponse builds a buffered Response from the head of resp and its content.
func newResponse(resp *http.Response, content []byte) *Response {
	header := HeadersFromHTTP(resp.Header)
	text, charsetName := detectText(content, header.Get(contentTypeHeader))

	r := &Response{
		StatusCode: resp.StatusCode,
		Reason:     reasonPhrase(resp),
		Version:    protocolVersion(resp),
		Header:     header,
		Content:    content,
		Text:       text,
		Encoding:   charsetName,
		Request:    originatingRequest(resp.Request),
	}

	if json.Valid(content) {
		r.JSON = json.RawMessage(content)
	}

	return r
}

// originatingRequest converts the request that produced a response.
// A request whose body was consumed while it was sent is kept without its body.
func originatingRequest(req *http.Request) *Request {
	if req == nil {
		return nil
	}

	r := requestHead(req)

	if body, err := readRequestBody(req); err == nil {
		r.Body = body
	}

	return r
}

// requestHead converts everything but the body.
// Relative URLs, as seen by servers, are kept in PathURL and the Host field carries the authority.
func requestHead(req *http.Request) *Request {
	r := &Request{
		Method: req.Method,
		Header: HeadersFromHTTP(req.Header),
	}

	if r.Method == "" {
		r.Method = http.MethodGet
	}

	var urlHost string

	if req.URL != nil {
		urlHost = req.URL.Host

		if req.URL.IsAbs() {
			r.URL = req.URL.String()
		} else {
			r.PathURL = req.URL.RequestURI()
		}
	}

	if req.Host != "" && req.Host != urlHost {
		r.Header.Set(hostHeader, req.Host)
	}

	return r
}

func readRequestBody(req *http.Request) ([]byte, error) {
	if req.GetBody != nil {
		rc, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("failed to get request body: %w", err)
		}

		defer rc.Close() //nolint:errcheck // Closing an in-memory copy cannot fail meaningfully.

		body, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}

		return body, nil
	}

	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBodyAlreadyConsumed, err)
	}

	_ = req.Body.Close()
	req.Body = io.NopCloser(bytes.NewReader(body))

	return body, nil
}

// ResponseHead converts the status line and headers of resp. The body is left unread.
func ResponseHead(resp *http.Response) (*Response, error) {
	if resp == nil {
		return nil, ErrNilResponse
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Reason:     reasonPhrase(resp),
		Version:    protocolVersion(resp),
		Header:     HeadersFromHTTP(resp.Header),
	}, nil
}

// reasonPhrase extracts the reason from a status such as "200 OK".
func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}

	return reason
}

// protocolVersion encodes the protocol as major*10+minor; zero when unknown.
func protocolVersion(resp *http.Response) int {
	if resp.ProtoMajor <= 0 {
		return 0
	}

	return resp.ProtoMajor*10 + resp.ProtoMinor
}

// detectText decodes content with the charset declared in contentType,
// or the one detected from the content itself, and returns the charset name.
func detectText(content []byte, contentType string) (string, string) {
	if len(content) == 0 {
		return "", ""
	}

	enc, name, _ := charset.DetermineEncoding(content, contentType)

	decoded, err := enc.NewDecoder().Bytes(content)
	if err != nil {
		return "", name
	}

	return string(decoded), name
}
