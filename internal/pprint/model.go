package pprint

import "encoding/json"

// Request is a client-side HTTP request as seen by the printer.
type Request struct {
	// Method is the HTTP method, e.g. GET.
	Method string
	// URL is the full target URL. It may be empty.
	URL string
	// PathURL is the request path used when URL is empty.
	PathURL string
	// Header holds the request header fields.
	// Printing injects a missing Host field into it.
	Header *Headers
	// Body is the raw request body; nil means there is no body.
	Body []byte
}

// Response is a fully buffered HTTP response.
type Response struct {
	// StatusCode is the numeric status, e.g. 200.
	StatusCode int
	// Reason is the reason phrase, e.g. OK.
	Reason string
	// Version encodes the protocol version: the tens digit is the major version,
	// the ones digit the minor. Zero means unknown.
	Version int
	// Header holds the response header fields.
	Header *Headers
	// Content is the raw body.
	Content []byte
	// Text is the best-effort decoded body; empty when decoding was not possible.
	Text string
	// JSON is the body when it is valid JSON, nil otherwise.
	JSON json.RawMessage
	// Encoding is the declared or detected charset of the body.
	Encoding string
	// Request is the request that produced this response.
	Request *Request
	// History holds the responses of earlier redirect hops, oldest first.
	History []*Response
}

// ContentType returns the lower-cased Content-Type of the response.
func (r *Response) ContentType() string {
	return contentTypeOf(r.Header)
}

// Redirected reports whether the response is the end of a redirect chain.
func (r *Response) Redirected() bool {
	return len(r.History) > 0
}
