// Package pprint renders HTTP requests and responses as human-readable,
// wire-like text for console inspection.
//
// It works on a small client-side object model (Request, Response, Headers)
// that can be built from net/http values. Bodies are decoded according to
// their content type: JSON and XML are re-indented, binary content is
// replaced with a placeholder and everything else is decoded as text with
// replacement characters for invalid bytes. Decoding never fails.
//
// Two modes are supported. In blocking mode the response body is already
// buffered. In cooperative mode an AsyncResponse retrieves its body lazily
// and every retrieval honors context cancellation.
package pprint
