package pprint

import "errors"

// Static error definitions for better error handling.
var (
	// ErrNilRequest indicates that there is no request to print.
	ErrNilRequest = errors.New("request is nil")
	// ErrNilResponse indicates that there is no response to print.
	ErrNilResponse = errors.New("response is nil")
	// ErrInvalidJSON indicates that a response body is not valid JSON.
	ErrInvalidJSON = errors.New("body is not valid JSON")
	// ErrBodyAlreadyConsumed indicates that a body was read before it could be captured.
	ErrBodyAlreadyConsumed = errors.New("body was already consumed")
)
