package http

import (
	"errors"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/oshokin/http-pprint/internal/config"
	"github.com/oshokin/http-pprint/internal/logger"
	"github.com/oshokin/http-pprint/internal/pprint"
	"github.com/oshokin/http-pprint/internal/utils"
)

// LogTransport is a custom http.RoundTripper that logs HTTP requests and responses.
// It wraps another http.RoundTripper and logs debug information for each request/response cycle,
// rendered the same way the exchange is printed.
type LogTransport struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// maxLogLength is the maximum length of logged request/response data.
	maxLogLength uint64
}

// Static error definitions for better error handling.
var (
	// ErrNilRequest indicates that the HTTP request is nil.
	ErrNilRequest = errors.New("request is nil")
)

const (
	// truncatedSuffix marks a dump cut at maxLogLength.
	truncatedSuffix = "... [truncated]"
	// bodyNotLogged stands in for a response body that is left unread.
	bodyNotLogged = "[BODY NOT LOGGED]"
)

// NewLogTransport creates and returns a new instance of LogTransport.
// If maxLogLength is 0, it defaults to config.DefaultMaxLogLength.
func NewLogTransport(next http.RoundTripper, maxLogLength uint64) http.RoundTripper {
	if maxLogLength == 0 {
		maxLogLength = config.DefaultMaxLogLength
	}

	return &LogTransport{
		next:         next,
		maxLogLength: maxLogLength,
	}
}

// RoundTrip executes a single HTTP transaction and logs the request and response.
// It implements the http.RoundTripper interface.
func (t *LogTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	// Skip logging if the logger is not at debug level.
	if !logger.IsDebugLevel() {
		return t.next.RoundTrip(req)
	}

	var (
		ctx         = req.Context()
		exchangeID  = uuid.NewString()
		requestDump = t.dumpRequest(req)
	)

	// Record the start time to measure the duration of the request.
	startTime := time.Now()

	// Forward the request to the underlying RoundTripper.
	resp, err := t.next.RoundTrip(req)

	// Calculate the duration of the request.
	duration := time.Since(startTime)

	if err != nil {
		logger.DebugKV(ctx, "Request failed",
			"exchange_id", exchangeID,
			"method", req.Method,
			"url", req.URL.String(),
			"duration", duration,
			"error", err)

		return nil, err
	}

	logger.DebugKV(ctx, "Exchange completed",
		"exchange_id", exchangeID,
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"duration", duration,
		"request", requestDump,
		"response", t.dumpResponse(resp))

	return resp, nil
}

func (t *LogTransport) dumpRequest(req *http.Request) string {
	converted, err := pprint.FromHTTPRequest(req)
	if err != nil {
		return err.Error()
	}

	return t.truncate(pprint.FormatRequest(converted).String())
}

// dumpResponse renders the response. The body is only included when it is text
// and its declared length fits the log, so streamed and binary bodies stay unread.
func (t *LogTransport) dumpResponse(resp *http.Response) string {
	if t.shouldDumpBody(resp) {
		converted, err := pprint.FromHTTPResponse(resp)
		if err != nil {
			return err.Error()
		}

		return t.truncate(pprint.FormatResponse(converted).String())
	}

	head, err := pprint.ResponseHead(resp)
	if err != nil {
		return err.Error()
	}

	var body string
	if resp.ContentLength != 0 {
		body = bodyNotLogged
		if resp.ContentLength > 0 {
			body += " (" + humanize.Bytes(uint64(resp.ContentLength)) + ")"
		}
	}

	message := pprint.FormatHTTPMessage(pprint.StartMarker, pprint.StatusLine(head),
		pprint.FormatHeaders(head.Header), body, pprint.EndMarker)

	return t.truncate(message.String())
}

func (t *LogTransport) shouldDumpBody(resp *http.Response) bool {
	if resp.ContentLength < 0 || uint64(resp.ContentLength) > t.maxLogLength {
		return false
	}

	return utils.IsTextContentType(resp.Header.Get(contentTypeHeader))
}

func (t *LogTransport) truncate(data string) string {
	if uint64(len(data)) > t.maxLogLength {
		cut := int(t.maxLogLength) //nolint:gosec // Bounded by len(data) above.
		for cut > 0 && !utf8.RuneStart(data[cut]) {
			cut--
		}

		return data[:cut] + truncatedSuffix
	}

	return data
}
