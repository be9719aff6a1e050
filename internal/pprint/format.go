package pprint

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/oshokin/http-pprint/internal/sink"
)

const (
	// StartMarker opens every printed message.
	StartMarker = "--------------START--------------"
	// EndMarker closes every printed message.
	EndMarker = "---------------END---------------"
	// DefaultHTTPVersion is shown for requests and for responses without protocol metadata.
	DefaultHTTPVersion = "HTTP/1.1"

	hostHeader        = "Host"
	contentTypeHeader = "Content-Type"
	headerSeparator   = "\r\n"
)

// NormalizeHost adds a Host header derived from the request URL when the header is missing.
// The host is the third '/'-separated segment of the URL, i.e. the authority after "scheme://".
// The request is modified in place.
func NormalizeHost(req *Request) {
	if req.Header == nil {
		req.Header = NewHeaders()
	}

	if req.Header.Has(hostHeader) || req.URL == "" {
		return
	}

	segments := strings.Split(req.URL, "/")
	if len(segments) < 3 || segments[2] == "" {
		return
	}

	req.Header.Set(hostHeader, segments[2])
}

// RequestPath returns the path shown in the request line: the URL without scheme and host,
// the precomputed PathURL when there is no URL, and "/" when both are empty.
func RequestPath(req *Request) string {
	var path string

	switch {
	case req.URL != "":
		path = stripSchemeAndHost(req.URL, req.Header.Get(hostHeader))
	default:
		path = req.PathURL
	}

	if path == "" {
		return "/"
	}

	return path
}

func stripSchemeAndHost(rawURL, host string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		path := u.RequestURI()
		if u.Fragment != "" {
			path += "#" + u.EscapedFragment()
		}

		return path
	}

	if host != "" {
		if i := strings.LastIndex(rawURL, host); i >= 0 {
			return rawURL[i+len(host):]
		}
	}

	return rawURL
}

// RequestLine returns "<METHOD> <path> HTTP/1.1".
func RequestLine(req *Request) string {
	return fmt.Sprintf("%s %s %s", req.Method, RequestPath(req), DefaultHTTPVersion)
}

// HTTPVersion renders a version encoded as major*10+minor.
// Zero means the version is unknown and HTTP/1.1 is assumed.
func HTTPVersion(version int) string {
	if version <= 0 {
		return DefaultHTTPVersion
	}

	return fmt.Sprintf("HTTP/%d.%d", version/10, version%10)
}

// StatusLine returns "HTTP/<major>.<minor> <code> <reason>".
func StatusLine(resp *Response) string {
	return fmt.Sprintf("%s %d %s", HTTPVersion(resp.Version), resp.StatusCode, resp.Reason)
}

// FormatHeaders renders "name: value" lines in insertion order, joined with CRLF.
// Header names are tagged bold.
func FormatHeaders(h *Headers) sink.Text {
	text := make(sink.Text, 0, h.Len()*3)

	for name, value := range h.All() {
		if len(text) > 0 {
			text = text.Append(sink.Plain(headerSeparator))
		}

		text = text.Append(sink.Bold(name), sink.Plain(": "+value))
	}

	return text
}

// FormatHTTPMessage assembles a printable message:
// the start marker, the first line, the header block, a blank line, the body and the end marker.
func FormatHTTPMessage(startMarker, firstLine string, headers sink.Text, body, endMarker string) sink.Text {
	return sink.NewText(sink.Plain(startMarker+"\n"+firstLine+headerSeparator)).
		Concat(headers).
		Append(sink.Plain(headerSeparator + headerSeparator + body + "\n" + endMarker))
}

// FormatRequest renders a request, injecting a missing Host header first.
func FormatRequest(req *Request) sink.Text {
	NormalizeHost(req)

	body := DecodeRequestBody(req.Header.Get(contentTypeHeader), req.Body)

	return FormatHTTPMessage(StartMarker, RequestLine(req), FormatHeaders(req.Header), body.String(), EndMarker)
}

// FormatResponse renders a buffered response.
func FormatResponse(resp *Response) sink.Text {
	body := DecodeContent(resp.ContentType(), resp.Content, resp.Text, resp.JSON, resp.Encoding)

	return FormatHTTPMessage(StartMarker, StatusLine(resp), FormatHeaders(resp.Header), body.String(), EndMarker)
}

func contentTypeOf(h *Headers) string {
	return strings.ToLower(h.Get(contentTypeHeader))
}
