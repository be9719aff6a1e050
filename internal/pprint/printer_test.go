package pprint

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/http-pprint/internal/sink"
	mock_sink "github.com/oshokin/http-pprint/internal/sink/mocks"
)

func sampleRequest() *Request {
	return &Request{
		Method: "GET",
		URL:    "https://example.com",
		Header: NewHeaders("User-Agent", "Mozilla/5.0"),
		Body:   []byte(`{"key": "value"}`),
	}
}

func sampleResponse() *Response {
	return &Response{
		StatusCode: 200,
		Reason:     "OK",
		Header:     NewHeaders("Content-Type", "application/json"),
		Content:    []byte(`{"status": "success"}`),
		JSON:       []byte(`{"status": "success"}`),
		Request:    sampleRequest(),
	}
}

func newBufferPrinter() (*Printer, *bytes.Buffer) {
	var buf bytes.Buffer

	return NewPrinter(sink.NewPlainSink(&buf)), &buf
}

// TestPrinter_PrintRequest tests printing a request.
func TestPrinter_PrintRequest(t *testing.T) {
	t.Parallel()

	printer, buf := newBufferPrinter()

	require.NoError(t, printer.PrintRequest(sampleRequest()))

	out := buf.String()
	assert.Contains(t, out, StartMarker)
	assert.Contains(t, out, "GET / HTTP/1.1")
	assert.Contains(t, out, "User-Agent: Mozilla/5.0")
	assert.Contains(t, out, "Host: example.com")
	assert.Contains(t, out, `{"key": "value"}`)
	assert.Contains(t, out, EndMarker)
}

// TestPrinter_PrintRequest_MissingHost tests Host injection and path derivation.
func TestPrinter_PrintRequest_MissingHost(t *testing.T) {
	t.Parallel()

	printer, buf := newBufferPrinter()

	req := sampleRequest()
	req.Header.Del("User-Agent")
	req.URL = "https://mytest.com/path"

	require.NoError(t, printer.PrintRequest(req))

	assert.Contains(t, buf.String(), "Host: mytest.com")
	assert.Contains(t, buf.String(), "GET /path HTTP/1.1")
}

// TestPrinter_PrintRequest_BinaryBody tests the placeholder for binary request bodies.
func TestPrinter_PrintRequest_BinaryBody(t *testing.T) {
	t.Parallel()

	printer, buf := newBufferPrinter()

	req := sampleRequest()
	req.Header.Set("Content-Type", "application/pdf")
	req.Body = []byte("%PDF-1.4...")

	require.NoError(t, printer.PrintRequest(req))

	assert.Contains(t, buf.String(), BinaryPlaceholder)
	assert.NotContains(t, buf.String(), "%PDF")
}

// TestPrinter_NilInputs tests that nil inputs print nothing and report an error.
func TestPrinter_NilInputs(t *testing.T) {
	t.Parallel()

	printer, buf := newBufferPrinter()

	require.ErrorIs(t, printer.PrintRequest(nil), ErrNilRequest)
	require.ErrorIs(t, printer.PrintResponse(nil), ErrNilResponse)
	require.ErrorIs(t, printer.PrintResponseSummary(nil), ErrNilResponse)
	assert.Empty(t, buf.String())
}

// TestPrinter_PrintResponse tests printing a response.
func TestPrinter_PrintResponse(t *testing.T) {
	t.Parallel()

	printer, buf := newBufferPrinter()

	require.NoError(t, printer.PrintResponse(sampleResponse()))

	out := buf.String()
	assert.Contains(t, out, "HTTP/1.1 200 OK")
	assert.Contains(t, out, "Content-Type: application/json")
	assert.Contains(t, out, `"status": "success"`)
}

// TestPrinter_PrintResponseSummary_NoRedirect tests the summary of a direct response.
func TestPrinter_PrintResponseSummary_NoRedirect(t *testing.T) {
	t.Parallel()

	printer, buf := newBufferPrinter()

	require.NoError(t, printer.PrintResponseSummary(sampleResponse()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, NotRedirectedNotice+"\n"))
	assert.Equal(t, 2, strings.Count(out, StartMarker))

	for _, label := range []string{
		OriginalRequestLabel, OriginalResponseLabel, RedirectedRequestLabel, RedirectedResponseLabel,
	} {
		assert.NotContains(t, out, label)
	}
}

// TestPrinter_PrintResponseSummary_Redirect tests the order of the blocks of a redirect chain.
func TestPrinter_PrintResponseSummary_Redirect(t *testing.T) {
	t.Parallel()

	printer, buf := newBufferPrinter()

	original := &Response{
		StatusCode: 302,
		Reason:     "Found",
		Header:     NewHeaders("Location", "/get"),
		Request:    &Request{Method: "GET", URL: "https://httpbin.org/redirect/1"},
	}
	final := sampleResponse()
	final.Request.URL = "https://httpbin.org/get"
	final.History = []*Response{original}

	require.NoError(t, printer.PrintResponseSummary(final))

	out := buf.String()
	markers := []string{
		RedirectedNotice,
		OriginalRequestLabel,
		"GET /redirect/1 HTTP/1.1",
		OriginalResponseLabel,
		"HTTP/1.1 302 Found",
		RedirectedRequestLabel,
		"GET /get HTTP/1.1",
		RedirectedResponseLabel,
		"HTTP/1.1 200 OK",
	}

	position := 0
	for _, marker := range markers {
		i := strings.Index(out[position:], marker)
		require.GreaterOrEqual(t, i, 0, "%q should appear after position %d", marker, position)

		position += i + len(marker)
	}

	assert.NotContains(t, out, NotRedirectedNotice)
	assert.Equal(t, 4, strings.Count(out, StartMarker))
}

// TestPrinter_PrintResponseSummary_SkipsIntermediateHops tests that only the first hop is printed.
func TestPrinter_PrintResponseSummary_SkipsIntermediateHops(t *testing.T) {
	t.Parallel()

	printer, buf := newBufferPrinter()

	first := &Response{StatusCode: 301, Reason: "Moved Permanently", Header: NewHeaders()}
	second := &Response{StatusCode: 307, Reason: "Temporary Redirect", Header: NewHeaders()}
	final := sampleResponse()
	final.History = []*Response{first, second}

	require.NoError(t, printer.PrintResponseSummary(final))

	assert.Contains(t, buf.String(), "301 Moved Permanently")
	assert.NotContains(t, buf.String(), "307 Temporary Redirect")
}

// TestPrinter_PrintResponseSummary_SinkCalls tests the exact sequence of sink writes and styles.
func TestPrinter_PrintResponseSummary_SinkCalls(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSink := mock_sink.NewMockSink(ctrl)

	resp := sampleResponse()
	resp.History = []*Response{sampleResponse()}

	label := func(text string) sink.Text { return sink.NewText(sink.Plain(text)) }

	gomock.InOrder(
		mockSink.EXPECT().Print(sink.NewText(sink.Warning(RedirectedNotice))).Return(nil),
		mockSink.EXPECT().Print(label(OriginalRequestLabel)).Return(nil),
		mockSink.EXPECT().Print(gomock.Any()).Return(nil),
		mockSink.EXPECT().Print(label(OriginalResponseLabel)).Return(nil),
		mockSink.EXPECT().Print(gomock.Any()).Return(nil),
		mockSink.EXPECT().Print(label(RedirectedRequestLabel)).Return(nil),
		mockSink.EXPECT().Print(gomock.Any()).Return(nil),
		mockSink.EXPECT().Print(label(RedirectedResponseLabel)).Return(nil),
		mockSink.EXPECT().Print(gomock.Any()).Return(nil),
	)

	require.NoError(t, NewPrinter(mockSink).PrintResponseSummary(resp))
}

// TestPrinter_PrintResponseSummary_SinkError tests that a failing sink stops the summary.
func TestPrinter_PrintResponseSummary_SinkError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	errBroken := errors.New("broken pipe")

	mockSink := mock_sink.NewMockSink(ctrl)
	mockSink.EXPECT().Print(sink.NewText(sink.Success(NotRedirectedNotice))).Return(errBroken).Times(1)

	err := NewPrinter(mockSink).PrintResponseSummary(sampleResponse())
	require.ErrorIs(t, err, errBroken)
}

// TestPrinter_PrintResponseSummary_WithoutRequest tests that a response without a request still prints.
func TestPrinter_PrintResponseSummary_WithoutRequest(t *testing.T) {
	t.Parallel()

	printer, buf := newBufferPrinter()

	resp := sampleResponse()
	resp.Request = nil

	require.NoError(t, printer.PrintResponseSummary(resp))
	assert.Equal(t, 1, strings.Count(buf.String(), StartMarker))
}
