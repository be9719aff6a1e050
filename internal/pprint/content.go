package pprint

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/oshokin/http-pprint/internal/utils"
)

// ContentKind is the rendering strategy chosen for a body.
type ContentKind uint8

const (
	// ContentOther is decoded as text.
	ContentOther ContentKind = iota
	// ContentJSON is re-indented JSON.
	ContentJSON
	// ContentXML is re-indented XML.
	ContentXML
	// ContentBinary is passed through untouched and shown as a placeholder.
	ContentBinary
)

const (
	// BinaryPlaceholder replaces binary bodies in the printed output.
	BinaryPlaceholder = "[BINARY DATA]"

	// jsonIndent is the indentation used for JSON bodies.
	jsonIndent = "  "
	// xmlIndent is the indentation used for XML bodies.
	xmlIndent = "  "
	// replacementChar marks bytes that could not be decoded.
	replacementChar = "\uFFFD"
)

//nolint:gochecknoglobals // Immutable byte sequence used as a constant.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Body is a decoded message body: printable text, or raw bytes for binary content.
type Body struct {
	// Text is the printable body. Empty for binary content.
	Text string
	// Raw holds the untouched bytes of binary content.
	Raw []byte
	// Binary reports whether the body must not be printed as text.
	Binary bool
}

// String returns the text to print: the decoded text or a placeholder with the size of binary content.
func (b Body) String() string {
	if !b.Binary {
		return b.Text
	}

	return fmt.Sprintf("%s (%s)", BinaryPlaceholder, humanize.Bytes(uint64(len(b.Raw))))
}

// String returns the name of the kind.
func (k ContentKind) String() string {
	switch k {
	case ContentJSON:
		return "json"
	case ContentXML:
		return "xml"
	case ContentBinary:
		return "binary"
	default:
		return "other"
	}
}

// ClassifyContentType maps a Content-Type value to a ContentKind.
func ClassifyContentType(contentType string) ContentKind {
	contentType = strings.ToLower(contentType)

	switch {
	case strings.Contains(contentType, "application/json"):
		return ContentJSON
	case strings.Contains(contentType, "application/xml"), strings.Contains(contentType, "text/xml"):
		return ContentXML
	case strings.Contains(contentType, "application/octet-stream"), strings.HasPrefix(contentType, "image/"):
		return ContentBinary
	default:
		return ContentOther
	}
}

// DecodeContent selects how a response body is rendered. The first matching rule wins:
// a UTF-8 byte order mark, then the content kind, then the charset hint, and finally
// the pre-decoded text or a lossy UTF-8 decoding. It never fails.
func DecodeContent(contentType string, content []byte, text string, jsonValue json.RawMessage, charset string) Body {
	if bytes.HasPrefix(content, utf8BOM) {
		return Body{Text: decodeWithoutBOM(content)}
	}

	switch ClassifyContentType(contentType) {
	case ContentJSON:
		return Body{Text: decodeJSON(content, jsonValue)}
	case ContentXML:
		return Body{Text: decodeXML(content)}
	case ContentBinary:
		return Body{Raw: content, Binary: true}
	case ContentOther:
	}

	if charset != "" {
		if decoded, ok := decodeCharset(content, charset); ok {
			return Body{Text: decoded}
		}
	}

	if text != "" {
		return Body{Text: text}
	}

	return Body{Text: decodeLossy(content)}
}

// DecodeRequestBody renders a request body.
// Bodies declared with a non-text content type, or that are not valid UTF-8, become binary.
func DecodeRequestBody(contentType string, body []byte) Body {
	if len(body) == 0 {
		return Body{}
	}

	if contentType != "" && !utils.IsTextContentType(contentType) {
		return Body{Raw: body, Binary: true}
	}

	if !utf8.Valid(body) {
		return Body{Raw: body, Binary: true}
	}

	return Body{Text: string(body)}
}

// decodeWithoutBOM decodes UTF-8 content and strips its byte order mark.
func decodeWithoutBOM(content []byte) string {
	decoded, err := unicode.UTF8BOM.NewDecoder().Bytes(content)
	if err != nil {
		return decodeLossy(bytes.TrimPrefix(content, utf8BOM))
	}

	return string(decoded)
}

// decodeJSON indents an already validated JSON value with two spaces.
func decodeJSON(content []byte, jsonValue json.RawMessage) string {
	if len(jsonValue) == 0 || !json.Valid(jsonValue) {
		return decodeLossy(content)
	}

	indented, err := indentJSON(jsonValue)
	if err != nil {
		return decodeLossy(content)
	}

	return indented
}

// indentJSON re-encodes a JSON document token by token.
// Object keys keep their source order and numbers keep their source text.
// Strings are re-escaped, so non-ASCII characters are written literally.
func indentJSON(content []byte) (string, error) {
	decoder := json.NewDecoder(bytes.NewReader(content))
	decoder.UseNumber()

	w := newJSONWriter()

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return "", fmt.Errorf("failed to read JSON token: %w", err)
		}

		if err = w.write(token); err != nil {
			return "", err
		}
	}

	return w.buf.String(), nil
}

// jsonFrame is an open object or array.
type jsonFrame struct {
	object bool
	// count is the number of members written so far.
	count int
	// expectValue is set between an object key and its value.
	expectValue bool
}

type jsonWriter struct {
	buf     bytes.Buffer
	encoder *json.Encoder
	stack   []jsonFrame
}

func newJSONWriter() *jsonWriter {
	w := &jsonWriter{}

	w.encoder = json.NewEncoder(&w.buf)
	w.encoder.SetEscapeHTML(false)

	return w
}

func (w *jsonWriter) write(token json.Token) error {
	if delim, ok := token.(json.Delim); ok {
		w.writeDelim(delim)

		return nil
	}

	if key, ok := token.(string); ok && w.inObjectKey() {
		w.separate()

		if err := w.writeString(key); err != nil {
			return err
		}

		w.buf.WriteString(": ")
		w.stack[len(w.stack)-1].expectValue = true

		return nil
	}

	w.beginValue()

	switch t := token.(type) {
	case string:
		return w.writeString(t)
	case json.Number:
		w.buf.WriteString(t.String())
	case bool:
		w.buf.WriteString(strconv.FormatBool(t))
	case nil:
		w.buf.WriteString("null")
	default:
		return fmt.Errorf("%w: %T", ErrInvalidJSON, token)
	}

	return nil
}

func (w *jsonWriter) writeDelim(delim json.Delim) {
	switch delim {
	case '{', '[':
		w.beginValue()
		w.buf.WriteRune(rune(delim))
		w.stack = append(w.stack, jsonFrame{object: delim == '{'})
	case '}', ']':
		frame := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]

		if frame.count > 0 {
			w.newline()
		}

		w.buf.WriteRune(rune(delim))
	}
}

func (w *jsonWriter) inObjectKey() bool {
	if len(w.stack) == 0 {
		return false
	}

	frame := w.stack[len(w.stack)-1]

	return frame.object && !frame.expectValue
}

// beginValue places a value: right after its key inside objects, on a new line inside arrays.
func (w *jsonWriter) beginValue() {
	if len(w.stack) == 0 {
		return
	}

	frame := &w.stack[len(w.stack)-1]
	if frame.object {
		frame.expectValue = false

		return
	}

	w.separate()
}

// separate starts a new member of the innermost container.
func (w *jsonWriter) separate() {
	frame := &w.stack[len(w.stack)-1]
	if frame.count > 0 {
		w.buf.WriteByte(',')
	}

	frame.count++

	w.newline()
}

func (w *jsonWriter) newline() {
	w.buf.WriteByte('\n')
	w.buf.WriteString(strings.Repeat(jsonIndent, len(w.stack)))
}

func (w *jsonWriter) writeString(s string) error {
	if err := w.encoder.Encode(s); err != nil {
		return fmt.Errorf("failed to write JSON string: %w", err)
	}

	// Encode terminates every value with a newline.
	w.buf.Truncate(w.buf.Len() - 1)

	return nil
}

// decodeXML re-indents an XML document, falling back to lossy text when it does not parse.
func decodeXML(content []byte) string {
	indented, err := indentXML(content)
	if err != nil {
		return decodeLossy(content)
	}

	return indented
}

// indentXML re-encodes every token of the document with indentation.
// Raw tokens are used so namespace prefixes are written back exactly as they were read.
func indentXML(content []byte) (string, error) {
	var (
		decoder = xml.NewDecoder(bytes.NewReader(content))
		buf     bytes.Buffer
		encoder = xml.NewEncoder(&buf)
	)

	decoder.Strict = true

	encoder.Indent("", xmlIndent)

	for {
		token, err := decoder.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return "", fmt.Errorf("failed to read XML token: %w", err)
		}

		token = flattenXMLToken(token)
		if token == nil {
			continue
		}

		if err = encoder.EncodeToken(token); err != nil {
			return "", fmt.Errorf("failed to write XML token: %w", err)
		}
	}

	// Close reports elements left open at the end of the document.
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("failed to finish XML document: %w", err)
	}

	return buf.String(), nil
}

// flattenXMLToken copies a raw token and folds namespace prefixes into local names.
// Whitespace-only character data is dropped, since the encoder indents on its own.
func flattenXMLToken(token xml.Token) xml.Token {
	switch t := token.(type) {
	case xml.StartElement:
		start := xml.StartElement{Name: flattenXMLName(t.Name), Attr: make([]xml.Attr, 0, len(t.Attr))}
		for _, attr := range t.Attr {
			start.Attr = append(start.Attr, xml.Attr{Name: flattenXMLName(attr.Name), Value: attr.Value})
		}

		return start
	case xml.EndElement:
		return xml.EndElement{Name: flattenXMLName(t.Name)}
	case xml.CharData:
		if len(bytes.TrimSpace(t)) == 0 {
			return nil
		}

		return xml.CharData(bytes.TrimSpace(t))
	default:
		return xml.CopyToken(token)
	}
}

func flattenXMLName(name xml.Name) xml.Name {
	if name.Space == "" {
		return name
	}

	return xml.Name{Local: name.Space + ":" + name.Local}
}

// decodeCharset decodes content with the named charset.
// It reports false for unknown charsets and for bytes that are invalid in that charset.
func decodeCharset(content []byte, charset string) (string, bool) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", false
	}

	if isUTF8(enc) {
		if !utf8.Valid(content) {
			return "", false
		}

		return string(content), true
	}

	decoded, err := enc.NewDecoder().Bytes(content)
	if err != nil {
		return "", false
	}

	// Decoders substitute invalid input instead of failing, so new replacement characters mean failure.
	if bytes.Count(decoded, []byte(replacementChar)) > bytes.Count(content, []byte(replacementChar)) {
		return "", false
	}

	return string(decoded), true
}

func isUTF8(enc encoding.Encoding) bool {
	name, err := htmlindex.Name(enc)

	return err == nil && name == "utf-8"
}

// decodeLossy decodes content as UTF-8, replacing invalid bytes with U+FFFD.
func decodeLossy(content []byte) string {
	decoded, err := unicode.UTF8.NewDecoder().Bytes(content)
	if err != nil {
		return strings.ToValidUTF8(string(content), replacementChar)
	}

	return string(decoded)
}
