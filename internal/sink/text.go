package sink

import "strings"

// Style is a semantic text style resolved by a Sink.
type Style uint8

const (
	// StyleNone leaves the text as is.
	StyleNone Style = iota
	// StyleBold emphasizes the text, e.g. header names.
	StyleBold
	// StyleWarning marks text that needs attention, e.g. a redirect notice.
	StyleWarning
	// StyleSuccess marks a positive outcome.
	StyleSuccess
)

// Segment is a run of text sharing one style.
type Segment struct {
	// Text is the raw text of the segment.
	Text string
	// Style is the semantic style applied to Text.
	Style Style
}

// Text is a sequence of styled segments.
type Text []Segment

// Plain returns an unstyled segment.
func Plain(s string) Segment {
	return Segment{Text: s}
}

// Bold returns a bold segment.
func Bold(s string) Segment {
	return Segment{Text: s, Style: StyleBold}
}

// Warning returns a warning segment.
func Warning(s string) Segment {
	return Segment{Text: s, Style: StyleWarning}
}

// Success returns a success segment.
func Success(s string) Segment {
	return Segment{Text: s, Style: StyleSuccess}
}

// NewText builds a Text from segments.
func NewText(segments ...Segment) Text {
	return Text(segments)
}

// Append returns t extended with more segments.
func (t Text) Append(segments ...Segment) Text {
	return append(t, segments...)
}

// Concat returns t extended with all segments of other.
func (t Text) Concat(other Text) Text {
	return append(t, other...)
}

// String renders the text without any styling.
func (t Text) String() string {
	var sb strings.Builder

	for _, segment := range t {
		sb.WriteString(segment.Text)
	}

	return sb.String()
}
