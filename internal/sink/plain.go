package sink

import (
	"fmt"
	"io"
)

// PlainSink writes text without styling.
type PlainSink struct {
	w io.Writer
}

// NewPlainSink creates a PlainSink writing to w.
func NewPlainSink(w io.Writer) *PlainSink {
	return &PlainSink{w: w}
}

// Print writes the plain rendering of text followed by a newline.
func (s *PlainSink) Print(text Text) error {
	if _, err := io.WriteString(s.w, text.String()+"\n"); err != nil {
		return fmt.Errorf("failed to write to sink: %w", err)
	}

	return nil
}
