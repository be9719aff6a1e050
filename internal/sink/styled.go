package sink

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// StyledSink renders semantic styles with lipgloss.
type StyledSink struct {
	w      io.Writer
	styles map[Style]lipgloss.Style
}

// NewStyledSink creates a StyledSink writing to w.
// When forceColors is set, escape sequences are emitted even if w is not a terminal.
func NewStyledSink(w io.Writer, forceColors bool) *StyledSink {
	renderer := lipgloss.NewRenderer(w)
	if forceColors {
		renderer.SetColorProfile(termenv.ANSI)
	}

	return &StyledSink{
		w: w,
		styles: map[Style]lipgloss.Style{
			StyleBold: renderer.NewStyle().Bold(true),
			StyleWarning: renderer.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("11")),
			StyleSuccess: renderer.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("10")),
		},
	}
}

// Print writes text with its styles rendered, followed by a newline.
func (s *StyledSink) Print(text Text) error {
	var sb strings.Builder

	for _, segment := range text {
		sb.WriteString(s.render(segment))
	}

	sb.WriteString("\n")

	if _, err := io.WriteString(s.w, sb.String()); err != nil {
		return fmt.Errorf("failed to write to sink: %w", err)
	}

	return nil
}

// render styles a single segment.
// Bodies may span many lines and are never styled, since lipgloss pads multi-line blocks.
func (s *StyledSink) render(segment Segment) string {
	style, ok := s.styles[segment.Style]
	if !ok || segment.Text == "" {
		return segment.Text
	}

	return style.Render(segment.Text)
}
