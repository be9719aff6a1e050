package sink

//go:generate $MOCKGEN -source=sink.go -destination=mocks/sink_mock.go

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Sink receives formatted text blocks, one per call, each terminated by a newline.
type Sink interface {
	// Print writes text followed by a newline.
	Print(text Text) error
}

// Mode selects how New chooses between the plain and the styled sink.
type Mode uint8

const (
	// ModeAuto picks the styled sink when the writer is a terminal.
	ModeAuto Mode = iota
	// ModePlain always writes plain text.
	ModePlain
	// ModeStyled always renders styles as escape sequences.
	ModeStyled
)

// Static error definitions for better error handling.
var (
	// ErrUnknownMode indicates that an output style name is not recognized.
	ErrUnknownMode = errors.New("unknown output style")
)

// ParseMode converts an output style name into a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return ModeAuto, nil
	case "plain":
		return ModePlain, nil
	case "styled":
		return ModeStyled, nil
	default:
		return ModeAuto, fmt.Errorf("%w: '%s'", ErrUnknownMode, name)
	}
}

// String returns the name of the mode.
func (m Mode) String() string {
	switch m {
	case ModePlain:
		return "plain"
	case ModeStyled:
		return "styled"
	default:
		return "auto"
	}
}

// New creates a sink writing to w according to mode.
func New(w io.Writer, mode Mode) Sink {
	switch mode {
	case ModePlain:
		return NewPlainSink(w)
	case ModeStyled:
		return NewStyledSink(w, true)
	default:
		if IsTerminal(w) {
			return NewStyledSink(w, false)
		}

		return NewPlainSink(w)
	}
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd())) //nolint:gosec // File descriptors fit into int.
}
