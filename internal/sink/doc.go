// Package sink abstracts the console the formatted HTTP messages are written to.
// Formatting code only tags text with semantic styles (bold, warning, success);
// a Sink decides how those styles look, either as plain text or as
// terminal escape sequences rendered by lipgloss.
package sink
