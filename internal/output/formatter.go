// Package output renders command results and user-facing messages: plain and
// styled text, tables, JSON/YAML documents, and markdown.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

// Format selects how Formatter.Write encodes a value.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. The empty string means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// Texter is implemented by results that know how to print themselves.
type Texter interface {
	Text(w io.Writer) error
}

// Formatter writes results to a single writer in a fixed format.
type Formatter struct {
	writer   io.Writer
	format   Format
	color    bool
	renderer *lipgloss.Renderer
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithFormat sets the output format.
func WithFormat(f Format) Option {
	return func(fm *Formatter) { fm.format = f }
}

// WithColor sets the color mode.
func WithColor(mode ColorMode) Option {
	return func(fm *Formatter) { fm.color = UseColor(fm.writer, mode) }
}

// New creates a text formatter for w with automatic color detection.
func New(w io.Writer, opts ...Option) *Formatter {
	f := &Formatter{writer: w, format: FormatText, color: UseColor(w, ColorAuto)}
	for _, opt := range opts {
		opt(f)
	}
	f.renderer = newRenderer(w, f.color)
	return f
}

func newRenderer(w io.Writer, color bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
		return r
	}
	profile := termenv.NewOutput(w).EnvColorProfile()
	if profile == termenv.Ascii {
		// Color was forced on a writer that is not a terminal.
		profile = termenv.ANSI256
	}
	r.SetColorProfile(profile)
	return r
}

// Writer returns the underlying writer.
func (f *Formatter) Writer() io.Writer { return f.writer }

// Format returns the configured format.
func (f *Formatter) Format() Format { return f.format }

// Color reports whether styled output is enabled.
func (f *Formatter) Color() bool { return f.color }

// Write encodes v in the configured format. In text mode v must implement
// Texter, or it is printed with %v.
func (f *Formatter) Write(v any) error {
	switch f.format {
	case FormatJSON:
		enc := json.NewEncoder(f.writer)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(f.writer)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		if t, ok := v.(Texter); ok {
			return t.Text(f.writer)
		}
		_, err := fmt.Fprintf(f.writer, "%v\n", v)
		return err
	}
}
