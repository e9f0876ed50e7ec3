// Package manifest renders a command registry as a reference document, for
// docs generation and for tooling that wants the table without running a
// command.
package manifest

import (
	"fmt"
	"io"
	"strings"

	"github.com/Dicklesworthstone/clitool/internal/output"
	"github.com/Dicklesworthstone/clitool/pkg/command"
)

// Format is a manifest encoding.
type Format string

const (
	FormatYAML     Format = "yaml"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat accepts yaml, json and markdown (also "md").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown manifest format %q (want yaml, json or markdown)", s)
	}
}

// Document describes a program and its commands.
type Document struct {
	Program     string    `json:"program" yaml:"program"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Commands    []Command `json:"commands" yaml:"commands"`
}

// Command describes one command.
type Command struct {
	Name   string  `json:"name" yaml:"name"`
	Short  string  `json:"short,omitempty" yaml:"short,omitempty"`
	Params []Param `json:"params" yaml:"params"`
}

// Param describes one positional parameter.
type Param struct {
	Name  string `json:"name" yaml:"name"`
	Type  string `json:"type" yaml:"type"`
	Usage string `json:"usage,omitempty" yaml:"usage,omitempty"`
}

// Build describes every command in reg, sorted by name.
func Build(program, description string, reg *command.Registry) *Document {
	doc := &Document{Program: program, Description: description, Commands: []Command{}}
	if reg == nil {
		return doc
	}
	for _, c := range reg.All() {
		mc := Command{Name: c.Name(), Short: c.Short(), Params: []Param{}}
		for _, p := range c.Params() {
			mc.Params = append(mc.Params, Param{Name: p.Name, Type: p.TypeName(), Usage: p.Usage})
		}
		doc.Commands = append(doc.Commands, mc)
	}
	return doc
}

// Synopsis returns the usage line of c, e.g. "get <arg1> <arg2>".
func (c Command) Synopsis() string {
	var b strings.Builder
	b.WriteString(c.Name)
	for _, p := range c.Params {
		b.WriteString(" <" + p.Name + ">")
	}
	return b.String()
}

// Markdown renders doc as a markdown reference.
func (d *Document) Markdown() string {
	var b strings.Builder
	b.WriteString("# " + d.Program + "\n\n")
	if d.Description != "" {
		b.WriteString(d.Description + "\n\n")
	}
	b.WriteString("## Commands\n")
	for _, c := range d.Commands {
		b.WriteString("\n### " + c.Name + "\n\n")
		b.WriteString("```\n" + d.Program + " " + c.Synopsis() + "\n```\n")
		if c.Short != "" {
			b.WriteString("\n" + c.Short + "\n")
		}
		if len(c.Params) == 0 {
			continue
		}
		b.WriteString("\n| Argument | Type | Description |\n|---|---|---|\n")
		for _, p := range c.Params {
			usage := escapeMarkdown(p.Usage)
			if usage == "" {
				usage = "-"
			}
			fmt.Fprintf(&b, "| %s | %s | %s |\n", p.Name, p.Type, usage)
		}
	}
	return b.String()
}

// Text implements output.Texter with the markdown rendering.
func (d *Document) Text(w io.Writer) error {
	_, err := io.WriteString(w, d.Markdown())
	return err
}

// Write encodes doc to w in format f.
func Write(w io.Writer, doc *Document, f Format) error {
	switch f {
	case FormatYAML:
		return output.New(w, output.WithFormat(output.FormatYAML)).Write(doc)
	case FormatJSON:
		return output.New(w, output.WithFormat(output.FormatJSON)).Write(doc)
	case FormatMarkdown:
		return doc.Text(w)
	default:
		return fmt.Errorf("unknown manifest format %q", f)
	}
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	return s
}
