package command

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Tool exposes a static command table. The table is read once, at discovery.
type Tool interface {
	Commands() []*Command
}

// Table is the simplest Tool: a literal list of commands.
type Table []*Command

// Commands implements Tool.
func (t Table) Commands() []*Command { return t }

// ConfigError reports a command that cannot be registered. It is raised before
// any user input is parsed.
type ConfigError struct {
	Command string
	// Param is the zero-based parameter position, or -1 when the problem is
	// with the command itself.
	Param  int
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Param >= 0 {
		return fmt.Sprintf("invalid command %q: parameter %d: %s", e.Command, e.Param, e.Reason)
	}
	return fmt.Sprintf("invalid command %q: %s", e.Command, e.Reason)
}

// Registry maps command names to commands.
type Registry struct {
	commands map[string]*Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]*Command)}
}

// Discover validates every command of tool and indexes them by name. Nil
// entries are skipped.
func Discover(tool Tool) (*Registry, error) {
	if tool == nil {
		return nil, fmt.Errorf("discover: nil tool")
	}
	r := NewRegistry()
	for _, c := range tool.Commands() {
		if c == nil {
			continue
		}
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register validates c and adds it to the registry.
func (r *Registry) Register(c *Command) error {
	if err := Validate(c); err != nil {
		return err
	}
	if _, exists := r.commands[c.name]; exists {
		return &ConfigError{Command: c.name, Param: -1, Reason: "already registered"}
	}
	r.commands[c.name] = c
	return nil
}

// MustRegister is Register for static tables; it panics on error.
func (r *Registry) MustRegister(c *Command) {
	if err := r.Register(c); err != nil {
		panic(err)
	}
}

// Lookup returns the command and whether it exists.
func (r *Registry) Lookup(name string) (*Command, bool) {
	c, ok := r.commands[name]
	return c, ok
}

// Len returns the number of registered commands.
func (r *Registry) Len() int { return len(r.commands) }

// Names returns all command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all commands sorted by name.
func (r *Registry) All() []*Command {
	names := r.Names()
	out := make([]*Command, 0, len(names))
	for _, name := range names {
		out = append(out, r.commands[name])
	}
	return out
}

// Validate checks that c has a usable name, a function, and that every
// parameter carries exactly one unambiguous name and a type.
func Validate(c *Command) error {
	if c == nil {
		return &ConfigError{Param: -1, Reason: "nil command"}
	}
	if !validToken(c.name) {
		return &ConfigError{Command: c.name, Param: -1, Reason: "name must be a non-empty token not starting with '-'"}
	}
	if c.run == nil {
		return &ConfigError{Command: c.name, Param: -1, Reason: "no function"}
	}

	seen := make(map[string]int, len(c.params))
	for i, p := range c.params {
		switch {
		case p.Name == "":
			return &ConfigError{Command: c.name, Param: i, Reason: "missing argument name"}
		case !validToken(p.Name):
			return &ConfigError{Command: c.name, Param: i, Reason: fmt.Sprintf("ambiguous argument name %q", p.Name)}
		case p.Type == nil || p.Type.Name() == "":
			return &ConfigError{Command: c.name, Param: i, Reason: fmt.Sprintf("argument %q has no type", p.Name)}
		}
		if prev, dup := seen[p.Name]; dup {
			return &ConfigError{Command: c.name, Param: i, Reason: fmt.Sprintf("argument name %q already used by parameter %d", p.Name, prev)}
		}
		seen[p.Name] = i
	}
	return nil
}

func validToken(s string) bool {
	if s == "" || strings.HasPrefix(s, "-") {
		return false
	}
	return !strings.ContainsFunc(s, unicode.IsSpace)
}
