package binding

import (
	"fmt"
	"maps"
	"sort"
	"strings"

	"github.com/spf13/pflag"

	"github.com/Dicklesworthstone/clitool/pkg/command"
)

// Invocation is the result of parsing one argument vector: the selected
// sub-command token, the coerced argument values by name, and the parsed
// flag set (global options included).
type Invocation struct {
	// Command is the sub-command token the user selected. It may name a
	// command that does not exist; resolving it is the dispatcher's job.
	Command string
	// Args holds the raw positional tokens that followed Command.
	Args []string

	values map[string]any
	flags  *pflag.FlagSet
}

// NewInvocation builds an invocation by hand. Parsers other than Parser, and
// tests, use it.
func NewInvocation(cmd string, values map[string]any, flags *pflag.FlagSet) *Invocation {
	return &Invocation{Command: cmd, values: maps.Clone(values), flags: flags}
}

// Get returns the value bound to name.
func (inv *Invocation) Get(name string) (any, bool) {
	if inv == nil {
		return nil, false
	}
	v, ok := inv.values[name]
	return v, ok
}

// Values returns a copy of all bound values.
func (inv *Invocation) Values() map[string]any {
	if inv == nil {
		return map[string]any{}
	}
	return maps.Clone(inv.values)
}

// Flags returns the parsed flag set. It never returns nil.
func (inv *Invocation) Flags() *pflag.FlagSet {
	if inv == nil || inv.flags == nil {
		return pflag.NewFlagSet("empty", pflag.ContinueOnError)
	}
	return inv.flags
}

// String renders the invocation for debug logging.
func (inv *Invocation) String() string {
	if inv == nil {
		return "<nil>"
	}
	keys := make([]string, 0, len(inv.values))
	for k := range inv.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(inv.Command)
	sb.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%v", k, inv.values[k])
	}
	sb.WriteString("}")
	return sb.String()
}

// Get returns the value bound to name as a T.
func Get[T any](inv *Invocation, name string) (T, error) {
	var zero T
	v, ok := inv.Get(name)
	if !ok {
		return zero, &BindingError{Command: inv.commandName(), Param: name}
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("argument %s: got %T, want %T", name, v, zero)
	}
	return t, nil
}

func (inv *Invocation) commandName() string {
	if inv == nil {
		return ""
	}
	return inv.Command
}

// Extract returns one value per parameter of cmd, in declaration order, each
// looked up by name in inv.
func Extract(inv *Invocation, cmd *command.Command) ([]any, error) {
	params := cmd.Params()
	out := make([]any, len(params))
	for i, p := range params {
		v, ok := inv.Get(p.Name)
		if !ok {
			return nil, &BindingError{Command: cmd.Name(), Param: p.Name}
		}
		out[i] = v
	}
	return out, nil
}
