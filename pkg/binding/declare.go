package binding

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/clitool/pkg/command"
)

// AnnotationArgs is the cobra annotation key under which Declare records the
// declared positional arguments, one "name\ttype" line each.
const AnnotationArgs = "clitool/args"

// DeclaredArg is one positional argument registered with the parser.
type DeclaredArg struct {
	Name string
	Type string
}

// Declare builds the sub-parser for cmd. Each parameter becomes one
// positional argument, in declaration order. On a successful parse the
// coerced values are handed to sink.
func Declare(cmd *command.Command, sink func(*Invocation)) *cobra.Command {
	params := cmd.Params()

	use := []string{cmd.Name()}
	lines := make([]string, 0, len(params))
	for _, p := range params {
		use = append(use, "<"+p.Name+">")
		lines = append(lines, p.Name+"\t"+p.TypeName())
	}

	c := &cobra.Command{
		Use:                   strings.Join(use, " "),
		Short:                 cmd.Short(),
		Long:                  cmd.Long(),
		Args:                  cobra.ExactArgs(len(params)),
		DisableFlagsInUseLine: true,
		Annotations:           map[string]string{AnnotationArgs: strings.Join(lines, "\n")},
		RunE: func(c *cobra.Command, args []string) error {
			values := make(map[string]any, len(params))
			for i, p := range params {
				v, err := p.Type.Parse(args[i])
				if err != nil {
					return &ArgError{Command: cmd.Name(), Param: p.Name, Type: p.TypeName(), Value: args[i], Err: err}
				}
				values[p.Name] = v
			}
			if sink != nil {
				sink(&Invocation{Command: cmd.Name(), Args: args, values: values, flags: c.Flags()})
			}
			return nil
		},
	}
	return c
}

// Declared returns the positional arguments Declare registered on c.
func Declared(c *cobra.Command) []DeclaredArg {
	raw := c.Annotations[AnnotationArgs]
	if raw == "" {
		return nil
	}
	var out []DeclaredArg
	for _, line := range strings.Split(raw, "\n") {
		name, typ, _ := strings.Cut(line, "\t")
		out = append(out, DeclaredArg{Name: name, Type: typ})
	}
	return out
}
