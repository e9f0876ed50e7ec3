package binding

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Dicklesworthstone/clitool/pkg/command"
)

// reserved sub-command names owned by cobra itself.
var reserved = map[string]bool{"help": true}

// Parser is the composed argument parser: a root command with global flags and
// one sub-command per registered command.
type Parser struct {
	root   *cobra.Command
	result *Invocation
}

// NewParser creates a parser for program name.
func NewParser(name, short string) *Parser {
	p := &Parser{}
	p.root = &cobra.Command{
		Use:           name,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		// Exactly one sub-command token is required. A token that matches no
		// sub-command lands here and is reported by the dispatcher.
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errNoCommand
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p.result = &Invocation{Command: args[0], Args: args[1:], values: map[string]any{}, flags: cmd.Flags()}
			return nil
		},
	}
	return p
}

// GlobalFlags returns the flag set shared by every sub-command.
func (p *Parser) GlobalFlags() *pflag.FlagSet {
	return p.root.PersistentFlags()
}

// SetOutput redirects help (out) and error (errOut) text.
func (p *Parser) SetOutput(out, errOut io.Writer) {
	p.root.SetOut(out)
	p.root.SetErr(errOut)
}

// Add declares cmd as a sub-command.
func (p *Parser) Add(cmd *command.Command) error {
	if reserved[cmd.Name()] {
		return &command.ConfigError{Command: cmd.Name(), Param: -1, Reason: "name is reserved by the argument parser"}
	}
	p.root.AddCommand(Declare(cmd, p.capture))
	return nil
}

func (p *Parser) capture(inv *Invocation) {
	p.result = inv
}

// Parse parses args (without the program name). It returns a *ParseError on
// malformed input and ErrHelp when only help was requested.
func (p *Parser) Parse(args []string) (*Invocation, error) {
	p.result = nil
	if args == nil {
		// cobra falls back to os.Args when given nil.
		args = []string{}
	}
	p.root.SetArgs(args)

	executed, err := p.root.ExecuteC()
	if err != nil {
		if executed == nil {
			executed = p.root
		}
		return nil, &ParseError{Command: executed.Name(), Usage: executed.UsageString(), Err: err}
	}
	if p.result == nil {
		return nil, ErrHelp
	}
	return p.result, nil
}
