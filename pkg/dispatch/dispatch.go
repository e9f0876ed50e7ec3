// Package dispatch is the entry point that turns an argument vector into
// exactly one command invocation.
//
// A run declares global options, discovers the tool's commands, builds one
// sub-parser per command, parses the arguments, runs the Init hook, invokes the
// selected command and runs the Destroy hook. Once parsing has succeeded,
// Destroy runs exactly once on every path, including failures and panics.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/spf13/pflag"

	"github.com/Dicklesworthstone/clitool/internal/output"
	"github.com/Dicklesworthstone/clitool/internal/suggest"
	"github.com/Dicklesworthstone/clitool/pkg/binding"
	"github.com/Dicklesworthstone/clitool/pkg/command"
)

// NoCommandMessage is printed when the selected sub-command does not exist.
const NoCommandMessage = "no command found to run."

// Config carries the program metadata and the optional lifecycle hooks. Every
// hook defaults to a no-op.
type Config struct {
	// Name is the program name. It defaults to the tool's type name.
	Name string
	// Description is the one-line program description shown by help.
	Description string

	// GlobalOptions declares flags shared by all commands. It runs before
	// any command is registered.
	GlobalOptions func(flags *pflag.FlagSet)
	// Init runs once after a successful parse, before the command.
	Init func(ctx context.Context, inv *binding.Invocation) error
	// Destroy runs once after Init, whatever happened after it, and sees how
	// the run ended.
	Destroy func(ctx context.Context, outcome Outcome) error

	// Stdout receives help text; Stderr receives parse errors and the
	// dispatch-miss message. They default to os.Stdout and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
	// Color controls styling of messages written to Stderr.
	Color output.ColorMode

	Logger *slog.Logger
}

// Dispatcher runs one tool. It is not safe for concurrent runs.
type Dispatcher struct {
	tool  command.Tool
	cfg   Config
	state State
}

// New creates a dispatcher for tool.
func New(tool command.Tool, cfg Config) *Dispatcher {
	return &Dispatcher{tool: tool, cfg: cfg}
}

// Run is shorthand for New(tool, cfg).Run(ctx, args).
func Run(ctx context.Context, tool command.Tool, args []string, cfg Config) error {
	return New(tool, cfg).Run(ctx, args)
}

// State reports the state the last run reached.
func (d *Dispatcher) State() State {
	return d.state
}

// ProgramName returns the configured name, or the tool's type name.
func (d *Dispatcher) ProgramName() string {
	if d.cfg.Name != "" {
		return d.cfg.Name
	}
	if d.tool != nil {
		t := reflect.TypeOf(d.tool)
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t.Name() != "" && t != reflect.TypeOf(command.Table(nil)) {
			return t.Name()
		}
	}
	return filepath.Base(os.Args[0])
}

// Run parses args (without the program name) and invokes the selected
// command.
//
// It returns a *command.ConfigError when the command table is invalid, a
// *ParseError when args are malformed, an *InitError when Init fails and an
// *InvocationError when the command fails. A Destroy error is joined to
// whatever the run returned. A sub-command that does not exist is reported
// to Stderr and is not an error.
func (d *Dispatcher) Run(ctx context.Context, args []string) (err error) {
	d.state = Unstarted
	log := d.logger()

	parser := binding.NewParser(d.ProgramName(), d.cfg.Description)
	parser.SetOutput(d.stdout(), d.stderr())
	if d.cfg.GlobalOptions != nil {
		d.cfg.GlobalOptions(parser.GlobalFlags())
	}
	d.transition(GlobalOptionsDeclared)

	reg, err := command.Discover(d.tool)
	if err != nil {
		log.Error("command discovery failed", "error", err)
		return err
	}
	for _, cmd := range reg.All() {
		if err := parser.Add(cmd); err != nil {
			log.Error("command declaration failed", "command", cmd.Name(), "error", err)
			return err
		}
	}
	d.transition(CommandsRegistered)

	inv, err := parser.Parse(args)
	if errors.Is(err, binding.ErrHelp) {
		return nil
	}
	if err != nil {
		d.reportParseError(err)
		return err
	}
	d.transition(Parsed)
	log.Debug("parsed arguments", "invocation", inv.String())

	defer func() {
		outcome := Outcome{Command: inv.Command, State: d.state, Err: err}
		if derr := d.destroy(ctx, outcome); derr != nil {
			log.Error("destroy hook failed", "error", derr)
			err = errors.Join(err, derr)
		}
		d.transition(Destroyed)
	}()

	if d.cfg.Init != nil {
		if ierr := d.cfg.Init(ctx, inv); ierr != nil {
			log.Error("init hook failed", "error", ierr)
			return &InitError{Err: ierr}
		}
	}
	d.transition(Initialized)

	cmd, ok := reg.Lookup(inv.Command)
	if !ok {
		d.transition(NoCommandFound)
		d.reportMiss(inv.Command, reg.Names())
		return nil
	}

	values, err := binding.Extract(inv, cmd)
	if err != nil {
		return &InvocationError{Command: cmd.Name(), Err: err}
	}
	err = d.invoke(ctx, cmd, values)
	d.transition(CommandInvoked)
	if err != nil {
		log.Debug("command failed", "command", cmd.Name(), "error", err)
	}
	return err
}

func (d *Dispatcher) invoke(ctx context.Context, cmd *command.Command, values []any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &InvocationError{Command: cmd.Name(), Panic: r, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	if ierr := cmd.Invoke(ctx, values); ierr != nil {
		return &InvocationError{Command: cmd.Name(), Err: ierr}
	}
	return nil
}

func (d *Dispatcher) destroy(ctx context.Context, outcome Outcome) (err error) {
	if d.cfg.Destroy == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("destroy panicked: %v", r)
		}
	}()
	return d.cfg.Destroy(ctx, outcome)
}

func (d *Dispatcher) reportParseError(err error) {
	out := output.New(d.stderr(), output.WithColor(d.cfg.Color))
	var perr *ParseError
	if !errors.As(err, &perr) {
		out.Errorln(err.Error())
		return
	}
	out.Errorln(perr.Err.Error())
	if perr.Usage != "" {
		out.Line()
		out.Text("%s", perr.Usage)
	}
}

func (d *Dispatcher) reportMiss(name string, known []string) {
	out := output.New(d.stderr(), output.WithColor(d.cfg.Color))
	out.Println(NoCommandMessage)
	if matches := suggest.For(name, known, suggest.DefaultMaxDistance); len(matches) > 0 {
		out.Hintln(fmt.Sprintf("Did you mean %s?", strings.Join(matches, " or ")))
	}
	d.logger().Warn("no command found", "command", name)
}

func (d *Dispatcher) transition(next State) {
	d.logger().Debug("dispatch state", "from", d.state.String(), "to", next.String())
	d.state = next
}

func (d *Dispatcher) logger() *slog.Logger {
	if d != nil && d.cfg.Logger != nil {
		return d.cfg.Logger
	}
	return slog.Default().With("component", "dispatch")
}

func (d *Dispatcher) stdout() io.Writer {
	if d.cfg.Stdout != nil {
		return d.cfg.Stdout
	}
	return os.Stdout
}

func (d *Dispatcher) stderr() io.Writer {
	if d.cfg.Stderr != nil {
		return d.cfg.Stderr
	}
	return os.Stderr
}
