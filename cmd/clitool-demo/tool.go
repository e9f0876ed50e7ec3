package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/Dicklesworthstone/clitool/internal/config"
	"github.com/Dicklesworthstone/clitool/internal/manifest"
	"github.com/Dicklesworthstone/clitool/internal/output"
	"github.com/Dicklesworthstone/clitool/internal/util"
	"github.com/Dicklesworthstone/clitool/pkg/binding"
	"github.com/Dicklesworthstone/clitool/pkg/command"
	"github.com/Dicklesworthstone/clitool/pkg/dispatch"
	"github.com/Dicklesworthstone/clitool/pkg/value"
)

const (
	programName        = "demo"
	programDescription = "demo how to use the command dispatcher"
)

// Demo is the example tool. Its fields are filled by global flags and the
// Init hook; commands read them.
type Demo struct {
	cfgFile string
	verbose bool

	stdout io.Writer
	stderr io.Writer
	level  *slog.LevelVar
	logger *slog.Logger

	cfg     *config.Config
	out     *output.Formatter
	started time.Time
}

// NewDemo creates the tool writing to stdout and stderr.
func NewDemo(stdout, stderr io.Writer) *Demo {
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	return &Demo{
		stdout: stdout,
		stderr: stderr,
		level:  level,
		logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
	}
}

// Commands returns the tool's command table.
func (d *Demo) Commands() []*command.Command {
	width := output.Width(d.stdout)
	return []*command.Command{
		command.Func2("get",
			command.Arg[string]{Name: "arg1", Type: value.String, Usage: "any text"},
			command.Arg[int]{Name: "arg2", Type: value.Int, Usage: "an integer"},
			d.get,
		).WithShort("print both arguments, one per line"),

		command.Func1("show",
			command.Arg[uuid.UUID]{Name: "id", Type: value.UUID, Usage: "a UUID in any accepted form"},
			d.show,
		).WithShort("print a UUID in canonical form with its version"),

		command.Func1("pair",
			command.Arg[pair]{Name: "setting", Type: pairType, Usage: "key=value"},
			d.pair,
		).WithShort("split a key=value argument"),

		command.Func1("wait",
			command.Arg[time.Duration]{Name: "duration", Type: value.Duration, Usage: "how long to wait, e.g. 1.5s"},
			d.wait,
		).WithShort("wait for a duration or until interrupted"),

		command.Func1("manifest",
			command.Arg[string]{Name: "format", Type: value.String, Usage: "yaml, json or markdown"},
			d.manifest,
		).WithShort("print the command table").
			WithLong(output.Wrap("Print every command with its arguments and their types. "+
				"The yaml and json forms are meant for tooling; markdown is rendered for the terminal "+
				"when stdout is one.", width)),

		command.Func1("manifest-validate",
			command.Arg[string]{Name: "path", Type: value.String, Usage: "manifest file in yaml or json"},
			d.manifestValidate,
		).WithShort("check a manifest file against the manifest schema"),

		command.Func0("commands", d.commands).
			WithShort("list commands and their arguments"),

		command.Func0("config-init", d.configInit).
			WithShort("create the default config file"),

		command.Func0("config-show", d.configShow).
			WithShort("print the effective configuration"),
	}
}

// dispatchConfig wires the tool's hooks into the dispatcher.
func (d *Demo) dispatchConfig() dispatch.Config {
	return dispatch.Config{
		Name:          programName,
		Description:   programDescription,
		GlobalOptions: d.globalOptions,
		Init:          d.init,
		Destroy:       d.destroy,
		Stdout:        d.stdout,
		Stderr:        d.stderr,
		Logger:        d.logger.With("component", "dispatch"),
	}
}

func (d *Demo) globalOptions(flags *pflag.FlagSet) {
	flags.StringVar(&d.cfgFile, "config", "", "config file (default ~/.config/clitool/config.toml)")
	flags.BoolVarP(&d.verbose, "verbose", "v", false, "log debug output to stderr")
}

func (d *Demo) init(ctx context.Context, inv *binding.Invocation) error {
	d.started = time.Now()

	if inv.Command == "config-init" {
		d.cfg = config.Default()
	} else {
		cfg, err := config.Load(util.ExpandHome(d.cfgFile))
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		d.cfg = cfg
	}

	d.level.Set(d.cfg.SlogLevel())
	if d.verbose {
		d.level.Set(slog.LevelDebug)
	}
	d.out = output.New(d.stdout,
		output.WithFormat(d.cfg.OutputFormat()),
		output.WithColor(d.cfg.ColorMode()),
	)
	d.logger.Debug("initialized", "command", inv.Command, "format", d.cfg.Output.Format)
	return nil
}

func (d *Demo) destroy(ctx context.Context, outcome dispatch.Outcome) error {
	d.logger.Debug("finished",
		"command", outcome.Command,
		"outcome", outcome.Status(),
		"elapsed", time.Since(d.started))
	if d.verbose {
		color := output.ColorAuto
		if d.cfg != nil {
			color = d.cfg.ColorMode()
		}
		errOut := output.New(d.stderr, output.WithColor(color))
		errOut.Textln("%s %s", outcome.Command, errOut.StatusBadge(outcome.Status()))
	}
	return nil
}

func (d *Demo) get(ctx context.Context, arg1 string, arg2 int) error {
	d.out.Println(arg1)
	d.out.Println(arg2)
	return nil
}

func (d *Demo) pair(ctx context.Context, p pair) error {
	return d.out.Write(p)
}

type uuidInfo struct {
	ID      string `json:"id" yaml:"id"`
	Version int    `json:"version" yaml:"version"`
	Variant string `json:"variant" yaml:"variant"`
}

func (u uuidInfo) Text(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s\nversion %d\n", u.ID, u.Version)
	return err
}

func (d *Demo) show(ctx context.Context, id uuid.UUID) error {
	return d.out.Write(uuidInfo{
		ID:      id.String(),
		Version: int(id.Version()),
		Variant: id.Variant().String(),
	})
}

func (d *Demo) wait(ctx context.Context, dur time.Duration) error {
	if dur < 0 {
		return fmt.Errorf("duration must not be negative: %s", dur)
	}
	timer := time.NewTimer(dur)
	defer timer.Stop()
	select {
	case <-timer.C:
		d.logger.Debug("wait complete", "duration", dur)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Demo) manifest(ctx context.Context, format string) error {
	f, err := manifest.ParseFormat(format)
	if err != nil {
		return err
	}
	reg, err := command.Discover(d)
	if err != nil {
		return err
	}
	doc := manifest.Build(programName, programDescription, reg)

	if f == manifest.FormatMarkdown && output.IsTerminal(d.stdout) {
		rendered, err := output.RenderMarkdown(doc.Markdown(), d.width(), d.out.Color())
		if err != nil {
			return err
		}
		d.out.Text("%s", rendered)
		return nil
	}
	return manifest.Write(d.stdout, doc, f)
}

func (d *Demo) commands(ctx context.Context) error {
	reg, err := command.Discover(d)
	if err != nil {
		return err
	}
	doc := manifest.Build(programName, programDescription, reg)
	if d.out.Format() != output.FormatText {
		return d.out.Write(doc.Commands)
	}

	table := d.out.NewTable("COMMAND", "ARGUMENTS", "DESCRIPTION")
	for _, c := range doc.Commands {
		args := make([]string, len(c.Params))
		for i, p := range c.Params {
			args[i] = "<" + p.Name + ":" + p.Type + ">"
		}
		table.AddRow(c.Name, strings.Join(args, " "), output.Truncate(c.Short, 48))
	}
	table.Render()

	fp, err := doc.Fingerprint()
	if err != nil {
		return err
	}
	d.out.Line()
	d.out.Dimln(fmt.Sprintf("%s, fingerprint %s", output.CountStr(table.RowCount(), "command", "commands"), fp[:12]))
	return nil
}

func (d *Demo) manifestValidate(ctx context.Context, path string) error {
	data, err := os.ReadFile(util.ExpandHome(path))
	if err != nil {
		return err
	}
	if err := manifest.Validate(data); err != nil {
		return err
	}
	d.out.Textln("%s: valid manifest", path)
	return nil
}

func (d *Demo) configInit(ctx context.Context) error {
	path, err := config.CreateDefault(util.ExpandHome(d.cfgFile))
	if err != nil {
		return err
	}
	d.out.Textln("Created config file at %s", path)
	return nil
}

func (d *Demo) configShow(ctx context.Context) error {
	if d.out.Format() != output.FormatText {
		return d.out.Write(d.cfg)
	}
	return config.Print(d.cfg, d.stdout)
}

func (d *Demo) width() int {
	if d.cfg != nil && d.cfg.Output.Width > 0 {
		return d.cfg.Output.Width
	}
	return output.Width(d.stdout)
}
