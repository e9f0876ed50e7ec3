// Command clitool-demo shows how a tool declares typed commands and hands
// them to the dispatcher.
package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Dicklesworthstone/clitool/internal/output"
	"github.com/Dicklesworthstone/clitool/pkg/command"
	"github.com/Dicklesworthstone/clitool/pkg/dispatch"
)

// Exit codes.
const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 2
	exitConfigError = 3
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	demo := NewDemo(stdout, stderr)
	err := dispatch.New(demo, demo.dispatchConfig()).Run(ctx, args)
	if err == nil {
		return exitOK
	}

	code := exitCode(err)
	if code != exitUsage {
		// Parse errors were already reported along with usage.
		output.New(stderr).Errorln(err.Error())
	}
	return code
}

func exitCode(err error) int {
	var perr *dispatch.ParseError
	var cerr *command.ConfigError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &perr):
		return exitUsage
	case errors.As(err, &cerr):
		return exitConfigError
	default:
		return exitFailure
	}
}
