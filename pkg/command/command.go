package command

import (
	"context"
	"fmt"

	"github.com/Dicklesworthstone/clitool/pkg/value"
)

// Param describes one argument a command expects.
type Param struct {
	// Name is the argument token shown in usage and used for lookup.
	Name string
	// Type selects the coercion rule applied to the raw token.
	Type value.Type
	// Usage is an optional one-line description.
	Usage string
}

// TypeName returns the parameter's type name, or "" when untyped.
func (p Param) TypeName() string {
	if p.Type == nil {
		return ""
	}
	return p.Type.Name()
}

// Arg is a statically typed parameter declaration used by the FuncN
// constructors.
type Arg[T any] struct {
	Name  string
	Type  value.Typed[T]
	Usage string
}

func (a Arg[T]) param() Param {
	p := Param{Name: a.Name, Usage: a.Usage}
	if a.Type.Valid() {
		p.Type = a.Type
	}
	return p
}

// RunFunc receives one value per Param, in declaration order.
type RunFunc func(ctx context.Context, args []any) error

// Command is one named, invokable operation with a fixed, ordered parameter
// list. Commands are built once at startup and must not be changed after
// they are registered.
type Command struct {
	name   string
	short  string
	long   string
	params []Param
	run    RunFunc
}

// New builds a command from an explicit parameter list. It is the low-level
// constructor for generated command tables; hand-written tools usually use
// Func0..Func4 instead.
func New(name string, params []Param, run RunFunc) *Command {
	return &Command{
		name:   name,
		params: append([]Param(nil), params...),
		run:    run,
	}
}

// WithShort sets the one-line description.
func (c *Command) WithShort(short string) *Command {
	c.short = short
	return c
}

// WithLong sets the long description shown by help.
func (c *Command) WithLong(long string) *Command {
	c.long = long
	return c
}

// Name returns the command name.
func (c *Command) Name() string { return c.name }

// Short returns the one-line description.
func (c *Command) Short() string { return c.short }

// Long returns the long description.
func (c *Command) Long() string { return c.long }

// Params returns a copy of the parameter list in declaration order.
func (c *Command) Params() []Param {
	return append([]Param(nil), c.params...)
}

// Invoke calls the command with positional values. len(args) must equal the
// number of declared parameters.
func (c *Command) Invoke(ctx context.Context, args []any) error {
	if c.run == nil {
		return fmt.Errorf("command %s has no function", c.name)
	}
	if len(args) != len(c.params) {
		return fmt.Errorf("command %s expects %d argument(s), got %d", c.name, len(c.params), len(args))
	}
	return c.run(ctx, args)
}

// Func0 builds a command without parameters.
func Func0(name string, fn func(context.Context) error) *Command {
	return New(name, nil, func(ctx context.Context, _ []any) error {
		return fn(ctx)
	})
}

// Func1 builds a command with one typed parameter.
func Func1[A any](name string, a Arg[A], fn func(context.Context, A) error) *Command {
	return New(name, []Param{a.param()}, func(ctx context.Context, args []any) error {
		va, err := argAt[A](args, 0, a.Name)
		if err != nil {
			return err
		}
		return fn(ctx, va)
	})
}

// Func2 builds a command with two typed parameters.
func Func2[A, B any](name string, a Arg[A], b Arg[B], fn func(context.Context, A, B) error) *Command {
	return New(name, []Param{a.param(), b.param()}, func(ctx context.Context, args []any) error {
		va, err := argAt[A](args, 0, a.Name)
		if err != nil {
			return err
		}
		vb, err := argAt[B](args, 1, b.Name)
		if err != nil {
			return err
		}
		return fn(ctx, va, vb)
	})
}

// Func3 builds a command with three typed parameters.
func Func3[A, B, C any](name string, a Arg[A], b Arg[B], c Arg[C], fn func(context.Context, A, B, C) error) *Command {
	return New(name, []Param{a.param(), b.param(), c.param()}, func(ctx context.Context, args []any) error {
		va, err := argAt[A](args, 0, a.Name)
		if err != nil {
			return err
		}
		vb, err := argAt[B](args, 1, b.Name)
		if err != nil {
			return err
		}
		vc, err := argAt[C](args, 2, c.Name)
		if err != nil {
			return err
		}
		return fn(ctx, va, vb, vc)
	})
}

// Func4 builds a command with four typed parameters.
func Func4[A, B, C, D any](name string, a Arg[A], b Arg[B], c Arg[C], d Arg[D], fn func(context.Context, A, B, C, D) error) *Command {
	return New(name, []Param{a.param(), b.param(), c.param(), d.param()}, func(ctx context.Context, args []any) error {
		va, err := argAt[A](args, 0, a.Name)
		if err != nil {
			return err
		}
		vb, err := argAt[B](args, 1, b.Name)
		if err != nil {
			return err
		}
		vc, err := argAt[C](args, 2, c.Name)
		if err != nil {
			return err
		}
		vd, err := argAt[D](args, 3, d.Name)
		if err != nil {
			return err
		}
		return fn(ctx, va, vb, vc, vd)
	})
}

func argAt[T any](args []any, i int, name string) (T, error) {
	v, ok := args[i].(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("argument %s: got %T, want %T", name, args[i], zero)
	}
	return v, nil
}
