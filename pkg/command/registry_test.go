package command

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Dicklesworthstone/clitool/pkg/value"
)

func noop(context.Context, []any) error { return nil }

func TestDiscoverIndexesByName(t *testing.T) {
	tool := Table{
		Func0("list", func(context.Context) error { return nil }),
		nil, // ignored
		Func1("get", Arg[string]{Name: "name", Type: value.String}, func(context.Context, string) error { return nil }),
	}

	r, err := Discover(tool)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	if diff := cmp.Diff([]string{"get", "list"}, r.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if c, ok := r.Lookup("get"); !ok || c.Name() != "get" {
		t.Errorf("Lookup(get) = %v, %v", c, ok)
	}
	if _, ok := r.Lookup("missing"); ok {
		t.Error("Lookup(missing) should fail")
	}

	all := r.All()
	if len(all) != 2 || all[0].Name() != "get" || all[1].Name() != "list" {
		t.Errorf("All() not sorted by name")
	}
}

func TestDiscoverNilTool(t *testing.T) {
	if _, err := Discover(nil); err == nil {
		t.Error("expected error for nil tool")
	}
}

func TestValidateRejectsBadParameters(t *testing.T) {
	tests := []struct {
		name      string
		cmd       *Command
		wantParam int
	}{
		{
			name:      "unnamed parameter",
			cmd:       New("get", []Param{{Type: value.String}}, noop),
			wantParam: 0,
		},
		{
			name:      "untyped parameter",
			cmd:       New("get", []Param{{Name: "s1"}}, noop),
			wantParam: 0,
		},
		{
			name:      "typed arg with zero type",
			cmd:       Func1("get", Arg[string]{Name: "s1"}, func(context.Context, string) error { return nil }),
			wantParam: 0,
		},
		{
			name:      "duplicate name",
			cmd:       New("get", []Param{{Name: "a", Type: value.String}, {Name: "a", Type: value.Int}}, noop),
			wantParam: 1,
		},
		{
			name:      "flag-like name",
			cmd:       New("get", []Param{{Name: "--a", Type: value.String}}, noop),
			wantParam: 0,
		},
		{
			name:      "name with space",
			cmd:       New("get", []Param{{Name: "a", Type: value.String}, {Name: "b c", Type: value.String}}, noop),
			wantParam: 1,
		},
		{
			name:      "name with non-breaking space",
			cmd:       New("get", []Param{{Name: "a\u00a0b", Type: value.String}}, noop),
			wantParam: 0,
		},
		{
			name:      "command name with non-breaking space",
			cmd:       New("a\u00a0b", nil, noop),
			wantParam: -1,
		},
		{
			name:      "command name with ideographic space",
			cmd:       New("a\u3000b", nil, noop),
			wantParam: -1,
		},
		{
			name:      "empty command name",
			cmd:       New("", nil, noop),
			wantParam: -1,
		},
		{
			name:      "no function",
			cmd:       New("get", nil, nil),
			wantParam: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Discover(Table{tt.cmd})
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
			if cfgErr.Param != tt.wantParam {
				t.Errorf("Param = %d, want %d (%v)", cfgErr.Param, tt.wantParam, cfgErr)
			}
			if cfgErr.Command != tt.cmd.Name() {
				t.Errorf("Command = %q, want %q", cfgErr.Command, tt.cmd.Name())
			}
		})
	}
}

func TestRegisterDuplicateCommand(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(Func0("dup", func(context.Context) error { return nil })); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	err := r.Register(Func0("dup", func(context.Context) error { return nil }))
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %v", err)
	}
}

func TestMustRegisterPanics(t *testing.T) {
	r := NewRegistry()
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on invalid command")
		}
	}()
	r.MustRegister(New("get", []Param{{Type: value.String}}, noop))
}

func TestConfigErrorMessage(t *testing.T) {
	err := &ConfigError{Command: "get", Param: 1, Reason: "missing argument name"}
	want := `invalid command "get": parameter 1: missing argument name`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	err = &ConfigError{Command: "get", Param: -1, Reason: "no function"}
	want = `invalid command "get": no function`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
