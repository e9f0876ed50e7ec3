package command

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/Dicklesworthstone/clitool/pkg/value"
)

func TestFunc0InvokesWithoutArguments(t *testing.T) {
	called := false
	cmd := Func0("get", func(context.Context) error {
		called = true
		return nil
	})

	if len(cmd.Params()) != 0 {
		t.Fatalf("Func0 should declare no params, got %d", len(cmd.Params()))
	}
	if err := cmd.Invoke(context.Background(), nil); err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}
	if !called {
		t.Fatal("function was not called")
	}
}

func TestFunc1ForwardsStringUnmodified(t *testing.T) {
	const expected = "some-argument-string"
	var got string
	cmd := Func1("get", Arg[string]{Name: "s1", Type: value.String}, func(_ context.Context, s string) error {
		got = s
		return nil
	})

	if err := cmd.Invoke(context.Background(), []any{expected}); err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}
	if got != expected {
		t.Errorf("got %q, want %q", got, expected)
	}
}

func TestFunc3MixedArgumentsInDeclarationOrder(t *testing.T) {
	id := uuid.New()
	var (
		gotName   string
		gotID     uuid.UUID
		gotLength int
	)
	cmd := Func3("get",
		Arg[string]{Name: "name", Type: value.String},
		Arg[uuid.UUID]{Name: "uuid", Type: value.UUID},
		Arg[int]{Name: "length", Type: value.Int},
		func(_ context.Context, n string, u uuid.UUID, l int) error {
			gotName, gotID, gotLength = n, u, l
			return nil
		})

	wantParams := []string{"name:string", "uuid:uuid", "length:int"}
	var params []string
	for _, p := range cmd.Params() {
		params = append(params, p.Name+":"+p.TypeName())
	}
	if diff := cmp.Diff(wantParams, params); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}

	if err := cmd.Invoke(context.Background(), []any{"name", id, 42}); err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}
	if gotName != "name" || gotID != id || gotLength != 42 {
		t.Errorf("got (%q, %v, %d)", gotName, gotID, gotLength)
	}
}

func TestFunc4(t *testing.T) {
	var sum int
	cmd := Func4("sum",
		Arg[int]{Name: "a", Type: value.Int},
		Arg[int]{Name: "b", Type: value.Int},
		Arg[int]{Name: "c", Type: value.Int},
		Arg[bool]{Name: "double", Type: value.Bool},
		func(_ context.Context, a, b, c int, double bool) error {
			sum = a + b + c
			if double {
				sum *= 2
			}
			return nil
		})
	if err := cmd.Invoke(context.Background(), []any{1, 2, 3, true}); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if sum != 12 {
		t.Errorf("sum = %d, want 12", sum)
	}
}

func TestInvokeRejectsWrongShape(t *testing.T) {
	cmd := Func1("get", Arg[int]{Name: "n", Type: value.Int}, func(context.Context, int) error { return nil })

	if err := cmd.Invoke(context.Background(), nil); err == nil {
		t.Error("expected arity error")
	}
	err := cmd.Invoke(context.Background(), []any{"42"})
	if err == nil || !strings.Contains(err.Error(), "want int") {
		t.Errorf("expected type mismatch error, got %v", err)
	}
}

func TestInvokePropagatesFunctionError(t *testing.T) {
	boom := errors.New("boom")
	cmd := Func0("fail", func(context.Context) error { return boom })
	if err := cmd.Invoke(context.Background(), nil); !errors.Is(err, boom) {
		t.Errorf("Invoke error = %v, want %v", err, boom)
	}
}

func TestParamsReturnsCopy(t *testing.T) {
	cmd := New("get", []Param{{Name: "a", Type: value.String}}, func(context.Context, []any) error { return nil })
	params := cmd.Params()
	params[0].Name = "mutated"
	if cmd.Params()[0].Name != "a" {
		t.Error("Params() must not expose internal slice")
	}
}

func TestDescriptions(t *testing.T) {
	cmd := Func0("get", func(context.Context) error { return nil }).
		WithShort("fetch a thing").
		WithLong("Fetch a thing in detail.")
	if cmd.Short() != "fetch a thing" || cmd.Long() != "Fetch a thing in detail." {
		t.Errorf("unexpected descriptions %q / %q", cmd.Short(), cmd.Long())
	}
}
