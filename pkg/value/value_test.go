package value

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func TestBuiltinParse(t *testing.T) {
	id := uuid.MustParse("6f1c1e6a-3b58-4c55-9d1e-8a4a8c3f0b21")

	tests := []struct {
		name string
		typ  Type
		raw  string
		want any
	}{
		{"string passthrough", String, "  spaced ", "  spaced "},
		{"int", Int, "42", 42},
		{"int negative", Int, "-7", -7},
		{"int64", Int64, "9000000000", int64(9000000000)},
		{"uint", Uint, "3", uint(3)},
		{"float", Float, "2.5", 2.5},
		{"bool", Bool, "true", true},
		{"duration", Duration, "1m30s", 90 * time.Second},
		{"uuid", UUID, id.String(), id},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.typ.Parse(tt.raw)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.raw, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

func TestBuiltinParseRejectsMalformed(t *testing.T) {
	tests := []struct {
		typ Type
		raw string
	}{
		{Int, "forty-two"},
		{Int, ""},
		{Int, " 42 "},
		{Int64, " 42 "},
		{Uint, "3 "},
		{Float, " 2.5"},
		{Bool, "true\n"},
		{Uint, "-1"},
		{Float, "x"},
		{Bool, "maybe"},
		{Duration, "10"},
		{UUID, "not-a-uuid"},
	}

	for _, tt := range tests {
		t.Run(tt.typ.Name()+"/"+tt.raw, func(t *testing.T) {
			if _, err := tt.typ.Parse(tt.raw); err == nil {
				t.Errorf("Parse(%q) as %s should fail", tt.raw, tt.typ.Name())
			}
		})
	}
}

func TestZeroTypedIsInvalid(t *testing.T) {
	var zero Typed[string]
	if zero.Valid() {
		t.Error("zero Typed should not be valid")
	}
	if _, err := zero.Parse("x"); err == nil {
		t.Error("zero Typed should fail to parse")
	}
	if !String.Valid() {
		t.Error("String should be valid")
	}
}

func TestRegisterCustomConverter(t *testing.T) {
	upper := New("upper-"+t.Name(), func(s string) (string, error) {
		return strings.ToUpper(s), nil
	})
	if err := Register(upper); err != nil {
		t.Fatalf("Register: %v", err)
	}
	got, ok := Lookup(upper.Name())
	if !ok {
		t.Fatal("registered converter not found")
	}
	v, err := got.Parse("abc")
	if err != nil || v != "ABC" {
		t.Errorf("Parse = %v, %v; want ABC", v, err)
	}

	if err := Register(upper); err == nil {
		t.Error("expected duplicate registration to fail")
	}
	if err := Register(Typed[int]{}); err == nil {
		t.Error("expected unnamed converter to be rejected")
	}
}

func TestNamesIncludesBuiltins(t *testing.T) {
	names := Names()
	for _, want := range []string{"string", "int", "uuid", "duration"} {
		found := false
		for _, n := range names {
			if n == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Names() missing %q: %v", want, names)
		}
	}
}
