// Package value defines the coercion rules that turn a raw argument token into
// a typed Go value. Every command parameter carries exactly one Type, and the
// argument binding layer uses it to parse the matching positional token.
package value

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Type is a named coercion rule.
type Type interface {
	// Name identifies the rule in usage text and manifests (e.g. "int").
	Name() string
	// Parse coerces a raw token.
	Parse(raw string) (any, error)
}

// Typed is a Type whose parsed values are statically known to be T.
type Typed[T any] struct {
	name  string
	parse func(string) (T, error)
}

// New creates a typed coercion rule.
func New[T any](name string, parse func(string) (T, error)) Typed[T] {
	return Typed[T]{name: name, parse: parse}
}

// Name implements Type.
func (t Typed[T]) Name() string { return t.name }

// Parse implements Type.
func (t Typed[T]) Parse(raw string) (any, error) {
	return t.ParseTyped(raw)
}

// ParseTyped coerces raw without boxing the result.
func (t Typed[T]) ParseTyped(raw string) (T, error) {
	if t.parse == nil {
		var zero T
		return zero, fmt.Errorf("type %q has no parser", t.name)
	}
	return t.parse(raw)
}

// Valid reports whether t was built with New (the zero Typed is invalid).
func (t Typed[T]) Valid() bool {
	return t.name != "" && t.parse != nil
}

// Built-in coercion rules. Tokens are parsed as given; surrounding whitespace
// is an error for every numeric and boolean type.
var (
	String   = New("string", func(s string) (string, error) { return s, nil })
	Int      = New("int", parseInt)
	Int64    = New("int64", func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) })
	Uint     = New("uint", parseUint)
	Float    = New("float", func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
	Bool     = New("bool", strconv.ParseBool)
	Duration = New("duration", time.ParseDuration)
	UUID     = New("uuid", uuid.Parse)
)

func parseInt(s string) (int, error) {
	n, err := strconv.ParseInt(s, 10, 0)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func parseUint(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 0)
	if err != nil {
		return 0, err
	}
	return uint(n), nil
}

// Converter registry. Built-ins are always present; tools may add their own
// structured types with Register.
var (
	registryMu sync.RWMutex
	registry   = map[string]Type{}
)

func init() {
	for _, t := range []Type{String, Int, Int64, Uint, Float, Bool, Duration, UUID} {
		registry[t.Name()] = t
	}
}

// Register adds a converter to the registry. It returns an error if the name
// is empty or already taken.
func Register(t Type) error {
	if t == nil || t.Name() == "" {
		return fmt.Errorf("converter must have a name")
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[t.Name()]; exists {
		return fmt.Errorf("converter %s already registered", t.Name())
	}
	registry[t.Name()] = t
	return nil
}

// Lookup returns the converter registered under name.
func Lookup(name string) (Type, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	t, ok := registry[name]
	return t, ok
}

// Names returns all registered converter names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
