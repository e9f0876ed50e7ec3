package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Dicklesworthstone/clitool/pkg/value"
)

// pair is a key=value argument.
type pair struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// pairType parses "key=value". The value may be empty or contain '='.
var pairType = value.New("pair", parsePair)

func init() {
	if err := value.Register(pairType); err != nil {
		panic(err)
	}
}

func parsePair(s string) (pair, error) {
	key, val, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return pair{}, fmt.Errorf("want key=value, got %q", s)
	}
	return pair{Key: key, Value: val}, nil
}

func (p pair) Text(w io.Writer) error {
	_, err := fmt.Fprintf(w, "key %s\nvalue %s\n", p.Key, p.Value)
	return err
}
