// Package command holds command metadata and the command registry.
//
// A tool exposes a static table of commands. Each command has a name, an
// ordered list of parameters (name + value type) and a typed function fixed at
// construction time:
//
//	get := command.Func2("get",
//		command.Arg[string]{Name: "name", Type: value.String},
//		command.Arg[int]{Name: "length", Type: value.Int},
//		func(ctx context.Context, name string, length int) error { ... })
//
// Discover validates the table and indexes it by name. Validation failures
// are *ConfigError values and happen before any argument is parsed.
package command
