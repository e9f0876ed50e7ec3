// Package binding bridges command parameters to the argument parser (cobra).
//
// Declare turns a command into a cobra sub-command with one positional
// argument per parameter, coerced by the parameter's value type. Parser
// composes the sub-commands under a root command that carries the global
// flags, and captures the selected sub-command as an Invocation. Extract reads
// an Invocation back into one value per parameter, in declaration order.
//
// Positional tokens that start with '-' are read as flags. Pass them after
// "--" (e.g. `tool get -- -7`).
package binding
