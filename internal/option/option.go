// Package option holds the definition model shared by the index,
// the parser and the help renderer.
package option

import (
	"fmt"
	"strings"
)

// Completion is a hint for shell completion of an option value.
type Completion int

const (
	// CompleteNone does not complete the value.
	CompleteNone Completion = iota
	// CompleteFiles completes file paths.
	CompleteFiles
	// CompleteDirs completes directories.
	CompleteDirs
)

// DefaultPlaceholder is used in help when an option has none.
const DefaultPlaceholder = "value"

// Flag holds everything about an option that does not depend on
// the type of its value.
type Flag struct {
	Shorts        []rune     // single character aliases
	Longs         []string   // word aliases
	Usage         string     // help message
	Placeholder   string     // placeholder for the option's value
	HasValue      bool       // a value may follow the option
	OptionalValue bool       // the value is only accepted inline
	Required      bool       // the option _must_ be determined after parsing
	ShortCircuit  bool       // presence suppresses mandatory checks
	Hidden        bool       // option hidden from help
	Choices       []string   // if non empty, only these raw values are allowed
	EnvNames      []string   // environment variables consulted when absent
	Completion    Completion // completion hint for the value
}

// Definition is a fully configured option: its metadata, and the typed
// behavior (conversion, validation, default) hidden behind untyped methods.
type Definition[K comparable] interface {
	// ID returns the option identity.
	ID() K

	// Flag returns the option metadata. It must not be modified.
	Flag() *Flag

	// Bind converts and validates a raw value.
	Bind(raw string) (any, error)

	// DefaultValue returns the default value, if one was declared.
	DefaultValue() (any, bool)
}

// Names returns all aliases of the flag, shorts first, each prefixed
// with its command-line indicator.
func (f *Flag) Names() []string {
	names := make([]string, 0, len(f.Shorts)+len(f.Longs))

	for _, short := range f.Shorts {
		names = append(names, "-"+string(short))
	}

	for _, long := range f.Longs {
		names = append(names, "--"+long)
	}

	return names
}

// Alias returns the alias naming the flag in messages: its first long
// alias, or its first short one.
func (f *Flag) Alias() string {
	switch {
	case len(f.Longs) > 0:
		return "--" + f.Longs[0]
	case len(f.Shorts) > 0:
		return "-" + string(f.Shorts[0])
	}

	return ""
}

// ValueName returns the placeholder used for the option value.
func (f *Flag) ValueName() string {
	if f.Placeholder != "" {
		return f.Placeholder
	}

	return DefaultPlaceholder
}

// FormatValue returns a printable representation of a bound value.
func FormatValue(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case fmt.Stringer:
		return v.String()
	case []string:
		return strings.Join(v, ",")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// IsStringFalsy returns true if a string is considered "falsy" (empty, "false", "no", or "0").
func IsStringFalsy(s string) bool {
	return s == "" || s == "false" || s == "no" || s == "0"
}
