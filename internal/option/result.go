package option

// Source tells where the value of a resolved option comes from.
type Source int

const (
	// CommandLine values were supplied in the argument tokens.
	CommandLine Source = iota
	// Environment values were read from an environment variable.
	Environment
	// Config values were read from a configuration source.
	Config
	// Default values were declared on the definition.
	Default
)

func (s Source) String() string {
	switch s {
	case CommandLine:
		return "command-line"
	case Environment:
		return "environment"
	case Config:
		return "config"
	case Default:
		return "default"
	}

	return "unknown"
}

// Result is a resolved option: its definition, the bound value (nil for
// options supplied without one) and where this value comes from.
type Result[K comparable] struct {
	Definition Definition[K]
	Value      any
	Source     Source
}

// Results maps option identities to their resolved option.
type Results[K comparable] map[K]*Result[K]
