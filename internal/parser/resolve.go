package parser

import (
	flagerrors "github.com/reeflective/optparse/internal/errors"
	"github.com/reeflective/optparse/internal/option"
)

// resolve finalizes the results of the token scan: short-circuit
// options win over everything, otherwise absent options are looked
// up in fallbacks and mandatory ones are enforced.
func resolve[K comparable](defs []option.Definition[K], results option.Results[K], opts *Opts) (option.Results[K], error) {
	shortCircuit := make(option.Results[K])

	for id, res := range results {
		if res.Definition.Flag().ShortCircuit {
			shortCircuit[id] = res
		}
	}

	if len(shortCircuit) > 0 {
		opts.Logger.Debug("Short-circuit option supplied, discarding other results.",
			"kept", len(shortCircuit), "discarded", len(results)-len(shortCircuit))

		return shortCircuit, nil
	}

	for _, def := range defs {
		if _, found := results[def.ID()]; found {
			continue
		}

		res, err := fallback(def, opts)
		if err != nil {
			return nil, err
		}

		if res != nil {
			opts.Logger.Debug("Resolved absent option.", "option", def.ID(), "source", res.Source)
			results[def.ID()] = res

			continue
		}

		if flag := def.Flag(); flag.Required {
			return nil, flagerrors.ForOption(flagerrors.ErrMissingMandatoryOption, def.ID(), flag.Usage)
		}
	}

	return results, nil
}

// fallback looks for a value in the environment, then in configuration
// sources, and finally in the definition default. Nil means absent.
func fallback[K comparable](def option.Definition[K], opts *Opts) (*option.Result[K], error) {
	flag := def.Flag()

	if opts.Env != nil {
		for _, name := range flag.EnvNames {
			if raw, found := opts.Env(opts.EnvPrefix + name); found {
				return external(def, raw, option.Environment)
			}
		}
	}

	for _, source := range opts.Sources {
		for _, long := range flag.Longs {
			if raw, found := source(long); found {
				return external(def, raw, option.Config)
			}
		}
	}

	if !flag.HasValue {
		return nil, nil
	}

	if val, found := def.DefaultValue(); found {
		return &option.Result[K]{Definition: def, Value: val, Source: option.Default}, nil
	}

	return nil, nil
}

// external binds a value found outside the command line. Markers are
// present unless the value is falsy, and empty optional values stay nil.
func external[K comparable](def option.Definition[K], raw string, source option.Source) (*option.Result[K], error) {
	flag := def.Flag()
	res := &option.Result[K]{Definition: def, Source: source}

	switch {
	case !flag.HasValue:
		if option.IsStringFalsy(raw) {
			return nil, nil
		}
	case flag.OptionalValue && raw == "":
	default:
		val, err := bind(def, raw)
		if err != nil {
			return nil, err
		}

		res.Value = val
	}

	return res, nil
}
