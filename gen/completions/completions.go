// Package completions registers carapace shell completions for the options
// of a command generated with the gen/flags package.
package completions

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rsteube/carapace"
	"github.com/spf13/cobra"

	"github.com/reeflective/optparse"
	"github.com/reeflective/optparse/internal/index"
	"github.com/reeflective/optparse/internal/option"
)

// Generate registers completions on cmd for the options defined by defs.
// The command must hand all its words to the parser (see gen/flags.Command),
// so cobra flag completion never runs: words are completed as positionals
// instead, either as option names or as the value of the option preceding
// them. Options with choices complete them, options with a completion hint
// complete files or directories, and extra actions (by option identity)
// take precedence over both.
//
// It fails if the definitions cannot be used for parsing.
func Generate[K comparable](cmd *cobra.Command, defs []optparse.Definition[K], extra map[K]carapace.Action) (*carapace.Carapace, error) {
	all := make([]option.Definition[K], len(defs))
	for i, def := range defs {
		all[i] = def
	}

	idx, err := index.Build(all)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cmd.Name(), err)
	}

	comps := carapace.Gen(cmd)

	words := &completer[K]{index: idx, defs: all, extra: extra}
	comps.PositionalAnyCompletion(carapace.ActionCallback(words.complete))

	return comps, nil
}

// completer completes the words of a command line.
type completer[K comparable] struct {
	index *index.Index[K]
	defs  []option.Definition[K]
	extra map[K]carapace.Action
}

func (c *completer[K]) complete(ctx carapace.Context) carapace.Action {
	if def := c.pending(ctx.Args); def != nil {
		return c.values(def)
	}

	return carapace.ActionMultiParts("=", func(ctx carapace.Context) carapace.Action {
		switch len(ctx.Parts) {
		case 0:
			return c.names()
		case 1:
			def, found := c.lookup(ctx.Parts[0])
			if !found || !def.Flag().HasValue {
				return carapace.ActionValues()
			}

			return c.values(def)
		default:
			return carapace.ActionValues()
		}
	})
}

// pending returns the option whose value is the word being completed,
// if the previous words leave one waiting for its value.
func (c *completer[K]) pending(args []string) option.Definition[K] {
	var pending option.Definition[K]

	for _, arg := range args {
		if pending != nil {
			pending = nil

			continue
		}

		pending = c.expectingValue(arg)
	}

	return pending
}

// expectingValue returns the option taking the next word as value, if any.
// Bundled shorts share the same next word, so the first one is enough.
func (c *completer[K]) expectingValue(arg string) option.Definition[K] {
	if strings.Contains(arg, "=") {
		return nil
	}

	switch {
	case strings.HasPrefix(arg, "--"):
		if def, found := c.index.Long(strings.TrimPrefix(arg, "--")); found && mandatoryValue(def) {
			return def
		}
	case strings.HasPrefix(arg, "-"):
		for _, short := range strings.TrimPrefix(arg, "-") {
			if def, found := c.index.Short(short); found && mandatoryValue(def) {
				return def
			}
		}
	}

	return nil
}

func (c *completer[K]) lookup(name string) (option.Definition[K], bool) {
	if strings.HasPrefix(name, "--") {
		return c.index.Long(strings.TrimPrefix(name, "--"))
	}

	short := strings.TrimPrefix(name, "-")
	if short == name || utf8.RuneCountInString(short) != 1 {
		return nil, false
	}

	alias, _ := utf8.DecodeRuneInString(short)

	return c.index.Short(alias)
}

// names completes all aliases of visible options, with their usage.
func (c *completer[K]) names() carapace.Action {
	var described []string

	for _, def := range c.defs {
		flag := def.Flag()
		if flag.Hidden {
			continue
		}

		for _, name := range flag.Names() {
			described = append(described, name, flag.Usage)
		}
	}

	return carapace.ActionValuesDescribed(described...)
}

func (c *completer[K]) values(def option.Definition[K]) carapace.Action {
	if action, found := c.extra[def.ID()]; found {
		return action
	}

	if action, found := completionAction(def.Flag()); found {
		return action
	}

	return carapace.ActionValues()
}

// completionAction returns the builtin completion of a flag, if any.
func completionAction(flag *option.Flag) (carapace.Action, bool) {
	switch {
	case len(flag.Choices) > 0:
		return carapace.ActionValues(flag.Choices...), true
	case flag.Completion == option.CompleteFiles:
		return carapace.ActionFiles(), true
	case flag.Completion == option.CompleteDirs:
		return carapace.ActionDirectories(), true
	}

	return carapace.ActionValues(), false
}

func mandatoryValue[K comparable](def option.Definition[K]) bool {
	return def.Flag().HasValue && !def.Flag().OptionalValue
}
