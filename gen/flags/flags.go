// Package flags bridges option definitions with spf13/pflag and spf13/cobra,
// so that programs built on cobra can use this parser for their arguments
// while keeping cobra's command tree, help and completion machinery.
package flags

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/pflag"

	"github.com/reeflective/optparse"
	"github.com/reeflective/optparse/internal/option"
)

// ErrNameConflict is returned when an option cannot be mirrored under
// one of its aliases, because pflag already knows a flag by that name.
var ErrNameConflict = errors.New("flag name conflict")

// flagSet describes interface,
// that's implemented by pflag library and required by flags.
type flagSet interface {
	VarPF(value pflag.Value, name, shorthand, usage string) *pflag.Flag
	Lookup(name string) *pflag.Flag
	ShorthandLookup(name string) *pflag.Flag
}

var _ flagSet = (*pflag.FlagSet)(nil)

// FlagSet mirrors definitions into a new pflag.FlagSet. The set only
// documents the options: values set through it are kept as raw strings.
//
// Options whose names are all taken in the set are left out of it, and
// reported with ErrNameConflict along with the returned set.
func FlagSet[K comparable](name string, defs []optparse.Definition[K]) (*pflag.FlagSet, error) {
	set := pflag.NewFlagSet(name, pflag.ContinueOnError)

	return set, generateTo(defs, set)
}

// generateTo registers each definition under its first free long alias
// (or short one), with its first free short alias as shorthand.
func generateTo[K comparable](defs []optparse.Definition[K], dst flagSet) error {
	var conflicts []error

	for _, def := range defs {
		src := def.Flag()

		name, short := flagNames(src, dst)
		if name == "" {
			conflicts = append(conflicts, fmt.Errorf("%w: option %v: %s", ErrNameConflict, def.ID(), strings.Join(src.Names(), ", ")))

			continue
		}

		if short == "" && hasASCIIShort(src) {
			conflicts = append(conflicts, fmt.Errorf("%w: option %v: shorthand -%c", ErrNameConflict, def.ID(), src.Shorts[0]))
		}

		val := &rawValue{typ: valueType(src)}

		switch dv, found := def.DefaultValue(); {
		case !src.HasValue:
			val.raw = "false"
		case found:
			val.raw = option.FormatValue(dv)
		}

		flag := dst.VarPF(val, name, short, src.Usage)
		flag.DefValue = val.raw

		// Annotations used for things like completions
		flag.Annotations = map[string][]string{}

		var annots []string

		switch {
		case !src.HasValue:
			flag.NoOptDefVal = "true"
		case src.OptionalValue:
			flag.NoOptDefVal = " "
		}

		if src.Required {
			annots = append(annots, "required")
		}

		if src.ShortCircuit {
			annots = append(annots, "short-circuit")
		}

		flag.Hidden = src.Hidden

		// Register annotations to be used by clients and completers
		flag.Annotations["flags"] = annots
	}

	return errors.Join(conflicts...)
}

// flagNames returns the first alias not yet used as a flag name,
// and the first ASCII short alias not yet used as a shorthand.
// The name is empty when all aliases are taken.
func flagNames(src *option.Flag, dst flagSet) (name, short string) {
	// pflag shorthands are single ASCII characters.
	for _, alias := range src.Shorts {
		if alias < utf8.RuneSelf && dst.ShorthandLookup(string(alias)) == nil {
			short = string(alias)

			break
		}
	}

	candidates := append([]string{}, src.Longs...)
	for _, alias := range src.Shorts {
		candidates = append(candidates, string(alias))
	}

	for _, candidate := range candidates {
		if dst.Lookup(candidate) == nil {
			return candidate, short
		}
	}

	return "", ""
}

func hasASCIIShort(src *option.Flag) bool {
	for _, alias := range src.Shorts {
		if alias < utf8.RuneSelf {
			return true
		}
	}

	return false
}

func valueType(src *option.Flag) string {
	if !src.HasValue {
		return "bool"
	}

	return strings.ToLower(src.ValueName())
}

// rawValue is a pflag.Value storing its raw string.
type rawValue struct {
	raw string
	typ string
}

func (v *rawValue) Set(s string) error {
	v.raw = s

	return nil
}

func (v *rawValue) String() string { return v.raw }

func (v *rawValue) Type() string { return v.typ }
