// Package config loads option values from configuration files, to be
// used as fallbacks for options absent from the command line:
//
//	values, err := config.LoadTOML(file)
//	results, err := optparse.Parse(defs, args, optparse.WithSource(values))
//
// Keys are matched against option long aliases. Nested tables are flattened,
// their keys joined with a dash ("server": {"port": 80} is "server-port").
// Scalars are formatted as they would be typed on the command line, and
// lists are joined with commas.
package config

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultDivider joins the keys of nested tables.
const DefaultDivider = "-"

// Values holds raw option values by long alias.
type Values map[string]string

// Lookup returns the raw value of a long alias.
func (v Values) Lookup(name string) (string, bool) {
	val, found := v[name]

	return val, found
}

// Keys returns all keys, sorted.
func (v Values) Keys() []string {
	keys := make([]string, 0, len(v))
	for key := range v {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// LoadTOML reads a TOML document.
func LoadTOML(reader io.Reader) (Values, error) {
	var doc map[string]any

	if _, err := toml.NewDecoder(reader).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode TOML: %w", err)
	}

	return Flatten(doc, DefaultDivider)
}

// LoadYAML reads a YAML document, whose root must be a mapping.
func LoadYAML(reader io.Reader) (Values, error) {
	var doc map[string]any

	if err := yaml.NewDecoder(reader).Decode(&doc); err != nil {
		if err == io.EOF {
			return Values{}, nil
		}

		return nil, fmt.Errorf("failed to decode YAML: %w", err)
	}

	return Flatten(doc, DefaultDivider)
}

// Flatten converts a decoded document to raw values.
func Flatten(doc map[string]any, divider string) (Values, error) {
	values := make(Values)

	if err := flatten(values, "", divider, doc); err != nil {
		return nil, err
	}

	return values, nil
}

func flatten(values Values, prefix, divider string, doc map[string]any) error {
	for key, val := range doc {
		name := key
		if prefix != "" {
			name = prefix + divider + key
		}

		switch typed := val.(type) {
		case map[string]any:
			if err := flatten(values, name, divider, typed); err != nil {
				return err
			}
		case []any:
			items := make([]string, 0, len(typed))

			for _, item := range typed {
				raw, err := scalar(item)
				if err != nil {
					return fmt.Errorf("key %s: %w", name, err)
				}

				items = append(items, raw)
			}

			values[name] = strings.Join(items, ",")
		default:
			raw, err := scalar(val)
			if err != nil {
				return fmt.Errorf("key %s: %w", name, err)
			}

			values[name] = raw
		}
	}

	return nil
}

func scalar(val any) (string, error) {
	switch typed := val.(type) {
	case nil:
		return "", nil
	case string:
		return typed, nil
	case map[string]any, []any:
		return "", fmt.Errorf("unsupported nested value of type %T", val)
	case fmt.Stringer:
		return typed.String(), nil
	default:
		return fmt.Sprintf("%v", typed), nil
	}
}
