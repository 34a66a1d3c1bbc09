package optparse

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeflective/optparse/convert"
)

func newHelpParser() *Parser[string] {
	defs := Set[string](
		Marker("help", "h", "help").ShortCircuit().Usage("Show this help"),
		Value("config", convert.String, "c", "config", "conf").
			Mandatory().
			Placeholder("file").
			Usage("Configuration file"),
		Value("port", convert.Int[int](), "p", "port").
			Default(8080).
			Usage("Listening port\nUse 0 for a random one"),
		Value("level", convert.String, "level").OptionalValue().Default("info"),
		Value("secret", convert.String, "secret").Hidden(),
	)

	return NewParser(defs)
}

const expectedHelp = `NAME:
    server

COMMAND:
    server [OPTIONS]

SYNOPSIS:
    Serves things.

    Really.

MANDATORY OPTIONS:
    -c, --config, --conf=<file>
        Configuration file

OPTIONS:
    -h, --help
        Show this help
    -p, --port=<value> (default: 8080)
        Listening port
        Use 0 for a random one
    --level(=<value>) (default: info)

AUTHOR:
    Jane Doe

REPORTING BUGS:
    bugs@example.com

`

func TestHelp_Layout(t *testing.T) {
	t.Parallel()

	parser := newHelpParser()
	parser.SetBoilerplate(Boilerplate{
		Name:     "server",
		Usage:    "server [OPTIONS]",
		Synopsis: "Serves things.\n\nReally.",
		Author:   "Jane Doe",
		Bugs:     "bugs@example.com",
	})

	text, err := parser.Help()
	require.NoError(t, err)
	assert.Equal(t, expectedHelp, text)

	again, err := parser.Help()
	require.NoError(t, err)
	assert.Equal(t, text, again, "help rendering is idempotent")

	// Parsing does not alter rendering.
	_, err = parser.Parse([]string{"--config", "a.toml", "-p=1"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, parser.WriteHelp(&buf))
	assert.Equal(t, expectedHelp, buf.String())
}

func TestHelp_NoMandatorySection(t *testing.T) {
	t.Parallel()

	parser := NewParser(Set[string](Marker("verbose", "v")))
	parser.SetBoilerplate(Boilerplate{Name: "tool"})

	text, err := parser.Help()
	require.NoError(t, err)
	assert.NotContains(t, text, "MANDATORY OPTIONS:")
	assert.Contains(t, text, "OPTIONS:\n    -v\n\n")
	assert.Contains(t, text, "AUTHOR:\n\n\n", "empty sections are still rendered")
}

func TestHelp_BoilerplateNotSet(t *testing.T) {
	t.Parallel()

	parser := newHelpParser()

	text, err := parser.Help()
	require.ErrorIs(t, err, ErrBoilerplateNotSet)
	assert.Empty(t, text)

	var buf bytes.Buffer
	require.ErrorIs(t, parser.WriteHelp(&buf), ErrBoilerplateNotSet)
	assert.Zero(t, buf.Len(), "nothing is written on failure")
}

func TestHelp_Colored(t *testing.T) {
	t.Parallel()

	parser := newHelpParser()
	parser.SetBoilerplate(Boilerplate{Name: "server"})

	text, err := parser.Help(Colored())
	require.NoError(t, err)

	bold := color.New(color.Bold)
	bold.EnableColor()

	assert.True(t, strings.HasPrefix(text, bold.Sprint("NAME:")+"\n"))
	assert.Contains(t, text, bold.Sprint("MANDATORY OPTIONS:"))
	assert.Contains(t, text, "    -h, --help\n", "option lines are never colored")
}
