package flags

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeflective/optparse"
	"github.com/reeflective/optparse/convert"
)

func testDefinitions() []optparse.Definition[string] {
	return optparse.Set[string](
		optparse.Marker("help", "h", "help").ShortCircuit().Usage("Show help"),
		optparse.Marker("verbose", "v"),
		optparse.Value("port", convert.Uint[uint16](), "p", "port").
			Default(22).
			Mandatory().
			Usage("Remote port"),
		optparse.Value("level", convert.String, "level").
			OptionalValue().
			Placeholder("LEVEL"),
		optparse.Value("lambda", convert.String, "λ").Hidden(),
	)
}

func TestFlagSet(t *testing.T) {
	t.Parallel()

	set, err := FlagSet("test", testDefinitions())
	require.NoError(t, err)

	tests := []struct {
		name        string
		shorthand   string
		typ         string
		defValue    string
		noOptDefVal string
		annotations []string
		hidden      bool
	}{
		{name: "help", shorthand: "h", typ: "bool", defValue: "false", noOptDefVal: "true", annotations: []string{"short-circuit"}},
		{name: "v", shorthand: "v", typ: "bool", defValue: "false", noOptDefVal: "true"},
		{name: "port", shorthand: "p", typ: "value", defValue: "22", annotations: []string{"required"}},
		{name: "level", typ: "level", noOptDefVal: " "},
		{name: "λ", typ: "value", hidden: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			flag := set.Lookup(test.name)
			require.NotNil(t, flag)

			assert.Equal(t, test.shorthand, flag.Shorthand)
			assert.Equal(t, test.typ, flag.Value.Type())
			assert.Equal(t, test.defValue, flag.DefValue)
			assert.Equal(t, test.noOptDefVal, flag.NoOptDefVal)
			assert.Equal(t, test.annotations, flag.Annotations["flags"])
			assert.Equal(t, test.hidden, flag.Hidden)
		})
	}
}

func TestFlagSet_RawValues(t *testing.T) {
	t.Parallel()

	set, err := FlagSet("test", testDefinitions())
	require.NoError(t, err)

	require.NoError(t, set.Parse([]string{"--port", "2222", "-v"}))

	port := set.Lookup("port")
	assert.Equal(t, "2222", port.Value.String())
	assert.True(t, port.Changed)
	assert.Equal(t, "true", set.Lookup("v").Value.String())
}

func TestFlagSet_NameConflicts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		defs      []optparse.Definition[string]
		flags     map[string]string // name: shorthand
		conflicts []string
	}{
		{
			name: "short alias after long alias",
			defs: optparse.Set[string](
				optparse.Value("long", convert.String, "--v"),
				optparse.Marker("short", "v"),
			),
			flags:     map[string]string{"v": ""},
			conflicts: []string{"option short: -v"},
		},
		{
			name: "long alias after short alias",
			defs: optparse.Set[string](
				optparse.Marker("short", "v"),
				optparse.Value("long", convert.String, "--v"),
			),
			flags:     map[string]string{"v": "v"},
			conflicts: []string{"option long: --v"},
		},
		{
			name: "fallback on another alias",
			defs: optparse.Set[string](
				optparse.Marker("short", "v"),
				optparse.Value("long", convert.String, "x", "--v", "--value"),
			),
			flags: map[string]string{"v": "v", "value": "x"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			var (
				set *pflag.FlagSet
				err error
			)

			require.NotPanics(t, func() { set, err = FlagSet("test", test.defs) })

			if len(test.conflicts) == 0 {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrNameConflict)

				for _, conflict := range test.conflicts {
					assert.Contains(t, err.Error(), conflict)
				}
			}

			got := map[string]string{}
			set.VisitAll(func(flag *pflag.Flag) { got[flag.Name] = flag.Shorthand })
			assert.Equal(t, test.flags, got)
		})
	}
}
