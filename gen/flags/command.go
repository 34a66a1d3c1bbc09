package flags

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reeflective/optparse"
)

// RunFunc is called by a generated command with its raw arguments
// and the options resolved from them.
type RunFunc[K comparable] func(cmd *cobra.Command, args []string, results optparse.Results[K]) error

// Command returns a cobra command whose arguments are parsed by the given
// parser instead of cobra. The definitions are also registered as cobra
// flags, so that cobra usage and shell completions know about them, and
// the command help renders the parser help when its boilerplate is set.
//
// Options that cannot be registered as cobra flags are reported with
// ErrNameConflict: the command is still returned and still parses them.
func Command[K comparable](use string, parser *optparse.Parser[K], run RunFunc[K], opts ...optparse.ParseOption) (*cobra.Command, error) {
	if use == "" {
		use = os.Args[0]
	}

	cmd := &cobra.Command{
		Use:                use,
		Annotations:        map[string]string{},
		DisableFlagParsing: true,
		SilenceUsage:       true,
	}

	return cmd, Bind(cmd, parser, run, opts...)
}

// Bind makes an existing cobra command parse its arguments with parser.
// Its flags already registered take precedence over the options' aliases.
func Bind[K comparable](cmd *cobra.Command, parser *optparse.Parser[K], run RunFunc[K], opts ...optparse.ParseOption) error {
	cmd.DisableFlagParsing = true

	// Values following bundled shorts would be taken for subcommands.
	if cmd.Args == nil {
		cmd.Args = cobra.ArbitraryArgs
	}

	conflicts := generateTo(parser.Definitions(), cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		results, err := parser.Parse(args, opts...)
		if err != nil {
			return fmt.Errorf("%s: %w", cmd.Name(), err)
		}

		if run == nil {
			return nil
		}

		return run(cmd, args, results)
	}

	defaultHelp := cmd.HelpFunc()

	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if err := parser.WriteHelp(cmd.OutOrStdout()); err != nil {
			defaultHelp(cmd, args)
		}
	})

	if conflicts != nil {
		return fmt.Errorf("%s: %w", cmd.Name(), conflicts)
	}

	return nil
}
