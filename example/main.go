package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/reeflective/optparse"
	"github.com/reeflective/optparse/config"
	"github.com/reeflective/optparse/example/opts"
	"github.com/reeflective/optparse/gen/completions"
	genflags "github.com/reeflective/optparse/gen/flags"
)

//
// This file contains the root command of a small program connecting
// to a machine, showing how to use the parser with cobra and carapace.
//

const version = "v0.1.0"

// level is raised by --verbose, for the parser traces as well.
var level = new(slog.LevelVar)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	options := opts.New()

	parseOpts := []optparse.ParseOption{
		optparse.FromEnv(),
		optparse.WithEnvPrefix("EXAMPLE_"),
		optparse.WithLogger(slog.Default()),
	}

	// Options given in a file have a lower priority than the command
	// line and the environment.
	if path, found := os.LookupEnv("EXAMPLE_CONFIG"); found {
		values, err := load(path)
		if err != nil {
			slog.Error("Failed to load configuration.", "path", path, "error", err)
			os.Exit(1)
		}

		parseOpts = append(parseOpts, optparse.WithSource(values))
	}

	parser := optparse.NewParser(options.Definitions(), parseOpts...)

	parser.SetBoilerplate(optparse.Boilerplate{
		Name:     filepath.Base(os.Args[0]),
		Usage:    filepath.Base(os.Args[0]) + " [OPTIONS] --target=<user@host>",
		Synopsis: "Connects to a machine. Options are read from the command line, then\nfrom EXAMPLE_* variables, then from the file named by EXAMPLE_CONFIG.",
		Author:   "Maxime Landon",
		Bugs:     "https://github.com/reeflective/optparse/issues",
	})

	rootCmd, err := genflags.Command("", parser, func(cmd *cobra.Command, args []string, results optparse.Results[opts.ID]) error {
		return run(cmd, parser, options, args, results)
	})
	if err != nil {
		slog.Warn("Some options are not shown in cobra usage.", "error", err)
	}

	rootCmd.Short = "Connect to a machine."

	// Completions
	comps, err := completions.Generate(rootCmd, parser.Definitions(), options.Completions())
	if err != nil {
		slog.Error("Invalid options.", "error", err)
		os.Exit(1)
	}

	comps.Standalone()

	// Execute the command (application here)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, parser *optparse.Parser[opts.ID], options *opts.Options, args []string, results optparse.Results[opts.ID]) error {
	switch {
	case options.Help.IsSet(results):
		return parser.WriteHelp(cmd.OutOrStdout(), optparse.Colored())
	case options.Version.IsSet(results):
		fmt.Fprintln(cmd.OutOrStdout(), version)

		return nil
	}

	logLevel, found := options.Level.From(results)
	if !found {
		logLevel = "info"
	}

	if options.Verbose.IsSet(results) {
		logLevel = "debug"
	}

	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return err
	}

	// Parse again, so that the parser traces are shown.
	if level.Level() == slog.LevelDebug {
		var err error
		if results, err = parser.Parse(args); err != nil {
			return err
		}
	}

	target, _ := options.Target.From(results)
	port, _ := options.Port.From(results)

	for id, res := range results {
		slog.Debug("Resolved option.", "option", id, "source", res.Source, "value", res.Value)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "connecting to %s on port %d (level %s)\n", target, port, logLevel)

	return nil
}

// load reads a configuration file, based on its extension.
func load(path string) (config.Values, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return config.LoadYAML(file)
	default:
		return config.LoadTOML(file)
	}
}
