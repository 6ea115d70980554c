// chatscript is the command-line front end for the script parser: it
// parses files, answers cursor queries against the parse indexes, serves
// completions, watches files for live re-parsing and writes deterministic
// snapshots.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chatscript-lang/chatscript/runtime/config"
	"github.com/chatscript-lang/chatscript/runtime/parser"
	"github.com/chatscript-lang/chatscript/runtime/registry"
)

type rootOptions struct {
	configPath   string
	commandsPath string
	strictEscape bool
	legacyGetVar bool
	lenient      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "chatscript",
		Short:         "Parse and inspect chat command scripts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to a chatscript.yaml (default: standard locations)")
	pf.StringVar(&opts.commandsPath, "commands", "", "Path to a JSON command definitions file")
	pf.BoolVar(&opts.strictEscape, "strict-escape", false, "Start parsing in strict escaping mode")
	pf.BoolVar(&opts.legacyGetVar, "legacy-getvar", false, "Enable the legacy getter macro rewrite")
	pf.BoolVar(&opts.lenient, "lenient", false, "Parse without verification (mid-edit mode)")

	rootCmd.AddCommand(
		newParseCmd(opts),
		newInspectCmd(opts),
		newSuggestCmd(opts),
		newWatchCmd(opts),
		newSnapshotCmd(opts),
	)
	return rootCmd
}

// setup resolves configuration and builds the registry plus the parse
// options shared by every subcommand. Command-line flags win over the
// config file.
func setup(opts *rootOptions) (*registry.Registry, []parser.Option, error) {
	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = config.LoadFrom(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, nil, err
	}

	reg := registry.Builtin()
	definitions := cfg.Registry.Definitions
	if opts.commandsPath != "" {
		definitions = opts.commandsPath
	}
	if definitions != "" {
		if err := reg.LoadDefinitions(definitions); err != nil {
			return nil, nil, fmt.Errorf("loading command definitions: %w", err)
		}
	}

	flags := cfg.ParserFlags()
	if opts.strictEscape {
		flags.StrictEscape = true
	}
	if opts.legacyGetVar {
		flags.LegacyGetVar = true
	}

	parseOpts := []parser.Option{
		parser.WithRegistry(reg),
		parser.WithFlags(flags),
	}
	if opts.lenient || cfg.Watch.Lenient {
		parseOpts = append(parseOpts, parser.WithoutVerification())
	}
	return reg, parseOpts, nil
}

func readScript(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading script: %w", err)
	}
	return string(data), nil
}
