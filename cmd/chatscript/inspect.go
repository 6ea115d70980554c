package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chatscript-lang/chatscript/runtime/parser"
)

func newInspectCmd(opts *rootOptions) *cobra.Command {
	var offset int

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Resolve a cursor offset against the parse indexes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, parseOpts, err := setup(opts)
			if err != nil {
				return err
			}
			src, err := readScript(args[0])
			if err != nil {
				return err
			}

			res, err := parser.Parse(src, parseOpts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ix := res.Index

			if sp, i := ix.ClosureAt(offset); i >= 0 {
				fmt.Fprintf(out, "closure: #%d [%d,%d)\n", i, sp.Start, sp.End)
			} else {
				fmt.Fprintln(out, "closure: none")
			}

			if ex, ok := ix.CommandAt(offset); ok {
				fmt.Fprintf(out, "command: %s\n", describeExecutor(ex))
			} else {
				fmt.Fprintln(out, "command: none")
			}

			if m, ok := ix.MacroAt(offset); ok {
				fmt.Fprintf(out, "macro: %s [%d,%d)\n", m.Name, m.Span.Start, m.Span.End)
			} else {
				fmt.Fprintln(out, "macro: none")
			}

			if scope := ix.ScopeAt(offset); scope != nil {
				fmt.Fprintf(out, "scope: %s\n", strings.Join(scope.Names(), " "))
			} else {
				fmt.Fprintln(out, "scope: none")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "Rune offset to resolve")
	return cmd
}
