package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chatscript-lang/chatscript/runtime/complete"
	"github.com/chatscript-lang/chatscript/runtime/parser"
)

func newSuggestCmd(opts *rootOptions) *cobra.Command {
	var (
		offset int
		prefix string
	)

	cmd := &cobra.Command{
		Use:   "suggest <file>",
		Short: "Suggest completions for a cursor position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, parseOpts, err := setup(opts)
			if err != nil {
				return err
			}
			src, err := readScript(args[0])
			if err != nil {
				return err
			}

			// Completion targets mid-edit documents, so parse leniently.
			parseOpts = append(parseOpts, parser.WithoutVerification())
			res, err := parser.Parse(src, parseOpts...)
			if err != nil {
				return err
			}

			engine := complete.New(reg, nil)
			out := cmd.OutOrStdout()
			for _, s := range engine.At(res.Index, offset, prefix) {
				fmt.Fprintf(out, "%s\t%s\n", s.Kind, s.Text)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "Rune offset of the cursor")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Partial text already typed at the cursor")
	return cmd
}
