package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chatscript-lang/chatscript/core/scriptfmt"
	"github.com/chatscript-lang/chatscript/runtime/parser"
)

func newSnapshotCmd(opts *rootOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "snapshot <file>",
		Short: "Write a deterministic binary snapshot of a parse result",
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

			if outPath == "" {
				outPath = args[0] + ".snap"
			}
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating snapshot file: %w", err)
			}
			defer func() { _ = f.Close() }()

			digest, err := scriptfmt.Write(f, &scriptfmt.Snapshot{
				Source: res.Source,
				Root:   res.Root,
				Index:  res.Index,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", hex.EncodeToString(digest[:]), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Snapshot output path (default: <file>.snap)")
	return cmd
}
