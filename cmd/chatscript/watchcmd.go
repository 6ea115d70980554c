package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chatscript-lang/chatscript/runtime/watch"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-parse a script whenever it changes, keeping the last good result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, parseOpts, err := setup(opts)
			if err != nil {
				return err
			}

			w, err := watch.New(args[0], parseOpts...)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			go func() {
				out := cmd.OutOrStdout()
				for {
					select {
					case <-ctx.Done():
						return
					case u := <-w.Updates():
						if u.Err != nil {
							fmt.Fprintf(out, "parse failed: %v\n", u.Err)
							continue
						}
						fmt.Fprintf(out, "ok: %d statements, %d closures, %d macros\n",
							len(u.Result.Index.Commands),
							len(u.Result.Index.Closures),
							len(u.Result.Index.Macros))
					}
				}
			}()

			err = w.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
