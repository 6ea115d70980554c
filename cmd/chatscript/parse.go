package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chatscript-lang/chatscript/core/script"
	"github.com/chatscript-lang/chatscript/runtime/parser"
)

func newParseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a script and print its statement tree",
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
			fmt.Fprintf(out, "%d statements, %d closures, %d macros\n",
				len(res.Index.Commands), len(res.Index.Closures), len(res.Index.Macros))
			printClosure(cmd, res.Root, 0)
			return nil
		},
	}
}

func printClosure(cmd *cobra.Command, c *script.Closure, depth int) {
	out := cmd.OutOrStdout()
	indent := strings.Repeat("  ", depth)
	if depth > 0 {
		suffix := ""
		if c.Invoke {
			suffix = " invoke"
		}
		fmt.Fprintf(out, "%sclosure [%d,%d) params=%v%s\n",
			indent, c.Span.Start, c.Span.End, c.Params, suffix)
	}

	for _, ex := range c.Body {
		fmt.Fprintf(out, "%s%s\n", indent, describeExecutor(ex))
		for _, a := range append(append([]script.Argument{}, ex.Named...), ex.Unnamed...) {
			if a.Value.Kind == script.ValueClosure {
				printClosure(cmd, a.Value.Closure, depth+1)
			}
		}
	}
}

func describeExecutor(ex *script.Executor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "/%s [%d,%d)", ex.Name, ex.Span.Start, ex.Span.End)
	if ex.PipeInput {
		b.WriteString(" pipe")
	}
	if ex.Synthetic {
		b.WriteString(" synthetic")
	}
	if ex.RunTarget != "" {
		fmt.Fprintf(&b, " target=%q", ex.RunTarget)
	}
	for _, a := range ex.Named {
		fmt.Fprintf(&b, " %s=%s", a.Name, describeValue(a.Value))
	}
	for _, a := range ex.Unnamed {
		fmt.Fprintf(&b, " %s", describeValue(a.Value))
	}
	return b.String()
}

func describeValue(v script.Value) string {
	switch v.Kind {
	case script.ValueString:
		if v.Quoted {
			return fmt.Sprintf("%q", v.Str)
		}
		return fmt.Sprintf("text(%s)", v.Str)
	case script.ValueClosure:
		return "closure"
	case script.ValueList:
		parts := make([]string, 0, len(v.List))
		for _, el := range v.List {
			parts = append(parts, describeValue(el.Value))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return "?"
}
