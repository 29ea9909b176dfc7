package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive query session",
	Long:  "Reads one query per line and prints its result URLs. An empty line is ignored; EOF or Ctrl-C ends the session.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runREPL(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), pipeline.Querier.Query)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

type queryFunc func(ctx context.Context, text string) ([]string, error)

// runREPL loops until in is exhausted or ctx is done. Query failures are
// printed and the loop continues.
func runREPL(ctx context.Context, in io.Reader, out io.Writer, query queryFunc) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "Query: ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		urls, err := query(ctx, text)
		if err != nil {
			slog.Debug("cli: repl query failed", "query", text, "error", err)
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		for i, u := range urls {
			fmt.Fprintf(out, "%3d. %s\n", i+1, u)
		}
	}
}
