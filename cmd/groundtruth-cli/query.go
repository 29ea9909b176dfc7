package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Print the result URLs for a search query",
	Example: `  groundtruth-cli query "go channels"
  groundtruth-cli query --sites wikipedia.org --ensemble=false "raft consensus"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		urls, err := pipeline.Querier.Query(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return eris.Wrap(err, "query")
		}
		for _, u := range urls {
			fmt.Fprintln(cmd.OutOrStdout(), u)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
