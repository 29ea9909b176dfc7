package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score <prompt> <completion>",
	Short: "Score a completion against web evidence",
	Long: `Searches for the prompt and completion, extracts every result page and
asks the language model to rate the completion against each one. The
reward is the mean of the per-document scores, in [-1, 1].`,
	Example: `  groundtruth-cli score "Who created Go?" "Go was designed at Google by Griesemer, Pike and Thompson."`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := pipeline.Scorer.Evaluate(cmd.Context(), args[0], args[1])
		if err != nil {
			return eris.Wrap(err, "score")
		}

		out := cmd.OutOrStdout()
		for _, s := range report.Samples {
			mark := ""
			if !s.Parsed {
				mark = " (unparsed)"
			}
			fmt.Fprintf(out, "  %+.2f  %s%s\n", s.Score, s.URL, mark)
		}
		if report.NoEvidence {
			fmt.Fprintln(out, "no search results, reward defaulted to neutral")
		}
		fmt.Fprintf(out, "Reward: %+.3f\n", report.Reward)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}
