package main

import (
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/use-agent/groundtruth/models"
)

var (
	extractClicks []string
	extractWait   time.Duration
)

var extractCmd = &cobra.Command{
	Use:   "extract <url>",
	Short: "Fetch a page and print its extracted text",
	Example: `  groundtruth-cli extract https://en.wikipedia.org/wiki/Go_(programming_language)
  groundtruth-cli extract --click ".js-show-more" https://stackoverflow.com/questions/11227809`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := make([]models.InteractionStep, 0, len(extractClicks))
		for _, sel := range extractClicks {
			steps = append(steps, models.Click(sel, extractWait))
		}

		doc, err := pipeline.Documents.Document(cmd.Context(), args[0], steps...)
		if err != nil {
			return eris.Wrapf(err, "extract %s", args[0])
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Source:    %s\nExtractor: %s\n\n", doc.URL, doc.Extractor)
		fmt.Fprintln(out, doc.Text)
		return nil
	},
}

func init() {
	f := extractCmd.Flags()
	f.StringArrayVar(&extractClicks, "click", nil, "CSS selector to click before extraction (repeatable)")
	f.DurationVar(&extractWait, "wait", 500*time.Millisecond, "wait after each click")
	rootCmd.AddCommand(extractCmd)
}
