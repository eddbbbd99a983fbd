package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/seo-analyzer/seo-analyzer/report"
)

var validateCmd = &cobra.Command{
	Use:   "validate <artifact.json>",
	Short: "Check a previously written analysis artifact against the schema",
	Long: `Validate reads a JSON analysis artifact written by an earlier run and
checks it against the embedded artifact schema. Exits non-zero when the
file is missing, malformed or does not conform.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	artifact, err := report.LoadArtifact(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: valid analysis artifact\n", args[0])
	fmt.Fprintf(out, "  analyzed: %s\n", artifact.PageData.URL)
	fmt.Fprintf(out, "  date:     %s\n", artifact.AnalysisDate.Format(time.RFC3339))
	fmt.Fprintf(out, "  score:    %d/100\n", artifact.Report.Score)

	return nil
}
