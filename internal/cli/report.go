package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/example/vibescan/internal/report"
	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	var inputPath string
	var summaryPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate aggregate stats from a scan artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			if inputPath == "" {
				return errors.New("--input is required")
			}

			artifact, err := readArtifact(inputPath)
			if err != nil {
				return err
			}

			innovations := 0
			for _, d := range artifact.Detections {
				if d.TaxonomyMatch == nil {
					innovations++
				}
			}

			stats := map[string]interface{}{
				"input":       inputPath,
				"generatedAt": time.Now().UTC().Format(time.RFC3339),
				"runId":       artifact.RunID,
				"level":       artifact.Score.Level,
				"tier":        artifact.Score.Tier.Title,
				"detections":  len(artifact.Detections),
				"innovations": innovations,
				"scanners":    len(artifact.ScanResults),
			}

			emitter := report.NewEmitter(cmd.OutOrStdout())
			if err := emitter.Emit(report.Event{Type: "report", Message: "Report generated", Fields: stats}); err != nil {
				return err
			}

			if summaryPath != "" {
				if err := writeReportSummary(summaryPath, stats); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Summary written to %s\n", summaryPath)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "Path to a JSON scan artifact")
	cmd.Flags().StringVar(&summaryPath, "summary-file", "", "Optional path to store summary JSON")
	if err := cmd.MarkFlagRequired("input"); err != nil {
		panic(err)
	}

	return cmd
}

func writeReportSummary(path string, stats map[string]interface{}) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}
