package cli

import (
	"encoding/json"
	"errors"

	"github.com/example/vibescan/internal/report"
	"github.com/example/vibescan/internal/scoring"
	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	var inputPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Recompute the score from a saved scan artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			if inputPath == "" {
				return errors.New("--input is required")
			}

			artifact, err := readArtifact(inputPath)
			if err != nil {
				return err
			}

			score := scoring.ComputeScore(artifact.Detections)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(score)
			}

			report.Render(cmd.OutOrStdout(), score, artifact.Detections)
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "Path to a JSON scan artifact")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the score result as JSON")
	if err := cmd.MarkFlagRequired("input"); err != nil {
		panic(err)
	}

	return cmd
}
