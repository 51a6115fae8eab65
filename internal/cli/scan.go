package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/example/vibescan/internal/config"
	"github.com/example/vibescan/internal/report"
	"github.com/example/vibescan/internal/scanner"
	"github.com/example/vibescan/internal/scoring"
	"github.com/spf13/cobra"
)

func newScanCmd(loader *config.Loader) *cobra.Command {
	flags := &scanFlagSet{}

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run all detection scanners and score the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := flags.toOverrides(cmd)
			cfg, err := loader.Load(overrides)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			opts := scanner.DefaultOptions(cfg.ProjectDir, cfg.Deep)
			scanners, err := scanner.DefaultRegistry.Build(cfg.Scanners, opts)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
			defer cancel()

			artifact, err := runScan(ctx, cfg, opts, scanners, cmd)
			if err != nil {
				return err
			}

			if cfg.Output != "" {
				if err := writeArtifact(cfg.Output, report.Sanitize(artifact)); err != nil {
					return err
				}
				if cfg.Format == "text" {
					fmt.Fprintf(cmd.OutOrStdout(), "  Artifact written to %s\n", cfg.Output)
				}
			}

			if cfg.SummaryFile != "" {
				if err := writeSummary(cfg.SummaryFile, artifact); err != nil {
					return err
				}
			}

			return nil
		},
	}

	bindScanFlags(cmd, flags)

	return cmd
}

func runScan(ctx context.Context, cfg config.RuntimeConfig, opts scanner.Options, scanners []scanner.Scanner, cmd *cobra.Command) (report.Artifact, error) {
	var emitter *report.Emitter
	if cfg.Format == "ndjson" {
		emitter = report.NewEmitter(cmd.OutOrStdout())
	}

	results := scanner.RunAll(ctx, scanners)

	detections := scanner.MergeDetections(results, scanner.SupersededMap())

	if cfg.MergeFile != "" {
		external, err := readArtifact(cfg.MergeFile)
		if err != nil {
			return report.Artifact{}, fmt.Errorf("merge file: %w", err)
		}
		detections = scanner.UnionByID(detections, external.Detections)
	}

	score := scoring.ComputeScore(detections)
	artifact := report.NewArtifact(version, results, detections, score)

	switch cfg.Format {
	case "ndjson":
		names := make([]string, len(scanners))
		for i, s := range scanners {
			names[i] = s.Name()
		}
		if err := emitter.ScanStarted(artifact.RunID, opts.ProjectDir, names); err != nil {
			return artifact, err
		}
		for _, r := range results {
			if err := emitter.ScannerFinished(r.Scanner, len(r.Detections), r.Duration); err != nil {
				return artifact, err
			}
		}
		if err := emitter.ScanFinished(artifact.RunID, len(detections), score.Level); err != nil {
			return artifact, err
		}
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(artifact); err != nil {
			return artifact, err
		}
	default:
		report.Render(cmd.OutOrStdout(), score, detections)
	}

	return artifact, nil
}

func readArtifact(path string) (report.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return report.Artifact{}, err
	}
	var artifact report.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return report.Artifact{}, err
	}
	return artifact, nil
}

func writeArtifact(path string, artifact report.Artifact) error {
	if err := ensureOutputDir(filepath.Dir(path)); err != nil {
		return err
	}
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func writeSummary(path string, artifact report.Artifact) error {
	summary := map[string]interface{}{
		"generatedAt": time.Now().UTC().Format(time.RFC3339),
		"runId":       artifact.RunID,
		"level":       artifact.Score.Level,
		"tier":        artifact.Score.Tier.Title,
		"typeCode":    artifact.Score.TypeCode.Code,
		"detections":  len(artifact.Detections),
		"pioneer":     artifact.Score.Pioneer.IsPioneer,
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}

	if err := ensureOutputDir(filepath.Dir(path)); err != nil {
		return err
	}

	return os.WriteFile(path, append(data, '\n'), 0o644)
}
