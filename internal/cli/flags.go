package cli

import (
	"time"

	"github.com/example/vibescan/internal/config"
	"github.com/spf13/cobra"
)

// scanFlagSet tracks shared scan/doctor flags before they are converted into
// config overrides.
type scanFlagSet struct {
	projectDir  string
	deep        bool
	format      string
	output      string
	scanners    string
	mergeFile   string
	summaryFile string
	timeout     time.Duration
}

func bindScanFlags(cmd *cobra.Command, flags *scanFlagSet) {
	cmd.Flags().StringVar(&flags.projectDir, "project", "", "Project directory to scan (defaults to the working directory)")
	cmd.Flags().BoolVar(&flags.deep, "deep", false, "Enable global-scope checks (crontab, launchd, home directory)")
	cmd.Flags().StringVar(&flags.format, "format", "", "Output format: text, json, or ndjson")
	cmd.Flags().StringVar(&flags.output, "output", "", "Write the sanitized scan artifact to this path")
	cmd.Flags().StringVar(&flags.scanners, "scanners", "", "Comma-separated scanner names to run (default: all)")
	cmd.Flags().StringVar(&flags.mergeFile, "merge", "", "Path to an artifact from another machine to merge in")
	cmd.Flags().StringVar(&flags.summaryFile, "summary-file", "", "Optional summary JSON output path")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "Overall scan timeout")
}

func (f scanFlagSet) toOverrides(cmd *cobra.Command) config.Overrides {
	ov := config.Overrides{}

	if cmd.Flags().Changed("project") {
		ov.ProjectDir = f.projectDir
	}

	if cmd.Flags().Changed("deep") {
		ov.Deep = &f.deep
	}

	if cmd.Flags().Changed("format") {
		ov.Format = f.format
	}

	if cmd.Flags().Changed("output") {
		ov.Output = f.output
	}

	if cmd.Flags().Changed("scanners") {
		ov.Scanners = config.ParseScannerList(f.scanners)
	}

	if cmd.Flags().Changed("merge") {
		ov.MergeFile = f.mergeFile
	}

	if cmd.Flags().Changed("summary-file") {
		ov.SummaryFile = f.summaryFile
	}

	if cmd.Flags().Changed("timeout") {
		ov.Timeout = f.timeout
		ov.TimeoutSet = true
	}

	return ov
}
