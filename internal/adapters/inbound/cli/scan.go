package cli

import (
	"fmt"

	"github.com/debtkraft/debtkraft/internal/adapters/outbound/tui"
	"github.com/debtkraft/debtkraft/internal/application"
	"github.com/spf13/cobra"
)

func newScanCmd(opts *rootOptions) *cobra.Command {
	var (
		jsonOutput   bool
		ciMode       bool
		maxItems     int
		failWhen     string
		forceArchive bool
	)

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a source tree for debt markers and write a report",
		Long: "Walk the tree, extract every debt marker and write a timestamped " +
			"Markdown report into the report directory.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opts.log()

			root, err := resolveRoot(args)
			if err != nil {
				return err
			}

			var gate *application.Gate
			if failWhen != "" {
				if gate, err = application.CompileGate(failWhen); err != nil {
					return err
				}
			}

			cfg := loadConfig(root, logger)
			svc, err := newScanService(cmd.Context(), cfg, forceArchive, logger)
			if err != nil {
				return err
			}

			generated, err := svc.Scan(cmd.Context(), root, cfg)
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			if jsonOutput {
				if err := writeJSON(cmd, generated); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderScanSummary(generated, cfg))
			}

			if ciMode && generated.TotalCount > maxItems {
				return fmt.Errorf("%d debt items exceed maximum %d", generated.TotalCount, maxItems)
			}
			if gate != nil {
				failed, err := gate.Failed(generated, cfg)
				if err != nil {
					return err
				}
				if failed {
					return fmt.Errorf("gate %q failed (%d debt items)", gate, generated.TotalCount)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the scan result as JSON")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if the total exceeds --max")
	cmd.Flags().IntVar(&maxItems, "max", 0, "Maximum number of debt items for CI mode")
	cmd.Flags().StringVar(&failWhen, "fail-when", "", `Fail when the expression holds, e.g. 'total > 40 || markers["#fixme:"] > 0'`)
	cmd.Flags().BoolVar(&forceArchive, "archive", false, "Upload the report to the configured archive bucket")

	return cmd
}
