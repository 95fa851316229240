package cli

import (
	"errors"
	"fmt"

	"github.com/debtkraft/debtkraft/internal/adapters/outbound/tui"
	"github.com/debtkraft/debtkraft/internal/domain"
	"github.com/spf13/cobra"
)

func newTrendCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "trend [path]",
		Short: "Compare recent reports and write a trend report",
		Long:  "Read the newest scan reports of the project, compute how the debt count changed and write a trend report next to them.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opts.log()

			root, err := resolveRoot(args)
			if err != nil {
				return err
			}
			cfg := loadConfig(root, logger)
			reportDir := cfg.ReportPath(root)

			generated, err := newTrendService(cfg, logger).Generate(reportDir)
			if errors.Is(err, domain.ErrNoHistory) {
				return fmt.Errorf("no reports in %s, run `debtkraft scan` first: %w", reportDir, err)
			}
			if err != nil {
				return fmt.Errorf("trend failed: %w", err)
			}

			if jsonOutput {
				return writeJSON(cmd, generated)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderTrend(generated))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the trend as JSON")

	return cmd
}
