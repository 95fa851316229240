package cli

import (
	"github.com/debtkraft/debtkraft/internal/adapters/outbound/reportfs"
	"github.com/debtkraft/debtkraft/internal/adapters/outbound/tui"
	"github.com/debtkraft/debtkraft/internal/application"
	"github.com/debtkraft/debtkraft/internal/domain"
	"github.com/spf13/cobra"
)

func newOpenCmd(opts *rootOptions) *cobra.Command {
	var (
		projectPath string
		trend       bool
	)

	cmd := &cobra.Command{
		Use:   "open [report]",
		Short: "Print a report to the terminal",
		Long:  "Print the given report, or the newest scan report of the project when no report is named.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			access := application.NewReportAccess(reportfs.New(), tui.NewViewer(cmd.OutOrStdout()))
			if len(args) == 1 {
				return access.Open(args[0])
			}

			root, err := resolveRoot([]string{projectPath})
			if err != nil {
				return err
			}
			cfg := loadConfig(root, opts.log())

			kind := domain.ReportKindScan
			if trend {
				kind = domain.ReportKindTrend
			}
			latest, err := access.Latest(cfg.ReportPath(root), kind)
			if err != nil {
				return err
			}
			return access.Open(latest)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", ".", "Project whose newest report is opened")
	cmd.Flags().BoolVar(&trend, "trend", false, "Open the newest trend report instead of the newest scan report")

	return cmd
}
