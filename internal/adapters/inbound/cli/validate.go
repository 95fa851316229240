package cli

import (
	"fmt"
	"log/slog"

	"github.com/debtkraft/debtkraft/internal/adapters/outbound/tui"
	"github.com/debtkraft/debtkraft/internal/application"
	"github.com/debtkraft/debtkraft/internal/domain"
	"github.com/spf13/cobra"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "validate <doc> [doc...]",
		Short: "Check the related files listed in debt documents",
		Long: "Every entry of a document's \"Related Files\" section must exist and lie " +
			"inside the document's directory. Bracketed entries are placeholders and skipped.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := application.NewValidateService()

			results := make([]domain.ValidationResult, 0, len(args))
			invalid := 0
			for _, doc := range args {
				res := svc.ValidateDocument(doc)
				if !res.IsValid {
					invalid++
					opts.log().Debug("validate: invalid document",
						slog.String("document", doc),
						slog.String("code", res.ErrorCode))
				}
				results = append(results, res)
			}

			if jsonOutput {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				for _, res := range results {
					fmt.Fprint(cmd.OutOrStdout(), tui.RenderValidation(res))
				}
			}

			if invalid > 0 {
				return fmt.Errorf("%d of %d documents have invalid references", invalid, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	return cmd
}
