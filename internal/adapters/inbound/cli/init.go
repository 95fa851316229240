package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/debtkraft/debtkraft/internal/adapters/outbound/config"
	"github.com/spf13/cobra"
)

const configHeader = `# debtkraft configuration
#
# markers: tokens recognised as debt markers. The built-in markers are always
#   active; listing one here overrides its weight.
# exclude_patterns: node_modules, dist, build, .git, vendor and report_dir are
#   always excluded.
# archive: set enabled: true to upload each report to a MinIO/S3 bucket.
#   Values may reference environment variables, e.g. secret_key: ${DEBTKRAFT_S3_SECRET}.

`

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a " + config.FileName + " configuration file",
		Long:  "Create a " + config.FileName + " with the built-in markers, patterns and thresholds.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := resolveRoot(args)
			if err != nil {
				return err
			}

			dest := filepath.Join(absPath, config.FileName)
			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			body, err := config.Marshal(config.Starter())
			if err != nil {
				return fmt.Errorf("rendering config: %w", err)
			}
			if err := os.WriteFile(dest, append([]byte(configHeader), body...), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing "+config.FileName)

	return cmd
}
