package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// rootOptions carries the persistent flags and the logger built from them.
type rootOptions struct {
	logLevel  string
	logFormat string
	logger    *slog.Logger
}

func (o *rootOptions) setupLogger(w io.Writer) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q", o.logLevel)
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(o.logFormat) {
	case "text", "":
		o.logger = slog.New(slog.NewTextHandler(w, handlerOpts))
	case "json":
		o.logger = slog.New(slog.NewJSONHandler(w, handlerOpts))
	default:
		return fmt.Errorf("invalid --log-format %q (valid: text, json)", o.logFormat)
	}
	return nil
}

// log returns the configured logger, or a discarding one before setup ran.
func (o *rootOptions) log() *slog.Logger {
	if o.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "debtkraft",
		Short: "Track technical debt markers in your codebase",
		Long: "debtkraft scans source trees for debt markers such as #debt: or DIR.TAG:, " +
			"writes timestamped Markdown reports and shows how the debt count evolves.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setupLogger(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "Log format (text, json)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newScanCmd(opts))
	cmd.AddCommand(newTrendCmd(opts))
	cmd.AddCommand(newOpenCmd(opts))
	cmd.AddCommand(newValidateCmd(opts))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newWatchCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
