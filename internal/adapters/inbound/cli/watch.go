package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/debtkraft/debtkraft/internal/adapters/outbound/tui"
	"github.com/debtkraft/debtkraft/internal/adapters/outbound/watcher"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Re-scan whenever tracked files change",
		Long:  "Run a scan, then scan again each time a tracked source file is created, changed or removed. Stops on Ctrl-C.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opts.log()

			root, err := resolveRoot(args)
			if err != nil {
				return err
			}
			cfg := loadConfig(root, logger)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			svc, err := newScanService(ctx, cfg, false, logger)
			if err != nil {
				return err
			}

			scanOnce := func() {
				generated, err := svc.Scan(ctx, root, cfg)
				if err != nil {
					logger.Error("watch: scan failed", slog.String("error", err.Error()))
					return
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderScanSummary(generated, cfg))
			}
			scanOnce()

			g, gCtx := errgroup.WithContext(ctx)

			g.Go(func() error {
				return watcher.Watch(gCtx, root, cfg, debounce, logger, func(changed []string) {
					logger.Info("watch: change detected", slog.Int("files", len(changed)))
					scanOnce()
				})
			})

			g.Go(func() error {
				quit := make(chan os.Signal, 1)
				signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
				defer signal.Stop(quit)

				select {
				case sig := <-quit:
					logger.Info("watch: received signal", slog.String("signal", sig.String()))
					cancel()
				case <-gCtx.Done():
				}
				return nil
			})

			return g.Wait()
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watcher.DefaultDebounce, "Quiet period before a change triggers a scan")

	return cmd
}
