package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamed0406/pingwatch/internal/httpapi"
	"github.com/hamed0406/pingwatch/internal/repo/memory"
	"github.com/hamed0406/pingwatch/internal/scheduler"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run monitoring cycles forever at the configured interval",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := buildStack()
		if err != nil {
			return err
		}
		defer func() { _ = s.logger.Sync() }()

		interval := s.cfg.Interval()
		if watchInterval > 0 {
			interval = watchInterval
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store := memory.New()
		hosts := s.cfg.DomainHosts()

		if s.cfg.API.Addr != "" {
			api := httpapi.NewServer(s.logger, store, hosts, s.cfg.API.Keys)
			srv := &http.Server{Addr: s.cfg.API.Addr, Handler: api.Router()}
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					s.logger.Error("api_error", zap.Error(err))
				}
			}()
			defer func() {
				shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shCtx)
			}()
			s.logger.Info("api_listen", zap.String("addr", s.cfg.API.Addr))
		}

		s.logger.Info("watch_start",
			zap.Int("hosts", len(hosts)),
			zap.Duration("interval", interval),
		)
		scheduler.NewWatcher(s.logger, s.runner, hosts, s.params, s.notifier, store, interval).Run(ctx)
		return nil
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "override the configured cycle interval")
}
