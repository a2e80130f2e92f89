package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamed0406/pingwatch/internal/report"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one monitoring cycle and exit",
	Long: `Probe every configured host once (with retries), print the verdicts,
send the alert notification if any host stayed down, and exit nonzero
when hosts are down.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := buildStack()
		if err != nil {
			return err
		}
		defer func() { _ = s.logger.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		res, err := s.runner.RunCycle(ctx, s.cfg.DomainHosts())
		if err != nil {
			return err
		}

		for _, v := range res.Verdicts {
			marker := "up  "
			if !v.Up() {
				marker = "DOWN"
			}
			fmt.Printf("%s %s (%s) attempts=%d\n", marker, v.Host.Name(), v.Host.Address, v.AttemptsMade)
		}

		payload := report.Build(res, s.params)
		if payload == nil {
			return nil
		}
		if s.notifier != nil {
			if err := s.notifier.Send(ctx, *payload); err != nil {
				s.logger.Error("notify_error", zap.Error(err))
			}
		}
		return fmt.Errorf("%d of %d hosts down", len(payload.BodyLines), len(res.Verdicts))
	},
}
