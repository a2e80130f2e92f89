package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamed0406/pingwatch/internal/config"
	"github.com/hamed0406/pingwatch/internal/logging"
	"github.com/hamed0406/pingwatch/internal/notify"
	"github.com/hamed0406/pingwatch/internal/probe"
	"github.com/hamed0406/pingwatch/internal/report"
	"github.com/hamed0406/pingwatch/internal/scheduler"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:          "pingwatch",
	Short:        "ICMP reachability monitor with bounded retries and batched alerts",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "pingwatch.yaml", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.AddCommand(checkCmd, watchCmd, preflightCmd)
}

// Execute runs the CLI; a failed cycle or bad config exits nonzero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// stack is the wired probing pipeline shared by check and watch.
type stack struct {
	cfg      config.Config
	logger   *zap.Logger
	runner   *scheduler.CycleRunner
	notifier notify.Notifier
	params   report.Params
}

func buildStack() (*stack, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewLogger(cfg.LogDir, debug)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	prober := probe.NewICMPProber(cfg.PingTimeout(), cfg.Ping.Privileged)
	policy, err := probe.NewRetryPolicy(prober, cfg.Attempts, cfg.RetryDelay())
	if err != nil {
		return nil, err
	}
	runner := scheduler.NewCycleRunner(logger, policy, cfg.MaxConcurrentHosts)

	var channels notify.Multi
	if e := notify.NewEmail(notify.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}); e != nil {
		channels = append(channels, e)
	}
	if wh := notify.NewWebhook(cfg.SlackWebhook); wh != nil {
		channels = append(channels, wh)
	}
	var notifier notify.Notifier
	if len(channels) > 0 {
		notifier = channels
	}

	return &stack{
		cfg:      cfg,
		logger:   logger,
		runner:   runner,
		notifier: notifier,
		params: report.Params{
			Subject:    cfg.Subject,
			Recipients: cfg.Recipients,
			Delay:      cfg.RetryDelay(),
		},
	}, nil
}
