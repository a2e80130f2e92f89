package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hamed0406/pingwatch/internal/config"
)

var preflightCmd = &cobra.Command{
	Use:   "preflight",
	Short: "Validate configuration without probing anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		ok := func(msg string) { fmt.Println("✔", msg) }
		warn := func(msg string) { fmt.Println("⚠", msg) }

		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		if len(cfg.Hosts) == 0 {
			warn("hosts list is empty — cycles will complete with nothing to report")
		} else {
			ok(fmt.Sprintf("%d host(s) configured", len(cfg.Hosts)))
		}

		ok(fmt.Sprintf("attempts=%d delay=%s interval=%s timeout=%s",
			cfg.Attempts, cfg.RetryDelay(), cfg.Interval(), cfg.PingTimeout()))

		if cfg.SMTP.Host == "" {
			warn("smtp not configured — email alerts disabled")
		} else {
			ok(fmt.Sprintf("smtp configured (%s, %d recipient(s))", cfg.SMTP.Host, len(cfg.Recipients)))
			if cfg.SMTP.Password == "" {
				warn("smtp password empty — set SMTP_PASSWORD if the server requires auth")
			}
		}

		if cfg.SlackWebhook == "" {
			warn("slack_webhook empty — webhook alerts disabled")
		} else {
			ok("webhook configured")
		}

		if cfg.SMTP.Host == "" && cfg.SlackWebhook == "" {
			warn("no notification channel at all — down hosts will only be logged")
		}

		if cfg.API.Addr != "" && len(cfg.API.Keys) == 0 {
			warn("status API has no keys configured — it will accept any request")
		}

		ok("preflight passed")
		return nil
	},
}
