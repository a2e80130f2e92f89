// Package report reduces a cycle result to zero or one notification payload.
// It is pure: no I/O, no clock beyond the timestamps already in the result.
package report

import (
	"fmt"
	"time"

	"github.com/hamed0406/pingwatch/internal/domain"
)

// DefaultSubject is the fixed alert subject when none is configured.
const DefaultSubject = "pingwatch: hosts unreachable"

type Params struct {
	Subject    string
	Recipients []string
	Delay      time.Duration
}

// Build returns nil when every host answered; otherwise one payload with one
// body line per down host, in cycle (configuration) order.
func Build(res domain.CycleResult, p Params) *domain.NotificationPayload {
	down := res.Down()
	if len(down) == 0 {
		return nil
	}

	subject := p.Subject
	if subject == "" {
		subject = DefaultSubject
	}

	lines := make([]string, 0, len(down))
	for _, v := range down {
		line := fmt.Sprintf("%s (%s) unreachable after %d attempts (delay %s); last attempt %s",
			v.Host.Name(),
			v.Host.Address,
			v.AttemptsMade,
			p.Delay,
			v.LastAttemptAt.UTC().Format(time.RFC3339),
		)
		if v.Reason != "" {
			line += ", reason " + v.Reason
		}
		lines = append(lines, line)
	}

	return &domain.NotificationPayload{
		Subject:    subject,
		BodyLines:  lines,
		Recipients: dedupe(p.Recipients),
		Timestamp:  res.FinishedAt.UTC().Format(time.RFC3339),
	}
}

// dedupe keeps first occurrence order.
func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
