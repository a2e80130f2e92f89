package probe

import (
	"context"
	"errors"
	"net"
	"time"

	probing "github.com/prometheus-community/pro-bing"

	"github.com/hamed0406/pingwatch/internal/domain"
)

const defaultTimeout = 3 * time.Second

// ICMPProber sends one echo request per Probe call.
type ICMPProber struct {
	Timeout    time.Duration
	Privileged bool // raw ICMP socket; needs CAP_NET_RAW. Default is UDP ping.
}

func NewICMPProber(timeout time.Duration, privileged bool) *ICMPProber {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &ICMPProber{Timeout: timeout, Privileged: privileged}
}

func (p *ICMPProber) Probe(ctx context.Context, h domain.Host) Outcome {
	start := time.Now().UTC()

	pinger, err := probing.NewPinger(h.Address)
	if err != nil {
		// NewPinger resolves the address, so this is almost always DNS.
		return Outcome{Reason: classify(err), Detail: err.Error(), At: start}
	}
	pinger.Count = 1
	pinger.Timeout = p.Timeout
	pinger.SetPrivileged(p.Privileged)

	if err := pinger.RunWithContext(ctx); err != nil {
		return Outcome{
			LatencyMS: msSince(start),
			Reason:    classify(err),
			Detail:    err.Error(),
			At:        start,
		}
	}

	stats := pinger.Statistics()
	if stats.PacketsRecv == 0 {
		return Outcome{
			LatencyMS: msSince(start),
			Reason:    ReasonTimeout,
			Detail:    "no reply within " + p.Timeout.String(),
			At:        start,
		}
	}
	return Outcome{
		Reachable: true,
		LatencyMS: float64(stats.AvgRtt.Microseconds()) / 1000.0,
		At:        start,
	}
}

// classify folds a transport-level error into a probe reason.
func classify(err error) Reason {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ReasonResolve
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ReasonTimeout
	}
	return ReasonTransport
}

func msSince(t time.Time) float64 {
	return time.Since(t).Seconds() * 1000
}
