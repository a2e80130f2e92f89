package probe

import (
	"context"
	"time"

	"github.com/hamed0406/pingwatch/internal/domain"
)

// Reason classifies why a single probe failed.
type Reason string

const (
	ReasonTimeout   Reason = "timeout"
	ReasonResolve   Reason = "resolve_error"
	ReasonTransport Reason = "transport_error"
)

// Outcome is the result of one echo probe. A failed probe is a value, not
// an error: network failure is expected, modeled behavior here.
type Outcome struct {
	Reachable bool
	LatencyMS float64
	Reason    Reason // empty when reachable
	Detail    string // underlying error text, if any
	At        time.Time
}

// Prober performs a single reachability probe against one host.
type Prober interface {
	Probe(ctx context.Context, h domain.Host) Outcome
}
