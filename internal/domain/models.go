package domain

import "time"

// Status is the final per-cycle determination for a host.
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Host is one monitored endpoint. Address may be an IP or a resolvable name.
type Host struct {
	Address string `json:"address"`
	Label   string `json:"label,omitempty"`
}

// Name returns the label when set, otherwise the address.
func (h Host) Name() string {
	if h.Label != "" {
		return h.Label
	}
	return h.Address
}

// HostVerdict is the outcome for one host after its retry budget is spent
// (or cut short by the first success). Immutable once produced.
type HostVerdict struct {
	Host           Host       `json:"host"`
	Status         Status     `json:"status"`
	AttemptsMade   int        `json:"attempts_made"`
	FirstFailureAt *time.Time `json:"first_failure_at,omitempty"`
	LastAttemptAt  time.Time  `json:"last_attempt_at"`
	LatencyMS      float64    `json:"latency_ms,omitempty"`
	Reason         string     `json:"reason,omitempty"`
}

func (v HostVerdict) Up() bool { return v.Status == StatusUp }

// CycleResult holds one verdict per configured host for a single cycle,
// in configuration order.
type CycleResult struct {
	Verdicts   []HostVerdict `json:"verdicts"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
}

// Down returns the Down verdicts in result order.
func (r CycleResult) Down() []HostVerdict {
	var out []HostVerdict
	for _, v := range r.Verdicts {
		if !v.Up() {
			out = append(out, v)
		}
	}
	return out
}

func (r CycleResult) AllUp() bool { return len(r.Down()) == 0 }
