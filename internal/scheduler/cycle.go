package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/pingwatch/internal/domain"
	"github.com/hamed0406/pingwatch/internal/probe"
)

// ErrCycleIncomplete reports that a cycle was cancelled before every host
// resolved. The CycleResult returned alongside it holds only completed
// verdicts; missing hosts must not be read as "up".
var ErrCycleIncomplete = errors.New("cycle incomplete: cancelled before all hosts resolved")

// CycleRunner resolves every configured host once per cycle. Hosts are
// independent: one host's retries never delay another's, so cycle latency is
// bounded by the slowest host, not the sum.
type CycleRunner struct {
	Logger      *zap.Logger
	Policy      *probe.RetryPolicy
	Concurrency int // 0 = one goroutine per host
}

func NewCycleRunner(logger *zap.Logger, policy *probe.RetryPolicy, concurrency int) *CycleRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if concurrency < 0 {
		concurrency = 0
	}
	return &CycleRunner{Logger: logger, Policy: policy, Concurrency: concurrency}
}

// RunCycle fans resolutions out across the host set and joins at a single
// barrier. Verdict order matches input order. Partial results are only
// returned together with ErrCycleIncomplete.
func (c *CycleRunner) RunCycle(ctx context.Context, hosts []domain.Host) (domain.CycleResult, error) {
	res := domain.CycleResult{
		Verdicts:  []domain.HostVerdict{},
		StartedAt: time.Now().UTC(),
	}
	if len(hosts) == 0 {
		res.FinishedAt = res.StartedAt
		return res, nil
	}

	type slot struct {
		verdict domain.HostVerdict
		done    bool
	}
	slots := make([]slot, len(hosts))

	var sem chan struct{}
	if c.Concurrency > 0 {
		sem = make(chan struct{}, c.Concurrency)
	}
	var wg sync.WaitGroup

	for i, h := range hosts {
		wg.Add(1)
		go func(i int, h domain.Host) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}

			v, err := c.Policy.Resolve(ctx, h)
			if err != nil {
				c.Logger.Warn("host_unresolved",
					zap.String("address", h.Address),
					zap.Error(err),
				)
				return
			}
			slots[i] = slot{verdict: v, done: true}
		}(i, h)
	}
	wg.Wait()

	for _, s := range slots {
		if s.done {
			res.Verdicts = append(res.Verdicts, s.verdict)
		}
	}
	res.FinishedAt = time.Now().UTC()

	if len(res.Verdicts) != len(hosts) {
		return res, ErrCycleIncomplete
	}

	c.Logger.Debug("cycle_done",
		zap.Int("hosts", len(hosts)),
		zap.Int("down", len(res.Down())),
		zap.Duration("took", res.FinishedAt.Sub(res.StartedAt)),
	)
	return res, nil
}
