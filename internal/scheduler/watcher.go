package scheduler

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/pingwatch/internal/domain"
	"github.com/hamed0406/pingwatch/internal/notify"
	"github.com/hamed0406/pingwatch/internal/repo"
	"github.com/hamed0406/pingwatch/internal/report"
)

// Watcher drives the run-forever mode: one cycle per interval, each cycle
// reduced to at most one outbound notification. Cycles are independent;
// nothing is carried across them except the latest-cycle cache for the API.
type Watcher struct {
	Logger   *zap.Logger
	Runner   *CycleRunner
	Hosts    []domain.Host
	Params   report.Params
	Notifier notify.Notifier
	Cycles   repo.CycleStore
	Interval time.Duration
}

func NewWatcher(
	logger *zap.Logger,
	runner *CycleRunner,
	hosts []domain.Host,
	params report.Params,
	notifier notify.Notifier,
	cycles repo.CycleStore,
	interval time.Duration,
) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		Logger:   logger,
		Runner:   runner,
		Hosts:    hosts,
		Params:   params,
		Notifier: notifier,
		Cycles:   cycles,
		Interval: interval,
	}
}

// Run does an immediate pass, then one pass per tick until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	if w.Interval <= 0 {
		w.Logger.Info("watcher_disabled")
		return
	}
	t := time.NewTicker(w.Interval)
	defer t.Stop()

	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("watcher_stopped")
			return
		case <-t.C:
			w.runOnce(ctx)
		}
	}
}

func (w *Watcher) runOnce(ctx context.Context) {
	res, err := w.Runner.RunCycle(ctx, w.Hosts)
	if err != nil {
		if errors.Is(err, ErrCycleIncomplete) {
			// never alert on partial data
			w.Logger.Warn("cycle_incomplete",
				zap.Int("resolved", len(res.Verdicts)),
				zap.Int("hosts", len(w.Hosts)),
			)
			return
		}
		w.Logger.Error("cycle_error", zap.Error(err))
		return
	}

	if w.Cycles != nil {
		if err := w.Cycles.SetLatest(ctx, res); err != nil {
			w.Logger.Warn("cycle_store_error", zap.Error(err))
		}
	}

	w.Logger.Info("cycle_done",
		zap.Int("hosts", len(res.Verdicts)),
		zap.Int("down", len(res.Down())),
	)

	payload := report.Build(res, w.Params)
	if payload == nil {
		return
	}
	if w.Notifier == nil {
		w.Logger.Warn("no_notifier_configured", zap.Int("down", len(payload.BodyLines)))
		return
	}

	// Delivery failure belongs to the channel; the cycle result stands either way.
	if err := w.Notifier.Send(ctx, *payload); err != nil {
		w.Logger.Error("notify_error", zap.Error(err))
		return
	}
	w.Logger.Info("alert_sent",
		zap.Int("down", len(payload.BodyLines)),
		zap.Int("recipients", len(payload.Recipients)),
	)
}
