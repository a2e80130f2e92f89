package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/pingwatch/internal/domain"
	"github.com/hamed0406/pingwatch/internal/repo/memory"
	"github.com/hamed0406/pingwatch/internal/report"
)

type memNotifier struct {
	mu   sync.Mutex
	n    int
	last domain.NotificationPayload
}

func (m *memNotifier) Send(ctx context.Context, p domain.NotificationPayload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	m.last = p
	return nil
}

func TestWatcher_RunOnceNotifiesOnDown(t *testing.T) {
	hosts := []domain.Host{
		{Address: "10.0.0.1", Label: "A"},
		{Address: "10.0.0.2", Label: "B"},
	}
	r := runner(t, &mapProber{up: map[string]bool{"10.0.0.2": true}}, 3, 0)
	nt := &memNotifier{}
	store := memory.New()

	w := NewWatcher(zap.NewNop(), r, hosts, report.Params{
		Recipients: []string{"ops@example.com"},
		Delay:      time.Second,
	}, nt, store, time.Minute)

	w.runOnce(context.Background())

	if nt.n != 1 {
		t.Fatalf("want exactly one notification, got %d", nt.n)
	}
	if len(nt.last.BodyLines) != 1 {
		t.Fatalf("want one body line for A, got %v", nt.last.BodyLines)
	}

	latest, err := store.Latest(context.Background())
	if err != nil || latest == nil {
		t.Fatalf("latest cycle not stored: %v %v", latest, err)
	}
	if len(latest.Verdicts) != 2 {
		t.Fatalf("stored cycle wrong: %+v", latest)
	}
}

func TestWatcher_RunOnceSilentWhenAllUp(t *testing.T) {
	hosts := []domain.Host{{Address: "10.0.0.1"}}
	r := runner(t, &mapProber{up: map[string]bool{"10.0.0.1": true}}, 3, 0)
	nt := &memNotifier{}

	w := NewWatcher(zap.NewNop(), r, hosts, report.Params{Recipients: []string{"ops@example.com"}}, nt, memory.New(), time.Minute)
	w.runOnce(context.Background())

	if nt.n != 0 {
		t.Fatalf("no notification expected when all hosts answer, got %d", nt.n)
	}
}

func TestWatcher_IncompleteCycleNotNotifiedNotStored(t *testing.T) {
	hosts := []domain.Host{{Address: "10.0.0.1"}}
	r := runner(t, &mapProber{latency: 50 * time.Millisecond}, 3, 0)
	nt := &memNotifier{}
	store := memory.New()

	w := NewWatcher(zap.NewNop(), r, hosts, report.Params{Recipients: []string{"ops@example.com"}}, nt, store, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.runOnce(ctx)

	if nt.n != 0 {
		t.Fatalf("cancelled cycle must not alert, got %d", nt.n)
	}
	if latest, _ := store.Latest(context.Background()); latest != nil {
		t.Fatalf("cancelled cycle must not be stored, got %+v", latest)
	}
}

func TestWatcher_RunLoopStopsOnCancel(t *testing.T) {
	hosts := []domain.Host{{Address: "10.0.0.1"}}
	r := runner(t, &mapProber{up: map[string]bool{"10.0.0.1": true}}, 1, 0)
	w := NewWatcher(zap.NewNop(), r, hosts, report.Params{}, nil, nil, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
