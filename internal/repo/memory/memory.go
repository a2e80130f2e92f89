package memory

import (
	"context"
	"sync"

	"github.com/hamed0406/pingwatch/internal/domain"
)

type Store struct {
	mu     sync.RWMutex
	latest *domain.CycleResult
}

func New() *Store {
	return &Store{}
}

func (s *Store) SetLatest(ctx context.Context, r domain.CycleResult) error {
	cp := r
	cp.Verdicts = append([]domain.HostVerdict(nil), r.Verdicts...)
	s.mu.Lock()
	s.latest = &cp
	s.mu.Unlock()
	return nil
}

func (s *Store) Latest(ctx context.Context) (*domain.CycleResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return nil, nil
	}
	cp := *s.latest
	cp.Verdicts = append([]domain.HostVerdict(nil), s.latest.Verdicts...)
	return &cp, nil
}
