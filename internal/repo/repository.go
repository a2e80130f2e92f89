package repo

import (
	"context"

	"github.com/hamed0406/pingwatch/internal/domain"
)

// CycleStore keeps the most recent completed cycle for the status API.
// Deliberately latest-only: runs are stateless and trend history is out of scope.
type CycleStore interface {
	SetLatest(ctx context.Context, r domain.CycleResult) error
	Latest(ctx context.Context) (*domain.CycleResult, error)
}
