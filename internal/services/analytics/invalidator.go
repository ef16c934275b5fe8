package analytics

import (
	"context"
	"fmt"

	"fido/internal/repositories/cache"

	"github.com/google/uuid"
)

// Invalidator evicts the analytics cache entries a transaction mutation can
// make stale. It runs synchronously inside every create, update, and delete,
// after the mutation is committed and before its response is returned.
type Invalidator struct {
	cache cache.Store
}

func NewInvalidator(cacheStore cache.Store) *Invalidator {
	if cacheStore == nil {
		panic("cache is required")
	}
	return &Invalidator{cache: cacheStore}
}

// Keys is the fixed fan-out for one user: average, highest day, and the
// unparameterized totals entry. Date-ranged totals entries are not tracked
// here; they age out via the analytics TTL instead.
func Keys(userID uuid.UUID) []string {
	return []string{
		AverageKey(userID),
		HighestDayKey(userID),
		TotalsKey(userID, nil, nil),
	}
}

// Invalidate deletes all analytics entries for the user. Missing keys are
// no-ops; a cache fault is returned so the mutation path can surface it.
func (i *Invalidator) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := i.cache.Delete(ctx, Keys(userID)...); err != nil {
		return fmt.Errorf("invalidate analytics cache for user %s: %w", userID, err)
	}
	return nil
}
