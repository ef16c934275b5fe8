package analytics

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"fido/internal/models"
	"fido/internal/repositories/cache"

	"github.com/google/uuid"
)

type service struct {
	store   Store
	cache   cache.Store
	metrics MetricsCollector
	cfg     Config
}

// NewService creates the analytics engine.
func NewService(store Store, cacheStore cache.Store, metrics MetricsCollector, cfg Config) Service {
	if store == nil {
		panic("store is required")
	}
	if cacheStore == nil {
		panic("cache is required")
	}
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.RefreshInterval == 0 {
		cfg.RefreshInterval = DefaultRefreshInterval
	}

	return &service{
		store:   store,
		cache:   cacheStore,
		metrics: metrics,
		cfg:     cfg,
	}
}

func (s *service) AverageTransactionValue(ctx context.Context, userID uuid.UUID) (float64, error) {
	defer s.timeComputation(metricAverage)()
	key := AverageKey(userID)

	var cached averagePayload
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrComputation, err)
	}
	if hit {
		s.metrics.RecordCacheHit(metricAverage)
		return float64(cached.Value) / SubunitFactor, nil
	}
	s.metrics.RecordCacheMiss(metricAverage)

	avg, err := s.store.AverageAmount(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrComputation, err)
	}

	// Round the subunit mean to an integer before caching, and return the
	// same rounded value, so a cached read and a fresh one always agree.
	subunits := int64(math.Round(avg))
	if err := s.cache.Set(ctx, key, averagePayload{Value: subunits}, s.cfg.CacheTTL); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrComputation, err)
	}
	log.Printf("cached average transaction value for user %s", userID)
	return float64(subunits) / SubunitFactor, nil
}

func (s *service) HighestTransactionDay(ctx context.Context, userID uuid.UUID) (time.Time, error) {
	defer s.timeComputation(metricHighestDay)()
	key := HighestDayKey(userID)

	var cached dayPayload
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrComputation, err)
	}
	if hit {
		day, err := time.Parse(dayFormat, cached.Day)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: corrupt cached day %q: %v", ErrComputation, cached.Day, err)
		}
		s.metrics.RecordCacheHit(metricHighestDay)
		return day, nil
	}
	s.metrics.RecordCacheMiss(metricHighestDay)

	counts, err := s.store.DailyCounts(ctx, userID)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrComputation, err)
	}
	if len(counts) == 0 {
		log.Printf("no transactions found for user %s", userID)
		return time.Time{}, ErrDataNotFound
	}

	best := counts[0]
	for _, c := range counts[1:] {
		// Highest count wins; equal counts break to the earliest day.
		if c.Count > best.Count || (c.Count == best.Count && c.Day.Before(best.Day)) {
			best = c
		}
	}
	day := truncateToDay(best.Day)

	if err := s.cache.Set(ctx, key, dayPayload{Day: day.Format(dayFormat)}, s.cfg.CacheTTL); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrComputation, err)
	}
	log.Printf("cached highest transaction day for user %s", userID)
	return day, nil
}

func (s *service) TransactionTotals(ctx context.Context, userID uuid.UUID, start, end *time.Time) (Totals, error) {
	defer s.timeComputation(metricTotals)()
	key := TotalsKey(userID, start, end)

	var cached totalsPayload
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		return Totals{}, fmt.Errorf("%w: %v", ErrComputation, err)
	}
	if hit {
		s.metrics.RecordCacheHit(metricTotals)
		return cached.toDisplay(), nil
	}
	s.metrics.RecordCacheMiss(metricTotals)

	rows, err := s.store.SumsByType(ctx, userID, start, end)
	if err != nil {
		return Totals{}, fmt.Errorf("%w: %v", ErrComputation, err)
	}
	if len(rows) == 0 {
		log.Printf("no transactions found for user %s in the given period", userID)
		return Totals{}, ErrDataNotFound
	}

	var payload totalsPayload
	for _, row := range rows {
		switch row.Type {
		case models.TransactionTypeCredit:
			payload.Credit = row.Total
		case models.TransactionTypeDebit:
			payload.Debit = row.Total
		}
	}

	if err := s.cache.Set(ctx, key, payload, s.cfg.CacheTTL); err != nil {
		return Totals{}, fmt.Errorf("%w: %v", ErrComputation, err)
	}
	log.Printf("cached transaction totals for user %s", userID)
	return payload.toDisplay(), nil
}

func (p totalsPayload) toDisplay() Totals {
	return Totals{
		Credit: float64(p.Credit) / SubunitFactor,
		Debit:  float64(p.Debit) / SubunitFactor,
	}
}

func (s *service) timeComputation(metric string) func() {
	start := time.Now()
	return func() {
		s.metrics.RecordComputeDuration(metric, time.Since(start))
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
