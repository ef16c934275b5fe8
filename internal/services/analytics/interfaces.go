package analytics

import (
	"context"
	"time"

	"fido/internal/models"

	"github.com/google/uuid"
)

// Service is the analytics read surface.
type Service interface {
	// AverageTransactionValue returns the mean transaction amount in display
	// units. An empty ledger yields 0, not an error.
	AverageTransactionValue(ctx context.Context, userID uuid.UUID) (float64, error)

	// HighestTransactionDay returns the calendar day (UTC midnight) with the
	// most transactions. Ties break to the earliest day. An empty ledger
	// yields ErrDataNotFound.
	HighestTransactionDay(ctx context.Context, userID uuid.UUID) (time.Time, error)

	// TransactionTotals returns credit and debit sums in display units over
	// an optional closed date window. No matching rows yields ErrDataNotFound;
	// a type with no rows defaults to 0 when the other type has data.
	TransactionTotals(ctx context.Context, userID uuid.UUID, start, end *time.Time) (Totals, error)
}

// Store is the aggregate query surface consumed from the transaction store.
type Store interface {
	AverageAmount(ctx context.Context, userID uuid.UUID) (float64, error)
	DailyCounts(ctx context.Context, userID uuid.UUID) ([]models.DayCount, error)
	SumsByType(ctx context.Context, userID uuid.UUID, start, end *time.Time) ([]models.TypeTotal, error)
}

// MetricsCollector receives instrumentation events from the engine and the
// refresher.
type MetricsCollector interface {
	RecordCacheHit(metric string)
	RecordCacheMiss(metric string)
	RecordComputeDuration(metric string, d time.Duration)
	RecordRefreshCycle(result string)
	RefresherStarted()
	RefresherStopped()
}

// NoopMetricsCollector discards all events.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCacheHit(string)                        {}
func (NoopMetricsCollector) RecordCacheMiss(string)                       {}
func (NoopMetricsCollector) RecordComputeDuration(string, time.Duration)  {}
func (NoopMetricsCollector) RecordRefreshCycle(string)                    {}
func (NoopMetricsCollector) RefresherStarted()                            {}
func (NoopMetricsCollector) RefresherStopped()                            {}
