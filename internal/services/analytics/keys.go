package analytics

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AverageKey is the cache key for a user's average transaction value.
func AverageKey(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", metricAverage, userID)
}

// HighestDayKey is the cache key for a user's highest transaction day.
func HighestDayKey(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", metricHighestDay, userID)
}

// TotalsKey is the cache key for a user's transaction totals over an
// optional date window. Absent bounds serialize to the empty string so the
// key space stays stable; the unparameterized key is "totals:{user}::".
func TotalsKey(userID uuid.UUID, start, end *time.Time) string {
	return fmt.Sprintf("%s:%s:%s:%s", metricTotals, userID, formatBound(start), formatBound(end))
}

func formatBound(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dayFormat)
}
