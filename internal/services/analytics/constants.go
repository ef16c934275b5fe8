package analytics

import "time"

const (
	// SubunitFactor converts subunit integers (pesewas) to display units
	// (cedis) at the read boundary.
	SubunitFactor = 100

	// DefaultCacheTTL bounds how long an analytics entry may serve reads
	// before the next recomputation. Date-ranged totals entries rely on this
	// alone, since they are not covered by mutation invalidation.
	DefaultCacheTTL = 100 * time.Second

	// DefaultRefreshInterval is the period of the background refresh loop.
	DefaultRefreshInterval = 100 * time.Second
)

// Metric names used for cache keys and instrumentation labels.
const (
	metricAverage    = "avg"
	metricHighestDay = "maxday"
	metricTotals     = "totals"
)

// dayFormat is the canonical date-only text representation for cached days
// and totals key bounds.
const dayFormat = "2006-01-02"
