package analytics

import "time"

// Totals is the user-facing credit/debit aggregate in display units.
type Totals struct {
	Credit float64 `json:"credit"`
	Debit  float64 `json:"debit"`
}

// Config holds the engine's tunables. Zero values fall back to defaults.
type Config struct {
	// CacheTTL is the expiry applied to every analytics cache entry.
	CacheTTL time.Duration

	// RefreshInterval is the period between background recomputations.
	RefreshInterval time.Duration
}

// Cached payloads. Amounts are subunit integers, never display units, so a
// cached value compares equal to a freshly computed one. The day is stored
// as canonical date-only text.
type averagePayload struct {
	Value int64 `json:"value"`
}

type dayPayload struct {
	Day string `json:"day"`
}

type totalsPayload struct {
	Credit int64 `json:"credit"`
	Debit  int64 `json:"debit"`
}
