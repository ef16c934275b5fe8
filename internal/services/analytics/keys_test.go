package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCacheKeys(t *testing.T) {
	userID := uuid.MustParse("7d444840-9dc0-11d1-b245-5ffdce74fad2")

	assert.Equal(t, "avg:7d444840-9dc0-11d1-b245-5ffdce74fad2", AverageKey(userID))
	assert.Equal(t, "maxday:7d444840-9dc0-11d1-b245-5ffdce74fad2", HighestDayKey(userID))

	t.Run("absent totals bounds serialize to empty strings", func(t *testing.T) {
		assert.Equal(t, "totals:7d444840-9dc0-11d1-b245-5ffdce74fad2::", TotalsKey(userID, nil, nil))
	})

	t.Run("bounds serialize as date-only text", func(t *testing.T) {
		start := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
		assert.Equal(t,
			"totals:7d444840-9dc0-11d1-b245-5ffdce74fad2:2024-02-01:2024-02-29",
			TotalsKey(userID, &start, &end))
		assert.Equal(t,
			"totals:7d444840-9dc0-11d1-b245-5ffdce74fad2:2024-02-01:",
			TotalsKey(userID, &start, nil))
	})
}

func TestInvalidationKeyFanOut(t *testing.T) {
	userID := uuid.New()

	keys := Keys(userID)
	assert.ElementsMatch(t, []string{
		AverageKey(userID),
		HighestDayKey(userID),
		TotalsKey(userID, nil, nil),
	}, keys)
}
