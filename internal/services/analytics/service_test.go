package analytics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fido/internal/models"
	"fido/internal/repositories/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) AverageAmount(ctx context.Context, userID uuid.UUID) (float64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockStore) DailyCounts(ctx context.Context, userID uuid.UUID) ([]models.DayCount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DayCount), args.Error(1)
}

func (m *MockStore) SumsByType(ctx context.Context, userID uuid.UUID, start, end *time.Time) ([]models.TypeTotal, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TypeTotal), args.Error(1)
}

// faultyCache simulates a cache backend fault on every operation.
type faultyCache struct{}

func (faultyCache) Get(context.Context, string, interface{}) (bool, error) {
	return false, fmt.Errorf("%w: connection refused", cache.ErrCache)
}

func (faultyCache) Set(context.Context, string, interface{}, time.Duration) error {
	return fmt.Errorf("%w: connection refused", cache.ErrCache)
}

func (faultyCache) Delete(context.Context, ...string) error {
	return fmt.Errorf("%w: connection refused", cache.ErrCache)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAverageTransactionValue(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("empty ledger returns zero, not an error", func(t *testing.T) {
		store := new(MockStore)
		store.On("AverageAmount", mock.Anything, userID).Return(0.0, nil)
		svc := NewService(store, cache.NewMemoryStore(), nil, Config{})

		value, err := svc.AverageTransactionValue(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 0.0, value)
	})

	t.Run("computes subunit mean and serves repeat reads from cache", func(t *testing.T) {
		store := new(MockStore)
		store.On("AverageAmount", mock.Anything, userID).Return(4000.0, nil).Once()
		svc := NewService(store, cache.NewMemoryStore(), nil, Config{})

		first, err := svc.AverageTransactionValue(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 40.0, first)

		// Second read must hit the cache; the store mock only allows one call.
		second, err := svc.AverageTransactionValue(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		store.AssertExpectations(t)
	})

	t.Run("rounded mean round-trips through the cache", func(t *testing.T) {
		store := new(MockStore)
		store.On("AverageAmount", mock.Anything, userID).Return(3333.4, nil).Once()
		svc := NewService(store, cache.NewMemoryStore(), nil, Config{})

		fresh, err := svc.AverageTransactionValue(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 33.33, fresh)

		cached, err := svc.AverageTransactionValue(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, fresh, cached)
	})

	t.Run("cache fault fails fast without touching the store", func(t *testing.T) {
		store := new(MockStore)
		svc := NewService(store, faultyCache{}, nil, Config{})

		_, err := svc.AverageTransactionValue(ctx, userID)
		assert.ErrorIs(t, err, ErrComputation)
		store.AssertNotCalled(t, "AverageAmount", mock.Anything, mock.Anything)
	})

	t.Run("store fault surfaces as computation error", func(t *testing.T) {
		store := new(MockStore)
		store.On("AverageAmount", mock.Anything, userID).Return(0.0, fmt.Errorf("connection reset"))
		svc := NewService(store, cache.NewMemoryStore(), nil, Config{})

		_, err := svc.AverageTransactionValue(ctx, userID)
		assert.ErrorIs(t, err, ErrComputation)
		assert.NotErrorIs(t, err, ErrDataNotFound)
	})
}

func TestHighestTransactionDay(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("no transactions is a not-found condition", func(t *testing.T) {
		store := new(MockStore)
		store.On("DailyCounts", mock.Anything, userID).Return([]models.DayCount{}, nil)
		memory := cache.NewMemoryStore()
		svc := NewService(store, memory, nil, Config{})

		_, err := svc.HighestTransactionDay(ctx, userID)
		assert.ErrorIs(t, err, ErrDataNotFound)

		// The not-found condition must not be cached.
		var cached dayPayload
		hit, err := memory.Get(ctx, HighestDayKey(userID), &cached)
		require.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("busiest day wins", func(t *testing.T) {
		store := new(MockStore)
		store.On("DailyCounts", mock.Anything, userID).Return([]models.DayCount{
			{Day: day(2024, time.March, 1), Count: 3},
			{Day: day(2024, time.March, 2), Count: 1},
		}, nil)
		svc := NewService(store, cache.NewMemoryStore(), nil, Config{})

		got, err := svc.HighestTransactionDay(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, day(2024, time.March, 1), got)
	})

	t.Run("equal counts break to the earliest day", func(t *testing.T) {
		store := new(MockStore)
		store.On("DailyCounts", mock.Anything, userID).Return([]models.DayCount{
			{Day: day(2024, time.March, 9), Count: 2},
			{Day: day(2024, time.March, 3), Count: 2},
			{Day: day(2024, time.March, 5), Count: 2},
		}, nil)
		svc := NewService(store, cache.NewMemoryStore(), nil, Config{})

		got, err := svc.HighestTransactionDay(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, day(2024, time.March, 3), got)
	})

	t.Run("cached day round-trips the date exactly", func(t *testing.T) {
		store := new(MockStore)
		store.On("DailyCounts", mock.Anything, userID).Return([]models.DayCount{
			{Day: day(2024, time.December, 31), Count: 4},
		}, nil).Once()
		svc := NewService(store, cache.NewMemoryStore(), nil, Config{})

		fresh, err := svc.HighestTransactionDay(ctx, userID)
		require.NoError(t, err)

		cached, err := svc.HighestTransactionDay(ctx, userID)
		require.NoError(t, err)
		assert.True(t, fresh.Equal(cached))
		store.AssertExpectations(t)
	})
}

func TestTransactionTotals(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("sums credit and debit in display units", func(t *testing.T) {
		store := new(MockStore)
		store.On("SumsByType", mock.Anything, userID, (*time.Time)(nil), (*time.Time)(nil)).
			Return([]models.TypeTotal{
				{Type: models.TransactionTypeDebit, Total: 5000},
				{Type: models.TransactionTypeCredit, Total: 3000},
			}, nil)
		svc := NewService(store, cache.NewMemoryStore(), nil, Config{})

		totals, err := svc.TransactionTotals(ctx, userID, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, Totals{Credit: 30.0, Debit: 50.0}, totals)
	})

	t.Run("a type with no rows defaults to zero", func(t *testing.T) {
		store := new(MockStore)
		store.On("SumsByType", mock.Anything, userID, (*time.Time)(nil), (*time.Time)(nil)).
			Return([]models.TypeTotal{
				{Type: models.TransactionTypeCredit, Total: 1250},
			}, nil)
		svc := NewService(store, cache.NewMemoryStore(), nil, Config{})

		totals, err := svc.TransactionTotals(ctx, userID, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, Totals{Credit: 12.5, Debit: 0}, totals)
	})

	t.Run("empty window is a not-found condition", func(t *testing.T) {
		start := day(2024, time.January, 1)
		end := day(2024, time.January, 31)
		store := new(MockStore)
		store.On("SumsByType", mock.Anything, userID, &start, &end).
			Return([]models.TypeTotal{}, nil)
		svc := NewService(store, cache.NewMemoryStore(), nil, Config{})

		_, err := svc.TransactionTotals(ctx, userID, &start, &end)
		assert.ErrorIs(t, err, ErrDataNotFound)
	})

	t.Run("ranged and unranged windows cache independently", func(t *testing.T) {
		start := day(2024, time.January, 1)
		end := day(2024, time.January, 31)
		store := new(MockStore)
		store.On("SumsByType", mock.Anything, userID, (*time.Time)(nil), (*time.Time)(nil)).
			Return([]models.TypeTotal{{Type: models.TransactionTypeCredit, Total: 10000}}, nil).Once()
		store.On("SumsByType", mock.Anything, userID, &start, &end).
			Return([]models.TypeTotal{{Type: models.TransactionTypeCredit, Total: 2000}}, nil).Once()
		svc := NewService(store, cache.NewMemoryStore(), nil, Config{})

		all, err := svc.TransactionTotals(ctx, userID, nil, nil)
		require.NoError(t, err)
		ranged, err := svc.TransactionTotals(ctx, userID, &start, &end)
		require.NoError(t, err)

		assert.Equal(t, 100.0, all.Credit)
		assert.Equal(t, 20.0, ranged.Credit)
		store.AssertExpectations(t)
	})

	t.Run("expired entry is recomputed", func(t *testing.T) {
		store := new(MockStore)
		store.On("SumsByType", mock.Anything, userID, (*time.Time)(nil), (*time.Time)(nil)).
			Return([]models.TypeTotal{{Type: models.TransactionTypeDebit, Total: 700}}, nil).Twice()
		svc := NewService(store, cache.NewMemoryStore(), nil, Config{CacheTTL: 10 * time.Millisecond})

		_, err := svc.TransactionTotals(ctx, userID, nil, nil)
		require.NoError(t, err)

		time.Sleep(20 * time.Millisecond)

		_, err = svc.TransactionTotals(ctx, userID, nil, nil)
		require.NoError(t, err)
		store.AssertExpectations(t)
	})
}
