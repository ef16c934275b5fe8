package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fido/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrUserNotFound        = errors.New("user not found")
)

// TransactionRepository is the queryable transaction store. Besides row CRUD
// it exposes the aggregate queries the analytics engine is built on.
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	Update(ctx context.Context, tx *models.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AverageAmount returns the arithmetic mean of the user's transaction
	// amounts in subunits, 0 when the user has no transactions.
	AverageAmount(ctx context.Context, userID uuid.UUID) (float64, error)

	// DailyCounts groups the user's transactions by calendar day.
	DailyCounts(ctx context.Context, userID uuid.UUID) ([]models.DayCount, error)

	// SumsByType sums amounts per type tag over an optional closed date
	// window; a nil bound leaves that side open. The end date is inclusive
	// through the end of its day.
	SumsByType(ctx context.Context, userID uuid.UUID, start, end *time.Time) ([]models.TypeTotal, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	if db == nil {
		panic("db is required")
	}
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&tx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction %s: %w", id, err)
	}
	return &tx, nil
}

func (r *transactionRepository) Update(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Transaction{})
	if result.Error != nil {
		return fmt.Errorf("delete transaction %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *transactionRepository) AverageAmount(ctx context.Context, userID uuid.UUID) (float64, error) {
	var avg sql.NullFloat64
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("user_id = ?", userID).
		Select("AVG(amount)").
		Row().Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("average amount for user %s: %w", userID, err)
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}

func (r *transactionRepository) DailyCounts(ctx context.Context, userID uuid.UUID) ([]models.DayCount, error) {
	var rows []models.DayCount
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("user_id = ?", userID).
		Select("DATE(transaction_date) AS day, COUNT(*) AS count").
		Group("DATE(transaction_date)").
		Order("day").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("daily counts for user %s: %w", userID, err)
	}
	return rows, nil
}

func (r *transactionRepository) SumsByType(ctx context.Context, userID uuid.UUID, start, end *time.Time) ([]models.TypeTotal, error) {
	query := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("user_id = ?", userID)
	if start != nil {
		query = query.Where("transaction_date >= ?", *start)
	}
	if end != nil {
		// Closed interval: the end date counts through the end of its day.
		query = query.Where("transaction_date < ?", end.AddDate(0, 0, 1))
	}

	var rows []models.TypeTotal
	err := query.
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("type totals for user %s: %w", userID, err)
	}
	return rows, nil
}
