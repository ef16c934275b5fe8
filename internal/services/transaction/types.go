package transaction

import (
	"time"

	"fido/internal/models"

	"github.com/google/uuid"
)

// CreateInput carries the fields of a new transaction. Amount is in
// subunits and must be positive.
type CreateInput struct {
	UserID uuid.UUID
	Amount int64
	Type   models.TransactionType
	Date   time.Time
}

// UpdateInput carries a partial field replacement; nil fields keep their
// current value.
type UpdateInput struct {
	Amount *int64
	Type   *models.TransactionType
	Date   *time.Time
}
