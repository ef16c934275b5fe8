package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType tags a ledger entry as money in or money out.
// The amount itself is always positive; the type carries the sign's meaning.
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "CREDIT"
	TransactionTypeDebit  TransactionType = "DEBIT"
)

// Valid reports whether t is one of the two known type tags.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeCredit || t == TransactionTypeDebit
}

// Transaction is a financial event on a user's ledger. Amount is stored in
// pesewas (the smallest currency subunit) as an integer, never as a float.
type Transaction struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount          int64           `gorm:"not null" json:"transaction_amount"`
	Type            TransactionType `gorm:"type:varchar(10);not null" json:"transaction_type"`
	TransactionDate time.Time       `gorm:"not null" json:"transaction_date"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// DayCount is one row of a transactions-per-calendar-day aggregate.
type DayCount struct {
	Day   time.Time `json:"day"`
	Count int64     `json:"count"`
}

// TypeTotal is one row of an amount-sum-per-type aggregate, in subunits.
type TypeTotal struct {
	Type  TransactionType `json:"type"`
	Total int64           `json:"total"`
}
