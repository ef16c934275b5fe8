package transaction

import "errors"

var (
	ErrNotFound      = errors.New("transaction not found")
	ErrInvalidAmount = errors.New("transaction amount must be positive")
	ErrInvalidType   = errors.New("transaction type must be CREDIT or DEBIT")
)
