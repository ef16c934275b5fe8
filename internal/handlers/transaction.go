package handlers

import (
	"errors"
	"log"
	"time"

	"fido/internal/metrics"
	"fido/internal/models"
	"fido/internal/services/transaction"
	"fido/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TransactionHandler struct {
	svc transaction.Service
}

func NewTransactionHandler(svc transaction.Service) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

type createTransactionRequest struct {
	UserID uuid.UUID              `json:"user_id"`
	Amount int64                  `json:"transaction_amount"`
	Type   models.TransactionType `json:"transaction_type"`
	Date   time.Time              `json:"transaction_date"`
}

type updateTransactionRequest struct {
	Amount *int64                  `json:"transaction_amount"`
	Type   *models.TransactionType `json:"transaction_type"`
	Date   *time.Time              `json:"transaction_date"`
}

func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var req createTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if req.UserID == uuid.Nil {
		return response.BadRequest(c, "user_id is required")
	}

	tx, err := h.svc.Create(c.Context(), transaction.CreateInput{
		UserID: req.UserID,
		Amount: req.Amount,
		Type:   req.Type,
		Date:   req.Date,
	})
	if err != nil {
		return transactionError(c, err)
	}

	metrics.TransactionsTotal.WithLabelValues("create").Inc()
	return response.Created(c, "Transaction created successfully", tx)
}

func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "invalid transaction id")
	}

	tx, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return transactionError(c, err)
	}
	return response.Success(c, "Transaction retrieved successfully", tx)
}

func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "invalid transaction id")
	}

	var req updateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	tx, err := h.svc.Update(c.Context(), id, transaction.UpdateInput{
		Amount: req.Amount,
		Type:   req.Type,
		Date:   req.Date,
	})
	if err != nil {
		return transactionError(c, err)
	}

	metrics.TransactionsTotal.WithLabelValues("update").Inc()
	return response.Success(c, "Transaction updated successfully", tx)
}

func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "invalid transaction id")
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return transactionError(c, err)
	}

	metrics.TransactionsTotal.WithLabelValues("delete").Inc()
	return c.SendStatus(fiber.StatusNoContent)
}

func transactionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, transaction.ErrNotFound):
		return response.NotFound(c, "Transaction not found")
	case errors.Is(err, transaction.ErrInvalidAmount), errors.Is(err, transaction.ErrInvalidType):
		return response.BadRequest(c, err.Error())
	default:
		log.Printf("transaction operation failed: %v", err)
		return response.ServerError(c, "Failed to process transaction")
	}
}
