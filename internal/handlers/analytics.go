package handlers

import (
	"errors"
	"log"
	"time"

	"fido/internal/services/analytics"
	"fido/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AnalyticsHandler serves the three derived metrics. Every read also kicks
// the background refresh loop for the user, fire-and-forget; the Refresher
// deduplicates so repeated reads never spawn a second loop.
type AnalyticsHandler struct {
	svc       analytics.Service
	refresher *analytics.Refresher
}

func NewAnalyticsHandler(svc analytics.Service, refresher *analytics.Refresher) *AnalyticsHandler {
	return &AnalyticsHandler{
		svc:       svc,
		refresher: refresher,
	}
}

func (h *AnalyticsHandler) GetAverageTransactionValue(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return response.BadRequest(c, "invalid user id")
	}
	h.refresher.Start(userID)

	value, err := h.svc.AverageTransactionValue(c.Context(), userID)
	if err != nil {
		return analyticsError(c, err)
	}

	return response.Success(c, "Average transaction value retrieved successfully", fiber.Map{
		"average_transaction_value": value,
	})
}

func (h *AnalyticsHandler) GetHighestTransactionDay(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return response.BadRequest(c, "invalid user id")
	}
	h.refresher.Start(userID)

	day, err := h.svc.HighestTransactionDay(c.Context(), userID)
	if err != nil {
		return analyticsError(c, err)
	}

	return response.Success(c, "Highest transaction day retrieved successfully", fiber.Map{
		"highest_transaction_day": day.Format("2006-01-02"),
	})
}

func (h *AnalyticsHandler) GetTransactionTotals(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return response.BadRequest(c, "invalid user id")
	}

	start, err := parseDateQuery(c, "start_date")
	if err != nil {
		return response.BadRequest(c, "invalid start_date, expected YYYY-MM-DD")
	}
	end, err := parseDateQuery(c, "end_date")
	if err != nil {
		return response.BadRequest(c, "invalid end_date, expected YYYY-MM-DD")
	}

	h.refresher.Start(userID)

	totals, err := h.svc.TransactionTotals(c.Context(), userID, start, end)
	if err != nil {
		return analyticsError(c, err)
	}

	return response.Success(c, "Transaction totals retrieved successfully", totals)
}

// analyticsError maps the analytics taxonomy to HTTP statuses. Computation
// detail stays in the logs; the client only sees a generic message.
func analyticsError(c *fiber.Ctx, err error) error {
	if errors.Is(err, analytics.ErrDataNotFound) {
		return response.NotFound(c, "Analytics data not found for the specified user")
	}
	log.Printf("analytics computation failed: %v", err)
	return response.ServerError(c, "Error occurred while computing analytics data")
}

func parseDateQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
