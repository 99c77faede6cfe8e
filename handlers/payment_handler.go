package handlers

import (
	"errors"
	"log/slog"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"groovava/services"
)

type PaymentHandler struct {
	checkout *services.CheckoutService
}

func NewPaymentHandler(checkout *services.CheckoutService) *PaymentHandler {
	return &PaymentHandler{checkout: checkout}
}

// Callback is where the gateway redirects the payer after checkout. It
// classifies the redirect parameters into an outcome record for the
// client to render. Idempotent; the query is the only input.
func (h *PaymentHandler) Callback(e *core.RequestEvent) error {
	outcome := h.checkout.ResolveOutcome(e.Request.Context(), e.Request.URL.Query())

	slog.Info("payment callback resolved",
		"reference", outcome.Reference,
		"status", outcome.Status,
		"verified", outcome.Verified,
	)

	return e.JSON(200, outcome)
}

// Status returns the recorded attempt for a reference, restricted to
// the purchaser.
func (h *PaymentHandler) Status(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Please sign in to view payment status", nil)
	}

	attempt, err := h.checkout.AttemptStatus(e.Request.Context(), e.Request.PathValue("reference"))
	if err != nil {
		if errors.Is(err, services.ErrAttemptNotFound) {
			return apis.NewNotFoundError("Payment attempt not found", nil)
		}
		slog.Error("failed to load payment attempt", "err", err)
		return apis.NewInternalServerError("Failed to load payment status", err)
	}

	if attempt.UserID != e.Auth.Id {
		return apis.NewForbiddenError("You can only view your own payments", nil)
	}

	return e.JSON(200, attempt)
}
