package handlers

import (
	"errors"
	"log/slog"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"groovava/services"
)

type CheckoutHandler struct {
	app      core.App
	checkout *services.CheckoutService
}

func NewCheckoutHandler(app core.App, checkout *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{app: app, checkout: checkout}
}

// Initiate starts a ticket purchase for the signed-in user. The auth
// check comes first: an anonymous request never reaches the service or
// the gateway.
func (h *CheckoutHandler) Initiate(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Please sign in to purchase tickets", nil)
	}

	var req struct {
		TicketType string `json:"ticket_type"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	record, err := h.app.FindRecordById("events", e.Request.PathValue("eventId"))
	if err != nil {
		return apis.NewNotFoundError("Event not found", err)
	}

	result, err := h.checkout.Initiate(
		e.Request.Context(),
		e.Auth.Id,
		e.Auth.Email(),
		recordToEvent(record, true),
		req.TicketType,
	)
	if err != nil {
		if errors.Is(err, services.ErrPurchaseInFlight) {
			return apis.NewApiError(409, "A purchase for this ticket is already in progress", nil)
		}
		var ie *services.InitiationError
		if errors.As(err, &ie) {
			if ie.Err != nil {
				slog.Error("checkout initiation failed", "event_id", record.Id, "err", ie.Err)
			}
			return apis.NewBadRequestError(ie.Message, nil)
		}
		slog.Error("checkout initiation failed", "event_id", record.Id, "err", err)
		return apis.NewInternalServerError("Failed to start payment", err)
	}

	return e.JSON(200, result)
}
