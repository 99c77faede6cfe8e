package payments

import (
	"net/url"
	"time"

	"groovava/models"
)

// ResolveOutcome classifies a gateway redirect from its query parameters.
// The reference is read from "reference" or the legacy "trxref" alias.
// Classification is closed: success, cancelled, and everything else
// (including absent status) is failed. The result is a display record
// only; it proves nothing about the gateway's authoritative state.
func ResolveOutcome(query url.Values) models.PaymentOutcome {
	reference := query.Get("reference")
	if reference == "" {
		reference = query.Get("trxref")
	}

	var status models.OutcomeStatus
	switch query.Get("status") {
	case "success":
		status = models.OutcomeSuccess
	case "cancelled":
		status = models.OutcomeCancelled
	default:
		status = models.OutcomeFailed
	}

	return models.PaymentOutcome{
		Reference: reference,
		Status:    status,
		Timestamp: time.Now().UTC(),
	}
}
