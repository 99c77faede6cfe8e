package models

import "time"

// PaymentMetadata travels with a payment request to the gateway and is
// echoed back on its dashboard and webhooks.
type PaymentMetadata struct {
	EventID    string `json:"event_id"`
	TicketType string `json:"ticket_type"`
	UserID     string `json:"user_id"`
	EventTitle string `json:"event_title,omitempty"`
	EventDate  string `json:"event_date,omitempty"`
}

// PaymentRequest is built once per purchase attempt and discarded after
// the redirect. Amount is in minor units (kobo, 1/100 of a naira).
type PaymentRequest struct {
	Amount      int64           `json:"amount"`
	Email       string          `json:"email"`
	Reference   string          `json:"reference"`
	CallbackURL string          `json:"callback_url"`
	Metadata    PaymentMetadata `json:"metadata"`
}

// InitiationResult is what the client needs to continue the purchase:
// the hosted checkout page and the reference confirmed by the gateway.
type InitiationResult struct {
	AuthorizationURL string `json:"authorization_url"`
	Reference        string `json:"reference"`
}

// OutcomeStatus is the closed classification of a payment callback.
type OutcomeStatus string

const (
	OutcomeSuccess   OutcomeStatus = "success"
	OutcomeCancelled OutcomeStatus = "cancelled"
	OutcomeFailed    OutcomeStatus = "failed"
)

// PaymentOutcome is derived from callback query parameters, never persisted.
type PaymentOutcome struct {
	Reference string        `json:"reference,omitempty"`
	Status    OutcomeStatus `json:"status"`
	Timestamp time.Time     `json:"timestamp"`

	// Verified reports whether the gateway confirmed a claimed success.
	// False either means verification is disabled or it did not confirm.
	Verified bool `json:"verified,omitempty"`
}
