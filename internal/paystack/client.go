// Package paystack is a minimal client for the Paystack transaction API:
// initializing a hosted checkout and verifying a finished transaction.
package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"groovava/models"
	"groovava/utils"
)

// currency is fixed: the gateway is only ever called with NGN, and
// amounts are in kobo (1/100 naira).
const currency = "NGN"

type Config struct {
	BaseURL   string `json:"baseUrl"`
	SecretKey string `json:"secretKey"`
}

type Client struct {
	// baseURL is the base url of the Paystack API.
	baseURL string

	// secretKey authenticates every call. It never leaves this package.
	secretKey string

	// cb rejects calls fast while the gateway is failing.
	cb *utils.CircuitBreaker

	// hc is the http client.
	hc *http.Client
}

// Error is an upstream rejection. Message carries the gateway's own
// message so the proxy can relay it to the caller.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("paystack: upstream status %d", e.StatusCode)
	}
	return fmt.Sprintf("paystack: %s", e.Message)
}

func NewClient(cfg *Config) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		cb:        utils.NewCircuitBreaker("paystack"),

		// set http client with timeout.
		hc: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SecretConfigured reports whether a secret credential is present.
// Its absence is a server configuration fault, not a validation error.
func (c *Client) SecretConfigured() bool {
	return c.secretKey != ""
}

// InitializeResult is the slice of the upstream response callers may
// see: the hosted checkout URL and the confirmed reference.
type InitializeResult struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// Initialize creates a transaction on the gateway and returns the
// hosted checkout URL for the payer to complete it.
func (c *Client) Initialize(ctx context.Context, req *models.PaymentRequest) (*InitializeResult, error) {
	result, err := c.cb.Execute(ctx, func() (any, error) {
		return c.doInitialize(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return result.(*InitializeResult), nil
}

func (c *Client) doInitialize(ctx context.Context, r *models.PaymentRequest) (*InitializeResult, error) {
	body := struct {
		Amount      int64                  `json:"amount"`
		Email       string                 `json:"email"`
		Reference   string                 `json:"reference"`
		CallbackURL string                 `json:"callback_url,omitempty"`
		Metadata    models.PaymentMetadata `json:"metadata"`
		Currency    string                 `json:"currency"`
	}{
		Amount:      r.Amount,
		Email:       r.Email,
		Reference:   r.Reference,
		CallbackURL: r.CallbackURL,
		Metadata:    r.Metadata,
		Currency:    currency,
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("initializeTransaction: json.Marshal: %v", err)
	}

	slog.Info("initiating paystack transaction",
		"reference", r.Reference,
		"amount", "₦"+DisplayAmount(r.Amount),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transaction/initialize", bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("initializeTransaction: http.NewReq: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("initializeTransaction: http.Do: %v", err)
	}
	defer resp.Body.Close()

	var reply struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    struct {
			AuthorizationURL string `json:"authorization_url"`
			AccessCode       string `json:"access_code"`
			Reference        string `json:"reference"`
		} `json:"data"`
	}
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&reply); err != nil {
		return nil, fmt.Errorf("initializeTransaction: json.Decode: %v", err)
	}

	if resp.StatusCode != http.StatusOK || !reply.Status {
		return nil, &Error{StatusCode: resp.StatusCode, Message: reply.Message}
	}
	if reply.Data.AuthorizationURL == "" {
		return nil, &Error{StatusCode: resp.StatusCode, Message: "missing authorization url in gateway response"}
	}

	return &InitializeResult{
		AuthorizationURL: reply.Data.AuthorizationURL,
		AccessCode:       reply.Data.AccessCode,
		Reference:        reply.Data.Reference,
	}, nil
}

// Transaction is the gateway's authoritative record of one attempt.
type Transaction struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	PaidAt    string `json:"paid_at"`
}

// Succeeded reports whether the gateway settled the transaction.
func (t *Transaction) Succeeded() bool {
	return t.Status == "success"
}

// Verify fetches the transaction's authoritative status by reference.
func (c *Client) Verify(ctx context.Context, reference string) (*Transaction, error) {
	result, err := c.cb.Execute(ctx, func() (any, error) {
		return c.doVerify(ctx, reference)
	})
	if err != nil {
		return nil, err
	}
	return result.(*Transaction), nil
}

func (c *Client) doVerify(ctx context.Context, reference string) (*Transaction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, fmt.Errorf("verifyTransaction: http.NewReq: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verifyTransaction: http.Do: %v", err)
	}
	defer resp.Body.Close()

	var reply struct {
		Status  bool        `json:"status"`
		Message string      `json:"message"`
		Data    Transaction `json:"data"`
	}
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&reply); err != nil {
		return nil, fmt.Errorf("verifyTransaction: json.Decode: %v", err)
	}

	if resp.StatusCode != http.StatusOK || !reply.Status {
		return nil, &Error{StatusCode: resp.StatusCode, Message: reply.Message}
	}

	return &reply.Data, nil
}

// DisplayAmount converts minor units to the display-currency form,
// e.g. 5000 kobo -> "50".
func DisplayAmount(minor int64) string {
	return decimal.NewFromInt(minor).Div(decimal.NewFromInt(100)).String()
}
