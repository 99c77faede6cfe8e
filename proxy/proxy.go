// Package proxy is the browser-facing payment initialization endpoint.
// It keeps the gateway secret server-side: the frontend posts the
// payment intent here and only ever sees the hosted checkout URL.
package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v5"

	"groovava/internal/paystack"
	"groovava/models"
)

// Gateway is the slice of the paystack client the proxy needs.
type Gateway interface {
	Initialize(ctx context.Context, req *models.PaymentRequest) (*paystack.InitializeResult, error)
	SecretConfigured() bool
}

type Proxy struct {
	gateway Gateway
}

func New(gateway Gateway) *Proxy {
	return &Proxy{gateway: gateway}
}

// Routes mounts the proxy endpoint. Browser preflights land on the
// same path, so the handler owns method dispatch itself.
func (p *Proxy) Routes(e *echo.Echo, middlewares ...echo.MiddlewareFunc) {
	e.Any("/paystack-initiate-payment", p.Handle, middlewares...)
}

func (p *Proxy) Handle(c echo.Context) error {
	h := c.Response().Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")

	if c.Request().Method == http.MethodOptions {
		return c.String(http.StatusOK, "ok")
	}

	if c.Request().Method != http.MethodPost {
		return c.JSON(http.StatusMethodNotAllowed, map[string]any{
			"error": "Method not allowed",
		})
	}

	var body struct {
		Amount      int64                  `json:"amount"`
		Email       string                 `json:"email"`
		Reference   string                 `json:"reference"`
		CallbackURL string                 `json:"callback_url"`
		Metadata    models.PaymentMetadata `json:"metadata"`
	}
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
		slog.Error("payment proxy: bad request body", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"error":   "Internal server error",
			"details": err.Error(),
		})
	}

	if body.Amount == 0 || body.Email == "" || body.Reference == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "Missing required fields: amount, email, reference",
		})
	}

	if !p.gateway.SecretConfigured() {
		slog.Error("payment proxy: gateway secret key not configured")
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"error": "Payment service configuration error",
		})
	}

	result, err := p.gateway.Initialize(c.Request().Context(), &models.PaymentRequest{
		Amount:      body.Amount,
		Email:       body.Email,
		Reference:   body.Reference,
		CallbackURL: body.CallbackURL,
		Metadata:    body.Metadata,
	})
	if err != nil {
		var perr *paystack.Error
		if errors.As(err, &perr) {
			slog.Error("payment proxy: gateway rejected initialization",
				"reference", body.Reference,
				"status", perr.StatusCode,
				"message", perr.Message,
			)
			details := perr.Message
			if details == "" {
				details = "Unknown error"
			}
			return c.JSON(http.StatusBadRequest, map[string]any{
				"error":   "Payment initialization failed",
				"details": details,
			})
		}
		slog.Error("payment proxy: initialization error", "reference", body.Reference, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"error":   "Internal server error",
			"details": err.Error(),
		})
	}

	slog.Info("payment initialized",
		"reference", body.Reference,
		"authorization_url", result.AuthorizationURL,
	)

	// Only these two fields go back to the frontend.
	return c.JSON(http.StatusOK, map[string]any{
		"success":           true,
		"authorization_url": result.AuthorizationURL,
		"reference":         result.Reference,
	})
}
