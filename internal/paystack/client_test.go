package paystack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groovava/models"
)

func TestInitialize(t *testing.T) {
	var gotBody map[string]any
	var gotAuth string

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/transaction/initialize", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]any{
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code":       "abc123",
				"reference":         "groovava-7-1-abc123",
			},
		})
	}))
	defer upstream.Close()

	client := NewClient(&Config{BaseURL: upstream.URL, SecretKey: "sk_test_secret"})

	result, err := client.Initialize(context.Background(), &models.PaymentRequest{
		Amount:      5000,
		Email:       "buyer@example.com",
		Reference:   "groovava-7-1-abc123",
		CallbackURL: "https://groovava.app/payments/callback",
		Metadata: models.PaymentMetadata{
			EventID:    "7",
			TicketType: "VIP",
			UserID:     "user1",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "https://checkout.paystack.com/abc123", result.AuthorizationURL)
	assert.Equal(t, "groovava-7-1-abc123", result.Reference)

	assert.Equal(t, "Bearer sk_test_secret", gotAuth)
	assert.Equal(t, float64(5000), gotBody["amount"])
	assert.Equal(t, "buyer@example.com", gotBody["email"])
	assert.Equal(t, "groovava-7-1-abc123", gotBody["reference"])
	assert.Equal(t, "https://groovava.app/payments/callback", gotBody["callback_url"])
	assert.Equal(t, "NGN", gotBody["currency"])

	metadata, ok := gotBody["metadata"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "7", metadata["event_id"])
	assert.Equal(t, "VIP", metadata["ticket_type"])
	assert.Equal(t, "user1", metadata["user_id"])
}

func TestInitializeUpstreamRejection(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"status":  false,
			"message": "Invalid key",
		})
	}))
	defer upstream.Close()

	client := NewClient(&Config{BaseURL: upstream.URL, SecretKey: "sk_test_bad"})

	_, err := client.Initialize(context.Background(), &models.PaymentRequest{
		Amount:    5000,
		Email:     "buyer@example.com",
		Reference: "groovava-7-1-abc123",
	})
	require.Error(t, err)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusBadRequest, perr.StatusCode)
	assert.Equal(t, "Invalid key", perr.Message)
}

func TestInitializeMissingAuthorizationURL(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": true, "data": map[string]any{}})
	}))
	defer upstream.Close()

	client := NewClient(&Config{BaseURL: upstream.URL, SecretKey: "sk_test_secret"})

	_, err := client.Initialize(context.Background(), &models.PaymentRequest{
		Amount:    5000,
		Email:     "buyer@example.com",
		Reference: "groovava-7-1-abc123",
	})

	var perr *Error
	require.ErrorAs(t, err, &perr)
}

func TestVerify(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/transaction/verify/groovava-7-1-abc123", r.URL.Path)
		require.Equal(t, "Bearer sk_test_secret", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]any{
			"status": true,
			"data": map[string]any{
				"reference": "groovava-7-1-abc123",
				"status":    "success",
				"amount":    5000,
				"currency":  "NGN",
			},
		})
	}))
	defer upstream.Close()

	client := NewClient(&Config{BaseURL: upstream.URL, SecretKey: "sk_test_secret"})

	tx, err := client.Verify(context.Background(), "groovava-7-1-abc123")
	require.NoError(t, err)

	assert.Equal(t, "groovava-7-1-abc123", tx.Reference)
	assert.True(t, tx.Succeeded())
	assert.Equal(t, int64(5000), tx.Amount)
}

func TestVerifyAbandonedTransaction(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status": true,
			"data":   map[string]any{"reference": "ref", "status": "abandoned"},
		})
	}))
	defer upstream.Close()

	client := NewClient(&Config{BaseURL: upstream.URL, SecretKey: "sk_test_secret"})

	tx, err := client.Verify(context.Background(), "ref")
	require.NoError(t, err)
	assert.False(t, tx.Succeeded())
}

func TestVerifyNotFound(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{
			"status":  false,
			"message": "Transaction reference not found",
		})
	}))
	defer upstream.Close()

	client := NewClient(&Config{BaseURL: upstream.URL, SecretKey: "sk_test_secret"})

	_, err := client.Verify(context.Background(), "missing")

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusNotFound, perr.StatusCode)
	assert.Equal(t, "Transaction reference not found", perr.Message)
}

func TestSecretConfigured(t *testing.T) {
	assert.True(t, NewClient(&Config{SecretKey: "sk"}).SecretConfigured())
	assert.False(t, NewClient(&Config{}).SecretConfigured())
}

func TestDisplayAmount(t *testing.T) {
	assert.Equal(t, "50", DisplayAmount(5000))
	assert.Equal(t, "0.5", DisplayAmount(50))
	assert.Equal(t, "1234.56", DisplayAmount(123456))
}
