package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"groovava/internal/paystack"
	"groovava/models"
	"groovava/monitoring"
	"groovava/payments"
	"groovava/tickets"
)

// ErrPurchaseInFlight means the same user already has an initiation in
// progress for the same ticket type and price.
var ErrPurchaseInFlight = errors.New("a purchase for this ticket is already in progress")

// ErrAttemptNotFound means no payment attempt is recorded under the
// given reference, or its record has already expired.
var ErrAttemptNotFound = errors.New("payment attempt not found")

// InitiationError carries a message safe to show the purchaser. The
// underlying cause stays in Err for logs.
type InitiationError struct {
	Message string
	Err     error
}

func (e *InitiationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *InitiationError) Unwrap() error { return e.Err }

// Gateway is the slice of the paystack client the checkout flow needs.
type Gateway interface {
	Initialize(ctx context.Context, req *models.PaymentRequest) (*paystack.InitializeResult, error)
	Verify(ctx context.Context, reference string) (*paystack.Transaction, error)
	SecretConfigured() bool
}

type CheckoutConfig struct {
	CallbackURL      string
	AttemptTTL       time.Duration
	VerifyOnCallback bool
}

// CheckoutService drives ticket purchases: it validates the request,
// records the attempt, and hands the payer off to the gateway's hosted
// checkout page.
type CheckoutService struct {
	gateway  Gateway
	redis    *redis.Client
	notifier Notifier

	callbackURL      string
	attemptTTL       time.Duration
	verifyOnCallback bool

	// inflight holds one entry per (user, type, price) initiation that
	// has not returned yet. It only dedupes concurrent clicks; the
	// attempt session in Redis is the durable record.
	mu       sync.Mutex
	inflight map[string]struct{}

	now func() time.Time
}

func NewCheckoutService(gateway Gateway, redisClient *redis.Client, notifier Notifier, cfg *CheckoutConfig) *CheckoutService {
	return &CheckoutService{
		gateway:          gateway,
		redis:            redisClient,
		notifier:         notifier,
		callbackURL:      cfg.CallbackURL,
		attemptTTL:       cfg.AttemptTTL,
		verifyOnCallback: cfg.VerifyOnCallback,
		inflight:         make(map[string]struct{}),
		now:              time.Now,
	}
}

// Initiate starts a purchase of one ticket tier of an event and returns
// the hosted checkout URL. The caller must already have authenticated
// the user.
func (s *CheckoutService) Initiate(ctx context.Context, userID, email string, event *models.Event, tierType string) (*models.InitiationResult, error) {
	if strings.TrimSpace(email) == "" {
		return nil, &InitiationError{Message: "An email address is required to purchase tickets"}
	}

	tiers := event.Tiers
	if tiers == nil {
		tiers = tickets.Decode(event.Price)
	}

	var tier *tickets.Tier
	for i := range tiers {
		if tiers[i].Type == tierType {
			tier = &tiers[i]
			break
		}
	}
	if tier == nil {
		return nil, &InitiationError{Message: "This ticket type is not offered for this event"}
	}

	// Whole display-currency units only. Free and malformed prices are
	// not purchasable.
	price, err := strconv.Atoi(strings.TrimSpace(tier.Price))
	if err != nil || price <= 0 {
		return nil, &InitiationError{Message: "This ticket does not have a valid price"}
	}

	key := inflightKey(userID, tier.Type, tier.Price)
	s.mu.Lock()
	if _, busy := s.inflight[key]; busy {
		s.mu.Unlock()
		return nil, ErrPurchaseInFlight
	}
	s.inflight[key] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inflight, key)
		s.mu.Unlock()
	}()

	reference := payments.BuildReference(event.ID)
	amount := int64(price) * 100

	req := &models.PaymentRequest{
		Amount:      amount,
		Email:       email,
		Reference:   reference,
		CallbackURL: s.callbackURL,
		Metadata: models.PaymentMetadata{
			EventID:    event.ID,
			TicketType: tier.Type,
			UserID:     userID,
			EventTitle: event.Title,
			EventDate:  event.Date,
		},
	}

	s.recordAttempt(ctx, req)

	start := time.Now()
	result, err := s.gateway.Initialize(ctx, req)
	monitoring.TrackGatewayRequest("initialize", time.Since(start))
	if err != nil {
		s.markAttempt(ctx, reference, "failed")
		monitoring.TrackInitiation("failed")
		return nil, &InitiationError{Message: "Unable to start payment. Please try again.", Err: err}
	}

	monitoring.TrackInitiation("success")
	slog.Info("checkout initiated",
		"reference", result.Reference,
		"event_id", event.ID,
		"ticket_type", tier.Type,
		"amount", "₦"+paystack.DisplayAmount(amount),
	)

	return &models.InitiationResult{
		AuthorizationURL: result.AuthorizationURL,
		Reference:        result.Reference,
	}, nil
}

func inflightKey(userID, tierType, price string) string {
	return fmt.Sprintf("%s|%s|%s", userID, tierType, price)
}

func attemptKey(reference string) string {
	return fmt.Sprintf("payment:attempt:%s", reference)
}

// recordAttempt writes the attempt session. A failure here is logged
// and swallowed: the purchase must not stall on the session store.
func (s *CheckoutService) recordAttempt(ctx context.Context, req *models.PaymentRequest) {
	if s.redis == nil {
		return
	}

	key := attemptKey(req.Reference)
	err := s.redis.HSet(ctx, key,
		"user_id", req.Metadata.UserID,
		"event_id", req.Metadata.EventID,
		"ticket_type", req.Metadata.TicketType,
		"email", req.Email,
		"amount", strconv.FormatInt(req.Amount, 10),
		"status", "pending",
		"created_at", s.now().UTC().Format(time.RFC3339),
	).Err()
	if err != nil {
		slog.Warn("failed to record payment attempt", "reference", req.Reference, "err", err)
		return
	}

	if err := s.redis.Expire(ctx, key, s.attemptTTL).Err(); err != nil {
		slog.Warn("failed to expire payment attempt", "reference", req.Reference, "err", err)
	}
}

func (s *CheckoutService) markAttempt(ctx context.Context, reference, status string) {
	if s.redis == nil || reference == "" {
		return
	}
	if err := s.redis.HSet(ctx, attemptKey(reference), "status", status).Err(); err != nil {
		slog.Warn("failed to update payment attempt", "reference", reference, "err", err)
	}
}

// ResolveOutcome classifies a gateway callback. A claimed success is
// re-checked against the gateway when a secret is configured; redirect
// parameters alone are forgeable.
func (s *CheckoutService) ResolveOutcome(ctx context.Context, query url.Values) models.PaymentOutcome {
	outcome := payments.ResolveOutcome(query)

	if outcome.Status == models.OutcomeSuccess && s.verifyOnCallback && s.gateway.SecretConfigured() {
		start := time.Now()
		tx, err := s.gateway.Verify(ctx, outcome.Reference)
		monitoring.TrackGatewayRequest("verify", time.Since(start))

		switch {
		case err != nil:
			slog.Warn("could not verify claimed success, downgrading to failed",
				"reference", outcome.Reference, "err", err)
			outcome.Status = models.OutcomeFailed
		case !tx.Succeeded():
			slog.Warn("gateway did not confirm claimed success, downgrading to failed",
				"reference", outcome.Reference, "gateway_status", tx.Status)
			outcome.Status = models.OutcomeFailed
		default:
			outcome.Verified = true
		}
	}

	s.markAttempt(ctx, outcome.Reference, string(outcome.Status))
	monitoring.TrackOutcome(string(outcome.Status), outcome.Verified)
	s.notifyOutcome(ctx, outcome)

	return outcome
}

func (s *CheckoutService) notifyOutcome(ctx context.Context, outcome models.PaymentOutcome) {
	if s.notifier == nil || s.redis == nil || outcome.Reference == "" {
		return
	}

	userID, err := s.redis.HGet(ctx, attemptKey(outcome.Reference), "user_id").Result()
	if err != nil || userID == "" {
		return
	}

	if err := s.notifier.NotifyOutcome(ctx, userID, outcome); err != nil {
		slog.Warn("failed to notify payment outcome", "reference", outcome.Reference, "err", err)
	}
}

// PaymentAttempt is the session view of one initiation.
type PaymentAttempt struct {
	Reference  string `json:"reference"`
	UserID     string `json:"user_id"`
	EventID    string `json:"event_id"`
	TicketType string `json:"ticket_type"`
	Amount     int64  `json:"amount"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}

// AttemptStatus returns the recorded attempt for a reference, or
// ErrAttemptNotFound once its TTL has passed.
func (s *CheckoutService) AttemptStatus(ctx context.Context, reference string) (*PaymentAttempt, error) {
	if s.redis == nil {
		return nil, ErrAttemptNotFound
	}

	fields, err := s.redis.HGetAll(ctx, attemptKey(reference)).Result()
	if err != nil {
		return nil, fmt.Errorf("attemptStatus: hgetall: %v", err)
	}
	if len(fields) == 0 {
		return nil, ErrAttemptNotFound
	}

	amount, _ := strconv.ParseInt(fields["amount"], 10, 64)
	return &PaymentAttempt{
		Reference:  reference,
		UserID:     fields["user_id"],
		EventID:    fields["event_id"],
		TicketType: fields["ticket_type"],
		Amount:     amount,
		Status:     fields["status"],
		CreatedAt:  fields["created_at"],
	}, nil
}
