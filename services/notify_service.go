package services

import (
	"context"
	"fmt"
	"log/slog"

	pubnub "github.com/pubnub/go/v7"

	"groovava/models"
)

// Notifier pushes resolved payment outcomes to the purchasing user.
type Notifier interface {
	NotifyOutcome(ctx context.Context, userID string, outcome models.PaymentOutcome) error
}

type PubNubConfig struct {
	PublishKey   string
	SubscribeKey string
	SecretKey    string
	UUID         string
}

type PubNubNotifier struct {
	pn *pubnub.PubNub
}

func NewPubNubNotifier(cfg *PubNubConfig) *PubNubNotifier {
	pnCfg := pubnub.NewConfigWithUserId(pubnub.UserId(cfg.UUID))
	pnCfg.PublishKey = cfg.PublishKey
	pnCfg.SubscribeKey = cfg.SubscribeKey
	pnCfg.SecretKey = cfg.SecretKey

	return &PubNubNotifier{pn: pubnub.NewPubNub(pnCfg)}
}

// NotifyOutcome publishes the outcome on the user's private channel so
// an open client can react without polling.
func (n *PubNubNotifier) NotifyOutcome(ctx context.Context, userID string, outcome models.PaymentOutcome) error {
	channel := fmt.Sprintf("user-%s", userID)

	_, _, err := n.pn.Publish().
		Channel(channel).
		Message(map[string]interface{}{
			"type":      "payment_outcome",
			"reference": outcome.Reference,
			"status":    string(outcome.Status),
			"verified":  outcome.Verified,
		}).
		Execute()
	if err != nil {
		return fmt.Errorf("notifyOutcome: publish: %v", err)
	}

	slog.Info("published payment outcome", "channel", channel, "reference", outcome.Reference)
	return nil
}
