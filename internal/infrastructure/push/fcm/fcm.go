package fcm

import (
	"context"
	"errors"
	"fmt"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/medeiros-dev/notify-gateway/internal/domain/port/push"
	"github.com/medeiros-dev/notify-gateway/pkg/logger"
	"go.uber.org/zap"
)

// Sender implements push.Sender on Firebase Cloud Messaging.
type Sender struct {
	client *messaging.Client
	ttl    time.Duration
}

func NewSender(ctx context.Context, credentialsFile string, ttl time.Duration) (*Sender, error) {
	if credentialsFile == "" {
		return nil, errors.New("FCM credentials file cannot be empty")
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing messaging client: %w", err)
	}

	logger.L().Info("Initialized FCM sender", zap.Duration("ttl", ttl))
	return &Sender{client: client, ttl: ttl}, nil
}

// Send delivers one message to one device token. Delivery hints are uniform
// across event types: immediate high-priority delivery with sound and
// vibration, bounded by the configured time-to-live, and content-available
// so a backgrounded app can process the structured payload.
func (s *Sender) Send(ctx context.Context, msg push.Message, token string) (string, error) {
	ttl := s.ttl
	id, err := s.client.Send(ctx, &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			TTL:      &ttl,
			Notification: &messaging.AndroidNotification{
				Sound:                 "default",
				DefaultVibrateTimings: true,
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":   "10",
				"apns-expiration": fmt.Sprintf("%d", time.Now().Add(s.ttl).Unix()),
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound:            "default",
					ContentAvailable: true,
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("sending push to FCM: %w", err)
	}
	return id, nil
}
