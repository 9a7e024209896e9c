// internal/notification/push.go

package notifications

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// PushService delivers push notifications
type PushService interface {
	SendPush(ctx context.Context, notification *PushNotification) error
}

// FCMPushService implements push notifications using Firebase Cloud Messaging
type FCMPushService struct {
	client *messaging.Client
}

// NewFCMPushService builds the FCM client from FIREBASE_CREDENTIALS_PATH
// or FIREBASE_CREDENTIALS_JSON
func NewFCMPushService(ctx context.Context, credentialsPath string) (PushService, error) {
	var opt option.ClientOption
	if credentialsPath != "" {
		opt = option.WithCredentialsFile(credentialsPath)
	} else if credentialsJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON"); credentialsJSON != "" {
		opt = option.WithCredentialsJSON([]byte(credentialsJSON))
	} else {
		return nil, errors.New("FIREBASE_CREDENTIALS_PATH or FIREBASE_CREDENTIALS_JSON must be set")
	}

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	return &FCMPushService{client: client}, nil
}

// SendPush sends the notification to every registered device token
func (s *FCMPushService) SendPush(ctx context.Context, notification *PushNotification) error {
	if len(notification.Tokens) == 0 {
		return errors.New("no tokens provided")
	}

	message := &messaging.MulticastMessage{
		Tokens: notification.Tokens,
		Notification: &messaging.Notification{
			Title: notification.Title,
			Body:  notification.Body,
		},
		Data: notification.Data,
	}

	response, err := s.client.SendEachForMulticast(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send push: %w", err)
	}

	if response.FailureCount > 0 {
		log.Printf("push delivered to %d/%d devices", response.SuccessCount, len(notification.Tokens))
	}
	return nil
}

// MockPushService logs instead of sending, for development and tests
type MockPushService struct{}

func NewMockPushService() PushService {
	return &MockPushService{}
}

func (s *MockPushService) SendPush(ctx context.Context, notification *PushNotification) error {
	log.Printf("[mock push] to %d devices: %s - %s", len(notification.Tokens), notification.Title, notification.Body)
	return nil
}
