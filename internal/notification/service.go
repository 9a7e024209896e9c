// internal/notification/service.go

package notifications

import (
	"context"
	"fmt"
	"log"
	"strconv"
)

type Service interface {
	// SendMatchNotification tells toUserID about a new match with
	// matchedFirstName. Enabled channels are each best effort; the call
	// fails only when no channel delivered.
	SendMatchNotification(ctx context.Context, toUserID int64, matchedFirstName string, matchID int64) error

	RegisterDevice(ctx context.Context, userID int64, req *RegisterDeviceRequest) (*DeviceToken, error)
}

// Config selects which notification channels are active
type Config struct {
	EnablePush  bool
	EnableEmail bool
}

type service struct {
	repo   Repository
	push   PushService
	email  EmailService
	config *Config
}

func NewService(repo Repository, push PushService, email EmailService, config *Config) Service {
	return &service{
		repo:   repo,
		push:   push,
		email:  email,
		config: config,
	}
}

func (s *service) SendMatchNotification(ctx context.Context, toUserID int64, matchedFirstName string, matchID int64) error {
	title := "You have a new match!"
	body := fmt.Sprintf("You matched with %s. Time to plan a session together!", matchedFirstName)

	delivered := false

	if s.config.EnablePush {
		tokens, err := s.repo.GetUserDeviceTokens(ctx, toUserID)
		if err != nil {
			log.Printf("failed to load device tokens for user %d: %v", toUserID, err)
		} else if len(tokens) > 0 {
			push := &PushNotification{
				Tokens: tokens,
				Title:  title,
				Body:   body,
				Data: map[string]string{
					"type":     "match",
					"match_id": strconv.FormatInt(matchID, 10),
				},
			}
			if err := s.push.SendPush(ctx, push); err != nil {
				log.Printf("failed to push match notification to user %d: %v", toUserID, err)
			} else {
				delivered = true
			}
		}
	}

	if s.config.EnableEmail {
		address, err := s.repo.GetUserEmail(ctx, toUserID)
		if err != nil {
			log.Printf("failed to resolve email for user %d: %v", toUserID, err)
		} else {
			email := &EmailNotification{
				To:      address,
				Subject: title,
				Body:    body,
			}
			if err := s.email.SendEmail(ctx, email); err != nil {
				log.Printf("failed to email match notification to user %d: %v", toUserID, err)
			} else {
				delivered = true
			}
		}
	}

	if !delivered {
		return fmt.Errorf("no notification channel reached user %d", toUserID)
	}
	return nil
}

func (s *service) RegisterDevice(ctx context.Context, userID int64, req *RegisterDeviceRequest) (*DeviceToken, error) {
	token := &DeviceToken{
		UserID:   userID,
		Token:    req.Token,
		Platform: req.Platform,
	}

	if err := s.repo.SaveDeviceToken(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}
