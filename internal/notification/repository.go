package notifications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrNoEmailAddress = errors.New("user has no email address")

// Repository persists device tokens and resolves notification targets
type Repository interface {
	SaveDeviceToken(ctx context.Context, token *DeviceToken) error
	GetUserDeviceTokens(ctx context.Context, userID int64) ([]string, error)
	GetUserEmail(ctx context.Context, userID int64) (string, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) SaveDeviceToken(ctx context.Context, token *DeviceToken) error {
	query := `
		INSERT INTO device_tokens (user_id, token, platform)
		VALUES ($1, $2, $3)
		ON CONFLICT (token) DO UPDATE SET
			user_id = $1, platform = $3
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(ctx, query, token.UserID, token.Token, token.Platform).
		Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save device token: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetUserDeviceTokens(ctx context.Context, userID int64) ([]string, error) {
	var tokens []string
	query := `SELECT token FROM device_tokens WHERE user_id = $1`

	if err := r.db.SelectContext(ctx, &tokens, query, userID); err != nil {
		return nil, fmt.Errorf("failed to load device tokens: %w", err)
	}
	return tokens, nil
}

func (r *postgresRepository) GetUserEmail(ctx context.Context, userID int64) (string, error) {
	var email string
	query := `SELECT email FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &email, query, userID)
	if err == sql.ErrNoRows {
		return "", ErrNoEmailAddress
	}
	if err != nil {
		return "", fmt.Errorf("failed to load user email: %w", err)
	}
	return email, nil
}
