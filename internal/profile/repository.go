// internal/profile/repository.go

package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrProfileNotFound = errors.New("profile not found")

// Repository defines the profile repository interface
type Repository interface {
	GetProfileByUserID(ctx context.Context, userID int64) (*Profile, error)
	UpsertProfile(ctx context.Context, profile *Profile) error
	UpdatePhotoURL(ctx context.Context, userID int64, url string) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetProfileByUserID(ctx context.Context, userID int64) (*Profile, error) {
	var profile Profile
	query := `
		SELECT user_id, first_name, age, gender, city, latitude, longitude,
		       bio, photo_url, max_distance_km, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	err := r.db.GetContext(ctx, &profile, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	sportsQuery := `SELECT sport_id, level FROM profile_sports WHERE user_id = $1 ORDER BY sport_id`
	if err := r.db.SelectContext(ctx, &profile.Sports, sportsQuery, userID); err != nil {
		return nil, fmt.Errorf("failed to get profile sports: %w", err)
	}

	return &profile, nil
}

// UpsertProfile writes the profile row and replaces its sport entries in
// one transaction
func (r *postgresRepository) UpsertProfile(ctx context.Context, profile *Profile) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO profiles (
			user_id, first_name, age, gender, city, latitude, longitude,
			bio, max_distance_km
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			first_name = $2, age = $3, gender = $4, city = $5,
			latitude = $6, longitude = $7, bio = $8, max_distance_km = $9,
			updated_at = CURRENT_TIMESTAMP
		RETURNING created_at, updated_at
	`

	err = tx.QueryRowxContext(
		ctx, query,
		profile.UserID, profile.FirstName, profile.Age, profile.Gender,
		profile.City, profile.Latitude, profile.Longitude,
		profile.Bio, profile.MaxDistanceKm,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM profile_sports WHERE user_id = $1`, profile.UserID); err != nil {
		return fmt.Errorf("failed to clear profile sports: %w", err)
	}

	for _, entry := range profile.Sports {
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO profile_sports (user_id, sport_id, level) VALUES ($1, $2, $3)`,
			profile.UserID, entry.SportID, entry.Level,
		)
		if err != nil {
			return fmt.Errorf("failed to insert profile sport: %w", err)
		}
	}

	return tx.Commit()
}

func (r *postgresRepository) UpdatePhotoURL(ctx context.Context, userID int64, url string) error {
	query := `
		UPDATE profiles
		SET photo_url = $2, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $1
	`

	result, err := r.db.ExecContext(ctx, query, userID, url)
	if err != nil {
		return fmt.Errorf("failed to update photo: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProfileNotFound
	}
	return nil
}
