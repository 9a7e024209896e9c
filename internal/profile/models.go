//internal/profile/models.go

package profile

import "time"

// Profile is a user's sports profile as stored
type Profile struct {
	UserID        int64        `json:"user_id" db:"user_id"`
	FirstName     string       `json:"first_name" db:"first_name"`
	Age           int          `json:"age" db:"age"`
	Gender        string       `json:"gender" db:"gender"`
	City          string       `json:"city" db:"city"`
	Latitude      float64      `json:"latitude" db:"latitude"`
	Longitude     float64      `json:"longitude" db:"longitude"`
	Bio           string       `json:"bio" db:"bio"`
	PhotoURL      *string      `json:"photo_url,omitempty" db:"photo_url"`
	MaxDistanceKm float64      `json:"max_distance_km" db:"max_distance_km"`
	Sports        []SportEntry `json:"sports"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`
}

// SportEntry is one practiced sport with its declared level
type SportEntry struct {
	SportID int64  `json:"sport_id" db:"sport_id" validate:"required,gt=0"`
	Level   string `json:"level" db:"level" validate:"required,oneof=beginner novice intermediate advanced expert"`
}

// UpsertProfileRequest creates or replaces the caller's profile
type UpsertProfileRequest struct {
	FirstName     string       `json:"first_name" validate:"required,min=2,max=100"`
	Age           int          `json:"age" validate:"required,min=16,max=100"`
	Gender        string       `json:"gender" validate:"required,oneof=male female other"`
	City          string       `json:"city" validate:"required,max=100"`
	Latitude      float64      `json:"latitude" validate:"latitude"`
	Longitude     float64      `json:"longitude" validate:"longitude"`
	Bio           string       `json:"bio" validate:"max=500"`
	MaxDistanceKm float64      `json:"max_distance_km" validate:"required,gt=0,max=500"`
	Sports        []SportEntry `json:"sports" validate:"max=10,dive"`
}
