package matching

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ProfileStore provides the profile reads the matching engine needs
type ProfileStore interface {
	GetProfileByUserID(ctx context.Context, userID int64) (*Profile, error)
	// GetAllProfilesWithSports bulk-loads every profile that has at least
	// one sport, with the sport entries attached, in a single round trip.
	GetAllProfilesWithSports(ctx context.Context) ([]*Profile, error)
}

// SportStore provides the sport reference catalog
type SportStore interface {
	GetAllSports(ctx context.Context) ([]Sport, error)
}

// LikeStore persists directed likes
type LikeStore interface {
	LikeExists(ctx context.Context, likerID, likedID int64) (bool, error)
	// CreateLike inserts the like and reports whether a row was actually
	// created; false means the ordered pair already existed.
	CreateLike(ctx context.Context, like *Like) (bool, error)
	GetLikedUserIDs(ctx context.Context, likerID int64) ([]int64, error)
}

// MatchStore persists mutual matches
type MatchStore interface {
	MatchExists(ctx context.Context, userAID, userBID int64) (bool, error)
	// CreateMatch inserts the match for the unordered pair, treating an
	// existing row as success: on return match.ID and match.MatchedAt are
	// those of the winning row, whichever request created it.
	CreateMatch(ctx context.Context, match *Match) error
	GetUserMatches(ctx context.Context, userID int64) ([]*Match, error)
	GetMatchedUserIDs(ctx context.Context, userID int64) ([]int64, error)
}

// Repository bundles the stores for injection into the service
type Repository interface {
	ProfileStore
	SportStore
	LikeStore
	MatchStore
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

// Profile methods

func (r *postgresRepository) GetProfileByUserID(ctx context.Context, userID int64) (*Profile, error) {
	var profile Profile
	query := `
		SELECT p.user_id, p.first_name, p.age, p.gender, p.city,
		       p.latitude, p.longitude, p.bio, p.photo_url, p.max_distance_km
		FROM profiles p
		WHERE p.user_id = $1
	`

	err := r.db.GetContext(ctx, &profile, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	sportsQuery := `
		SELECT sport_id, level
		FROM profile_sports
		WHERE user_id = $1
		ORDER BY sport_id
	`
	if err := r.db.SelectContext(ctx, &profile.Sports, sportsQuery, userID); err != nil {
		return nil, fmt.Errorf("failed to get profile sports: %w", err)
	}

	return &profile, nil
}

// GetAllProfilesWithSports loads the whole candidate pool in one joined
// query and groups the rows into profiles. Profiles without sports drop
// out through the inner join.
func (r *postgresRepository) GetAllProfilesWithSports(ctx context.Context) ([]*Profile, error) {
	query := `
		SELECT p.user_id, p.first_name, p.age, p.gender, p.city,
		       p.latitude, p.longitude, p.bio, p.photo_url, p.max_distance_km,
		       ps.sport_id, ps.level
		FROM profiles p
		JOIN profile_sports ps ON ps.user_id = p.user_id
		ORDER BY p.user_id, ps.sport_id
	`

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate pool: %w", err)
	}
	defer rows.Close()

	var profiles []*Profile
	var current *Profile

	for rows.Next() {
		var row struct {
			Profile
			SportID int64      `db:"sport_id"`
			Level   SkillLevel `db:"level"`
		}
		if err := rows.StructScan(&row); err != nil {
			return nil, fmt.Errorf("failed to scan candidate row: %w", err)
		}

		if current == nil || current.UserID != row.UserID {
			p := row.Profile
			p.Sports = nil
			current = &p
			profiles = append(profiles, current)
		}
		current.Sports = append(current.Sports, SportEntry{SportID: row.SportID, Level: row.Level})
	}

	return profiles, rows.Err()
}

// Sport methods

func (r *postgresRepository) GetAllSports(ctx context.Context) ([]Sport, error) {
	var sports []Sport
	query := `SELECT id, name FROM sports ORDER BY id`

	if err := r.db.SelectContext(ctx, &sports, query); err != nil {
		return nil, fmt.Errorf("failed to load sports: %w", err)
	}
	return sports, nil
}

// Like methods

func (r *postgresRepository) LikeExists(ctx context.Context, likerID, likedID int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM likes
			WHERE liker_id = $1 AND liked_id = $2
		)
	`

	err := r.db.GetContext(ctx, &exists, query, likerID, likedID)
	return exists, err
}

func (r *postgresRepository) CreateLike(ctx context.Context, like *Like) (bool, error) {
	query := `
		INSERT INTO likes (liker_id, liked_id)
		VALUES ($1, $2)
		ON CONFLICT (liker_id, liked_id) DO NOTHING
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(ctx, query, like.LikerID, like.LikedID).
		Scan(&like.ID, &like.CreatedAt)
	if err == sql.ErrNoRows {
		// Conflict: the ordered pair already exists
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to create like: %w", err)
	}
	return true, nil
}

func (r *postgresRepository) GetLikedUserIDs(ctx context.Context, likerID int64) ([]int64, error) {
	var ids []int64
	query := `SELECT liked_id FROM likes WHERE liker_id = $1`

	if err := r.db.SelectContext(ctx, &ids, query, likerID); err != nil {
		return nil, fmt.Errorf("failed to load liked users: %w", err)
	}
	return ids, nil
}

// Match methods

func (r *postgresRepository) MatchExists(ctx context.Context, userAID, userBID int64) (bool, error) {
	userAID, userBID = canonicalPair(userAID, userBID)

	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM matches
			WHERE user1_id = $1 AND user2_id = $2
		)
	`

	err := r.db.GetContext(ctx, &exists, query, userAID, userBID)
	return exists, err
}

// CreateMatch is idempotent: two requests racing to create the same
// unordered pair both succeed, and both observe the single winning row.
func (r *postgresRepository) CreateMatch(ctx context.Context, match *Match) error {
	match.User1ID, match.User2ID = canonicalPair(match.User1ID, match.User2ID)

	query := `
		INSERT INTO matches (user1_id, user2_id)
		VALUES ($1, $2)
		ON CONFLICT (user1_id, user2_id) DO NOTHING
		RETURNING id, matched_at
	`

	err := r.db.QueryRowxContext(ctx, query, match.User1ID, match.User2ID).
		Scan(&match.ID, &match.MatchedAt)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to create match: %w", err)
	}

	// Lost the race: read the row the other request created
	existing := `
		SELECT id, matched_at FROM matches
		WHERE user1_id = $1 AND user2_id = $2
	`
	err = r.db.QueryRowxContext(ctx, existing, match.User1ID, match.User2ID).
		Scan(&match.ID, &match.MatchedAt)
	if err != nil {
		return fmt.Errorf("failed to load existing match: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetUserMatches(ctx context.Context, userID int64) ([]*Match, error) {
	query := `
		SELECT m.id, m.user1_id, m.user2_id, m.matched_at,
		       CASE WHEN m.user1_id = $1 THEN u2.user_id ELSE u1.user_id END AS other_user_id,
		       CASE WHEN m.user1_id = $1 THEN u2.first_name ELSE u1.first_name END AS other_first_name,
		       CASE WHEN m.user1_id = $1 THEN u2.city ELSE u1.city END AS other_city,
		       CASE WHEN m.user1_id = $1 THEN u2.photo_url ELSE u1.photo_url END AS other_photo_url
		FROM matches m
		JOIN profiles u1 ON m.user1_id = u1.user_id
		JOIN profiles u2 ON m.user2_id = u2.user_id
		WHERE m.user1_id = $1 OR m.user2_id = $1
		ORDER BY m.matched_at DESC
	`

	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}
	defer rows.Close()

	var matches []*Match
	for rows.Next() {
		var match Match
		var other MatchedUserInfo

		err := rows.Scan(
			&match.ID, &match.User1ID, &match.User2ID, &match.MatchedAt,
			&other.UserID, &other.FirstName, &other.City, &other.PhotoURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}

		match.MatchedUser = &other
		matches = append(matches, &match)
	}

	return matches, rows.Err()
}

func (r *postgresRepository) GetMatchedUserIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	query := `
		SELECT CASE WHEN user1_id = $1 THEN user2_id ELSE user1_id END
		FROM matches
		WHERE user1_id = $1 OR user2_id = $1
	`

	if err := r.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, fmt.Errorf("failed to load matched users: %w", err)
	}
	return ids, nil
}

// canonicalPair orders the two ids so user1 < user2
func canonicalPair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}
