package matching

import "time"

// SkillLevel is the self-declared proficiency for a sport.
// Levels form an ordinal scale used for compatibility gaps.
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "beginner"
	LevelNovice       SkillLevel = "novice"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
	LevelExpert       SkillLevel = "expert"
)

var levelOrdinals = map[SkillLevel]int{
	LevelBeginner:     0,
	LevelNovice:       1,
	LevelIntermediate: 2,
	LevelAdvanced:     3,
	LevelExpert:       4,
}

// Ordinal returns the position of the level on the 0-4 scale, -1 if unknown
func (l SkillLevel) Ordinal() int {
	if ord, ok := levelOrdinals[l]; ok {
		return ord
	}
	return -1
}

// Valid reports whether l is one of the known levels
func (l SkillLevel) Valid() bool {
	_, ok := levelOrdinals[l]
	return ok
}

// SportEntry is one (sport, level) pair on a profile
type SportEntry struct {
	SportID int64      `json:"sport_id" db:"sport_id"`
	Level   SkillLevel `json:"level" db:"level"`
}

// Profile is the read model the matching engine works on.
// A profile with no sports never enters discovery, in either direction.
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
}

// SportLevel returns the profile's level for a sport, if present
func (p *Profile) SportLevel(sportID int64) (SkillLevel, bool) {
	for _, s := range p.Sports {
		if s.SportID == sportID {
			return s.Level, true
		}
	}
	return "", false
}

// Sport is immutable reference data, loaded in bulk and cached
type Sport struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Like is a directed edge: liker expressed interest in liked.
// At most one row exists per ordered (liker, liked) pair.
type Like struct {
	ID        int64     `json:"id" db:"id"`
	LikerID   int64     `json:"liker_id" db:"liker_id"`
	LikedID   int64     `json:"liked_id" db:"liked_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Match pairs two users once both directions of Like exist.
// Rows are canonicalized with user1_id < user2_id so the unordered
// pair is unique.
type Match struct {
	ID        int64     `json:"id" db:"id"`
	User1ID   int64     `json:"user1_id" db:"user1_id"`
	User2ID   int64     `json:"user2_id" db:"user2_id"`
	MatchedAt time.Time `json:"matched_at" db:"matched_at"`

	// Joined field, populated by GetUserMatches
	MatchedUser *MatchedUserInfo `json:"matched_user,omitempty"`
}

// OtherUser returns the id of the match participant that is not userID
func (m *Match) OtherUser(userID int64) int64 {
	if m.User1ID == userID {
		return m.User2ID
	}
	return m.User1ID
}

// MatchedUserInfo is the slim projection of the other match participant
type MatchedUserInfo struct {
	UserID    int64   `json:"user_id" db:"user_id"`
	FirstName string  `json:"first_name" db:"first_name"`
	City      string  `json:"city" db:"city"`
	PhotoURL  *string `json:"photo_url,omitempty" db:"photo_url"`
}

// CardSport is a sport entry resolved against the catalog for display
type CardSport struct {
	SportID   int64      `json:"sport_id"`
	SportName string     `json:"sport_name"`
	Level     SkillLevel `json:"level"`
}

// DiscoveryCard is the denormalized candidate projection returned by the
// feed. Built fresh per request, never persisted.
type DiscoveryCard struct {
	UserID     int64       `json:"user_id"`
	FirstName  string      `json:"first_name"`
	Age        int         `json:"age"`
	City       string      `json:"city"`
	PhotoURL   *string     `json:"photo_url,omitempty"`
	Bio        string      `json:"bio"`
	DistanceKm float64     `json:"distance_km"`
	Sports     []CardSport `json:"sports"`
}

// SwipeResult reports the outcome of a like
type SwipeResult struct {
	IsMatch         bool   `json:"is_match"`
	MatchID         *int64 `json:"match_id,omitempty"`
	MatchedUserName string `json:"matched_user_name,omitempty"`
}
