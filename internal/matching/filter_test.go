package matching

import "testing"

var testSportNames = map[int64]string{
	1: "Tennis",
	2: "Running",
	3: "Climbing",
}

func testProfile(userID int64, lat, lon, maxDist float64, sports ...SportEntry) *Profile {
	return &Profile{
		UserID:        userID,
		FirstName:     "User",
		Age:           30,
		City:          "Milan",
		Latitude:      lat,
		Longitude:     lon,
		MaxDistanceKm: maxDist,
		Sports:        sports,
	}
}

func sportID(id int64) *int64 { return &id }

func TestBuildDiscoveryCard(t *testing.T) {
	// Roughly 11 km apart along the same meridian
	viewer := testProfile(1, 45.0, 9.0, 25,
		SportEntry{SportID: 1, Level: LevelIntermediate},
		SportEntry{SportID: 2, Level: LevelBeginner},
	)

	tests := []struct {
		name      string
		viewer    *Profile
		candidate *Profile
		filter    *int64
		wantOK    bool
	}{
		{
			name:      "shared sport within distance",
			viewer:    viewer,
			candidate: testProfile(2, 45.1, 9.0, 50, SportEntry{SportID: 1, Level: LevelAdvanced}),
			wantOK:    true,
		},
		{
			name:      "no shared sport",
			viewer:    viewer,
			candidate: testProfile(2, 45.1, 9.0, 50, SportEntry{SportID: 3, Level: LevelBeginner}),
			wantOK:    false,
		},
		{
			name:      "candidate with no sports",
			viewer:    viewer,
			candidate: testProfile(2, 45.1, 9.0, 50),
			wantOK:    false,
		},
		{
			name:      "beyond viewer max distance",
			viewer:    viewer,
			candidate: testProfile(2, 46.0, 9.0, 500, SportEntry{SportID: 1, Level: LevelIntermediate}),
			wantOK:    false,
		},
		{
			name:      "candidate max distance does not bound the viewer",
			viewer:    viewer,
			candidate: testProfile(2, 45.1, 9.0, 1, SportEntry{SportID: 1, Level: LevelIntermediate}),
			wantOK:    true,
		},
		{
			name:      "sport filter with one level gap",
			viewer:    viewer,
			candidate: testProfile(2, 45.1, 9.0, 50, SportEntry{SportID: 1, Level: LevelAdvanced}),
			filter:    sportID(1),
			wantOK:    true,
		},
		{
			name:      "sport filter with two level gap",
			viewer:    viewer,
			candidate: testProfile(2, 45.1, 9.0, 50, SportEntry{SportID: 1, Level: LevelExpert}),
			filter:    sportID(1),
			wantOK:    false,
		},
		{
			name:      "sport filter candidate lacks the sport",
			viewer:    viewer,
			candidate: testProfile(2, 45.1, 9.0, 50, SportEntry{SportID: 2, Level: LevelBeginner}),
			filter:    sportID(1),
			wantOK:    false,
		},
		{
			name:      "sport filter viewer lacks the sport",
			viewer:    viewer,
			candidate: testProfile(2, 45.1, 9.0, 50, SportEntry{SportID: 3, Level: LevelBeginner}),
			filter:    sportID(3),
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card, ok := BuildDiscoveryCard(tt.viewer, tt.candidate, testSportNames, tt.filter)
			if ok != tt.wantOK {
				t.Fatalf("BuildDiscoveryCard() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && card == nil {
				t.Fatal("BuildDiscoveryCard() returned ok with nil card")
			}
			if !ok && card != nil {
				t.Fatal("BuildDiscoveryCard() returned a card despite rejecting")
			}
		})
	}
}

func TestBuildDiscoveryCardProjection(t *testing.T) {
	viewer := testProfile(1, 45.0, 9.0, 200, SportEntry{SportID: 1, Level: LevelIntermediate})

	photo := "https://cdn.example.com/p/2.jpg"
	candidate := testProfile(2, 46.0, 9.0, 50,
		SportEntry{SportID: 1, Level: LevelIntermediate},
		SportEntry{SportID: 2, Level: LevelNovice},
	)
	candidate.FirstName = "Giulia"
	candidate.Age = 27
	candidate.City = "Pavia"
	candidate.Bio = "weekend climber"
	candidate.PhotoURL = &photo

	card, ok := BuildDiscoveryCard(viewer, candidate, testSportNames, nil)
	if !ok {
		t.Fatal("expected a card")
	}

	if card.UserID != 2 || card.FirstName != "Giulia" || card.Age != 27 || card.City != "Pavia" {
		t.Errorf("unexpected identity fields: %+v", card)
	}
	if card.PhotoURL == nil || *card.PhotoURL != photo {
		t.Errorf("photo url not carried over: %v", card.PhotoURL)
	}

	// One degree of latitude, rounded to one decimal
	if card.DistanceKm != 111.2 {
		t.Errorf("DistanceKm = %v, want 111.2", card.DistanceKm)
	}

	if len(card.Sports) != 2 {
		t.Fatalf("expected 2 sports on card, got %d", len(card.Sports))
	}
	if card.Sports[0].SportName != "Tennis" || card.Sports[1].SportName != "Running" {
		t.Errorf("sport names not resolved: %+v", card.Sports)
	}
}

func TestBuildDiscoveryCardFilterRestrictsSports(t *testing.T) {
	viewer := testProfile(1, 45.0, 9.0, 50, SportEntry{SportID: 1, Level: LevelIntermediate})
	candidate := testProfile(2, 45.05, 9.0, 50,
		SportEntry{SportID: 1, Level: LevelIntermediate},
		SportEntry{SportID: 2, Level: LevelExpert},
	)

	card, ok := BuildDiscoveryCard(viewer, candidate, testSportNames, sportID(1))
	if !ok {
		t.Fatal("expected a card")
	}
	if len(card.Sports) != 1 || card.Sports[0].SportID != 1 {
		t.Errorf("filtered card should only carry the filtered sport, got %+v", card.Sports)
	}
}

func TestLevelGap(t *testing.T) {
	tests := []struct {
		a, b SkillLevel
		want int
	}{
		{LevelBeginner, LevelBeginner, 0},
		{LevelBeginner, LevelNovice, 1},
		{LevelNovice, LevelBeginner, 1},
		{LevelBeginner, LevelExpert, 4},
		{LevelIntermediate, LevelExpert, 2},
	}

	for _, tt := range tests {
		if got := levelGap(tt.a, tt.b); got != tt.want {
			t.Errorf("levelGap(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSkillLevelOrdinal(t *testing.T) {
	ordered := []SkillLevel{LevelBeginner, LevelNovice, LevelIntermediate, LevelAdvanced, LevelExpert}
	for i, level := range ordered {
		if level.Ordinal() != i {
			t.Errorf("%s.Ordinal() = %d, want %d", level, level.Ordinal(), i)
		}
		if !level.Valid() {
			t.Errorf("%s should be valid", level)
		}
	}

	if SkillLevel("pro").Ordinal() != -1 {
		t.Error("unknown level should have ordinal -1")
	}
	if SkillLevel("pro").Valid() {
		t.Error("unknown level should not be valid")
	}
}
