package matching

// maxLevelGap is the widest acceptable skill gap when filtering by a
// specific sport. A one-level gap is acceptable, two or more is not.
const maxLevelGap = 1

// BuildDiscoveryCard decides whether candidate is compatible with viewer
// and, when it is, returns the card to display. Pure: no side effects.
//
// Rules:
//   - the candidate's sport list (restricted to filterSportID when set)
//     must be non-empty
//   - the candidate must be within the viewer's max-distance preference
//   - with a sport filter, both sides must play that sport and their
//     levels may differ by at most one step
//   - without a filter, the two profiles must share at least one sport
func BuildDiscoveryCard(viewer, candidate *Profile, sportNames map[int64]string, filterSportID *int64) (*DiscoveryCard, bool) {
	sports := candidateSports(candidate, sportNames, filterSportID)
	if len(sports) == 0 {
		return nil, false
	}

	distance := DistanceKm(viewer.Latitude, viewer.Longitude, candidate.Latitude, candidate.Longitude)
	if distance > viewer.MaxDistanceKm {
		return nil, false
	}

	if filterSportID != nil {
		viewerLevel, ok := viewer.SportLevel(*filterSportID)
		if !ok {
			return nil, false
		}
		candidateLevel, _ := candidate.SportLevel(*filterSportID)
		if levelGap(viewerLevel, candidateLevel) > maxLevelGap {
			return nil, false
		}
	} else if !sharesSport(viewer, candidate) {
		return nil, false
	}

	return &DiscoveryCard{
		UserID:     candidate.UserID,
		FirstName:  candidate.FirstName,
		Age:        candidate.Age,
		City:       candidate.City,
		PhotoURL:   candidate.PhotoURL,
		Bio:        candidate.Bio,
		DistanceKm: roundKm(distance),
		Sports:     sports,
	}, true
}

// candidateSports resolves the candidate's sports against the catalog,
// restricted to filterSportID when one is given
func candidateSports(candidate *Profile, sportNames map[int64]string, filterSportID *int64) []CardSport {
	var sports []CardSport
	for _, entry := range candidate.Sports {
		if filterSportID != nil && entry.SportID != *filterSportID {
			continue
		}
		sports = append(sports, CardSport{
			SportID:   entry.SportID,
			SportName: sportNames[entry.SportID],
			Level:     entry.Level,
		})
	}
	return sports
}

// levelGap is the absolute ordinal difference between two skill levels
func levelGap(a, b SkillLevel) int {
	gap := a.Ordinal() - b.Ordinal()
	if gap < 0 {
		gap = -gap
	}
	return gap
}

// sharesSport reports whether the two profiles have any sport id in common
func sharesSport(viewer, candidate *Profile) bool {
	viewerSports := make(map[int64]struct{}, len(viewer.Sports))
	for _, s := range viewer.Sports {
		viewerSports[s.SportID] = struct{}{}
	}
	for _, s := range candidate.Sports {
		if _, ok := viewerSports[s.SportID]; ok {
			return true
		}
	}
	return false
}
