// Package rating maintains per-team Elo ratings and the standard Elo update
// rules. The store is a plain in-memory map with no internal locking; callers
// that settle results concurrently must serialize updates touching the same
// team.
package rating

import "math"

// DefaultInitialRating is the Elo assigned to a team on first sight.
const DefaultInitialRating = 1500.0

// Store maps canonical team names to their current Elo rating.
type Store struct {
	ratings       map[string]float64
	initialRating float64
}

// NewStore creates a rating store. A non-positive initialRating falls back to
// DefaultInitialRating.
func NewStore(initialRating float64) *Store {
	if initialRating <= 0 {
		initialRating = DefaultInitialRating
	}
	return &Store{
		ratings:       make(map[string]float64),
		initialRating: initialRating,
	}
}

// Rating returns the team's Elo, lazily initializing unknown teams at the
// configured initial rating. The lazy write is deterministic and idempotent:
// repeated reads return the same value.
func (s *Store) Rating(team string) float64 {
	key := CanonicalTeamName(team)
	if r, ok := s.ratings[key]; ok {
		return r
	}
	s.ratings[key] = s.initialRating
	return s.initialRating
}

// SetRating overwrites a team's rating. Used by manual overrides, ratings
// imports, and the Elo updater.
func (s *Store) SetRating(team string, value float64) {
	s.ratings[CanonicalTeamName(team)] = value
}

// Load merges persisted ratings into the store, canonicalizing keys so that
// rows written under alias spellings fold into one entry.
func (s *Store) Load(saved map[string]float64) {
	for team, r := range saved {
		s.ratings[CanonicalTeamName(team)] = r
	}
}

// Snapshot returns a copy of all current ratings keyed by canonical name.
func (s *Store) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(s.ratings))
	for k, v := range s.ratings {
		out[k] = v
	}
	return out
}

// Len returns the number of tracked teams.
func (s *Store) Len() int {
	return len(s.ratings)
}

// ExpectedScore returns the standard logistic Elo expectation for team A
// against team B, in the open interval (0, 1). It satisfies
// ExpectedScore(a, b) + ExpectedScore(b, a) == 1.
func ExpectedScore(ratingA, ratingB float64) float64 {
	return 1.0 / (1.0 + math.Pow(10.0, (ratingB-ratingA)/400.0))
}
