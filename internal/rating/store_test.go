package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalTeamName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Abbreviation", "LAL", "Los Angeles Lakers"},
		{"Nickname", "sixers", "Philadelphia 76ers"},
		{"Mixed case alias", "Gs Warriors", "Golden State Warriors"},
		{"Extra whitespace", "  new   orleans ", "New Orleans Pelicans"},
		{"Canonical passes through", "Boston Celtics", "Boston Celtics"},
		{"Unknown passes through", "Springfield Isotopes", "Springfield Isotopes"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanonicalTeamName(tt.input))
		})
	}
}

func TestIsCurrentNBATeam(t *testing.T) {
	assert.True(t, IsCurrentNBATeam("okc"))
	assert.True(t, IsCurrentNBATeam("Toronto Raptors"))
	assert.False(t, IsCurrentNBATeam("Seattle SuperSonics"))
}

func TestStoreLazyInit(t *testing.T) {
	s := NewStore(1500)

	r := s.Rating("Boston Celtics")
	assert.Equal(t, 1500.0, r)

	// Repeated reads are idempotent.
	assert.Equal(t, r, s.Rating("Boston Celtics"))
	assert.Equal(t, 1, s.Len())
}

func TestStoreAliasesShareRating(t *testing.T) {
	s := NewStore(1500)
	s.SetRating("LAL", 1620)

	assert.Equal(t, 1620.0, s.Rating("Los Angeles Lakers"))
	assert.Equal(t, 1620.0, s.Rating("lakers"))
	assert.Equal(t, 1, s.Len())
}

func TestStoreLoadCanonicalizes(t *testing.T) {
	s := NewStore(1500)
	s.Load(map[string]float64{"gsw": 1550})

	assert.Equal(t, 1550.0, s.Rating("Golden State Warriors"))
	snap := s.Snapshot()
	assert.Equal(t, 1550.0, snap["Golden State Warriors"])
}

func TestExpectedScore(t *testing.T) {
	// Equal ratings give exactly a coin flip.
	assert.InDelta(t, 0.5, ExpectedScore(1500, 1500), 1e-12)

	// Complements sum to one.
	for _, pair := range [][2]float64{{1500, 1600}, {1700, 1350}, {1500, 1500}} {
		sum := ExpectedScore(pair[0], pair[1]) + ExpectedScore(pair[1], pair[0])
		assert.InDelta(t, 1.0, sum, 1e-12)
	}

	// A 400-point gap is a 10:1 expectation.
	assert.InDelta(t, 10.0/11.0, ExpectedScore(1900, 1500), 1e-12)
}
