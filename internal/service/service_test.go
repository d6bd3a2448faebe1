package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/elo-better/internal/models"
	"github.com/yourusername/elo-better/internal/rating"
)

// fakeSource returns canned results for any date
type fakeSource struct {
	results []models.GameResult
	err     error
}

func (f *fakeSource) FetchResults(ctx context.Context, date string) ([]models.GameResult, error) {
	return f.results, f.err
}

func (f *fakeSource) Name() string    { return "fake" }
func (f *fakeSource) IsEnabled() bool { return true }

// memResultRepo stores results in memory keyed by fixture
type memResultRepo struct {
	rows map[string]*models.GameResult
}

func newMemResultRepo() *memResultRepo {
	return &memResultRepo{rows: make(map[string]*models.GameResult)}
}

func (m *memResultRepo) key(sport models.Sport, r *models.GameResult) string {
	return string(sport) + "|" + r.GameDate + "|" + r.HomeTeam + "|" + r.AwayTeam
}

func (m *memResultRepo) Create(ctx context.Context, sport models.Sport, r *models.GameResult) error {
	m.rows[m.key(sport, r)] = r
	return nil
}

func (m *memResultRepo) Exists(ctx context.Context, sport models.Sport, r *models.GameResult) (bool, error) {
	_, ok := m.rows[m.key(sport, r)]
	return ok, nil
}

func (m *memResultRepo) GetByDate(ctx context.Context, sport models.Sport, gameDate string) ([]*models.GameResult, error) {
	var out []*models.GameResult
	for _, r := range m.rows {
		if r.GameDate == gameDate {
			out = append(out, r)
		}
	}
	return out, nil
}

// memRatingRepo stores team ratings in memory
type memRatingRepo struct {
	rows map[string]*models.TeamRating
}

func newMemRatingRepo() *memRatingRepo {
	return &memRatingRepo{rows: make(map[string]*models.TeamRating)}
}

func (m *memRatingRepo) Upsert(ctx context.Context, sport models.Sport, r *models.TeamRating) error {
	m.rows[string(sport)+"|"+r.TeamName] = r
	return nil
}

func (m *memRatingRepo) GetByTeam(ctx context.Context, sport models.Sport, teamName string) (*models.TeamRating, error) {
	r, ok := m.rows[string(sport)+"|"+teamName]
	if !ok {
		return nil, models.ErrNotFound
	}
	return r, nil
}

func (m *memRatingRepo) GetAll(ctx context.Context, sport models.Sport) ([]*models.TeamRating, error) {
	var out []*models.TeamRating
	for k, r := range m.rows {
		if strings.HasPrefix(k, string(sport)+"|") {
			out = append(out, r)
		}
	}
	return out, nil
}

func TestRatingsImportTolerantHeaders(t *testing.T) {
	store := rating.NewStore(1500)
	im := NewRatingsImporter(store, false, nil)

	csv := "Team,Rating\nBoston Celtics,1612.5\nLos Angeles Lakers,1587\n"
	stats, err := im.Import(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Imported)
	assert.Equal(t, 0, stats.Skipped)
	assert.Equal(t, 1612.5, store.Rating("Boston Celtics"))
}

func TestRatingsImportSkipsMalformedRows(t *testing.T) {
	store := rating.NewStore(1500)
	im := NewRatingsImporter(store, false, nil)

	csv := "team_name,elo\nBoston Celtics,1612.5\n,1500\nDenver Nuggets,not-a-number\nMiami Heat,1540\n"
	stats, err := im.Import(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Imported)
	assert.Equal(t, 2, stats.Skipped)
	assert.Equal(t, 1540.0, store.Rating("Miami Heat"))
}

func TestRatingsImportCanonicalizesAliases(t *testing.T) {
	store := rating.NewStore(1500)
	im := NewRatingsImporter(store, false, nil)

	csv := "team_name,elo\nLA Lakers,1590\n"
	_, err := im.Import(strings.NewReader(csv))
	require.NoError(t, err)

	// Alias and canonical spelling resolve to the same entry.
	assert.Equal(t, 1590.0, store.Rating("Los Angeles Lakers"))
}

func TestRatingsImportCurrentTeamsOnly(t *testing.T) {
	store := rating.NewStore(1500)
	im := NewRatingsImporter(store, true, nil)

	csv := "team_name,elo\nBoston Celtics,1612.5\nSeattle SuperSonics,1480\n"
	stats, err := im.Import(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Imported)
	assert.Equal(t, 1, stats.Skipped)
}

func TestRatingsImportMissingColumns(t *testing.T) {
	store := rating.NewStore(1500)
	im := NewRatingsImporter(store, false, nil)

	_, err := im.Import(strings.NewReader("franchise,points\nBoston,1600\n"))
	assert.Error(t, err)
}

func TestResultsSyncAppliesEloUpdate(t *testing.T) {
	store := rating.NewStore(1500)
	source := &fakeSource{results: []models.GameResult{
		{GameDate: "2024-01-15", HomeTeam: "Boston Celtics", AwayTeam: "Los Angeles Lakers", HomeScore: 110, AwayScore: 98},
	}}
	resultRepo := newMemResultRepo()
	ratingRepo := newMemRatingRepo()

	syncer := NewResultsSyncer(source, store, ratingRepo, resultRepo, models.SportBasketball, 20, nil)
	stats, err := syncer.Sync(context.Background(), "2024-01-15")
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Fetched)
	assert.Equal(t, 1, stats.Applied)

	// Even matchup: winner gains k/2, loser loses k/2.
	assert.InDelta(t, 1510.0, store.Rating("Boston Celtics"), 1e-9)
	assert.InDelta(t, 1490.0, store.Rating("Los Angeles Lakers"), 1e-9)

	// Both the result and the moved ratings are persisted.
	exists, err := resultRepo.Exists(context.Background(), models.SportBasketball, &source.results[0])
	require.NoError(t, err)
	assert.True(t, exists)

	saved, err := ratingRepo.GetByTeam(context.Background(), models.SportBasketball, "Boston Celtics")
	require.NoError(t, err)
	assert.InDelta(t, 1510.0, saved.EloRating, 1e-9)
}

func TestResultsSyncSkipsStoredGames(t *testing.T) {
	store := rating.NewStore(1500)
	source := &fakeSource{results: []models.GameResult{
		{GameDate: "2024-01-15", HomeTeam: "Boston Celtics", AwayTeam: "Los Angeles Lakers", HomeScore: 110, AwayScore: 98},
	}}
	resultRepo := newMemResultRepo()

	syncer := NewResultsSyncer(source, store, nil, resultRepo, models.SportBasketball, 20, nil)

	_, err := syncer.Sync(context.Background(), "2024-01-15")
	require.NoError(t, err)

	// Re-running the same day must not move ratings again.
	stats, err := syncer.Sync(context.Background(), "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Applied)
	assert.Equal(t, 1, stats.Skipped)
	assert.InDelta(t, 1510.0, store.Rating("Boston Celtics"), 1e-9)
}

func TestResultsSyncSoccerDraw(t *testing.T) {
	store := rating.NewStore(1500)
	source := &fakeSource{results: []models.GameResult{
		{GameDate: "2024-01-20", HomeTeam: "Arsenal FC", AwayTeam: "Chelsea FC", HomeScore: 1, AwayScore: 1},
	}}

	syncer := NewResultsSyncer(source, store, nil, nil, models.SportSoccer, 32, nil)
	stats, err := syncer.Sync(context.Background(), "2024-01-20")
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Applied)

	// A draw between equally rated sides moves nothing.
	assert.InDelta(t, 1500.0, store.Rating("Arsenal FC"), 1e-9)
	assert.InDelta(t, 1500.0, store.Rating("Chelsea FC"), 1e-9)
}

func TestResultsSyncLoadRatings(t *testing.T) {
	store := rating.NewStore(1500)
	ratingRepo := newMemRatingRepo()
	require.NoError(t, ratingRepo.Upsert(context.Background(), models.SportBasketball,
		&models.TeamRating{TeamName: "Boston Celtics", EloRating: 1620}))

	syncer := NewResultsSyncer(&fakeSource{}, store, ratingRepo, nil, models.SportBasketball, 20, nil)
	n, err := syncer.LoadRatings(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, n)
	assert.Equal(t, 1620.0, store.Rating("Boston Celtics"))
}
