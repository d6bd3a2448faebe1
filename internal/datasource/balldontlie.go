package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/yourusername/elo-better/internal/models"
)

const ballDontLieSource = "balldontlie"

// BallDontLieClient implements ResultsSource for the balldontlie NBA API
type BallDontLieClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	enabled    bool
	cache      *gocache.Cache
	logger     *log.Logger
}

// ballDontLieGame represents a game from the balldontlie API
type ballDontLieGame struct {
	Date   string `json:"date"`
	Status string `json:"status"`
	Season int    `json:"season"`
	Home   struct {
		FullName string `json:"full_name"`
	} `json:"home_team"`
	Visitor struct {
		FullName string `json:"full_name"`
	} `json:"visitor_team"`
	HomeScore    int `json:"home_team_score"`
	VisitorScore int `json:"visitor_team_score"`
}

// ballDontLieResponse is the paginated games envelope
type ballDontLieResponse struct {
	Data []ballDontLieGame `json:"data"`
}

// NewBallDontLieClient creates a new balldontlie API client
func NewBallDontLieClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, cacheTTL time.Duration, logger *log.Logger) *BallDontLieClient {
	if baseURL == "" {
		baseURL = "https://api.balldontlie.io/v1"
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &BallDontLieClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		enabled:    true,
		cache:      gocache.New(cacheTTL, 2*cacheTTL),
		logger:     logger,
	}
}

// FetchResults retrieves final NBA games for a date. Responses are cached
// per-date so repeated syncs on the same day stay within the API quota.
func (c *BallDontLieClient) FetchResults(ctx context.Context, date string) ([]models.GameResult, error) {
	if !c.enabled {
		return nil, NewDataSourceError(ballDontLieSource, ErrCodeNetworkError, dataSourceDisabledMsg, nil)
	}

	if cached, found := c.cache.Get(date); found {
		return cached.([]models.GameResult), nil
	}

	url := fmt.Sprintf("%s/games?dates[]=%s&per_page=100", c.baseURL, date)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewDataSourceError(ballDontLieSource, ErrCodeNetworkError, "failed to create request", err)
	}

	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewDataSourceError(ballDontLieSource, ErrCodeNetworkError, "failed to fetch games", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, NewDataSourceError(ballDontLieSource, ErrCodeAuthenticationFailed, "invalid API key", nil)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, NewDataSourceError(ballDontLieSource, ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, NewDataSourceError(ballDontLieSource, ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var envelope ballDontLieResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, NewDataSourceError(ballDontLieSource, ErrCodeInvalidData, "failed to parse response", err)
	}

	results := make([]models.GameResult, 0, len(envelope.Data))
	for _, game := range envelope.Data {
		// Games still in progress or scheduled are skipped; only a "Final"
		// status (including "Final/OT") counts as a result.
		if !models.IsFinalStatus(game.Status) {
			continue
		}

		season := strconv.Itoa(game.Season)
		results = append(results, models.GameResult{
			GameDate:  date,
			HomeTeam:  game.Home.FullName,
			AwayTeam:  game.Visitor.FullName,
			HomeScore: game.HomeScore,
			AwayScore: game.VisitorScore,
			Season:    &season,
		})
	}

	c.cache.Set(date, results, gocache.DefaultExpiration)

	return results, nil
}

// Name returns the data source name
func (c *BallDontLieClient) Name() string {
	return ballDontLieSource
}

// IsEnabled returns whether this data source is enabled
func (c *BallDontLieClient) IsEnabled() bool {
	return c.enabled
}
