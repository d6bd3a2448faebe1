package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/yourusername/elo-better/internal/models"
)

const footballDataSource = "football_data"

// FootballDataClient implements ResultsSource for the football-data.org API
type FootballDataClient struct {
	httpClient  *RateLimitedHTTPClient
	baseURL     string
	apiKey      string
	competition string
	enabled     bool
	cache       *gocache.Cache
	logger      *log.Logger
}

// footballDataMatch represents a match from the football-data.org API
type footballDataMatch struct {
	UTCDate string `json:"utcDate"`
	Status  string `json:"status"`
	Season  struct {
		StartDate string `json:"startDate"`
	} `json:"season"`
	HomeTeam struct {
		Name string `json:"name"`
	} `json:"homeTeam"`
	AwayTeam struct {
		Name string `json:"name"`
	} `json:"awayTeam"`
	Score struct {
		FullTime struct {
			Home *int `json:"home"`
			Away *int `json:"away"`
		} `json:"fullTime"`
	} `json:"score"`
}

// footballDataResponse is the matches envelope
type footballDataResponse struct {
	Matches []footballDataMatch `json:"matches"`
}

// NewFootballDataClient creates a new football-data.org API client
func NewFootballDataClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey, competition string, cacheTTL time.Duration, logger *log.Logger) *FootballDataClient {
	if baseURL == "" {
		baseURL = "https://api.football-data.org/v4"
	}
	if competition == "" {
		competition = "PL"
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &FootballDataClient{
		httpClient:  httpClient,
		baseURL:     baseURL,
		apiKey:      apiKey,
		competition: competition,
		enabled:     true,
		cache:       gocache.New(cacheTTL, 2*cacheTTL),
		logger:      logger,
	}
}

// FetchResults retrieves finished matches for a date in the configured
// competition
func (c *FootballDataClient) FetchResults(ctx context.Context, date string) ([]models.GameResult, error) {
	if !c.enabled {
		return nil, NewDataSourceError(footballDataSource, ErrCodeNetworkError, dataSourceDisabledMsg, nil)
	}

	if cached, found := c.cache.Get(date); found {
		return cached.([]models.GameResult), nil
	}

	url := fmt.Sprintf("%s/competitions/%s/matches?dateFrom=%s&dateTo=%s&status=FINISHED",
		c.baseURL, c.competition, date, date)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewDataSourceError(footballDataSource, ErrCodeNetworkError, "failed to create request", err)
	}

	req.Header.Set("X-Auth-Token", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewDataSourceError(footballDataSource, ErrCodeNetworkError, "failed to fetch matches", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized {
		return nil, NewDataSourceError(footballDataSource, ErrCodeAuthenticationFailed, "invalid API key", nil)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, NewDataSourceError(footballDataSource, ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, NewDataSourceError(footballDataSource, ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var envelope footballDataResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, NewDataSourceError(footballDataSource, ErrCodeInvalidData, "failed to parse response", err)
	}

	results := make([]models.GameResult, 0, len(envelope.Matches))
	for _, match := range envelope.Matches {
		if match.Status != "FINISHED" {
			continue
		}
		if match.Score.FullTime.Home == nil || match.Score.FullTime.Away == nil {
			c.logger.Printf("Skipping match without full-time score: %s vs %s", match.HomeTeam.Name, match.AwayTeam.Name)
			continue
		}

		season := match.Season.StartDate
		results = append(results, models.GameResult{
			GameDate:  date,
			HomeTeam:  match.HomeTeam.Name,
			AwayTeam:  match.AwayTeam.Name,
			HomeScore: *match.Score.FullTime.Home,
			AwayScore: *match.Score.FullTime.Away,
			Season:    &season,
		})
	}

	c.cache.Set(date, results, gocache.DefaultExpiration)

	return results, nil
}

// Name returns the data source name
func (c *FootballDataClient) Name() string {
	return footballDataSource
}

// IsEnabled returns whether this data source is enabled
func (c *FootballDataClient) IsEnabled() bool {
	return c.enabled
}
