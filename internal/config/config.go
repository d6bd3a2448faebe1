// Package config provides configuration management for the Elo Better application.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	Providers  ProvidersConfig  `mapstructure:"providers" validate:"required"`
	Basketball BasketballConfig `mapstructure:"basketball" validate:"required"`
	Soccer     SoccerConfig     `mapstructure:"soccer" validate:"required"`
	Metrics    MetricsConfig    `mapstructure:"metrics" validate:"required"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host           string `mapstructure:"host" validate:"required"`
	Port           int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name           string `mapstructure:"name" validate:"required"`
	User           string `mapstructure:"user" validate:"required"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"required,gt=0"`
}

// ProvidersConfig groups the external results providers
type ProvidersConfig struct {
	BallDontLie  ProviderConfig `mapstructure:"balldontlie" validate:"required"`
	FootballData ProviderConfig `mapstructure:"football_data" validate:"required"`
}

// ProviderConfig represents a single results provider configuration
type ProviderConfig struct {
	BaseURL           string  `mapstructure:"base_url" validate:"required,url"`
	APIKey            string  `mapstructure:"api_key"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RetryAttempts     int     `mapstructure:"retry_attempts" validate:"gte=0"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"required,gt=0"`
	CacheTTLSeconds   int     `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
}

// ModelConfig holds the Elo and probability model parameters shared by
// both sports.
type ModelConfig struct {
	KFactor           float64 `mapstructure:"k_factor" validate:"required,gt=0"`
	InitialElo        float64 `mapstructure:"initial_elo" validate:"required,gt=0"`
	CalibrationShrink float64 `mapstructure:"calibration_shrink" validate:"gte=0,lte=1"`
	MinProb           float64 `mapstructure:"min_prob" validate:"gte=0,lt=100"`
	MaxProb           float64 `mapstructure:"max_prob" validate:"gt=0,lte=100"`
}

// StakingConfig holds bet sizing and gating parameters
type StakingConfig struct {
	Bankroll         float64 `mapstructure:"bankroll" validate:"required,gt=0"`
	KellyMultiplier  float64 `mapstructure:"kelly_multiplier" validate:"required,gt=0,lte=1"`
	MaxStakePercent  float64 `mapstructure:"max_stake_percent" validate:"required,gt=0,lte=100"`
	FlatStakePercent float64 `mapstructure:"flat_stake_percent" validate:"required,gt=0,lte=100"`
	UseFlatStaking   bool    `mapstructure:"use_flat_staking"`
	MinFavoriteProb  float64 `mapstructure:"min_favorite_prob" validate:"required,gt=0,lt=100"`
	MinEdge          float64 `mapstructure:"min_edge" validate:"gte=0"`
}

// BasketballConfig represents the NBA betting configuration
type BasketballConfig struct {
	Model           ModelConfig   `mapstructure:"model" validate:"required"`
	Staking         StakingConfig `mapstructure:"staking" validate:"required"`
	HomeCourtElo    float64       `mapstructure:"home_court_elo" validate:"gte=0"`
	RestEloPerDay   float64       `mapstructure:"rest_elo_per_day" validate:"gte=0"`
	B2BPenaltyElo   float64       `mapstructure:"b2b_penalty_elo" validate:"gte=0"`
	StarOutPenalty  float64       `mapstructure:"star_out_penalty_elo" validate:"gte=0"`
	RatingsCSVPath  string        `mapstructure:"ratings_csv_path"`
	CurrentTeamOnly bool          `mapstructure:"current_teams_only"`
}

// SoccerConfig represents the soccer betting configuration
type SoccerConfig struct {
	Model           ModelConfig   `mapstructure:"model" validate:"required"`
	Staking         StakingConfig `mapstructure:"staking" validate:"required"`
	HomeAdvantage   float64       `mapstructure:"home_advantage" validate:"gte=0,lte=1"`
	FormWeight      float64       `mapstructure:"form_weight" validate:"gte=0"`
	GoalDiffWeight  float64       `mapstructure:"goal_diff_weight" validate:"gte=0"`
	MaxGoalDiff     int           `mapstructure:"max_goal_diff" validate:"gt=0"`
	DrawBase        float64       `mapstructure:"draw_base" validate:"gt=0,lt=1"`
	MinDrawProb     float64       `mapstructure:"min_draw_prob" validate:"gte=0,lt=100"`
	MaxDrawProb     float64       `mapstructure:"max_draw_prob" validate:"gt=0,lte=100"`
	MinEloGap       float64       `mapstructure:"min_elo_gap" validate:"gte=0"`
	CompetitionCode string        `mapstructure:"competition_code"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// SchedulerConfig represents the results sync scheduling configuration
type SchedulerConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	ResultsSyncCron string `mapstructure:"results_sync_cron" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
