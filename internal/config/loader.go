// Package config provides configuration management for the Elo Better application.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	// Read the configuration file
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the configuration (${VAR} syntax)
	expanded := os.ExpandEnv(string(data))

	// Create a new viper instance
	v := viper.New()
	v.SetConfigType("yaml")

	// Read the expanded configuration
	if err := v.ReadConfig(bytes.NewBuffer([]byte(expanded))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set environment variable prefix
	v.SetEnvPrefix("ELO_BETTER")

	// Enable automatic binding of environment variables
	v.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Unmarshal configuration into Config struct
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional fields
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func LoadWithDefaults(configPath string) (*Config, error) {
	v := viper.New()

	// Set configuration file path with default
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v.SetConfigType("yaml")

	// Set environment variable prefix
	v.SetEnvPrefix("ELO_BETTER")

	// Enable automatic binding of environment variables
	v.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	// Read and expand the configuration file if it exists
	if data, err := os.ReadFile(configPath); err == nil {
		// Expand environment variables in the configuration (${VAR} syntax)
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBuffer([]byte(expanded))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// If file doesn't exist, continue with defaults and environment variables

	// Unmarshal configuration into Config struct
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults registers the default values for every tunable. The model
// parameters mirror the values the engine packages default to, so a minimal
// config file only needs app and database sections.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "elo-better")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "elo_better")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 10)

	v.SetDefault("providers.balldontlie.base_url", "https://api.balldontlie.io/v1")
	v.SetDefault("providers.balldontlie.timeout_seconds", 30)
	v.SetDefault("providers.balldontlie.retry_attempts", 3)
	v.SetDefault("providers.balldontlie.requests_per_second", 1.0)
	v.SetDefault("providers.balldontlie.cache_ttl_seconds", 300)

	v.SetDefault("providers.football_data.base_url", "https://api.football-data.org/v4")
	v.SetDefault("providers.football_data.timeout_seconds", 30)
	v.SetDefault("providers.football_data.retry_attempts", 3)
	v.SetDefault("providers.football_data.requests_per_second", 0.16)
	v.SetDefault("providers.football_data.cache_ttl_seconds", 300)

	v.SetDefault("basketball.model.k_factor", 20.0)
	v.SetDefault("basketball.model.initial_elo", 1500.0)
	v.SetDefault("basketball.model.calibration_shrink", 0.3)
	v.SetDefault("basketball.model.min_prob", 5.0)
	v.SetDefault("basketball.model.max_prob", 95.0)
	v.SetDefault("basketball.staking.bankroll", 1000.0)
	v.SetDefault("basketball.staking.kelly_multiplier", 0.5)
	v.SetDefault("basketball.staking.max_stake_percent", 5.0)
	v.SetDefault("basketball.staking.flat_stake_percent", 1.5)
	v.SetDefault("basketball.staking.use_flat_staking", true)
	v.SetDefault("basketball.staking.min_favorite_prob", 62.0)
	v.SetDefault("basketball.staking.min_edge", 1.0)
	v.SetDefault("basketball.home_court_elo", 50.0)
	v.SetDefault("basketball.rest_elo_per_day", 15.0)
	v.SetDefault("basketball.b2b_penalty_elo", 30.0)
	v.SetDefault("basketball.star_out_penalty_elo", 50.0)
	v.SetDefault("basketball.current_teams_only", true)

	v.SetDefault("soccer.model.k_factor", 32.0)
	v.SetDefault("soccer.model.initial_elo", 1500.0)
	v.SetDefault("soccer.model.calibration_shrink", 0.3)
	v.SetDefault("soccer.model.min_prob", 5.0)
	v.SetDefault("soccer.model.max_prob", 85.0)
	v.SetDefault("soccer.staking.bankroll", 1000.0)
	v.SetDefault("soccer.staking.kelly_multiplier", 0.5)
	v.SetDefault("soccer.staking.max_stake_percent", 5.0)
	v.SetDefault("soccer.staking.flat_stake_percent", 1.5)
	v.SetDefault("soccer.staking.use_flat_staking", true)
	v.SetDefault("soccer.staking.min_favorite_prob", 55.0)
	v.SetDefault("soccer.staking.min_edge", 1.0)
	v.SetDefault("soccer.home_advantage", 0.15)
	v.SetDefault("soccer.form_weight", 100.0)
	v.SetDefault("soccer.goal_diff_weight", 5.0)
	v.SetDefault("soccer.max_goal_diff", 5)
	v.SetDefault("soccer.draw_base", 0.25)
	v.SetDefault("soccer.min_draw_prob", 10.0)
	v.SetDefault("soccer.max_draw_prob", 40.0)
	v.SetDefault("soccer.min_elo_gap", 50.0)
	v.SetDefault("soccer.competition_code", "PL")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("scheduler.enabled", false)
	v.SetDefault("scheduler.results_sync_cron", "0 6 * * *")
}

// ReloadFromEnv reloads the configuration from an alternate path if the
// ELO_BETTER_CONFIG_PATH environment variable is set
func ReloadFromEnv(cfg *Config) error {
	if envPath := os.Getenv("ELO_BETTER_CONFIG_PATH"); envPath != "" {
		newCfg, err := Load(envPath)
		if err != nil {
			return err
		}
		*cfg = *newCfg
	}

	return nil
}
