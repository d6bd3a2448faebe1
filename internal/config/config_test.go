// Package config provides configuration management for the Elo Better application.
package config

import (
	"os"
	"strings"
	"testing"
)

const (
	validConfigPath       = "testdata/valid_config.yaml"
	expansionConfigPath   = "testdata/expansion_config.yaml"
	nonexistentConfigPath = "testdata/nonexistent_config.yaml"
	expectedNoErrorMsg    = "expected no error, got %v"
)

// TestLoadConfigSuccess tests loading a valid configuration file
func TestLoadConfigSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg == nil {
		t.Fatal("expected non-nil config")
	}

	if cfg.App.Name != "elo-better" {
		t.Errorf("expected app name 'elo-better', got '%s'", cfg.App.Name)
	}

	if cfg.App.Environment != "development" {
		t.Errorf("expected environment 'development', got '%s'", cfg.App.Environment)
	}

	if cfg.Database.Port != 5432 {
		t.Errorf("expected database port 5432, got %d", cfg.Database.Port)
	}

	if cfg.Basketball.Model.KFactor != 20.0 {
		t.Errorf("expected basketball k_factor 20, got %v", cfg.Basketball.Model.KFactor)
	}

	if cfg.Soccer.HomeAdvantage != 0.15 {
		t.Errorf("expected soccer home_advantage 0.15, got %v", cfg.Soccer.HomeAdvantage)
	}
}

// TestLoadConfigFileNotFound tests handling of missing configuration file
func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := Load(nonexistentConfigPath)
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

// TestLoadWithDefaultsNoFile tests that defaults cover the model parameters
func TestLoadWithDefaultsNoFile(t *testing.T) {
	cfg, err := LoadWithDefaults(nonexistentConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.Basketball.Staking.MinFavoriteProb != 62.0 {
		t.Errorf("expected default min_favorite_prob 62, got %v", cfg.Basketball.Staking.MinFavoriteProb)
	}

	if cfg.Soccer.Staking.MinFavoriteProb != 55.0 {
		t.Errorf("expected default soccer min_favorite_prob 55, got %v", cfg.Soccer.Staking.MinFavoriteProb)
	}

	if cfg.Soccer.MinEloGap != 50.0 {
		t.Errorf("expected default min_elo_gap 50, got %v", cfg.Soccer.MinEloGap)
	}

	if !cfg.Basketball.Staking.UseFlatStaking {
		t.Error("expected flat staking enabled by default")
	}
}

// TestLoadConfigEnvironmentVariables tests environment variable override
func TestLoadConfigEnvironmentVariables(t *testing.T) {
	os.Setenv("ELO_BETTER_APP_NAME", "test-app")
	defer os.Unsetenv("ELO_BETTER_APP_NAME")

	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.App.Name != "test-app" {
		t.Errorf("expected app name 'test-app' from environment, got '%s'", cfg.App.Name)
	}
}

// TestLoadConfigEnvironmentVariableExpansion tests ${VAR} expansion in config file
func TestLoadConfigEnvironmentVariableExpansion(t *testing.T) {
	os.Setenv("TEST_DB_PASSWORD", "expanded_secret_value")
	defer os.Unsetenv("TEST_DB_PASSWORD")

	cfg, err := Load(expansionConfigPath)
	if err != nil {
		t.Fatalf("expected no error loading config with expansion, got %v", err)
	}

	if cfg.Database.Password != "expanded_secret_value" {
		t.Errorf("expected password from environment expansion, got '%s'", cfg.Database.Password)
	}
}

// TestValidateSuccess tests validation of a valid configuration
func TestValidateSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if err := Validate(cfg); err != nil {
		t.Fatalf("expected no validation error, got %v", err)
	}
}

// TestValidateInvalidEnvironment tests validation of invalid environment
func TestValidateInvalidEnvironment(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	cfg.App.Environment = "invalid"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for invalid environment")
	}
}

// TestValidateInvalidLogLevel tests validation of invalid log level
func TestValidateInvalidLogLevel(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	cfg.App.LogLevel = "verbose"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for invalid log level")
	}
}

// TestValidateProbBandOrdering tests the cross-field probability band check
func TestValidateProbBandOrdering(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	cfg.Basketball.Model.MinProb = 96.0
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for min_prob above max_prob")
	}
}

// TestValidateDrawBandOrdering tests the soccer draw band cross-field check
func TestValidateDrawBandOrdering(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	cfg.Soccer.MinDrawProb = 45.0
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for min_draw_prob above max_draw_prob")
	}
}

// TestValidateProductionRequiresSSL tests production SSL requirement
func TestValidateProductionRequiresSSL(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	cfg.App.Environment = "production"
	cfg.Providers.BallDontLie.APIKey = "key"
	err = Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for SSL disabled in production")
	}
	if !strings.Contains(err.Error(), "SSL") {
		t.Errorf("expected SSL validation error, got: %v", err)
	}
}

// TestGetDatabaseDSN tests DSN generation
func TestGetDatabaseDSN(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	dsn := cfg.GetDatabaseDSN()
	if !strings.HasPrefix(dsn, "postgres://") {
		t.Errorf("expected DSN to start with 'postgres://', got '%s'", dsn)
	}
	if !strings.Contains(dsn, "sslmode=disable") {
		t.Errorf("expected DSN to carry ssl mode, got '%s'", dsn)
	}
}

// TestIsDevelopment tests environment check function
func TestIsDevelopment(t *testing.T) {
	cfg := &Config{
		App: AppConfig{Environment: "development"},
	}

	if !cfg.IsDevelopment() {
		t.Error("expected IsDevelopment() to return true")
	}

	if cfg.IsProduction() {
		t.Error("expected IsProduction() to return false")
	}
}

// TestIsProduction tests production environment check
func TestIsProduction(t *testing.T) {
	cfg := &Config{
		App: AppConfig{Environment: "production"},
	}

	if !cfg.IsProduction() {
		t.Error("expected IsProduction() to return true")
	}

	if cfg.IsDevelopment() {
		t.Error("expected IsDevelopment() to return false")
	}
}
