// Package service implements the ratings import and results sync workflows
// that feed the Elo store.
package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/yourusername/elo-better/internal/rating"
)

// ImportStats summarizes a CSV import run
type ImportStats struct {
	Imported int
	Skipped  int
}

// RatingsImporter loads seed Elo ratings from a CSV export
type RatingsImporter struct {
	store            *rating.Store
	currentTeamsOnly bool
	logger           *log.Logger
}

// NewRatingsImporter creates a new ratings importer. When currentTeamsOnly is
// set, rows that do not resolve to a current NBA franchise are dropped.
func NewRatingsImporter(store *rating.Store, currentTeamsOnly bool, logger *log.Logger) *RatingsImporter {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &RatingsImporter{
		store:            store,
		currentTeamsOnly: currentTeamsOnly,
		logger:           logger,
	}
}

// ImportFile reads a ratings CSV from disk
func (im *RatingsImporter) ImportFile(path string) (ImportStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportStats{}, fmt.Errorf("failed to open ratings file: %w", err)
	}
	defer f.Close()

	return im.Import(f)
}

// Import reads rows of (team, elo) pairs. The header is matched loosely:
// "team_name" or "team" for the name column, "elo" or "rating" for the value
// column. Malformed rows are skipped rather than failing the whole import.
func (im *RatingsImporter) Import(r io.Reader) (ImportStats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return ImportStats{}, fmt.Errorf("failed to read CSV header: %w", err)
	}

	teamCol, eloCol := findColumns(header)
	if teamCol < 0 || eloCol < 0 {
		return ImportStats{}, fmt.Errorf("CSV header missing team or elo column: %v", header)
	}

	var stats ImportStats
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			im.logger.Printf("Skipping unreadable CSV row: %v", err)
			stats.Skipped++
			continue
		}

		if teamCol >= len(record) || eloCol >= len(record) {
			stats.Skipped++
			continue
		}

		team := strings.TrimSpace(record[teamCol])
		if team == "" {
			stats.Skipped++
			continue
		}

		elo, err := strconv.ParseFloat(strings.TrimSpace(record[eloCol]), 64)
		if err != nil {
			im.logger.Printf("Skipping row with bad rating for %s: %v", team, err)
			stats.Skipped++
			continue
		}

		canonical := rating.CanonicalTeamName(team)
		if im.currentTeamsOnly && !rating.IsCurrentNBATeam(canonical) {
			stats.Skipped++
			continue
		}

		im.store.SetRating(canonical, elo)
		stats.Imported++
	}

	im.logger.Printf("Ratings import complete: %d imported, %d skipped", stats.Imported, stats.Skipped)
	return stats, nil
}

// findColumns locates the team and elo columns in a header row
func findColumns(header []string) (teamCol, eloCol int) {
	teamCol, eloCol = -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "team_name", "team":
			if teamCol < 0 {
				teamCol = i
			}
		case "elo", "rating", "elo_rating":
			if eloCol < 0 {
				eloCol = i
			}
		}
	}
	return teamCol, eloCol
}
