package config

import (
	"fmt"
	"os"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string

	// Google Sheets configuration
	SpreadsheetID         string
	SheetRange            string
	GoogleCredentialsPath string

	// Allow-list roster
	RosterPath string

	// Onboarding configuration
	LearnerRoleName string

	// Environment
	Environment string // "development" or "production"
}

// Load reads configuration from environment variables and validates
// that every required key is present.
func Load() (*Config, error) {
	config := &Config{
		DiscordToken:          os.Getenv("DISCORD_TOKEN"),
		SpreadsheetID:         os.Getenv("SPREADSHEET_ID"),
		SheetRange:            os.Getenv("SHEET_RANGE"),
		GoogleCredentialsPath: os.Getenv("GOOGLE_CREDENTIALS_PATH"),
		RosterPath:            os.Getenv("ROSTER_PATH"),
		LearnerRoleName:       os.Getenv("LEARNER_ROLE_NAME"),
		Environment:           os.Getenv("ENVIRONMENT"),
	}

	// Defaults
	if config.SheetRange == "" {
		config.SheetRange = "Onboarding!A:F"
	}
	if config.LearnerRoleName == "" {
		config.LearnerRoleName = "Learner"
	}
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.SpreadsheetID == "" {
			return nil, fmt.Errorf("SPREADSHEET_ID is required")
		}
		if config.GoogleCredentialsPath == "" {
			return nil, fmt.Errorf("GOOGLE_CREDENTIALS_PATH is required")
		}
		if config.RosterPath == "" {
			return nil, fmt.Errorf("ROSTER_PATH is required")
		}
	}

	return config, nil
}
