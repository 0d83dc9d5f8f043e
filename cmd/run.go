package cmd

import (
	"context"
	"fmt"
	"log"

	"onboarder/bot"
	"onboarder/config"
	"onboarder/events"
	"onboarder/onboarding"
	"onboarder/roster"
	"onboarder/sheet"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting onboarding bot...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize the spreadsheet appender
	log.Println("Initializing sheets client...")
	appender, err := sheet.New(ctx, cfg.GoogleCredentialsPath, cfg.SpreadsheetID, cfg.SheetRange)
	if err != nil {
		return fmt.Errorf("failed to initialize sheets client: %w", err)
	}
	log.Println("Sheets client initialized successfully")

	// Allow-list roster, read fresh on every lookup
	learnerRoster := roster.New(cfg.RosterPath)

	// Initialize event bus and session registry
	eventBus := events.NewBus()
	registry := onboarding.NewRegistry()

	// Initialize Discord bot
	log.Println("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:           cfg.DiscordToken,
		LearnerRoleName: cfg.LearnerRoleName,
	}
	discordBot, err := bot.New(botConfig, registry, learnerRoster, appender, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Println("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Printf("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down bot...")
	if err := discordBot.Close(); err != nil {
		log.Printf("Error closing Discord bot: %v", err)
	}
	log.Println("Shutdown completed")

	return nil
}
