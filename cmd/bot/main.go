package main

import (
	"context"
	"log"
	"os"

	"gamenight/internal/adapters/discord"
	"gamenight/internal/config"
	"gamenight/internal/infrastructure/database"
	"gamenight/internal/infrastructure/i18n"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatalf("❌ Migration error: %v", err)
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Database initialization error: %v", err)
	}
	defer pool.Close()

	eventRepo := database.NewEventRepository(pool)
	participantRepo := database.NewParticipantRepository(pool)
	jobRepo := database.NewReminderJobRepository(pool)
	translator := i18n.NewTranslator(cfg.DefaultLocale)

	bot, err := discord.NewBot(cfg, eventRepo, participantRepo, jobRepo, translator)
	if err != nil {
		log.Fatalf("❌ Bot initialization error: %v", err)
	}
	if err := bot.Start(ctx); err != nil {
		log.Printf("❌ Bot startup error: %v", err)
		os.Exit(1)
	}
}
