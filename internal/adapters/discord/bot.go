package discord

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"gamenight/internal/application"
	"gamenight/internal/config"
	"gamenight/internal/domain"
	"gamenight/internal/ports/output"
)

// Bot is the Discord adapter.
type Bot struct {
	session   *discordgo.Session
	config    *config.Config
	handler   *Handler
	scheduler *application.ReminderScheduler
}

// NewBot creates a Bot and wires ports: output adapters -> application
// (use cases) -> handler.
func NewBot(
	cfg *config.Config,
	eventRepo output.EventRepository,
	participantRepo output.ParticipantRepository,
	jobRepo output.ReminderJobRepository,
	translator output.T,
) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	messenger := NewMessenger(s)
	fanout := application.NewFanout(messenger)
	scheduler := application.NewReminderScheduler(
		eventRepo, participantRepo, jobRepo, fanout, translator,
		domain.DefaultOffsets, cfg.DefaultLocale,
	)
	eventUC := application.NewEventService(eventRepo, participantRepo, scheduler, fanout, translator)
	bookingUC := application.NewBookingService(eventRepo, participantRepo, messenger, translator)
	wizard := application.NewWizard(eventUC, translator)
	handler := NewHandler(eventUC, bookingUC, wizard, messenger, translator, cfg.DefaultLocale)

	bot := &Bot{
		session:   s,
		config:    cfg,
		handler:   handler,
		scheduler: scheduler,
	}
	bot.setupHandlers()
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsDirectMessages
	return bot, nil
}

func (b *Bot) setupHandlers() {
	b.session.AddHandler(b.handleInteraction)
	b.session.AddHandler(b.handleMessage)
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if i.ApplicationCommandData().Name == "games" {
			b.handler.HandleCommand(s, i)
		}
	case discordgo.InteractionMessageComponent:
		b.handler.HandleComponent(s, i)
	}
}

// Start runs the bot until interrupted. Reminder jobs are recovered from
// the store once the session is up.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	defer b.session.Close()

	commands := []*discordgo.ApplicationCommand{
		{Name: "games", Description: "Board game nights: browse, create, book"},
	}
	for _, cmd := range commands {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd); err != nil {
			log.Printf("⚠️ register command %s: %v", cmd.Name, err)
		}
	}

	if err := b.scheduler.Restore(ctx); err != nil {
		log.Printf("⚠️ reminder recovery: %v", err)
	}
	defer b.scheduler.Shutdown()

	fmt.Println("🤖 Bot online! Press CTRL+C to quit.")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	return nil
}
