package discord

import (
	"github.com/bwmarrin/discordgo"

	"gamenight/internal/ports/input"
	"gamenight/internal/ports/output"
)

// Handler handles Discord interactions using use cases.
type Handler struct {
	eventUseCase   input.EventUseCase
	bookingUseCase input.BookingUseCase
	wizard         input.WizardUseCase
	messenger      output.Messenger
	translator     output.T
	defaultLocale  string
}

// NewHandler creates a Handler.
func NewHandler(
	eventUseCase input.EventUseCase,
	bookingUseCase input.BookingUseCase,
	wizard input.WizardUseCase,
	messenger output.Messenger,
	translator output.T,
	defaultLocale string,
) *Handler {
	return &Handler{
		eventUseCase:   eventUseCase,
		bookingUseCase: bookingUseCase,
		wizard:         wizard,
		messenger:      messenger,
		translator:     translator,
		defaultLocale:  defaultLocale,
	}
}

// interactionUser works for both guild and DM interactions.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// Nick > GlobalName > Username
func resolveDisplayName(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.Nick != "" {
		return i.Member.Nick
	}
	user := interactionUser(i)
	if user == nil {
		return ""
	}
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}

func (h *Handler) locale(i *discordgo.InteractionCreate) string {
	if i.Locale != "" {
		return string(i.Locale)
	}
	return h.defaultLocale
}

func respondEphemeral(s *discordgo.Session, i *discordgo.Interaction, content string) {
	_ = s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func followupEphemeral(s *discordgo.Session, i *discordgo.Interaction, content string) {
	_, _ = s.FollowupMessageCreate(i, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
}
