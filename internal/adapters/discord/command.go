package discord

import (
	"github.com/bwmarrin/discordgo"
)

// HandleCommand answers /games with the greeting and the main menu.
func (h *Handler) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	locale := h.locale(i)
	greeting := h.translator.T(locale, "greeting", map[string]any{"Name": resolveDisplayName(i)})
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    greeting + "\n\n" + h.translator.T(locale, "menu.title", nil),
			Components: h.menuComponents(locale),
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
}
