package discord

import (
	"context"
	"log"

	"github.com/bwmarrin/discordgo"
)

// handleMessage feeds DM messages into the creation wizard. Guild messages
// and other bots are ignored; a DM without an active session gets a hint.
func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID != "" {
		return
	}
	h := b.handler
	locale := h.defaultLocale

	if !h.wizard.Active(m.Author.ID) {
		if _, err := s.ChannelMessageSend(m.ChannelID, h.translator.T(locale, "hint.start", nil)); err != nil {
			log.Printf("⚠️ message: hint to %s: %v", m.Author.ID, err)
		}
		return
	}

	ctx := context.Background()
	var reply string
	var err error
	if len(m.Attachments) > 0 && m.Attachments[0].URL != "" {
		reply, err = h.wizard.Media(ctx, locale, m.Author.ID, m.Attachments[0].URL)
	} else {
		reply, err = h.wizard.Input(ctx, locale, m.Author.ID, m.Content)
	}
	if err != nil {
		log.Printf("❌ message: wizard input from %s: %v", m.Author.ID, err)
	}
	if reply == "" {
		return
	}
	if _, err := s.ChannelMessageSend(m.ChannelID, reply); err != nil {
		log.Printf("⚠️ message: reply to %s: %v", m.Author.ID, err)
	}
}
