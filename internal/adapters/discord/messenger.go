package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"gamenight/internal/ports/output"
)

var _ output.Messenger = (*Messenger)(nil)

// Messenger delivers text and media to a single identity over DM.
// discordgo has no context support; ctx is accepted to satisfy the port.
type Messenger struct {
	session *discordgo.Session
}

func NewMessenger(session *discordgo.Session) *Messenger {
	return &Messenger{session: session}
}

func (m *Messenger) dmChannel(identity string) (string, error) {
	ch, err := m.session.UserChannelCreate(identity)
	if err != nil {
		return "", fmt.Errorf("open dm with %s: %w", identity, err)
	}
	return ch.ID, nil
}

func (m *Messenger) SendText(_ context.Context, identity, text string) error {
	chID, err := m.dmChannel(identity)
	if err != nil {
		return err
	}
	if _, err := m.session.ChannelMessageSend(chID, text); err != nil {
		return fmt.Errorf("send dm to %s: %w", identity, err)
	}
	return nil
}

func (m *Messenger) SendMedia(_ context.Context, identity, mediaRef, caption string) error {
	chID, err := m.dmChannel(identity)
	if err != nil {
		return err
	}
	_, err = m.session.ChannelMessageSendComplex(chID, &discordgo.MessageSend{
		Content: caption,
		Embeds: []*discordgo.MessageEmbed{
			{Image: &discordgo.MessageEmbedImage{URL: mediaRef}},
		},
	})
	if err != nil {
		return fmt.Errorf("send media dm to %s: %w", identity, err)
	}
	return nil
}
