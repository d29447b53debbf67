package discord

import (
	"context"
	"errors"
	"log"

	"github.com/bwmarrin/discordgo"

	"gamenight/internal/domain"
)

// HandleComponent routes one button press. The custom ID is decoded into a
// tagged action exactly once, then matched exhaustively.
func (h *Handler) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	act, ok := parseAction(i.MessageComponentData().CustomID)
	if !ok {
		log.Printf("⚠️ component: unknown custom id %q", i.MessageComponentData().CustomID)
		return
	}
	ctx := context.Background()
	locale := h.locale(i)

	switch act.kind {
	case actionMenu:
		h.showMenu(s, i, locale)
	case actionUpcoming:
		h.showUpcoming(ctx, s, i, locale)
	case actionMine:
		h.showMine(ctx, s, i, locale)
	case actionCreate:
		h.startWizard(ctx, s, i, locale)
	case actionDetails:
		h.showDetails(ctx, s, i, locale, act.eventID)
	case actionJoin:
		h.join(ctx, s, i, locale, act.eventID)
	case actionCancel:
		h.cancelBooking(ctx, s, i, locale, act.eventID)
	case actionDelete:
		h.deleteEvent(ctx, s, i, locale, act.eventID)
	case actionUnknown:
	}
}

func respondUpdate(s *discordgo.Session, i *discordgo.Interaction, content string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) {
	embeds := []*discordgo.MessageEmbed{}
	if embed != nil {
		embeds = append(embeds, embed)
	}
	err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Embeds:     embeds,
			Components: components,
		},
	})
	if err != nil {
		log.Printf("❌ component: update message: %v", err)
	}
}

func (h *Handler) showMenu(s *discordgo.Session, i *discordgo.InteractionCreate, locale string) {
	respondUpdate(s, i.Interaction, h.translator.T(locale, "menu.title", nil), nil, h.menuComponents(locale))
}

func (h *Handler) showUpcoming(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, locale string) {
	content, components, err := h.renderUpcoming(ctx, locale)
	if err != nil {
		log.Printf("❌ component: render upcoming: %v", err)
		respondEphemeral(s, i.Interaction, h.translator.T(locale, "error.generic", nil))
		return
	}
	respondUpdate(s, i.Interaction, content, nil, components)
}

func (h *Handler) showMine(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, locale string) {
	user := interactionUser(i)
	if user == nil {
		return
	}
	content, components, err := h.renderMine(ctx, locale, user.ID)
	if err != nil {
		log.Printf("❌ component: render bookings: %v", err)
		respondEphemeral(s, i.Interaction, h.translator.T(locale, "error.generic", nil))
		return
	}
	respondUpdate(s, i.Interaction, content, nil, components)
}

// startWizard opens a creation session and moves the conversation to DMs,
// where the wizard collects its inputs message by message.
func (h *Handler) startWizard(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, locale string) {
	user := interactionUser(i)
	if user == nil {
		return
	}
	prompt := h.wizard.Start(locale, user.ID, resolveDisplayName(i))
	if err := h.messenger.SendText(ctx, user.ID, prompt); err != nil {
		log.Printf("⚠️ component: wizard DM to %s: %v", user.ID, err)
		h.wizard.Abort(user.ID)
		respondEphemeral(s, i.Interaction, h.translator.T(locale, "error.generic", nil))
		return
	}
	respondEphemeral(s, i.Interaction, h.translator.T(locale, "details.dm_sent", nil))
}

func (h *Handler) showDetails(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, locale string, eventID int64) {
	user := interactionUser(i)
	if user == nil {
		return
	}
	event, err := h.eventUseCase.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			content, components, rerr := h.renderUpcoming(ctx, locale)
			if rerr == nil {
				respondUpdate(s, i.Interaction, content, nil, components)
				followupEphemeral(s, i.Interaction, h.translator.T(locale, "event.not_found", nil))
				return
			}
		}
		log.Printf("❌ component: load event %d: %v", eventID, err)
		respondEphemeral(s, i.Interaction, h.translator.T(locale, "error.generic", nil))
		return
	}
	participants, err := h.eventUseCase.Participants(ctx, eventID)
	if err != nil {
		log.Printf("❌ component: load participants %d: %v", eventID, err)
		respondEphemeral(s, i.Interaction, h.translator.T(locale, "error.generic", nil))
		return
	}
	content, embed, components := h.renderDetails(locale, event, participants, user.ID)
	respondUpdate(s, i.Interaction, content, embed, components)
}

func (h *Handler) join(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, locale string, eventID int64) {
	user := interactionUser(i)
	if user == nil {
		return
	}
	reply, err := h.bookingUseCase.Join(ctx, locale, eventID, user.ID, resolveDisplayName(i))
	h.finishBookingAction(ctx, s, i, locale, eventID, reply, err)
}

func (h *Handler) cancelBooking(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, locale string, eventID int64) {
	user := interactionUser(i)
	if user == nil {
		return
	}
	reply, err := h.bookingUseCase.Cancel(ctx, locale, eventID, user.ID)
	h.finishBookingAction(ctx, s, i, locale, eventID, reply, err)
}

// finishBookingAction re-renders the details view and tells the actor what
// happened. Conflicts come back with a rendered reply; anything without one
// is a real failure.
func (h *Handler) finishBookingAction(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, locale string, eventID int64, reply string, err error) {
	if err != nil && reply == "" {
		log.Printf("❌ component: booking action on event %d: %v", eventID, err)
		respondEphemeral(s, i.Interaction, h.translator.T(locale, "error.generic", nil))
		return
	}
	if errors.Is(err, domain.ErrEventNotFound) {
		content, components, rerr := h.renderUpcoming(ctx, locale)
		if rerr == nil {
			respondUpdate(s, i.Interaction, content, nil, components)
			followupEphemeral(s, i.Interaction, reply)
			return
		}
		respondEphemeral(s, i.Interaction, reply)
		return
	}
	h.showDetails(ctx, s, i, locale, eventID)
	followupEphemeral(s, i.Interaction, reply)
}

func (h *Handler) deleteEvent(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, locale string, eventID int64) {
	user := interactionUser(i)
	if user == nil {
		return
	}
	reply, err := h.eventUseCase.DeleteEvent(ctx, locale, eventID, user.ID)
	if err != nil && reply == "" {
		log.Printf("❌ component: delete event %d: %v", eventID, err)
		respondEphemeral(s, i.Interaction, h.translator.T(locale, "error.generic", nil))
		return
	}
	if errors.Is(err, domain.ErrNotCreator) {
		respondEphemeral(s, i.Interaction, reply)
		return
	}
	content, components, rerr := h.renderUpcoming(ctx, locale)
	if rerr != nil {
		respondEphemeral(s, i.Interaction, reply)
		return
	}
	respondUpdate(s, i.Interaction, content, nil, components)
	followupEphemeral(s, i.Interaction, reply)
}
