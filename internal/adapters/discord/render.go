package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"gamenight/internal/domain/entities"
	pkgdiscord "gamenight/pkg/discord"
)

const (
	// Discord caps messages at five action rows; one is kept for navigation.
	maxListedEvents = 8
	buttonsPerRow   = 2
)

func formatCount(capacity, count int) string {
	if capacity == 0 {
		return fmt.Sprintf("%d+", count)
	}
	return fmt.Sprintf("%d/%d", count, capacity)
}

func (h *Handler) menuComponents(locale string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: h.translator.T(locale, "menu.upcoming", nil), Style: discordgo.PrimaryButton, CustomID: action{kind: actionUpcoming}.customID()},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: h.translator.T(locale, "menu.create", nil), Style: discordgo.SuccessButton, CustomID: action{kind: actionCreate}.customID()},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: h.translator.T(locale, "menu.mine", nil), Style: discordgo.SecondaryButton, CustomID: action{kind: actionMine}.customID()},
		}},
	}
}

func (h *Handler) backRow(locale string, to actionKind) discordgo.ActionsRow {
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{Label: h.translator.T(locale, "menu.back", nil), Style: discordgo.SecondaryButton, CustomID: action{kind: to}.customID()},
	}}
}

// renderUpcoming builds the upcoming-games view: one button per event with a
// compact date and the seat counter, capped to what Discord can display.
func (h *Handler) renderUpcoming(ctx context.Context, locale string) (string, []discordgo.MessageComponent, error) {
	events, err := h.eventUseCase.Upcoming(ctx)
	if err != nil {
		return "", nil, err
	}
	if len(events) == 0 {
		return h.translator.T(locale, "list.empty", nil), []discordgo.MessageComponent{h.backRow(locale, actionMenu)}, nil
	}
	if len(events) > maxListedEvents {
		events = events[:maxListedEvents]
	}

	var buttons []discordgo.MessageComponent
	for _, event := range events {
		participants, err := h.eventUseCase.Participants(ctx, event.ID)
		if err != nil {
			return "", nil, err
		}
		label := fmt.Sprintf("%s - %s (%s)",
			event.Title,
			pkgdiscord.FormatEventDateShort(event.StartsAt),
			formatCount(event.Capacity, len(participants)),
		)
		buttons = append(buttons, discordgo.Button{
			Label:    label,
			Style:    discordgo.PrimaryButton,
			CustomID: action{kind: actionDetails, eventID: event.ID}.customID(),
		})
	}

	var components []discordgo.MessageComponent
	for i := 0; i < len(buttons); i += buttonsPerRow {
		end := min(i+buttonsPerRow, len(buttons))
		components = append(components, discordgo.ActionsRow{Components: buttons[i:end]})
	}
	components = append(components, h.backRow(locale, actionMenu))
	return h.translator.T(locale, "list.title", nil), components, nil
}

// renderMine builds the viewer's bookings as a text list, original style.
func (h *Handler) renderMine(ctx context.Context, locale, userID string) (string, []discordgo.MessageComponent, error) {
	events, err := h.eventUseCase.Mine(ctx, userID)
	if err != nil {
		return "", nil, err
	}
	components := []discordgo.MessageComponent{h.backRow(locale, actionMenu)}
	if len(events) == 0 {
		return h.translator.T(locale, "mine.empty", nil), components, nil
	}

	var b strings.Builder
	b.WriteString(h.translator.T(locale, "mine.title", nil))
	b.WriteString("\n\n")
	for _, event := range events {
		participants, err := h.eventUseCase.Participants(ctx, event.ID)
		if err != nil {
			return "", nil, err
		}
		role := h.translator.T(locale, "mine.participant", nil)
		if event.CreatorID == userID {
			role = h.translator.T(locale, "mine.creator", nil)
		}
		b.WriteString(fmt.Sprintf("%s: **%s** - %s (%s)\n",
			role,
			event.Title,
			pkgdiscord.FormatEventDateShort(event.StartsAt),
			formatCount(event.Capacity, len(participants)),
		))
	}
	return b.String(), components, nil
}

// renderDetails builds the event view with buttons chosen by the viewer's
// role: the creator can delete, a booked participant can cancel, anyone
// else can join while seats remain.
func (h *Handler) renderDetails(locale string, event *entities.Event, participants []entities.Participant, viewerID string) (string, *discordgo.MessageEmbed, []discordgo.MessageComponent) {
	creatorName := event.CreatorID
	joined := false
	for _, p := range participants {
		if p.UserID == event.CreatorID {
			creatorName = p.Username
		}
		if p.UserID == viewerID {
			joined = true
		}
	}
	full := event.HasSeatLimit() && len(participants) >= event.Capacity

	var b strings.Builder
	b.WriteString(h.translator.T(locale, "details.title", map[string]any{"Title": event.Title}) + "\n")
	b.WriteString(h.translator.T(locale, "details.date", map[string]any{"Date": pkgdiscord.FormatEventDateTime(event.StartsAt)}) + "\n")
	b.WriteString(h.translator.T(locale, "details.creator", map[string]any{"Creator": creatorName}) + "\n")
	b.WriteString(h.translator.T(locale, "details.players", map[string]any{"Count": formatCount(event.Capacity, len(participants))}) + "\n")
	if event.Description != "" {
		b.WriteString("\n" + h.translator.T(locale, "details.description", map[string]any{"Description": event.Description}) + "\n")
	}

	var buttons []discordgo.MessageComponent
	switch {
	case event.CreatorID == viewerID:
		buttons = append(buttons, discordgo.Button{
			Label:    h.translator.T(locale, "details.delete", nil),
			Style:    discordgo.DangerButton,
			CustomID: action{kind: actionDelete, eventID: event.ID}.customID(),
		})
	case joined:
		buttons = append(buttons, discordgo.Button{
			Label:    h.translator.T(locale, "details.cancel", nil),
			Style:    discordgo.DangerButton,
			CustomID: action{kind: actionCancel, eventID: event.ID}.customID(),
		})
	case !full:
		buttons = append(buttons, discordgo.Button{
			Label:    h.translator.T(locale, "details.join", nil),
			Style:    discordgo.SuccessButton,
			CustomID: action{kind: actionJoin, eventID: event.ID}.customID(),
		})
	default:
		b.WriteString("\n" + h.translator.T(locale, "details.full", nil))
	}

	var components []discordgo.MessageComponent
	if len(buttons) > 0 {
		components = append(components, discordgo.ActionsRow{Components: buttons})
	}
	components = append(components, h.backRow(locale, actionUpcoming))

	var embed *discordgo.MessageEmbed
	if event.MediaRef != "" {
		embed = &discordgo.MessageEmbed{Image: &discordgo.MessageEmbedImage{URL: event.MediaRef}}
	}
	return b.String(), embed, components
}
