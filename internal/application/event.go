package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gamenight/internal/domain"
	"gamenight/internal/domain/entities"
	"gamenight/internal/ports/input"
	"gamenight/internal/ports/output"
)

var _ input.EventUseCase = (*EventService)(nil)

// EventService owns the event lifecycle: validated creation with the creator
// booked as the first participant, lookups, listings and the creator-only
// cascading delete.
type EventService struct {
	events       output.EventRepository
	participants output.ParticipantRepository
	scheduler    *ReminderScheduler
	fanout       *Fanout
	translator   output.T

	now func() time.Time
}

func NewEventService(
	events output.EventRepository,
	participants output.ParticipantRepository,
	scheduler *ReminderScheduler,
	fanout *Fanout,
	translator output.T,
) *EventService {
	return &EventService{
		events:       events,
		participants: participants,
		scheduler:    scheduler,
		fanout:       fanout,
		translator:   translator,
		now:          time.Now,
	}
}

// Create validates the draft, persists it with the creator as the first
// participant and arms its reminders. The assigned id is written back into
// the event.
func (s *EventService) Create(ctx context.Context, event *entities.Event, creatorName string) error {
	event.Title = strings.TrimSpace(event.Title)
	if event.Title == "" {
		return domain.ErrTitleEmpty
	}
	if !event.StartsAt.After(s.now()) {
		return domain.ErrDateTimeInPast
	}
	if event.Capacity < 0 {
		return domain.ErrInvalidCapacity
	}

	if err := s.events.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	name := strings.TrimSpace(creatorName)
	if name == "" {
		name = event.CreatorID
	}
	creator := &entities.Participant{
		EventID:  event.ID,
		UserID:   event.CreatorID,
		Username: name,
		JoinedAt: s.now(),
	}
	if err := s.participants.Create(ctx, creator); err != nil {
		return fmt.Errorf("register creator: %w", err)
	}
	s.scheduler.Arm(ctx, event)
	return nil
}

func (s *EventService) GetEvent(ctx context.Context, id int64) (*entities.Event, error) {
	return s.events.FindByID(ctx, id)
}

func (s *EventService) Upcoming(ctx context.Context) ([]entities.Event, error) {
	return s.events.FindUpcoming(ctx, s.now())
}

func (s *EventService) Mine(ctx context.Context, userID string) ([]entities.Event, error) {
	return s.events.FindUpcomingByUserID(ctx, userID, s.now())
}

func (s *EventService) Participants(ctx context.Context, eventID int64) ([]entities.Participant, error) {
	return s.participants.FindByEventID(ctx, eventID)
}

// DeleteEvent removes the event, its participants and reminder jobs as one
// unit, cancels armed timers and notifies everyone who was booked except
// the requester.
func (s *EventService) DeleteEvent(ctx context.Context, locale string, eventID int64, requesterID string) (string, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return s.translator.T(locale, "event.not_found", nil), domain.ErrEventNotFound
		}
		return "", fmt.Errorf("load event: %w", err)
	}
	if event.CreatorID != requesterID {
		return s.translator.T(locale, "delete.not_creator", nil), domain.ErrNotCreator
	}

	participants, err := s.participants.FindByEventID(ctx, eventID)
	if err != nil {
		return "", fmt.Errorf("list participants: %w", err)
	}
	if err := s.events.Delete(ctx, eventID); err != nil {
		return "", fmt.Errorf("delete event: %w", err)
	}
	s.scheduler.CancelEvent(eventID)

	recipients := make([]string, 0, len(participants))
	for _, p := range participants {
		if p.UserID == requesterID {
			continue
		}
		recipients = append(recipients, p.UserID)
	}
	notice := s.translator.T("", "delete.notice", map[string]any{"Title": event.Title})
	s.fanout.Broadcast(ctx, recipients, notice)

	return s.translator.T(locale, "delete.ok", nil), nil
}
