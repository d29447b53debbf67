package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"gamenight/internal/domain"
	"gamenight/internal/domain/entities"
	"gamenight/internal/ports/input"
	"gamenight/internal/ports/output"
)

var _ input.BookingUseCase = (*BookingService)(nil)

// BookingService is the capacity guard: join and cancel for one event run
// under that event's lock, so "check count, then insert" is indivisible and
// a full event can never be oversold. Different events never contend.
type BookingService struct {
	events       output.EventRepository
	participants output.ParticipantRepository
	messenger    output.Messenger
	translator   output.T

	now func() time.Time

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewBookingService(
	events output.EventRepository,
	participants output.ParticipantRepository,
	messenger output.Messenger,
	translator output.T,
) *BookingService {
	return &BookingService{
		events:       events,
		participants: participants,
		messenger:    messenger,
		translator:   translator,
		now:          time.Now,
		locks:        make(map[int64]*sync.Mutex),
	}
}

func (s *BookingService) eventLock(eventID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[eventID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[eventID] = l
	}
	return l
}

// Join books the identity on the event. Capacity 0 means unlimited and
// never refuses; otherwise the seat check and the insert happen atomically
// relative to any concurrent Join on the same event.
func (s *BookingService) Join(ctx context.Context, locale string, eventID int64, userID, username string) (string, error) {
	lock := s.eventLock(eventID)
	lock.Lock()
	defer lock.Unlock()

	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return s.translator.T(locale, "event.not_found", nil), domain.ErrEventNotFound
		}
		return "", fmt.Errorf("load event: %w", err)
	}

	if _, err := s.participants.FindByEventIDAndUserID(ctx, eventID, userID); err == nil {
		return s.translator.T(locale, "join.already", nil), domain.ErrAlreadyJoined
	} else if !errors.Is(err, domain.ErrNotJoined) {
		return "", fmt.Errorf("lookup participant: %w", err)
	}

	if event.HasSeatLimit() {
		count, err := s.participants.CountByEventID(ctx, eventID)
		if err != nil {
			return "", fmt.Errorf("count participants: %w", err)
		}
		if count >= int64(event.Capacity) {
			return s.translator.T(locale, "join.full", nil), domain.ErrEventFull
		}
	}

	participant := &entities.Participant{
		EventID:  eventID,
		UserID:   userID,
		Username: username,
		JoinedAt: s.now(),
	}
	if err := s.participants.Create(ctx, participant); err != nil {
		if errors.Is(err, domain.ErrAlreadyJoined) {
			return s.translator.T(locale, "join.already", nil), domain.ErrAlreadyJoined
		}
		return "", fmt.Errorf("create participant: %w", err)
	}

	s.notifyCreator(ctx, event, userID, "join.notify_creator", map[string]any{
		"Title":    event.Title,
		"Username": username,
		"Count":    s.formatCount(ctx, event),
	})
	return s.translator.T(locale, "join.ok", nil), nil
}

// Cancel removes the identity's booking. It takes the same per-event lock
// as Join, so a concurrent cancel can never push an event over capacity.
func (s *BookingService) Cancel(ctx context.Context, locale string, eventID int64, userID string) (string, error) {
	lock := s.eventLock(eventID)
	lock.Lock()
	defer lock.Unlock()

	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return s.translator.T(locale, "event.not_found", nil), domain.ErrEventNotFound
		}
		return "", fmt.Errorf("load event: %w", err)
	}

	participant, err := s.participants.FindByEventIDAndUserID(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotJoined) {
			return s.translator.T(locale, "cancel.not_joined", nil), domain.ErrNotJoined
		}
		return "", fmt.Errorf("lookup participant: %w", err)
	}
	if err := s.participants.Delete(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrNotJoined) {
			return s.translator.T(locale, "cancel.not_joined", nil), domain.ErrNotJoined
		}
		return "", fmt.Errorf("delete participant: %w", err)
	}

	s.notifyCreator(ctx, event, userID, "cancel.notify_creator", map[string]any{
		"Title":    event.Title,
		"Username": participant.Username,
	})
	return s.translator.T(locale, "cancel.ok", nil), nil
}

// notifyCreator sends a best-effort heads-up to the event creator, unless
// the actor is the creator. Delivery failure is logged, never surfaced.
func (s *BookingService) notifyCreator(ctx context.Context, event *entities.Event, actorID, key string, data map[string]any) {
	if event.CreatorID == actorID {
		return
	}
	text := s.translator.T("", key, data)
	if err := s.messenger.SendText(ctx, event.CreatorID, text); err != nil {
		log.Printf("⚠️ booking: notify creator %s: %v", event.CreatorID, err)
	}
}

func (s *BookingService) formatCount(ctx context.Context, event *entities.Event) string {
	count, err := s.participants.CountByEventID(ctx, event.ID)
	if err != nil {
		return "?"
	}
	if event.HasSeatLimit() {
		return fmt.Sprintf("%d/%d", count, event.Capacity)
	}
	return fmt.Sprintf("%d", count)
}
