package application

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"gamenight/internal/domain"
	"gamenight/internal/domain/entities"
	"gamenight/internal/ports/output"
	pkgdiscord "gamenight/pkg/discord"
)

type jobKey struct {
	eventID int64
	offset  domain.ReminderOffset
}

// ReminderScheduler arms one delayed job per (event, offset) whose fire-time
// is still in the future, fires each at most once, and survives restarts by
// re-arming from the persisted reminder jobs.
type ReminderScheduler struct {
	events       output.EventRepository
	participants output.ParticipantRepository
	jobs         output.ReminderJobRepository
	fanout       *Fanout
	translator   output.T
	offsets      []domain.ReminderOffset
	locale       string

	now func() time.Time

	mu     sync.Mutex
	timers map[jobKey]*time.Timer
}

func NewReminderScheduler(
	events output.EventRepository,
	participants output.ParticipantRepository,
	jobs output.ReminderJobRepository,
	fanout *Fanout,
	translator output.T,
	offsets []domain.ReminderOffset,
	locale string,
) *ReminderScheduler {
	return &ReminderScheduler{
		events:       events,
		participants: participants,
		jobs:         jobs,
		fanout:       fanout,
		translator:   translator,
		offsets:      offsets,
		locale:       locale,
		now:          time.Now,
		timers:       make(map[jobKey]*time.Timer),
	}
}

// Arm schedules the event's reminders. Offsets whose fire-time has already
// passed are skipped; re-arming a live or already-fired offset is a no-op.
func (s *ReminderScheduler) Arm(ctx context.Context, event *entities.Event) {
	for _, offset := range s.offsets {
		fireAt := event.StartsAt.Add(-offset.Duration())
		if !fireAt.After(s.now()) {
			continue
		}
		if err := s.jobs.Ensure(ctx, event.ID, offset); err != nil {
			log.Printf("❌ reminder: ensure job (event=%d, offset=%s): %v", event.ID, offset, err)
			continue
		}
		job, err := s.jobs.Get(ctx, event.ID, offset)
		if err != nil {
			log.Printf("❌ reminder: load job (event=%d, offset=%s): %v", event.ID, offset, err)
			continue
		}
		if job.Fired {
			continue
		}
		s.armTimer(event.ID, offset, fireAt)
	}
}

// Restore re-arms every unfired job whose event still exists and has not
// started yet. Jobs that became overdue while the process was down fire
// immediately. Call once at startup, after the transport is up.
func (s *ReminderScheduler) Restore(ctx context.Context) error {
	unfired, err := s.jobs.FindUnfired(ctx)
	if err != nil {
		return fmt.Errorf("load unfired reminder jobs: %w", err)
	}
	for _, job := range unfired {
		event, err := s.events.FindByID(ctx, job.EventID)
		if err != nil {
			continue
		}
		if !event.StartsAt.After(s.now()) {
			continue
		}
		s.armTimer(event.ID, job.Offset, event.StartsAt.Add(-job.Offset.Duration()))
	}
	return nil
}

// CancelEvent stops and forgets every armed timer for the event. Persisted
// job rows go away with the event's cascading delete.
func (s *ReminderScheduler) CancelEvent(eventID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, offset := range s.offsets {
		key := jobKey{eventID: eventID, offset: offset}
		if t, ok := s.timers[key]; ok {
			t.Stop()
			delete(s.timers, key)
		}
	}
}

// Shutdown stops all armed timers.
func (s *ReminderScheduler) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, t := range s.timers {
		t.Stop()
		delete(s.timers, key)
	}
}

func (s *ReminderScheduler) armTimer(eventID int64, offset domain.ReminderOffset, fireAt time.Time) {
	key := jobKey{eventID: eventID, offset: offset}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.timers[key]; ok {
		return
	}
	delay := fireAt.Sub(s.now())
	if delay < 0 {
		delay = 0
	}
	s.timers[key] = time.AfterFunc(delay, func() { s.fire(key) })
}

func (s *ReminderScheduler) fire(key jobKey) {
	s.mu.Lock()
	delete(s.timers, key)
	s.mu.Unlock()

	ctx := context.Background()
	event, err := s.events.FindByID(ctx, key.eventID)
	if err != nil {
		// Event deleted between arming and firing: the job is a no-op.
		return
	}
	job, err := s.jobs.Get(ctx, key.eventID, key.offset)
	if err != nil || job.Fired {
		return
	}
	participants, err := s.participants.FindByEventID(ctx, key.eventID)
	if err != nil {
		log.Printf("❌ reminder: list participants (event=%d): %v", key.eventID, err)
		return
	}

	// The message variant comes from the remaining delta to start time at
	// the moment the job executes, with a 23h decision boundary.
	msgKey := "reminder.hour"
	if s.now().Before(event.StartsAt.Add(-23 * time.Hour)) {
		msgKey = "reminder.day"
	}
	text := s.translator.T(s.locale, msgKey, map[string]any{
		"Title": event.Title,
		"Date":  pkgdiscord.FormatEventDateTime(event.StartsAt),
	})

	recipients := make([]string, 0, len(participants))
	for _, p := range participants {
		recipients = append(recipients, p.UserID)
	}
	s.fanout.Broadcast(ctx, recipients, text)

	if err := s.jobs.MarkFired(ctx, key.eventID, key.offset); err != nil {
		log.Printf("❌ reminder: mark fired (event=%d, offset=%s): %v", key.eventID, key.offset, err)
	}
}
