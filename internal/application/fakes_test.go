package application

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"gamenight/internal/domain"
	"gamenight/internal/domain/entities"
)

// memStore implements the event, participant and reminder-job repositories
// in memory with the same error contract as the Postgres implementation.
type memStore struct {
	mu           sync.Mutex
	nextID       int64
	events       map[int64]entities.Event
	participants map[int64][]entities.Participant
	jobs         map[memJobKey]bool

	createEventErr error
}

type memJobKey struct {
	eventID int64
	offset  domain.ReminderOffset
}

func newMemStore() *memStore {
	return &memStore{
		events:       make(map[int64]entities.Event),
		participants: make(map[int64][]entities.Participant),
		jobs:         make(map[memJobKey]bool),
	}
}

// seedEvent inserts an event directly, without the creator booking.
func (s *memStore) seedEvent(e entities.Event) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	e.ID = s.nextID
	s.events[e.ID] = e
	return e.ID
}

func (s *memStore) Create(_ context.Context, event *entities.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createEventErr != nil {
		return s.createEventErr
	}
	s.nextID++
	event.ID = s.nextID
	event.CreatedAt = time.Now()
	s.events[event.ID] = *event
	return nil
}

func (s *memStore) FindByID(_ context.Context, id int64) (*entities.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return &e, nil
}

func (s *memStore) FindUpcoming(_ context.Context, now time.Time) ([]entities.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entities.Event
	for _, e := range s.events {
		if e.StartsAt.After(now) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (s *memStore) FindUpcomingByUserID(ctx context.Context, userID string, now time.Time) ([]entities.Event, error) {
	all, err := s.FindUpcoming(ctx, now)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entities.Event
	for _, e := range all {
		for _, p := range s.participants[e.ID] {
			if p.UserID == userID {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}

func (s *memStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(s.events, id)
	delete(s.participants, id)
	for key := range s.jobs {
		if key.eventID == id {
			delete(s.jobs, key)
		}
	}
	return nil
}

func (s *memStore) CreateParticipant(_ context.Context, participant *entities.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.participants[participant.EventID] {
		if p.UserID == participant.UserID {
			return domain.ErrAlreadyJoined
		}
	}
	s.participants[participant.EventID] = append(s.participants[participant.EventID], *participant)
	return nil
}

func (s *memStore) FindByEventID(_ context.Context, eventID int64) ([]entities.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.Participant(nil), s.participants[eventID]...), nil
}

func (s *memStore) FindByEventIDAndUserID(_ context.Context, eventID int64, userID string) (*entities.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.participants[eventID] {
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, domain.ErrNotJoined
}

func (s *memStore) DeleteParticipant(_ context.Context, eventID int64, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.participants[eventID]
	for i, p := range list {
		if p.UserID == userID {
			s.participants[eventID] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotJoined
}

func (s *memStore) CountByEventID(_ context.Context, eventID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.participants[eventID])), nil
}

func (s *memStore) Ensure(_ context.Context, eventID int64, offset domain.ReminderOffset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := memJobKey{eventID: eventID, offset: offset}
	if _, ok := s.jobs[key]; !ok {
		s.jobs[key] = false
	}
	return nil
}

func (s *memStore) Get(_ context.Context, eventID int64, offset domain.ReminderOffset) (*entities.ReminderJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fired, ok := s.jobs[memJobKey{eventID: eventID, offset: offset}]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return &entities.ReminderJob{EventID: eventID, Offset: offset, Fired: fired}, nil
}

func (s *memStore) MarkFired(_ context.Context, eventID int64, offset domain.ReminderOffset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[memJobKey{eventID: eventID, offset: offset}] = true
	return nil
}

func (s *memStore) FindUnfired(_ context.Context) ([]entities.ReminderJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entities.ReminderJob
	for key, fired := range s.jobs {
		if !fired {
			out = append(out, entities.ReminderJob{EventID: key.eventID, Offset: key.offset})
		}
	}
	return out, nil
}

// participantRepo adapts memStore to output.ParticipantRepository: the
// method set clashes with the event repository on the shared struct.
type participantRepo struct{ *memStore }

func (r participantRepo) Create(ctx context.Context, p *entities.Participant) error {
	return r.CreateParticipant(ctx, p)
}

func (r participantRepo) Delete(ctx context.Context, eventID int64, userID string) error {
	return r.DeleteParticipant(ctx, eventID, userID)
}

// memMessenger records deliveries and can be told to fail per identity.
type memMessenger struct {
	mu   sync.Mutex
	sent map[string][]string
	fail map[string]bool
}

func newMemMessenger() *memMessenger {
	return &memMessenger{
		sent: make(map[string][]string),
		fail: make(map[string]bool),
	}
}

func (m *memMessenger) SendText(_ context.Context, identity, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail[identity] {
		return errors.New("recipient unreachable")
	}
	m.sent[identity] = append(m.sent[identity], text)
	return nil
}

func (m *memMessenger) SendMedia(ctx context.Context, identity, _, caption string) error {
	return m.SendText(ctx, identity, caption)
}

func (m *memMessenger) messages(identity string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent[identity]...)
}

// keyTranslator echoes the message key, so tests assert on keys instead of
// rendered locale text.
type keyTranslator struct{}

func (keyTranslator) T(_, key string, _ map[string]any) string { return key }

// testEnv wires the application services over the in-memory fakes.
type testEnv struct {
	store     *memStore
	messenger *memMessenger
	scheduler *ReminderScheduler
	events    *EventService
	bookings  *BookingService
	wizard    *Wizard
}

func newTestEnv() *testEnv {
	store := newMemStore()
	messenger := newMemMessenger()
	fanout := NewFanout(messenger)
	scheduler := NewReminderScheduler(store, participantRepo{store}, store, fanout, keyTranslator{}, domain.DefaultOffsets, "en")
	events := NewEventService(store, participantRepo{store}, scheduler, fanout, keyTranslator{})
	bookings := NewBookingService(store, participantRepo{store}, messenger, keyTranslator{})
	wizard := NewWizard(events, keyTranslator{})
	return &testEnv{
		store:     store,
		messenger: messenger,
		scheduler: scheduler,
		events:    events,
		bookings:  bookings,
		wizard:    wizard,
	}
}
