package application

import (
	"context"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"gamenight/internal/domain/entities"
	"gamenight/internal/ports/input"
	"gamenight/internal/ports/output"
	pkgdiscord "gamenight/pkg/discord"
)

var _ input.WizardUseCase = (*Wizard)(nil)

// skipSentinel lets the user skip the optional description and media steps.
const skipSentinel = "/skip"

type wizardStep int

const (
	stepTitle wizardStep = iota
	stepTime
	stepCapacity
	stepDescription
	stepMedia
)

type wizardSession struct {
	mu          sync.Mutex
	step        wizardStep
	draft       entities.Event
	creatorName string
}

// Wizard is the per-identity creation state machine: five strictly ordered
// steps, each validating its input and only advancing on success. Sessions
// are keyed by identity, invisible to each other, and cleared on every exit
// path. State lives in memory only; a restart drops sessions, which is fine.
type Wizard struct {
	events     *EventService
	translator output.T

	now func() time.Time

	mu       sync.RWMutex
	sessions map[string]*wizardSession
}

func NewWizard(events *EventService, translator output.T) *Wizard {
	return &Wizard{
		events:     events,
		translator: translator,
		now:        time.Now,
		sessions:   make(map[string]*wizardSession),
	}
}

// Start opens a fresh session for the identity, replacing any stale one.
func (w *Wizard) Start(locale, identity, displayName string) string {
	w.mu.Lock()
	w.sessions[identity] = &wizardSession{
		step:        stepTitle,
		draft:       entities.Event{CreatorID: identity},
		creatorName: displayName,
	}
	w.mu.Unlock()
	return w.translator.T(locale, "wizard.title_prompt", nil)
}

func (w *Wizard) Active(identity string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.sessions[identity]
	return ok
}

func (w *Wizard) Abort(identity string) {
	w.mu.Lock()
	delete(w.sessions, identity)
	w.mu.Unlock()
}

func (w *Wizard) session(identity string) *wizardSession {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.sessions[identity]
}

// Input feeds one text message into the identity's session. Rapid messages
// from the same identity serialize on the session lock, so they are handled
// in arrival order. Identities never share a session.
func (w *Wizard) Input(ctx context.Context, locale, identity, text string) (string, error) {
	sess := w.session(identity)
	if sess == nil {
		return "", nil
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	text = strings.TrimSpace(text)
	skip := strings.EqualFold(text, skipSentinel)

	switch sess.step {
	case stepTitle:
		if text == "" {
			return w.translator.T(locale, "wizard.title_prompt", nil), nil
		}
		sess.draft.Title = text
		sess.step = stepTime
		return w.translator.T(locale, "wizard.time_prompt", nil), nil

	case stepTime:
		startsAt, err := pkgdiscord.ParseEventDateTime(text, w.now())
		if err != nil {
			return w.translator.T(locale, "wizard.time_invalid", nil), nil
		}
		sess.draft.StartsAt = startsAt
		sess.step = stepCapacity
		return w.translator.T(locale, "wizard.capacity_prompt", nil), nil

	case stepCapacity:
		capacity, err := strconv.Atoi(text)
		if err != nil || capacity < 0 {
			return w.translator.T(locale, "wizard.capacity_invalid", nil), nil
		}
		sess.draft.Capacity = capacity
		sess.step = stepDescription
		return w.translator.T(locale, "wizard.description_prompt", nil), nil

	case stepDescription:
		if !skip {
			sess.draft.Description = text
		}
		sess.step = stepMedia
		return w.translator.T(locale, "wizard.media_prompt", nil), nil

	case stepMedia:
		if !skip {
			return w.translator.T(locale, "wizard.media_invalid", nil), nil
		}
		return w.commit(ctx, locale, identity, sess)
	}
	return "", nil
}

// Media feeds a media handle into the session. Outside the media step it is
// invalid input: the current step re-prompts and nothing advances.
func (w *Wizard) Media(ctx context.Context, locale, identity, mediaRef string) (string, error) {
	sess := w.session(identity)
	if sess == nil {
		return "", nil
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.step != stepMedia {
		return w.reprompt(locale, sess.step), nil
	}
	sess.draft.MediaRef = mediaRef
	return w.commit(ctx, locale, identity, sess)
}

// commit hands the finished draft to the event service (which arms the
// reminders) and clears the session whether or not the commit succeeded.
func (w *Wizard) commit(ctx context.Context, locale, identity string, sess *wizardSession) (string, error) {
	defer w.Abort(identity)

	event := sess.draft
	if err := w.events.Create(ctx, &event, sess.creatorName); err != nil {
		log.Printf("❌ wizard: create event for %s: %v", identity, err)
		return w.translator.T(locale, "wizard.failed", nil), err
	}
	return w.translator.T(locale, "wizard.created", map[string]any{"ID": event.ID}), nil
}

func (w *Wizard) reprompt(locale string, step wizardStep) string {
	keys := map[wizardStep]string{
		stepTitle:       "wizard.title_prompt",
		stepTime:        "wizard.time_prompt",
		stepCapacity:    "wizard.capacity_prompt",
		stepDescription: "wizard.description_prompt",
		stepMedia:       "wizard.media_prompt",
	}
	return w.translator.T(locale, keys[step], nil)
}
