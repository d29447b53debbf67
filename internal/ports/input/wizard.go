package input

import "context"

type WizardUseCase interface {
	// Start opens (or restarts) a creation session for the identity and
	// returns the first prompt.
	Start(locale, identity, displayName string) string
	Active(identity string) bool
	// Input feeds one text message into the identity's session.
	Input(ctx context.Context, locale, identity, text string) (string, error)
	// Media feeds one media handle into the identity's session.
	Media(ctx context.Context, locale, identity, mediaRef string) (string, error)
	Abort(identity string)
}
