package output

import "context"

// Messenger delivers rendered messages to a single identity over the chat
// transport. Both calls are fallible per recipient; the caller decides
// whether a failure matters.
type Messenger interface {
	SendText(ctx context.Context, identity, text string) error
	SendMedia(ctx context.Context, identity, mediaRef, caption string) error
}
