package application

import (
	"context"
	"log"

	"gamenight/internal/ports/output"
)

// Fanout delivers one message to many recipients independently. A failed
// delivery is logged and skipped; it never aborts the remaining recipients
// and never fails the overall call. Retries are the scheduler's business.
type Fanout struct {
	messenger output.Messenger
}

func NewFanout(messenger output.Messenger) *Fanout {
	return &Fanout{messenger: messenger}
}

func (f *Fanout) Broadcast(ctx context.Context, recipients []string, text string) {
	for _, identity := range recipients {
		if err := f.messenger.SendText(ctx, identity, text); err != nil {
			log.Printf("⚠️ fanout: send to %s: %v", identity, err)
		}
	}
}
