package input

import "context"

type BookingUseCase interface {
	// Join books the identity on the event; the reply is rendered for the
	// requester, the error is the domain outcome (nil on success).
	Join(ctx context.Context, locale string, eventID int64, userID, username string) (string, error)
	Cancel(ctx context.Context, locale string, eventID int64, userID string) (string, error)
}
