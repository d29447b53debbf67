package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFanout_FailedRecipientDoesNotAbortTheRest(t *testing.T) {
	messenger := newMemMessenger()
	messenger.fail["2"] = true
	fanout := NewFanout(messenger)

	fanout.Broadcast(context.Background(), []string{"1", "2", "3"}, "hello")

	assert.Equal(t, []string{"hello"}, messenger.messages("1"))
	assert.Empty(t, messenger.messages("2"))
	assert.Equal(t, []string{"hello"}, messenger.messages("3"))
}

func TestFanout_NoRecipients(t *testing.T) {
	messenger := newMemMessenger()
	fanout := NewFanout(messenger)

	fanout.Broadcast(context.Background(), nil, "hello")
	assert.Empty(t, messenger.sent)
}
