package application

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamenight/internal/domain"
	"gamenight/internal/domain/entities"
)

func futureEvent(capacity int) entities.Event {
	return entities.Event{
		Title:     "Catan",
		StartsAt:  time.Now().Add(48 * time.Hour),
		CreatorID: "creator",
		Capacity:  capacity,
	}
}

func TestBookingService_Join(t *testing.T) {
	ctx := context.Background()

	t.Run("books a free seat", func(t *testing.T) {
		env := newTestEnv()
		id := env.store.seedEvent(futureEvent(4))

		reply, err := env.bookings.Join(ctx, "en", id, "42", "alice")
		require.NoError(t, err)
		assert.Equal(t, "join.ok", reply)

		count, err := env.store.CountByEventID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("notifies the creator", func(t *testing.T) {
		env := newTestEnv()
		id := env.store.seedEvent(futureEvent(4))

		_, err := env.bookings.Join(ctx, "en", id, "42", "alice")
		require.NoError(t, err)
		assert.Equal(t, []string{"join.notify_creator"}, env.messenger.messages("creator"))
	})

	t.Run("rejects a duplicate booking", func(t *testing.T) {
		env := newTestEnv()
		id := env.store.seedEvent(futureEvent(4))

		_, err := env.bookings.Join(ctx, "en", id, "42", "alice")
		require.NoError(t, err)
		reply, err := env.bookings.Join(ctx, "en", id, "42", "alice")
		assert.ErrorIs(t, err, domain.ErrAlreadyJoined)
		assert.Equal(t, "join.already", reply)
	})

	t.Run("refuses when full", func(t *testing.T) {
		env := newTestEnv()
		id := env.store.seedEvent(futureEvent(1))

		_, err := env.bookings.Join(ctx, "en", id, "42", "alice")
		require.NoError(t, err)
		reply, err := env.bookings.Join(ctx, "en", id, "43", "bob")
		assert.ErrorIs(t, err, domain.ErrEventFull)
		assert.Equal(t, "join.full", reply)
	})

	t.Run("capacity zero never refuses", func(t *testing.T) {
		env := newTestEnv()
		id := env.store.seedEvent(futureEvent(0))

		for n := 0; n < 50; n++ {
			_, err := env.bookings.Join(ctx, "en", id, fmt.Sprintf("user-%d", n), "x")
			require.NoError(t, err)
		}
	})

	t.Run("unknown event", func(t *testing.T) {
		env := newTestEnv()
		reply, err := env.bookings.Join(ctx, "en", 999, "42", "alice")
		assert.ErrorIs(t, err, domain.ErrEventNotFound)
		assert.Equal(t, "event.not_found", reply)
	})
}

// The central correctness property: with capacity C and N >= C racing
// joins, exactly C succeed and the participant count never exceeds C.
func TestBookingService_Join_NeverOversells(t *testing.T) {
	ctx := context.Background()
	const capacity = 3
	const racers = 24

	env := newTestEnv()
	id := env.store.seedEvent(futureEvent(capacity))

	var wg sync.WaitGroup
	results := make([]error, racers)
	for n := 0; n < racers; n++ {
		n := n
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, results[n] = env.bookings.Join(ctx, "en", id, fmt.Sprintf("user-%d", n), "x")
		}()
	}
	wg.Wait()

	var ok, full int
	for _, err := range results {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, domain.ErrEventFull):
			full++
		}
	}
	assert.Equal(t, capacity, ok)
	assert.Equal(t, racers-capacity, full)

	count, err := env.store.CountByEventID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(capacity), count)
}

func TestBookingService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("join cancel join leaves the count unchanged", func(t *testing.T) {
		env := newTestEnv()
		id := env.store.seedEvent(futureEvent(2))

		before, err := env.store.CountByEventID(ctx, id)
		require.NoError(t, err)

		_, err = env.bookings.Join(ctx, "en", id, "42", "alice")
		require.NoError(t, err)
		reply, err := env.bookings.Cancel(ctx, "en", id, "42")
		require.NoError(t, err)
		assert.Equal(t, "cancel.ok", reply)
		_, err = env.bookings.Join(ctx, "en", id, "42", "alice")
		require.NoError(t, err)
		_, err = env.bookings.Cancel(ctx, "en", id, "42")
		require.NoError(t, err)

		after, err := env.store.CountByEventID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("not joined", func(t *testing.T) {
		env := newTestEnv()
		id := env.store.seedEvent(futureEvent(2))

		reply, err := env.bookings.Cancel(ctx, "en", id, "42")
		assert.ErrorIs(t, err, domain.ErrNotJoined)
		assert.Equal(t, "cancel.not_joined", reply)
	})

	t.Run("notifies the creator", func(t *testing.T) {
		env := newTestEnv()
		id := env.store.seedEvent(futureEvent(2))

		_, err := env.bookings.Join(ctx, "en", id, "42", "alice")
		require.NoError(t, err)
		_, err = env.bookings.Cancel(ctx, "en", id, "42")
		require.NoError(t, err)
		assert.Equal(t, []string{"join.notify_creator", "cancel.notify_creator"}, env.messenger.messages("creator"))
	})

	t.Run("unknown event", func(t *testing.T) {
		env := newTestEnv()
		reply, err := env.bookings.Cancel(ctx, "en", 999, "42")
		assert.ErrorIs(t, err, domain.ErrEventNotFound)
		assert.Equal(t, "event.not_found", reply)
	})
}
