package pubsub_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-tenant-client/internal/pubsub"
)

func TestBroadcaster(t *testing.T) {
	t.Run("delivers in subscription order", func(t *testing.T) {
		b := pubsub.New[int]()

		var order []string
		b.Subscribe(func(int) { order = append(order, "first") })
		b.Subscribe(func(int) { order = append(order, "second") })

		b.Publish(1)
		require.Equal(t, []string{"first", "second"}, order)
	})

	t.Run("replays only the latest value", func(t *testing.T) {
		b := pubsub.New[int]()
		b.Publish(1)
		b.Publish(2)

		var seen []int
		b.Subscribe(func(v int) { seen = append(seen, v) })
		require.Equal(t, []int{2}, seen)
	})

	t.Run("no replay before first publish", func(t *testing.T) {
		b := pubsub.New[int]()
		called := false
		b.Subscribe(func(int) { called = true })
		require.False(t, called)
	})

	t.Run("cancel stops delivery", func(t *testing.T) {
		b := pubsub.New[int]()
		var seen []int
		cancel := b.Subscribe(func(v int) { seen = append(seen, v) })

		b.Publish(1)
		cancel()
		cancel() // second cancel is harmless
		b.Publish(2)
		require.Equal(t, []int{1}, seen)
	})

	t.Run("subscriber may publish reentrantly", func(t *testing.T) {
		b := pubsub.New[int]()
		var seen []int
		b.Subscribe(func(v int) {
			seen = append(seen, v)
			if v == 1 {
				b.Publish(2)
			}
		})
		b.Publish(1)
		require.Equal(t, []int{1, 2}, seen)
	})
}
