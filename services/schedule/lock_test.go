package schedule

import (
	"context"
	"testing"
	"time"

	"skischool/models"

	"github.com/stretchr/testify/require"
)

func TestLockKey(t *testing.T) {
	span := Span(window(t, "2024-01-10 10:00", "2024-01-11 12:00"))
	require.Equal(t, "schedule:assign:m1:2024-01-10:2024-01-11", LockKey("m1", span))
	require.Equal(t, "schedule:assign:m1:2024-01-10:2024-01-10", LockKey("m1", models.TimeWindow{Start: ts(t, "2024-01-10 00:00"), End: ts(t, "2024-01-11 00:00")}))
}

func TestMemoryLocker(t *testing.T) {
	ctx := context.Background()

	t.Run("second holder is refused until release", func(t *testing.T) {
		l := NewMemoryLocker()
		unlock, err := l.Lock(ctx, "k", time.Minute)
		require.NoError(t, err)

		_, err = l.Lock(ctx, "k", time.Minute)
		require.ErrorIs(t, err, ErrLockHeld)

		_, err = l.Lock(ctx, "other", time.Minute)
		require.NoError(t, err)

		require.NoError(t, unlock(ctx))
		_, err = l.Lock(ctx, "k", time.Minute)
		require.NoError(t, err)
	})

	t.Run("expired lease can be taken and stale unlock keeps the new holder", func(t *testing.T) {
		now := ts(t, "2024-01-10 10:00")
		l := NewMemoryLocker()
		l.clock = func() time.Time { return now }

		stale, err := l.Lock(ctx, "k", 10*time.Second)
		require.NoError(t, err)

		now = now.Add(11 * time.Second)
		_, err = l.Lock(ctx, "k", 10*time.Second)
		require.NoError(t, err)

		require.NoError(t, stale(ctx))
		_, err = l.Lock(ctx, "k", 10*time.Second)
		require.ErrorIs(t, err, ErrLockHeld)
	})
}
