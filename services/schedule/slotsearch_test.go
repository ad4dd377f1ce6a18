package schedule

import (
	"context"
	"testing"
	"time"

	"skischool/models"

	"github.com/stretchr/testify/require"
)

func TestFindSlot(t *testing.T) {
	day := ts(t, "2024-01-10 00:00")

	t.Run("first window already free", func(t *testing.T) {
		conflicts := []Interval{owned(t, "2024-01-10 10:00", "2024-01-10 11:00", models.KindPrivate, "pb1")}
		slot, ok := FindSlot(conflicts, day, 9*time.Hour, 12*time.Hour, time.Hour)
		require.True(t, ok)
		require.Equal(t, ts(t, "2024-01-10 09:00"), slot.Start())
		require.Equal(t, ts(t, "2024-01-10 10:00"), slot.End())
	})

	t.Run("conflict longer than the lesson blocks the search", func(t *testing.T) {
		conflicts := []Interval{owned(t, "2024-01-10 09:00", "2024-01-10 11:30", models.KindPrivate, "pb1")}
		require.False(t, HasValidSlot(conflicts, day, 9*time.Hour, 12*time.Hour, time.Hour))
	})

	t.Run("slides minute by minute past a conflict", func(t *testing.T) {
		conflicts := []Interval{owned(t, "2024-01-10 09:00", "2024-01-10 09:45", models.KindPrivate, "pb1")}
		slot, ok := FindSlot(conflicts, day, 9*time.Hour, 12*time.Hour, time.Hour)
		require.True(t, ok)
		require.Equal(t, ts(t, "2024-01-10 09:45"), slot.Start())
	})

	t.Run("lesson ending exactly at hour max fits", func(t *testing.T) {
		conflicts := []Interval{owned(t, "2024-01-10 09:00", "2024-01-10 10:00", models.KindPrivate, "pb1")}
		slot, ok := FindSlot(conflicts, day, 9*time.Hour, 11*time.Hour, time.Hour)
		require.True(t, ok)
		require.Equal(t, ts(t, "2024-01-10 11:00"), slot.End())
	})

	t.Run("window shorter than the lesson", func(t *testing.T) {
		require.False(t, HasValidSlot(nil, day, 9*time.Hour, 9*time.Hour+30*time.Minute, time.Hour))
	})

	t.Run("zero duration", func(t *testing.T) {
		require.False(t, HasValidSlot(nil, day, 9*time.Hour, 12*time.Hour, 0))
	})
}

func TestHasValidSlot_Monotonic(t *testing.T) {
	day := ts(t, "2024-01-10 00:00")
	conflicts := []Interval{
		owned(t, "2024-01-10 09:00", "2024-01-10 10:00", models.KindPrivate, "a"),
		owned(t, "2024-01-10 10:30", "2024-01-10 11:15", models.KindCollective, "b"),
		owned(t, "2024-01-10 12:00", "2024-01-10 12:45", models.KindNWD, "c"),
	}
	durations := []time.Duration{30 * time.Minute, 45 * time.Minute, time.Hour}

	for _, d := range durations {
		for lo := 8 * time.Hour; lo <= 12*time.Hour; lo += 15 * time.Minute {
			for hi := lo + d; hi <= 14*time.Hour; hi += 15 * time.Minute {
				if !HasValidSlot(conflicts, day, lo, hi, d) {
					continue
				}
				for k := time.Duration(0); k <= time.Hour; k += 30 * time.Minute {
					require.True(t, HasValidSlot(conflicts, day, lo-k, hi+k, d), "d=%s lo=%s hi=%s k=%s", d, lo, hi, k)
				}
			}
		}
	}
}

func TestCalculator_FindFlexibleSlot(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{
		privates: []models.PrivateBooking{
			{ID: "pb1", MonitorID: "m1", Date: "2024-01-10", StartTime: "09:00", Duration: "01:00:00"},
			// Outside the hour window, longer than the lesson: ignored.
			{ID: "pb2", MonitorID: "m1", Date: "2024-01-10", StartTime: "14:00", Duration: "03:00:00"},
		},
	}
	calc := newCalculator(repo)
	day := ts(t, "2024-01-10 00:00")

	slot, ok, err := calc.FindFlexibleSlot(ctx, monitor("m1"), nil, day, 9*time.Hour, 12*time.Hour, time.Hour, nil, "")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, ts(t, "2024-01-10 10:00"), slot.Start())

	exclude := &models.CommitmentRef{Kind: models.KindPrivate, OwnerID: "pb1"}
	slot, ok, err = calc.FindFlexibleSlot(ctx, monitor("m1"), nil, day, 9*time.Hour, 12*time.Hour, time.Hour, exclude, "")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, ts(t, "2024-01-10 09:00"), slot.Start())

	_, ok, err = calc.FindFlexibleSlot(ctx, monitor("m1"), nil, day, 9*time.Hour, 10*time.Hour+30*time.Minute, time.Hour, nil, "")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCalculator_FindFlexibleSlotSiblingSubgroup(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{
		collectives: []models.CollectiveSession{
			{ID: "s1", CourseID: "c1", CourseGroupID: "g1", SubgroupID: "sg1", Date: "2024-01-10", StartTime: "14:00", EndTime: "15:00", ClientIDs: []string{"cl1"}},
		},
	}
	calc := newCalculator(repo)
	day := ts(t, "2024-01-10 00:00")

	t.Run("seat in a sibling subgroup leaves no slot", func(t *testing.T) {
		_, ok, err := calc.FindFlexibleSlot(ctx, client("cl1"), nil, day, 9*time.Hour, 12*time.Hour, time.Hour, nil, "g1")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("moving within the same subgroup is allowed", func(t *testing.T) {
		exclude := &models.CommitmentRef{Kind: models.KindCollective, OwnerID: "sg1"}
		slot, ok, err := calc.FindFlexibleSlot(ctx, client("cl1"), nil, day, 9*time.Hour, 12*time.Hour, time.Hour, exclude, "g1")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, ts(t, "2024-01-10 09:00"), slot.Start())
	})

	t.Run("no course group means a plain search", func(t *testing.T) {
		slot, ok, err := calc.FindFlexibleSlot(ctx, client("cl1"), nil, day, 9*time.Hour, 12*time.Hour, time.Hour, nil, "")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, ts(t, "2024-01-10 09:00"), slot.Start())
	})
}
