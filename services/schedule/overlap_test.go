package schedule

import (
	"testing"

	"skischool/models"

	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	existing := owned(t, "2024-01-10 10:00", "2024-01-10 11:00", models.KindPrivate, "pb1")

	tests := []struct {
		name      string
		candidate Interval
		want      bool
	}{
		{"touching after", window(t, "2024-01-10 11:00", "2024-01-10 12:00"), false},
		{"touching before", window(t, "2024-01-10 09:00", "2024-01-10 10:00"), false},
		{"one second into the end", window(t, "2024-01-10 10:59:59", "2024-01-10 11:00:01"), true},
		{"one second into the start", window(t, "2024-01-10 09:00", "2024-01-10 10:00:01"), true},
		{"contained", window(t, "2024-01-10 10:15", "2024-01-10 10:45"), true},
		{"containing", window(t, "2024-01-10 09:00", "2024-01-10 12:00"), true},
		{"identical", window(t, "2024-01-10 10:00", "2024-01-10 11:00"), true},
		{"disjoint", window(t, "2024-01-10 13:00", "2024-01-10 14:00"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Overlaps(tt.candidate, existing))
		})
	}
}

func TestOverlaps_Symmetry(t *testing.T) {
	ivs := []Interval{
		owned(t, "2024-01-10 10:00", "2024-01-10 11:00", models.KindPrivate, "a"),
		owned(t, "2024-01-10 11:00", "2024-01-10 12:00", models.KindPrivate, "b"),
		owned(t, "2024-01-10 10:59:59", "2024-01-10 11:00:01", models.KindCollective, "c"),
		owned(t, "2024-01-10 09:00", "2024-01-10 17:00", models.KindNWD, "d"),
		owned(t, "2024-01-10 10:30", "2024-01-10 10:45", models.KindPrivate, "e"),
		owned(t, "2024-01-11 10:00", "2024-01-11 11:00", models.KindPrivate, "f"),
	}
	for _, a := range ivs {
		for _, b := range ivs {
			if a.OwnerID() == b.OwnerID() {
				continue
			}
			require.Equal(t, Overlaps(a, b), Overlaps(b, a), "%s vs %s", a.OwnerID(), b.OwnerID())
		}
	}
}

func TestOverlaps_SelfExclusion(t *testing.T) {
	existing := owned(t, "2024-01-10 10:00", "2024-01-10 11:00", models.KindCollective, "sg1")

	t.Run("same kind and owner is skipped", func(t *testing.T) {
		candidate := window(t, "2024-01-10 10:00", "2024-01-10 11:00").Owned(existing.Ref())
		require.False(t, Overlaps(candidate, existing))
	})

	t.Run("same owner id of another kind still conflicts", func(t *testing.T) {
		candidate := owned(t, "2024-01-10 10:00", "2024-01-10 11:00", models.KindPrivate, "sg1")
		require.True(t, Overlaps(candidate, existing))
	})

	t.Run("untagged windows are never self", func(t *testing.T) {
		a := window(t, "2024-01-10 10:00", "2024-01-10 11:00")
		b := window(t, "2024-01-10 10:00", "2024-01-10 11:00")
		require.True(t, Overlaps(a, b))
	})
}

func TestOverlaps_ShortExistingNeverOverlaps(t *testing.T) {
	existing := owned(t, "2024-01-10 10:00:00", "2024-01-10 10:00:01", models.KindPrivate, "tiny")
	require.False(t, Overlaps(window(t, "2024-01-10 09:00", "2024-01-10 11:00"), existing))
}

func TestFirstOverlap(t *testing.T) {
	existing := []Interval{
		owned(t, "2024-01-10 08:00", "2024-01-10 09:00", models.KindPrivate, "early"),
		owned(t, "2024-01-10 09:30", "2024-01-10 10:30", models.KindCollective, "mid"),
		owned(t, "2024-01-10 10:00", "2024-01-10 12:00", models.KindNWD, "late"),
	}

	hit, ok := FirstOverlap(window(t, "2024-01-10 09:00", "2024-01-10 11:00"), existing)
	require.True(t, ok)
	require.Equal(t, "mid", hit.OwnerID())

	_, ok = FirstOverlap(window(t, "2024-01-10 12:00", "2024-01-10 13:00"), existing)
	require.False(t, ok)
}

func TestNewInterval_RejectsInverted(t *testing.T) {
	_, err := NewInterval(ts(t, "2024-01-10 11:00"), ts(t, "2024-01-10 10:00"), models.KindPrivate, "x")
	require.ErrorIs(t, err, ErrInvalidInterval)

	_, err = Window(ts(t, "2024-01-10 10:00"), ts(t, "2024-01-10 10:00"))
	require.ErrorIs(t, err, ErrInvalidInterval)
}

func TestSpan(t *testing.T) {
	span := Span(
		window(t, "2024-01-10 10:00", "2024-01-10 11:00"),
		window(t, "2024-01-12 15:00", "2024-01-12 16:00"),
	)
	require.Equal(t, ts(t, "2024-01-10 00:00"), span.Start)
	require.Equal(t, ts(t, "2024-01-13 00:00"), span.End)
	require.Equal(t, "2024-01-10", span.StartDate())
	require.Equal(t, "2024-01-12", span.EndDate())

	midnight := Span(window(t, "2024-01-10 22:00", "2024-01-11 00:00"))
	require.Equal(t, "2024-01-10", midnight.EndDate())
}
