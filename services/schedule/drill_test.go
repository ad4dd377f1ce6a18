package schedule

import (
	"context"
	"testing"
	"time"

	"skischool/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type drilled struct {
	start, end string
	from, to   string
	fullDay    bool
}

func summarize(blocks []models.NwdBlock) []drilled {
	out := make([]drilled, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, drilled{start: b.StartDate, end: b.EndDate, from: b.StartTime, to: b.EndTime, fullDay: b.FullDay})
	}
	return out
}

func TestDrill_MultiDayFullDay(t *testing.T) {
	block := models.NwdBlock{
		ID: "n1", MonitorID: "m1", StartDate: "2024-02-01", EndDate: "2024-02-05", FullDay: true,
		Subtype: "holiday", Description: "Winter break", Color: "#ff0000", CreatedAt: time.Now(),
	}

	got, err := Drill(block, "2024-02-03", "10:00", "12:00", testHours)
	require.NoError(t, err)
	require.Equal(t, []drilled{
		{start: "2024-02-01", end: "2024-02-02", fullDay: true},
		{start: "2024-02-03", end: "2024-02-03", from: "09:00:00", to: "10:00:00"},
		{start: "2024-02-03", end: "2024-02-03", from: "12:00:00", to: "17:00:00"},
		{start: "2024-02-04", end: "2024-02-05", fullDay: true},
	}, summarize(got))

	for _, b := range got {
		require.Empty(t, b.ID)
		require.True(t, b.CreatedAt.IsZero())
		require.Equal(t, "m1", b.MonitorID)
		require.Equal(t, "holiday", b.Subtype)
		require.Equal(t, "Winter break", b.Description)
		require.Equal(t, "#ff0000", b.Color)
	}
}

func TestDrill_EdgeDays(t *testing.T) {
	block := models.NwdBlock{ID: "n1", StartDate: "2024-02-01", EndDate: "2024-02-03", FullDay: true}

	first, err := Drill(block, "2024-02-01", "09:00", "17:00", testHours)
	require.NoError(t, err)
	require.Equal(t, []drilled{{start: "2024-02-02", end: "2024-02-03", fullDay: true}}, summarize(first))

	last, err := Drill(block, "2024-02-03", "09:00", "17:00", testHours)
	require.NoError(t, err)
	require.Equal(t, []drilled{{start: "2024-02-01", end: "2024-02-02", fullDay: true}}, summarize(last))
}

func TestDrill_SingleDay(t *testing.T) {
	block := models.NwdBlock{ID: "n1", StartDate: "2024-02-03", EndDate: "2024-02-03", StartTime: "10:00:00", EndTime: "16:00:00", Subtype: "blocked"}

	tests := []struct {
		name     string
		gapStart string
		gapEnd   string
		want     []drilled
	}{
		{"gap covers the block", "09:00", "17:00", []drilled{}},
		{"gap equals the block", "10:00", "16:00", []drilled{}},
		{"gap at the start", "10:00", "12:00", []drilled{
			{start: "2024-02-03", end: "2024-02-03", from: "12:00:00", to: "16:00:00"},
		}},
		{"gap overhanging the start", "08:00", "12:00", []drilled{
			{start: "2024-02-03", end: "2024-02-03", from: "12:00:00", to: "16:00:00"},
		}},
		{"gap at the end", "14:00", "16:00", []drilled{
			{start: "2024-02-03", end: "2024-02-03", from: "10:00:00", to: "14:00:00"},
		}},
		{"gap inside", "12:00", "13:00", []drilled{
			{start: "2024-02-03", end: "2024-02-03", from: "10:00:00", to: "12:00:00"},
			{start: "2024-02-03", end: "2024-02-03", from: "13:00:00", to: "16:00:00"},
		}},
		{"gap outside the block", "16:00", "18:00", []drilled{
			{start: "2024-02-03", end: "2024-02-03", from: "10:00:00", to: "16:00:00"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Drill(block, "2024-02-03", tt.gapStart, tt.gapEnd, testHours)
			require.NoError(t, err)
			require.Equal(t, tt.want, summarize(got))
		})
	}
}

func TestDrill_Errors(t *testing.T) {
	block := models.NwdBlock{ID: "n1", StartDate: "2024-02-01", EndDate: "2024-02-05", FullDay: true}

	_, err := Drill(block, "2024-02-06", "10:00", "12:00", testHours)
	require.ErrorIs(t, err, ErrDateOutsideBlock)

	_, err = Drill(block, "2024-02-03", "12:00", "10:00", testHours)
	require.ErrorIs(t, err, ErrInvalidInterval)

	_, err = Drill(block, "2024-02-03", "10h", "12:00", testHours)
	var malformed *MalformedTimeError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, "gap_start", malformed.Field)
}

func TestDriller_DrillAndPersist(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{
		blocks: []models.NwdBlock{
			{ID: "n1", MonitorID: "m1", StartDate: "2024-02-01", EndDate: "2024-02-05", FullDay: true},
		},
	}
	d := &Driller{Repo: repo, Hours: testHours, Logger: zap.NewNop()}

	t.Run("uses the school hours when configured", func(t *testing.T) {
		school := &models.School{ID: "s1", OpeningTime: "08:00", ClosingTime: "18:00"}
		got, err := d.DrillAndPersist(ctx, "n1", "2024-02-03", "10:00", "12:00", school)
		require.NoError(t, err)
		require.Len(t, got, 4)
		require.Equal(t, "08:00:00", got[1].StartTime)
		require.Equal(t, "18:00:00", got[2].EndTime)
		require.Equal(t, got, repo.replaced["n1"])
	})

	t.Run("unknown block", func(t *testing.T) {
		_, err := d.DrillAndPersist(ctx, "missing", "2024-02-03", "10:00", "12:00", nil)
		require.Error(t, err)
	})
}
