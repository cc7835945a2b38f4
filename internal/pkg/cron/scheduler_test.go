package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextRun(t *testing.T) {
	// Tuesday 2025-06-10 08:00 UTC.
	now := time.Date(2025, time.June, 10, 8, 0, 0, 0, time.UTC)

	cases := []struct {
		name         string
		at           string
		weekdaysOnly bool
		want         time.Time
	}{
		{"later today", "08:25", false, time.Date(2025, time.June, 10, 8, 25, 0, 0, time.UTC)},
		{"already passed rolls to tomorrow", "02:00", false, time.Date(2025, time.June, 11, 2, 0, 0, 0, time.UTC)},
		{"exact minute rolls forward", "08:00", false, time.Date(2025, time.June, 11, 8, 0, 0, 0, time.UTC)},
	}

	for _, c := range cases {
		got := NextRun(now, c.at, c.weekdaysOnly)
		assert.Equal(t, c.want, got, c.name)
	}
}

func TestNextRunSkipsWeekend(t *testing.T) {
	// Friday 2025-06-13 09:00: an 08:15 weekday trigger next fires Monday.
	friday := time.Date(2025, time.June, 13, 9, 0, 0, 0, time.UTC)
	got := NextRun(friday, "08:15", true)
	assert.Equal(t, time.Date(2025, time.June, 16, 8, 15, 0, 0, time.UTC), got)

	// Saturday morning: a daily trigger still fires Saturday night.
	saturday := time.Date(2025, time.June, 14, 0, 30, 0, 0, time.UTC)
	got = NextRun(saturday, "01:00", false)
	assert.Equal(t, time.Date(2025, time.June, 14, 1, 0, 0, 0, time.UTC), got)
}

func TestAddJobRejectsBadTrigger(t *testing.T) {
	s := NewScheduler(time.UTC)
	err := s.AddJob("broken", "25:99", false, func(ctx context.Context) error { return nil })
	assert.Error(t, err)
}

func TestRunOnceInvokesEveryJob(t *testing.T) {
	s := NewScheduler(time.UTC)
	var ran []string
	require.NoError(t, s.AddJob("first", "02:00", true, func(ctx context.Context) error {
		ran = append(ran, "first")
		return nil
	}))
	require.NoError(t, s.AddJob("second", "01:00", false, func(ctx context.Context) error {
		ran = append(ran, "second")
		return nil
	}))

	s.RunOnce(context.Background())
	assert.Equal(t, []string{"first", "second"}, ran)
}
