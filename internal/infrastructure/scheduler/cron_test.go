package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCronScheduler_RejectsBadSpec(t *testing.T) {
	t.Parallel()

	_, err := NewCronScheduler("every morning", time.UTC)
	assert.Error(t, err)
}

func TestNext_UsesLocation(t *testing.T) {
	t.Parallel()

	seoul := time.FixedZone("KST", 9*60*60)
	s, err := NewCronScheduler("0 9 * * *", seoul)
	require.NoError(t, err)

	// 2024-02-10 01:00 UTC is 10:00 in Seoul, so the next run is tomorrow 09:00 KST.
	next := s.Next(time.Date(2024, time.February, 10, 1, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, time.February, 11, 0, 0, 0, 0, time.UTC), next.UTC())
}

func TestStartStop(t *testing.T) {
	t.Parallel()

	s, err := NewCronScheduler("@every 1h", time.UTC)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Start(ctx, func(time.Time) {}))
	require.NoError(t, s.Start(ctx, func(time.Time) {}))
	require.NoError(t, s.Stop(ctx))
	require.NoError(t, s.Stop(ctx))
}
