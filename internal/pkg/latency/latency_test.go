package latency

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealSleep_Waits(t *testing.T) {
	start := time.Now()
	require.NoError(t, Real().Sleep(context.Background(), 20*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestRealSleep_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	err := Real().Sleep(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRealSleep_ZeroDelay(t *testing.T) {
	assert.NoError(t, Real().Sleep(context.Background(), 0))
}

func TestFake_RecordsDelaysWithoutWaiting(t *testing.T) {
	at := time.Date(2024, 9, 2, 12, 0, 0, 0, time.UTC)
	f := NewFake(at)

	require.NoError(t, f.Sleep(context.Background(), time.Hour))
	require.NoError(t, f.Sleep(context.Background(), 2*time.Hour))

	assert.Equal(t, []time.Duration{time.Hour, 2 * time.Hour}, f.Delays())
	assert.Equal(t, at, f.Now())

	f.Advance(time.Minute)
	assert.Equal(t, at.Add(time.Minute), f.Now())
}
