package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRun_ExecutesImmediatelyAndStops(t *testing.T) {
	var passes atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		errCh <- Run(ctx, time.Hour, func(context.Context) { passes.Add(1) })
	}()

	require.Eventually(t, func() bool { return passes.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestRun_RepeatsAtInterval(t *testing.T) {
	var passes atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = Run(ctx, 50*time.Millisecond, func(context.Context) { passes.Add(1) })
	}()

	require.Eventually(t, func() bool { return passes.Load() >= 3 }, 3*time.Second, 10*time.Millisecond)
}

func TestSchedulePass_RejectsNonPositiveInterval(t *testing.T) {
	s, err := NewScheduler()
	require.NoError(t, err)
	defer func() { _ = s.Stop() }()

	_, err = s.SchedulePass(context.Background(), 0, func(context.Context) {})
	require.Error(t, err)
}

func TestSchedulePass_ReturnsJobID(t *testing.T) {
	s, err := NewScheduler()
	require.NoError(t, err)
	defer func() { _ = s.Stop() }()

	id, err := s.SchedulePass(context.Background(), time.Minute, func(context.Context) {})
	require.NoError(t, err)
	require.NotEmpty(t, id)
}
