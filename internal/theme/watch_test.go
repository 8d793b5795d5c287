package theme

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatchEmitsOnChange(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var dark atomic.Bool
	changes := Watch(ctx, 5*time.Millisecond, func() bool { return dark.Load() })

	dark.Store(true)
	select {
	case got := <-changes:
		require.True(t, got)
	case <-time.After(2 * time.Second):
		t.Fatalf("expected a change notification")
	}

	dark.Store(false)
	select {
	case got := <-changes:
		require.False(t, got)
	case <-time.After(2 * time.Second):
		t.Fatalf("expected a second change notification")
	}

	cancel()
	for range changes {
	}
}

func TestWatchDisabledClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	changes := Watch(ctx, 0, TerminalDetector(io.Discard))
	cancel()

	select {
	case _, ok := <-changes:
		require.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatalf("expected channel to close")
	}
}

func TestTerminalDetectorRequeriesEachPoll(t *testing.T) {
	var calls int
	detect := detectWith(func() *lipgloss.Renderer {
		calls++
		r := lipgloss.NewRenderer(io.Discard)
		r.SetHasDarkBackground(calls%2 == 1)
		return r
	})

	require.True(t, detect())
	require.False(t, detect())
	require.True(t, detect())
	require.Equal(t, 3, calls)
}
