//go:build unix

package capture

import (
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallShutdownHook_RemoveIsIdempotent(t *testing.T) {
	called := false
	remove := InstallShutdownHook(func() { called = true }, nil, discardLogger)
	remove()
	remove()
	assert.False(t, called)
}

func TestSession_ShutdownHookStopsRecording(t *testing.T) {
	got := make(chan os.Signal, 1)
	hs := newHarness(t, 30, 4, 4)
	s := NewSession(hs.target, hs.consumer, 30,
		WithScheduler(hs.sched),
		WithLogger(discardLogger),
		WithShutdownHook(func(sig os.Signal) { got <- sig }),
	)
	require.NoError(t, s.Start())

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))
	select {
	case sig := <-got:
		assert.Equal(t, syscall.SIGTERM, sig)
	case <-time.After(5 * time.Second):
		t.Fatal("shutdown hook did not run")
	}

	assert.Equal(t, StateStopped, s.State())
	s.Stop()
	hs.consumer.mu.Lock()
	defer hs.consumer.mu.Unlock()
	assert.Equal(t, 1, hs.consumer.closes)
}
