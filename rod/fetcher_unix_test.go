//go:build integration && !windows

package rod_test

import (
	"syscall"
	"testing"
	"time"

	"github.com/fwojciec/docindex/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func processAlive(pid int) bool {
	// Signal 0 only checks that the process exists.
	return syscall.Kill(pid, syscall.Signal(0)) == nil
}

func TestFetcher_Close_KillsBrowser(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)

	pid := fetcher.LauncherPID()
	require.NotZero(t, pid)
	require.True(t, processAlive(pid))

	require.NoError(t, fetcher.Close())
	assert.Zero(t, fetcher.LauncherPID())

	assert.Eventually(t, func() bool { return !processAlive(pid) }, 2*time.Second, 50*time.Millisecond)
}

func TestBrowserManager_Recycle_KillsIdleBrowser(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(1))
	require.NoError(t, err)
	defer manager.Close()

	_, release, err := manager.Acquire()
	require.NoError(t, err)
	first := manager.LauncherPID()
	release()

	_, release, err = manager.Acquire()
	require.NoError(t, err)
	defer release()

	assert.NotEqual(t, first, manager.LauncherPID())
	assert.Eventually(t, func() bool { return !processAlive(first) }, 2*time.Second, 50*time.Millisecond)
}
