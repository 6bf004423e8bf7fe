package processlocks

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquire_Exclusive(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "locks", "gratia.lock")

	first, err := Acquire(path)
	require.NoError(t, err)

	// flock locks belong to the open file description, so a second open conflicts
	// even inside the same process.
	_, err = Acquire(path)
	assert.ErrorIs(t, err, ErrLockHeld)

	require.NoError(t, first.Release())

	again, err := Acquire(path)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestRelease_Idempotent(t *testing.T) {
	t.Parallel()

	lock, err := Acquire(filepath.Join(t.TempDir(), "gratia.lock"))
	require.NoError(t, err)

	require.NoError(t, lock.Release())
	assert.NoError(t, lock.Release())

	var nilLock *Lock
	assert.NoError(t, nilLock.Release())
}
