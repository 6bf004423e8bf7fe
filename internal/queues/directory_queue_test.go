package queues

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd_LayoutAndOrder(t *testing.T) {
	t.Parallel()

	queue, root := newTestQueue(t)
	ctx := context.Background()

	clock := time.Unix(1700000000, 123000)
	queue.now = func() time.Time { clock = clock.Add(time.Second); return clock }

	var added []string
	for _, payload := range []string{"a", "b", "c"} {
		name, err := queue.Add(ctx, []byte(payload))
		require.NoError(t, err)
		added = append(added, name)
	}

	for _, name := range added {
		dir, element, ok := strings.Cut(name, "/")
		require.True(t, ok)
		assert.Regexp(t, `^[0-9a-f]{8}$`, dir)
		assert.Regexp(t, `^[0-9a-f]{14}$`, element)
		assert.FileExists(t, filepath.Join(root, dir, element))
		assert.NoFileExists(t, filepath.Join(root, dir, element+tempSuffix))
	}
	// 1700000001 rounded down to the minute
	assert.True(t, strings.HasPrefix(added[0], "6553f0ec/"))

	names, err := queue.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, added, names)
}

func TestNames_SortedAcrossDirectories(t *testing.T) {
	t.Parallel()

	queue, root := newTestQueue(t)

	writeElement(t, root, "00000002", "00000002000001", "late")
	writeElement(t, root, "00000001", "00000001000002", "second")
	writeElement(t, root, "00000001", "00000001000001", "first")
	// foreign files are ignored
	writeElement(t, root, "00000001", "00000001000003"+tempSuffix, "tmp")
	writeElement(t, root, "not-a-dir", "00000001000001", "x")

	names, err := queue.Names(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"00000001/00000001000001",
		"00000001/00000001000002",
		"00000002/00000002000001",
	}, names)
}

func TestNames_EmptyQueue(t *testing.T) {
	t.Parallel()

	queue, _ := newTestQueue(t)

	names, err := queue.Names(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLockGetRemove(t *testing.T) {
	t.Parallel()

	queue, root := newTestQueue(t)
	ctx := context.Background()

	name, err := queue.Add(ctx, []byte("Site: UNL"))
	require.NoError(t, err)

	locked, err := queue.Lock(ctx, name)
	require.NoError(t, err)
	require.True(t, locked)
	assert.FileExists(t, filepath.Join(root, name+lockedSuffix))

	// a second consumer loses
	locked, err = queue.Lock(ctx, name)
	require.NoError(t, err)
	assert.False(t, locked)

	data, err := queue.Get(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, "Site: UNL", string(data))

	require.NoError(t, queue.Remove(ctx, name))
	assert.NoFileExists(t, filepath.Join(root, name))
	assert.NoFileExists(t, filepath.Join(root, name+lockedSuffix))

	// vanished entries cannot be locked
	locked, err = queue.Lock(ctx, name)
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestUnlock(t *testing.T) {
	t.Parallel()

	queue, _ := newTestQueue(t)
	ctx := context.Background()

	name, err := queue.Add(ctx, []byte("x"))
	require.NoError(t, err)

	locked, err := queue.Lock(ctx, name)
	require.NoError(t, err)
	require.True(t, locked)

	require.NoError(t, queue.Unlock(ctx, name))
	// not locked any more
	require.NoError(t, queue.Unlock(ctx, name))

	locked, err = queue.Lock(ctx, name)
	require.NoError(t, err)
	assert.True(t, locked)
}

func TestGet_RequiresLock(t *testing.T) {
	t.Parallel()

	queue, _ := newTestQueue(t)
	ctx := context.Background()

	name, err := queue.Add(ctx, []byte("x"))
	require.NoError(t, err)

	_, err = queue.Get(ctx, name)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInvalidName(t *testing.T) {
	t.Parallel()

	queue, _ := newTestQueue(t)
	ctx := context.Background()

	for _, name := range []string{"", "00000001", "../00000001000001", "00000001/../../etc", "0000000g/00000001000001"} {
		t.Run(name, func(t *testing.T) {
			_, err := queue.Lock(ctx, name)
			assert.ErrorIs(t, err, ErrInvalidName)
			_, err = queue.Get(ctx, name)
			assert.ErrorIs(t, err, ErrInvalidName)
			assert.ErrorIs(t, queue.Remove(ctx, name), ErrInvalidName)
			assert.ErrorIs(t, queue.Unlock(ctx, name), ErrInvalidName)
		})
	}
}

func TestPurge(t *testing.T) {
	t.Parallel()

	queue, root := newTestQueue(t)
	ctx := context.Background()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "00000001"), 0o755))
	writeElement(t, root, "00000002", "00000002000001", "kept")
	writeElement(t, root, "00000002", "00000002000001"+lockedSuffix, "stale lock")
	writeElement(t, root, "00000002", "00000002000002"+tempSuffix, "stale tmp")
	writeElement(t, root, "00000002", "00000002000003"+tempSuffix, "fresh tmp")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "00000003"), 0o755))

	now := time.Now()
	old := now.Add(-time.Hour)
	for _, name := range []string{"00000002000001" + lockedSuffix, "00000002000002" + tempSuffix} {
		require.NoError(t, os.Chtimes(filepath.Join(root, "00000002", name), old, old))
	}
	queue.now = func() time.Time { return now }

	require.NoError(t, queue.Purge(ctx, DefaultMaxTempAge, DefaultMaxLockAge))

	assert.NoDirExists(t, filepath.Join(root, "00000001"))
	// newest directory is kept even when empty
	assert.DirExists(t, filepath.Join(root, "00000003"))
	assert.FileExists(t, filepath.Join(root, "00000002", "00000002000001"))
	assert.NoFileExists(t, filepath.Join(root, "00000002", "00000002000001"+lockedSuffix))
	assert.NoFileExists(t, filepath.Join(root, "00000002", "00000002000002"+tempSuffix))
	assert.FileExists(t, filepath.Join(root, "00000002", "00000002000003"+tempSuffix))
}

func TestNewDirectoryQueue_EmptyRoot(t *testing.T) {
	t.Parallel()

	_, err := NewDirectoryQueue("")
	assert.Error(t, err)
}

func newTestQueue(t *testing.T) (*directoryQueue, string) {
	t.Helper()
	root := t.TempDir()
	queue, err := NewDirectoryQueue(root)
	require.NoError(t, err)
	return queue.(*directoryQueue), root
}

func writeElement(t *testing.T, root, dir, name, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, dir, name), []byte(data), 0o644))
}
