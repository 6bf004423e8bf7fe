// Package queues implements a directory queue with the on-disk layout of dirq's QueueSimple,
// so entries written by the APEL producer can be consumed here.
//
// Layout:
//
//	<root>/<8 hex: unix time rounded down to granularity>/<14 hex: sec, usec, random digit>
//	<element>.tmp   being written
//	<element>.lck   hard link marking the element as locked
package queues

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

const (
	tempSuffix   = ".tmp"
	lockedSuffix = ".lck"

	DefaultGranularity = 60 * time.Second
	DefaultMaxTempAge  = 300 * time.Second
	DefaultMaxLockAge  = 600 * time.Second
)

var (
	ErrInvalidName = errors.New("invalid queue entry name")

	dirNamePattern     = regexp.MustCompile(`^[0-9a-f]{8}$`)
	elementNamePattern = regexp.MustCompile(`^[0-9a-f]{14}$`)
)

// Queue is a crash-safe FIFO of opaque payloads. An entry must be locked before it is read or
// removed; a failed Lock means another consumer owns the entry.
//
//go:generate mockgen -source=directory_queue.go -destination=./mocks/directory_queue_mock.go -package=mocks
type Queue interface {
	// Names returns every entry name in queue order.
	Names(ctx context.Context) ([]string, error)
	// Lock reports whether the entry was locked by this call. Contention and a vanished entry
	// both return false without error.
	Lock(ctx context.Context, name string) (bool, error)
	// Unlock releases a lock. Unlocking an entry that is not locked is a no-op.
	Unlock(ctx context.Context, name string) error
	Get(ctx context.Context, name string) ([]byte, error)
	// Remove deletes a locked entry and its lock.
	Remove(ctx context.Context, name string) error
	Add(ctx context.Context, data []byte) (string, error)
	// Purge drops empty intermediate directories and stale temporary and lock files.
	Purge(ctx context.Context, maxTempAge, maxLockAge time.Duration) error
}

type directoryQueue struct {
	root        string
	granularity time.Duration
	now         func() time.Time
}

func NewDirectoryQueue(root string) (Queue, error) {
	if root == "" {
		return nil, errors.New("queue directory cannot be empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create queue directory: %w", err)
	}
	return &directoryQueue{root: root, granularity: DefaultGranularity, now: time.Now}, nil
}

func (q *directoryQueue) Names(ctx context.Context) ([]string, error) {
	dirs, err := q.intermediateDirs()
	if err != nil {
		return nil, err
	}

	var names []string
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entries, err := os.ReadDir(filepath.Join(q.root, dir))
		if err != nil {
			// the directory may have been purged by another consumer
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to list queue directory %s: %w", dir, err)
		}
		for _, entry := range entries {
			if elementNamePattern.MatchString(entry.Name()) {
				names = append(names, dir+"/"+entry.Name())
			}
		}
	}
	return names, nil
}

func (q *directoryQueue) Lock(ctx context.Context, name string) (bool, error) {
	path, err := q.elementPath(name)
	if err != nil {
		return false, err
	}

	if err := os.Link(path, path+lockedSuffix); err != nil {
		if errors.Is(err, os.ErrExist) || errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to lock %s: %w", name, err)
	}

	// refresh the mtime so Purge sees a fresh lock
	now := q.now()
	if err := os.Chtimes(path, now, now); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			_ = os.Remove(path + lockedSuffix)
			return false, nil
		}
		return false, fmt.Errorf("failed to touch %s: %w", name, err)
	}
	return true, nil
}

func (q *directoryQueue) Unlock(ctx context.Context, name string) error {
	path, err := q.elementPath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path + lockedSuffix); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to unlock %s: %w", name, err)
	}
	return nil
}

func (q *directoryQueue) Get(ctx context.Context, name string) ([]byte, error) {
	path, err := q.elementPath(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path + lockedSuffix)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func (q *directoryQueue) Remove(ctx context.Context, name string) error {
	path, err := q.elementPath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	if err := os.Remove(path + lockedSuffix); err != nil {
		return fmt.Errorf("failed to remove lock of %s: %w", name, err)
	}
	return nil
}

func (q *directoryQueue) Add(ctx context.Context, data []byte) (string, error) {
	now := q.now()
	dir := fmt.Sprintf("%08x", now.Unix()-now.Unix()%int64(q.granularity/time.Second))
	dirPath := filepath.Join(q.root, dir)
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create queue directory %s: %w", dir, err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		element := newElementName(q.now())
		path := filepath.Join(dirPath, element)
		if err := writeNew(path+tempSuffix, data); err != nil {
			if errors.Is(err, os.ErrExist) {
				continue
			}
			return "", err
		}

		err := os.Link(path+tempSuffix, path)
		_ = os.Remove(path + tempSuffix)
		if err != nil {
			if errors.Is(err, os.ErrExist) {
				continue
			}
			return "", fmt.Errorf("failed to publish %s/%s: %w", dir, element, err)
		}
		return dir + "/" + element, nil
	}
}

func (q *directoryQueue) Purge(ctx context.Context, maxTempAge, maxLockAge time.Duration) error {
	dirs, err := q.intermediateDirs()
	if err != nil {
		return err
	}

	now := q.now()
	for i, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return err
		}
		dirPath := filepath.Join(q.root, dir)
		entries, err := os.ReadDir(dirPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to list queue directory %s: %w", dir, err)
		}

		// the newest directory may be receiving new elements
		if len(entries) == 0 && i < len(dirs)-1 {
			if err := os.Remove(dirPath); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to remove empty directory %s: %w", dir, err)
			}
			continue
		}

		for _, entry := range entries {
			var maxAge time.Duration
			switch {
			case strings.HasSuffix(entry.Name(), tempSuffix):
				maxAge = maxTempAge
			case strings.HasSuffix(entry.Name(), lockedSuffix):
				maxAge = maxLockAge
			default:
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			if now.Sub(info.ModTime()) > maxAge {
				if err := os.Remove(filepath.Join(dirPath, entry.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("failed to remove stale %s/%s: %w", dir, entry.Name(), err)
				}
			}
		}
	}
	return nil
}

func (q *directoryQueue) intermediateDirs() ([]string, error) {
	entries, err := os.ReadDir(q.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list queue: %w", err)
	}
	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() && dirNamePattern.MatchString(entry.Name()) {
			dirs = append(dirs, entry.Name())
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

func (q *directoryQueue) elementPath(name string) (string, error) {
	dir, element, ok := strings.Cut(name, "/")
	if !ok || !dirNamePattern.MatchString(dir) || !elementNamePattern.MatchString(element) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(q.root, dir, element), nil
}

func newElementName(t time.Time) string {
	return fmt.Sprintf("%08x%05x%01x", t.Unix(), t.Nanosecond()/1000, rand.Intn(16))
}

func writeNew(path string, data []byte) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return err
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}
