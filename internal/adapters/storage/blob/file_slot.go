package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 25 * time.Millisecond

// FileSlot keeps the value in a file. Writes go to a temp file in the same
// directory and are renamed into place; a sibling ".lock" file serializes
// writers across processes. A flock is held per process, so writers within
// this process also take mu.
type FileSlot struct {
	path string
	mu   sync.Mutex
	lock *flock.Flock
}

// NewFileSlot creates the parent directory if needed and returns a slot for path.
func NewFileSlot(path string) (*FileSlot, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &FileSlot{path: path, lock: flock.New(path + ".lock")}, nil
}

// Name implements Slot.
func (f *FileSlot) Name() string { return "file" }

// Path returns the data file location.
func (f *FileSlot) Path() string { return f.path }

// Load implements Slot. A missing file is an empty slot.
func (f *FileSlot) Load(context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}

	return data, nil
}

// Update implements Slot.
func (f *FileSlot) Update(ctx context.Context, fn func([]byte) ([]byte, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	locked, err := f.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}

	if !locked {
		return errors.New("acquiring lock: not acquired")
	}

	defer func() { _ = f.lock.Unlock() }()

	current, err := f.Load(ctx)
	if err != nil {
		return err
	}

	next, err := fn(current)
	if err != nil {
		return err
	}

	return f.write(next)
}

func (f *FileSlot) write(data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replacing %s: %w", f.path, err)
	}

	return nil
}

// Check implements Slot: the directory must exist and be writable.
func (f *FileSlot) Check(context.Context) error {
	dir := filepath.Dir(f.path)

	probe, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return fmt.Errorf("data directory not writable: %w", err)
	}

	name := probe.Name()
	_ = probe.Close()

	return os.Remove(name)
}

// Close implements Slot.
func (f *FileSlot) Close() error {
	return f.lock.Close()
}
