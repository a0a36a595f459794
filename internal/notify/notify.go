// Package notify implements the completion marker: the worker creates a
// zero-byte file once the solver exits, and the retrieving side waits for
// that file to appear.
package notify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultInterval is the pause between existence checks.
const DefaultInterval = 10 * time.Millisecond

// ErrTimeout indicates the marker did not appear within Policy.MaxWait.
var ErrTimeout = errors.New("timed out waiting for completion marker")

// Policy controls how Wait polls. A zero MaxWait waits forever.
type Policy struct {
	Interval time.Duration
	MaxWait  time.Duration
}

// DefaultPolicy checks every DefaultInterval with no upper bound.
func DefaultPolicy() Policy {
	return Policy{Interval: DefaultInterval}
}

// Notify creates the zero-byte marker at path.
func Notify(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating marker %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing marker %s: %w", path, err)
	}
	return nil
}

// Done reports whether the marker at path exists.
func Done(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Wait blocks until the marker at path exists. The marker is checked every
// p.Interval; a watch on its directory wakes the loop early when files are
// created there. If the watch cannot be set up Wait falls back to polling.
func Wait(ctx context.Context, path string, p Policy) error {
	if p.Interval <= 0 {
		p.Interval = DefaultInterval
	}
	if p.MaxWait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.MaxWait)
		defer cancel()
	}

	events, stop := watchDir(filepath.Dir(path))
	defer stop()

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		if Done(path) {
			return nil
		}
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) && p.MaxWait > 0 {
				return fmt.Errorf("%w after %s: %s", ErrTimeout, p.MaxWait, path)
			}
			return ctx.Err()
		case <-ticker.C:
		case <-events:
		}
	}
}

// watchDir returns a channel that receives on every create or rename event
// in dir. The channel is nil (blocks forever) when watching is unavailable.
func watchDir(dir string) (<-chan struct{}, func()) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, func() {}
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, func() {}
	}

	ch := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					select {
					case ch <- struct{}{}:
					default:
					}
				}
			case _, ok := <-fw.Errors:
				if !ok {
					return
				}
				// Ignore watch errors; the ticker still drives the loop.
			}
		}
	}()

	return ch, func() {
		fw.Close()
		<-done
	}
}
