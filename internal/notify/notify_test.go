package notify

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNotify_CreatesEmptyMarker(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "parampl_job_q_1.not")

	if Done(path) {
		t.Fatal("Done before Notify")
	}
	if err := Notify(path); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat marker: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("marker size = %d, want 0", info.Size())
	}
	if !Done(path) {
		t.Error("Done = false after Notify")
	}
}

func TestWait_AlreadyDone(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "m.not")
	if err := Notify(path); err != nil {
		t.Fatal(err)
	}

	if err := Wait(context.Background(), path, DefaultPolicy()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
}

func TestWait_MarkerAppearsLater(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "m.not")

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = Notify(path)
	}()

	// An interval far longer than the test proves the watch wakes the loop;
	// MaxWait bounds the test if it does not.
	p := Policy{Interval: time.Second, MaxWait: 10 * time.Second}
	start := time.Now()
	if err := Wait(context.Background(), path, p); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Wait took %s", elapsed)
	}
}

func TestWait_MaxWait(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "never.not")

	err := Wait(context.Background(), path, Policy{Interval: 5 * time.Millisecond, MaxWait: 30 * time.Millisecond})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Wait error = %v, want ErrTimeout", err)
	}
}

func TestWait_Cancelled(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "never.not")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := Wait(ctx, path, DefaultPolicy())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Wait error = %v, want context.Canceled", err)
	}
}

func TestWait_MissingDirectoryFallsBackToPolling(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "not-yet", "m.not")

	err := Wait(context.Background(), path, Policy{Interval: 5 * time.Millisecond, MaxWait: 20 * time.Millisecond})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Wait error = %v, want ErrTimeout", err)
	}
}
