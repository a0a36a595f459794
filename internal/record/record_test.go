package record

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	r, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if r != nil {
		t.Errorf("Load of missing file = %+v, want nil", r)
	}
}

func TestSaveLoad(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "parampl_job_q_1.toml")

	r := New("q", 1, "ipopt", "spawn")
	r.WorkerPID = 4242
	r.MarkStarted(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	r.MarkFinished(time.Date(2025, 3, 1, 10, 5, 0, 0, time.UTC), 0, nil)

	if err := Save(path, r); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(r, got, cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) })); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after Save")
	}
}

func TestNew_AssignsRunID(t *testing.T) {
	t.Parallel()

	a := New("q", 1, "s", "spawn")
	b := New("q", 1, "s", "spawn")
	if _, err := uuid.Parse(a.RunID); err != nil {
		t.Fatalf("RunID %q is not a uuid: %v", a.RunID, err)
	}
	if a.RunID == b.RunID {
		t.Error("two records share a run id")
	}
	if a.Version != Version {
		t.Errorf("Version = %d, want %d", a.Version, Version)
	}
}

func TestSucceeded(t *testing.T) {
	t.Parallel()
	now := time.Now()

	ok := New("q", 1, "s", "spawn")
	ok.MarkFinished(now, 0, nil)

	failed := New("q", 1, "s", "spawn")
	failed.MarkFinished(now, 2, nil)

	missing := New("q", 1, "s", "spawn")
	missing.MarkFinished(now, 127, errors.New("executable file not found"))

	tests := []struct {
		name string
		r    *Record
		want bool
	}{
		{"nil", nil, false},
		{"unfinished", New("q", 1, "s", "spawn"), false},
		{"exit 0", ok, true},
		{"exit 2", failed, false},
		{"not started", missing, false},
	}
	for _, tt := range tests {
		if got := tt.r.Succeeded(); got != tt.want {
			t.Errorf("%s: Succeeded() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSaveLoad_TimesAreTOMLDatetimes(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "parampl_job_q_2.toml")

	r := New("q", 2, "ipopt", "screen")
	if err := Save(path, r); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load unstarted record: %v", err)
	}
	if got.Started() || !got.FinishedAt.IsZero() {
		t.Errorf("unstarted record reads back as started: %+v", got)
	}

	started := time.Date(2026, 10, 16, 22, 18, 10, 4733816, time.UTC)
	got.MarkStarted(started)
	if err := Save(path, got); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "started_at = '") || strings.Contains(string(data), `started_at = "`) {
		t.Errorf("started_at written as a string:\n%s", data)
	}

	got, err = Load(path)
	if err != nil {
		t.Fatalf("Load started record: %v", err)
	}
	if !got.Started() || !got.StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, started)
	}
}
