package ledger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNextJobNumber_AbsentLedger(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "parampl_jobfile_q")

	n, err := NextJobNumber(path)
	if err != nil {
		t.Fatalf("NextJobNumber: %v", err)
	}
	if n != 1 {
		t.Errorf("NextJobNumber = %d, want 1", n)
	}
}

func TestAppend_IssuesSequentialNumbers(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "parampl_jobfile_q")

	for want := 1; want <= 5; want++ {
		n, err := NextJobNumber(path)
		if err != nil {
			t.Fatalf("NextJobNumber: %v", err)
		}
		if n != want {
			t.Fatalf("NextJobNumber = %d, want %d", n, want)
		}
		if err := Append(path, n); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "1\n2\n3\n4\n5\n"; got != want {
		t.Errorf("ledger = %q, want %q", got, want)
	}
}

func TestAppend_RepairsMissingNewline(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "parampl_jobfile_q")
	if err := os.WriteFile(path, []byte("1"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Append(path, 2); err != nil {
		t.Fatalf("Append: %v", err)
	}
	data, _ := os.ReadFile(path)
	if got, want := string(data), "1\n2\n"; got != want {
		t.Errorf("ledger = %q, want %q", got, want)
	}
}

func TestOldest_MissingLedger(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "parampl_jobfile_q")

	if _, err := Oldest(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Oldest error = %v, want os.ErrNotExist", err)
	}
}

func TestOldest_Corrupt(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "parampl_jobfile_q")
	if err := os.WriteFile(path, []byte("garbage\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Oldest(path); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("Oldest error = %v, want ErrCorrupt", err)
	}
}

func TestRemoveOldest_FIFO(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "parampl_jobfile_q")
	for _, n := range []int{1, 2, 3} {
		if err := Append(path, n); err != nil {
			t.Fatal(err)
		}
	}

	for _, want := range []int{1, 2, 3} {
		got, err := Oldest(path)
		if err != nil {
			t.Fatalf("Oldest: %v", err)
		}
		if got != want {
			t.Fatalf("Oldest = %d, want %d", got, want)
		}
		if err := RemoveOldest(path); err != nil {
			t.Fatalf("RemoveOldest: %v", err)
		}
	}

	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ledger should be deleted once empty, stat err = %v", err)
	}
}

func TestRemoveOldest_NextNumberAfterPartialDrain(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "parampl_jobfile_q")
	for _, n := range []int{1, 2} {
		if err := Append(path, n); err != nil {
			t.Fatal(err)
		}
	}
	if err := RemoveOldest(path); err != nil {
		t.Fatal(err)
	}

	n, err := NextJobNumber(path)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("NextJobNumber = %d, want 3", n)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "2\n" {
		t.Errorf("ledger = %q, want %q", data, "2\n")
	}
}
