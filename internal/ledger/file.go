package ledger

import (
	"errors"
	"fmt"
	"os"
)

// Read loads the ledger at path. A missing file yields an error wrapping
// os.ErrNotExist.
func Read(path string) (*Ledger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return Parse(data), nil
}

// NextJobNumber returns the job number for the next submission to the
// ledger at path. An absent ledger starts numbering at 1.
func NextJobNumber(path string) (int, error) {
	l, err := Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 1, nil
		}
		return 0, err
	}
	return l.Next(), nil
}

// Append records job as the newest outstanding entry, creating the ledger
// if needed.
func Append(path string, job int) error {
	if err := ensureTrailingNewline(path); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger %s: %w", path, err)
	}
	if _, err := f.Write(FormatEntry(job)); err != nil {
		f.Close()
		return fmt.Errorf("appending to ledger %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing ledger %s: %w", path, err)
	}
	return nil
}

// Oldest returns the job number that the next retrieval consumes.
func Oldest(path string) (int, error) {
	l, err := Read(path)
	if err != nil {
		return 0, err
	}
	n, err := l.Oldest()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

// RemoveOldest drops the first entry of the ledger at path. The remaining
// lines are rewritten verbatim; when none remain the ledger is deleted.
func RemoveOldest(path string) error {
	l, err := Read(path)
	if err != nil {
		return err
	}
	if _, err := l.PopOldest(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if l.Len() == 0 {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("removing ledger %s: %w", path, err)
		}
		return nil
	}
	return write(path, l.Bytes())
}

// write replaces the ledger atomically (write temp + rename).
func write(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing temp ledger: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming ledger: %w", err)
	}
	return nil
}

// ensureTrailingNewline keeps a hand-edited ledger without a final newline
// from fusing its last entry with the next appended one.
func ensureTrailingNewline(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading ledger %s: %w", path, err)
	}
	if len(data) == 0 || data[len(data)-1] == '\n' {
		return nil
	}
	return write(path, append(data, '\n'))
}
