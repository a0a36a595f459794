// Package ledger persists the outstanding job numbers of one queue as a
// plain text file, one number per line, oldest first.
//
// The first line is always the next job to be retrieved. Lines are kept
// verbatim so that popping the oldest entry rewrites the rest unchanged.
package ledger

import (
	"bytes"
	"errors"
	"strconv"
)

// ErrCorrupt indicates the first ledger line carries no job number.
var ErrCorrupt = errors.New("invalid ledger: first line has no job number")

// Ledger is the parsed content of a ledger file.
type Ledger struct {
	lines [][]byte // each line including its terminator, if any
}

// Parse splits data into ledger lines. Parsing never fails; malformed
// content is reported by Oldest.
func Parse(data []byte) *Ledger {
	l := &Ledger{}
	for len(data) > 0 {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			l.lines = append(l.lines, data)
			break
		}
		l.lines = append(l.lines, data[:i+1])
		data = data[i+1:]
	}
	return l
}

// Bytes serializes the ledger back to its file form.
func (l *Ledger) Bytes() []byte {
	return bytes.Join(l.lines, nil)
}

// Len returns the number of lines in the ledger.
func (l *Ledger) Len() int {
	return len(l.lines)
}

// Jobs returns the job number of every line that starts with one, in file
// order.
func (l *Ledger) Jobs() []int {
	var jobs []int
	for _, line := range l.lines {
		if n, ok := leadingInt(line); ok {
			jobs = append(jobs, n)
		}
	}
	return jobs
}

// Next returns the job number the next submission receives: one more than
// the largest number in the ledger, or 1 for an empty ledger.
func (l *Ledger) Next() int {
	highest := 0
	for _, n := range l.Jobs() {
		if n > highest {
			highest = n
		}
	}
	return highest + 1
}

// Oldest returns the job number on the first line.
func (l *Ledger) Oldest() (int, error) {
	if len(l.lines) == 0 {
		return 0, ErrCorrupt
	}
	n, ok := leadingInt(l.lines[0])
	if !ok {
		return 0, ErrCorrupt
	}
	return n, nil
}

// PopOldest removes the first line and returns its job number.
func (l *Ledger) PopOldest() (int, error) {
	n, err := l.Oldest()
	if err != nil {
		return 0, err
	}
	l.lines = l.lines[1:]
	return n, nil
}

// FormatEntry returns the file form of a single ledger entry.
func FormatEntry(job int) []byte {
	return []byte(strconv.Itoa(job) + "\n")
}

// leadingInt parses the run of ASCII digits at the start of line.
func leadingInt(line []byte) (int, bool) {
	end := 0
	for end < len(line) && line[end] >= '0' && line[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(string(line[:end]))
	if err != nil {
		return 0, false
	}
	return n, true
}
