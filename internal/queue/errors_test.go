package queue

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"with job", newError(KindTimeout, OpRetrieve, "q1", 3, errors.New("late")), "retrieve q1/3: late"},
		{"with queue", newError(KindMisconfiguration, OpSubmit, "q1", 0, ErrNoSolver), "submit q1: no solver name selected"},
		{"bare", newError(KindMisconfiguration, OpSubmit, "", 0, ErrNoQueueID), "submit: queue identifier not set"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("cmd: %w", newError(KindCorruptState, OpRetrieve, "q", 0, errors.New("bad")))
	if got := KindOf(wrapped); got != KindCorruptState {
		t.Errorf("KindOf(wrapped) = %q, want %q", got, KindCorruptState)
	}
	if got := KindOf(errors.New("plain")); got != KindInternal {
		t.Errorf("KindOf(plain) = %q, want %q", got, KindInternal)
	}
}

func TestHint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"no solver", newError(KindMisconfiguration, OpSubmit, "q", 0, ErrNoSolver), `To choose: option parampl_options "solver=xxx";`},
		{"no queue", newError(KindMisconfiguration, OpSubmit, "", 0, ErrNoQueueID), `To choose: option parampl_queue_id "name";`},
		{"no ledger", newError(KindMissingInput, OpRetrieve, "q", 0, ErrNoLedger), "Did you use paramplsub?"},
		{"corrupt", newError(KindCorruptState, OpRetrieve, "q", 0, errors.New("x")), "Did you use paramplsub?"},
		{"timeout", newError(KindTimeout, OpRetrieve, "q", 1, errors.New("x")), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Hint(tt.err); got != tt.want {
				t.Errorf("Hint = %q, want %q", got, tt.want)
			}
		})
	}
}
