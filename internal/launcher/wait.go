//go:build unix || windows

package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// runAndWait runs cmd with the caller's stdio and reports its exit code.
func runAndWait(ctx context.Context, c Command) (int, error) {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return ExitNotStarted, fmt.Errorf("running %s: %w", c.Path, err)
}
