//go:build windows

package launcher

import (
	"context"
	"fmt"
	"os/exec"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/papapumpkin/parampl/internal/config"
)

// detachedProcess is DETACHED_PROCESS from the Win32 process creation flags.
const detachedProcess = 0x00000008

type windowsLauncher struct {
	log *logrus.Entry
}

func newPlatform(opts Options) Launcher {
	return &windowsLauncher{log: opts.Log}
}

func sessionAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP | detachedProcess}
}

// SpawnDetached always spawns directly; screen sessions do not exist here.
func (w *windowsLauncher) SpawnDetached(_ context.Context, c Command, method config.Method) (int, error) {
	if method != config.MethodSpawn {
		w.log.Debugf("background method %q unavailable on windows, using %q", method, config.MethodSpawn)
	}

	cmd := exec.Command(c.Path, c.Args...)
	cmd.Dir = c.Dir
	cmd.SysProcAttr = sessionAttr()

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("spawning %s: %w", c.Path, err)
	}
	pid := cmd.Process.Pid
	w.log.WithField("pid", pid).Debugf("spawned %s %v", c.Path, c.Args)
	if err := cmd.Process.Release(); err != nil {
		return pid, fmt.Errorf("releasing worker %d: %w", pid, err)
	}
	return pid, nil
}

func (w *windowsLauncher) SpawnAndWait(ctx context.Context, c Command) (int, error) {
	w.log.Debugf("running %s %v", c.Path, c.Args)
	return runAndWait(ctx, c)
}
