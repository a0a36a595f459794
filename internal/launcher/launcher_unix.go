//go:build unix

package launcher

import (
	"context"
	"fmt"
	"os/exec"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/papapumpkin/parampl/internal/config"
)

type posixLauncher struct {
	screenPath string
	log        *logrus.Entry
}

func newPlatform(opts Options) Launcher {
	return &posixLauncher{screenPath: opts.ScreenPath, log: opts.Log}
}

// sessionAttr places the worker in its own session so it survives the
// submitting shell and has no controlling terminal.
func sessionAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}

func (p *posixLauncher) SpawnDetached(ctx context.Context, c Command, method config.Method) (int, error) {
	switch method {
	case config.MethodScreen:
		return p.spawnScreen(ctx, c)
	default:
		return p.spawnNoWait(c)
	}
}

// spawnNoWait starts c and releases it. exec.Command is used rather than
// CommandContext: the worker must outlive the submitting process.
func (p *posixLauncher) spawnNoWait(c Command) (int, error) {
	cmd := exec.Command(c.Path, c.Args...)
	cmd.Dir = c.Dir
	cmd.SysProcAttr = sessionAttr()

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("spawning %s: %w", c.Path, err)
	}
	pid := cmd.Process.Pid
	p.log.WithFields(logrus.Fields{"pid": pid, "method": config.MethodSpawn}).Debugf("spawned %s %v", c.Path, c.Args)
	if err := cmd.Process.Release(); err != nil {
		return pid, fmt.Errorf("releasing worker %d: %w", pid, err)
	}
	return pid, nil
}

// spawnScreen runs `screen -dm <cmd>`, which returns as soon as the session
// is detached.
func (p *posixLauncher) spawnScreen(ctx context.Context, c Command) (int, error) {
	args := append([]string{"-dm", c.Path}, c.Args...)
	cmd := exec.CommandContext(ctx, p.screenPath, args...)
	cmd.Dir = c.Dir

	if out, err := cmd.CombinedOutput(); err != nil {
		return 0, fmt.Errorf("starting screen session: %w\noutput: %s", err, out)
	}
	p.log.WithField("method", config.MethodScreen).Debugf("screen session started for %s %v", c.Path, c.Args)
	return 0, nil
}

func (p *posixLauncher) SpawnAndWait(ctx context.Context, c Command) (int, error) {
	p.log.Debugf("running %s %v", c.Path, c.Args)
	return runAndWait(ctx, c)
}
