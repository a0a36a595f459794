//go:build !unix && !windows

package launcher

import (
	"context"

	"github.com/papapumpkin/parampl/internal/config"
)

type unsupportedLauncher struct{}

func newPlatform(Options) Launcher {
	return unsupportedLauncher{}
}

func (unsupportedLauncher) SpawnDetached(context.Context, Command, config.Method) (int, error) {
	return 0, ErrUnsupportedPlatform
}

func (unsupportedLauncher) SpawnAndWait(context.Context, Command) (int, error) {
	return ExitNotStarted, ErrUnsupportedPlatform
}
