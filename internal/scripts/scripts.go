// Package scripts generates the AMPL helper scripts that drive parampl from
// inside an AMPL session.
//
// paramplsub writes the problem in binary .nl form and submits it;
// paramplret retrieves the oldest job and, when that succeeds, loads the
// solution and removes the result file.
package scripts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/papapumpkin/parampl/internal/config"
	"github.com/papapumpkin/parampl/internal/handoff"
)

// Script file names, as AMPL models reference them with include.
const (
	SubFile = "paramplsub"
	RetFile = "paramplret"
)

// ErrNoCommand indicates an empty parampl invocation was requested.
var ErrNoCommand = errors.New("empty parampl command")

// Sub renders paramplsub for the given parampl invocation.
func Sub(command string) string {
	return fmt.Sprintf("write (\"b%s_\" & $%s);\nshell '%s submit';",
		handoff.ProblemPrefix, config.QueueIDEnv, shellWord(command))
}

// Ret renders paramplret for the given parampl invocation.
func Ret(command string) string {
	result := fmt.Sprintf("\"%s_\" & $%s & \"%s\"", handoff.ProblemPrefix, config.QueueIDEnv, handoff.ExtSolution)
	var b strings.Builder
	fmt.Fprintf(&b, "shell '%s retrieve';\n", shellWord(command))
	b.WriteString("if shell_exitcode == 0 then {\n")
	fmt.Fprintf(&b, "    solution (%s);\n", result)
	fmt.Fprintf(&b, "    remove (%s);\n", result)
	b.WriteString("}")
	return b.String()
}

// Install writes both scripts into dir, replacing existing copies, and
// returns the paths written.
func Install(dir, command string) ([]string, error) {
	if command == "" {
		return nil, ErrNoCommand
	}
	files := []struct {
		name, body string
	}{
		{SubFile, Sub(command)},
		{RetFile, Ret(command)},
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, []byte(f.body), 0o644); err != nil {
			return paths, fmt.Errorf("writing %s: %w", f.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// shellWord makes command safe inside an AMPL single-quoted shell string.
// AMPL escapes a quote by doubling it; a path with spaces is double-quoted
// for the shell.
func shellWord(command string) string {
	if strings.ContainsAny(command, " \t") {
		command = `"` + command + `"`
	}
	return strings.ReplaceAll(command, "'", "''")
}
