// Package shell provides the external process runner adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"slices"
	"strings"

	"go.trai.ch/lunaria/internal/core/domain"
	"go.trai.ch/lunaria/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CommandRunner = (*Executor)(nil)

// Executor implements ports.CommandRunner using os/exec.
type Executor struct {
	logger ports.Logger
	env    map[string]string
}

// NewExecutor creates a new Executor.
// Every process inherits the system environment with env applied on top.
func NewExecutor(logger ports.Logger, env map[string]string) *Executor {
	return &Executor{
		logger: logger,
		env:    env,
	}
}

// Run executes name with args inside dir and returns its standard output.
// Standard error is captured for the returned error and streamed to the debug log.
func (e *Executor) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // arguments are built by adapters
	cmd.Dir = dir
	cmd.Env = resolveEnvironment(os.Environ(), e.env)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderrWriter{buf: &stderr, logger: e.logger, command: name}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
			return nil, &domain.ExitError{
				Command:  name,
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(stderr.String()),
			}
		}
		return nil, zerr.With(zerr.Wrap(err, "command did not complete"), "command", name)
	}

	return stdout.Bytes(), nil
}

// stderrWriter captures standard error and mirrors complete lines to the debug log.
type stderrWriter struct {
	buf     *bytes.Buffer
	logger  ports.Logger
	command string
	partial []byte
}

func (w *stderrWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	if w.logger == nil {
		return len(p), nil
	}

	w.partial = append(w.partial, p...)
	for {
		idx := bytes.IndexByte(w.partial, '\n')
		if idx < 0 {
			break
		}
		if line := strings.TrimRight(string(w.partial[:idx]), "\r"); line != "" {
			w.logger.Debug(line, "command", w.command, "stream", "stderr")
		}
		w.partial = w.partial[idx+1:]
	}
	return len(p), nil
}

// resolveEnvironment applies overrides on top of the system environment.
// The result is sorted so process environments are deterministic.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range overrides {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}
