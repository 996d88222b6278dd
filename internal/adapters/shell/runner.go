// Package shell provides the command runner and the shell-backed session.
package shell

import (
	"context"
	"io"
	"os/exec"
	"slices"
	"strings"

	"go.trai.ch/envsync/internal/core/domain"
	"go.trai.ch/envsync/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner executes external commands inside a given directory, streaming
// output to the logger and raising on non-zero exit.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes argv with dir as the working directory. An empty dir runs
// in the current directory. A non-zero exit not listed in the run options
// returns ErrSubprocessFailed carrying the exit code.
func (r *Runner) Run(ctx context.Context, dir string, argv []string, opts ...ports.RunOption) error {
	_, err := r.run(ctx, dir, argv, false, opts...)
	return err
}

// Output executes argv and returns its captured stdout.
func (r *Runner) Output(ctx context.Context, dir string, argv []string, opts ...ports.RunOption) (string, error) {
	return r.run(ctx, dir, argv, true, opts...)
}

func (r *Runner) run(ctx context.Context, dir string, argv []string, capture bool, opts ...ports.RunOption) (string, error) {
	if len(argv) == 0 {
		return "", zerr.Wrap(domain.ErrInvalidArgument, "empty command")
	}

	var cfg ports.RunConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // Caller controls the command
	cmd.Dir = dir
	if len(cfg.Env) > 0 {
		cmd.Env = cfg.Env
	}

	var stream io.Writer = &logWriter{logger: r.logger}
	if vertex, ok := ports.VertexFromContext(ctx); ok {
		stream = io.MultiWriter(stream, vertex.Stdout())
	}

	var stdout strings.Builder
	if capture {
		cmd.Stdout = &stdout
	} else if !cfg.Silent {
		cmd.Stdout = stream
	}
	if !cfg.Silent {
		cmd.Stderr = stream
	}

	if !cfg.Silent {
		r.logger.Info("run: " + strings.Join(argv, " "))
	}

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
			if slices.Contains(cfg.OKCodes, exitCode) {
				return stdout.String(), nil
			}
		}

		failed := zerr.With(zerr.Wrap(domain.ErrSubprocessFailed, "command failed"), "command", argv[0])
		failed = zerr.With(failed, "exit_code", exitCode)
		if dir != "" {
			failed = zerr.With(failed, "dir", dir)
		}
		return "", failed
	}

	return stdout.String(), nil
}

type logWriter struct {
	logger ports.Logger
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	for _, line := range strings.Split(strings.TrimSuffix(string(p), "\n"), "\n") {
		w.logger.Info(line)
	}
	return len(p), nil
}
