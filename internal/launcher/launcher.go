package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
)

const (
	DefaultExecutable = "/home/cpg/Dev/livox_logger/bin/livox_logger"
	DefaultConfigDir  = "conf"
)

var (
	ErrNotFound = errors.New("logger executable not found")
	ErrExit     = errors.New("logger exited with error")
)

// Launcher runs the external logger with a per-interval config file.
type Launcher struct {
	executable string
	configDir  string
	stdout     io.Writer
	stderr     io.Writer
}

// New creates a Launcher whose child inherits this process's stdout and stderr.
func New(executable, configDir string) *Launcher {
	if executable == "" {
		executable = DefaultExecutable
	}
	if configDir == "" {
		configDir = DefaultConfigDir
	}
	return &Launcher{
		executable: executable,
		configDir:  configDir,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
}

// SetOutput redirects the child's stdout and stderr.
func (l *Launcher) SetOutput(stdout, stderr io.Writer) {
	l.stdout = stdout
	l.stderr = stderr
}

func (l *Launcher) Executable() string { return l.executable }

// ConfigPath returns the logger config file for an interval, e.g.
// conf/config-300.yaml. The file is not checked for existence.
func (l *Launcher) ConfigPath(seconds int) string {
	return filepath.Join(l.configDir, fmt.Sprintf("config-%d.yaml", seconds))
}

// Launch runs the logger with the config for seconds and waits for it to exit.
func (l *Launcher) Launch(ctx context.Context, seconds int) error {
	cmd := exec.CommandContext(ctx, l.executable, l.ConfigPath(seconds))
	cmd.Stdout = l.stdout
	cmd.Stderr = l.stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		return fmt.Errorf("%w: %s: exit status %d", ErrExit, l.executable, exitErr.ExitCode())
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrNotFound, l.executable)
	default:
		return fmt.Errorf("run %s: %w", l.executable, err)
	}
}
