package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

type InvocationRequest struct {
	DatabasePath   string
	OutputPath     string
	SchemaFilter   *string
	ExecutablePath *string
}

type InvocationResult struct {
	Executable string
	Args       []string
	ExitCode   int
	Elapsed    time.Duration
}

func (r InvocationRequest) Validate() error {
	if r.DatabasePath == "" {
		return fmt.Errorf("%w: database path is required", ErrInvalidRequest)
	}
	if r.OutputPath == "" {
		return fmt.Errorf("%w: output path is required", ErrInvalidRequest)
	}
	return nil
}

// Schema returns the trimmed schema filter; blank filters are reported as absent.
func (r InvocationRequest) Schema() (string, bool) {
	if r.SchemaFilter == nil {
		return "", false
	}
	schema := strings.TrimSpace(*r.SchemaFilter)
	return schema, schema != ""
}

func BuildArgs(executable string, request InvocationRequest) []string {
	schema, ok := request.Schema()
	if !ok {
		return []string{executable, request.DatabasePath, request.OutputPath}
	}
	return []string{executable, "--schema", schema, request.DatabasePath, request.OutputPath}
}

type Invoker struct {
	// InstallDir and Subpath together form the default engine location.
	InstallDir string
	Subpath    string
	Launcher   Launcher
}

// NewInvoker resolves the install directory from the running binary once.
func NewInvoker(subpath string) (*Invoker, error) {
	self, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("unable to locate own executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(self); err == nil {
		self = resolved
	}
	return &Invoker{
		InstallDir: filepath.Dir(self),
		Subpath:    subpath,
		Launcher:   &ExecLauncher{Stdout: os.Stdout, Stderr: os.Stderr},
	}, nil
}

func (i *Invoker) DefaultExecutable() string {
	return filepath.Join(i.InstallDir, filepath.FromSlash(i.Subpath))
}

// ResolveExecutable returns an explicit path verbatim, even an empty one; only the default path is probed.
func (i *Invoker) ResolveExecutable(explicit *string) (string, error) {
	if explicit != nil {
		return *explicit, nil
	}
	path := i.DefaultExecutable()
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", &ExecutableNotFoundError{Path: path}
	} else if err != nil {
		return "", fmt.Errorf("unable to probe benchmark executable %v: %w", path, err)
	}
	return path, nil
}

func (i *Invoker) Invoke(request InvocationRequest) (InvocationResult, error) {
	if err := request.Validate(); err != nil {
		return InvocationResult{}, err
	}
	executable, err := i.ResolveExecutable(request.ExecutablePath)
	if err != nil {
		return InvocationResult{}, err
	}
	args := BuildArgs(executable, request)

	Logger.Infof("running benchmark cmd %v", args)
	start := time.Now()
	code, err := i.Launcher.Launch(args)
	result := InvocationResult{
		Executable: executable,
		Args:       args,
		ExitCode:   code,
		Elapsed:    time.Since(start),
	}
	if err != nil {
		return result, &LaunchFailedError{Executable: executable, Err: err}
	}
	if code != 0 {
		return result, &ExecutionFailedError{ExitCode: code}
	}
	Logger.Infof("benchmark finished in %v, report at %v", result.Elapsed, request.OutputPath)
	return result, nil
}

// ExecLauncher runs the engine as a child process, forwarding its output streams.
type ExecLauncher struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (l *ExecLauncher) Launch(args []string) (int, error) {
	if len(args) == 0 {
		return -1, errors.New("empty command")
	}
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}
