package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
)

// BuildEngine compiles the engine with cmake so that it ends up at source/subpath.
// An existing binary is left untouched.
func BuildEngine(source string, subpath string) (string, error) {
	target := filepath.Join(source, filepath.FromSlash(subpath))
	Logger.Infof("build engine at %v from %v", target, source)
	_, err := os.Stat(target)
	if err == nil {
		Logger.Infof("engine binary %v already exists", target)
		return target, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	buildDir := filepath.Dir(target)
	steps := [][]string{
		{"cmake", "-S", source, "-B", buildDir, "-DCMAKE_BUILD_TYPE=Release"},
		{"cmake", "--build", buildDir, "--target", filepath.Base(target)},
	}
	for _, step := range steps {
		if err := runStreaming(step); err != nil {
			return "", fmt.Errorf("build step %v failed: %w", step, err)
		}
	}
	if _, err := os.Stat(target); err != nil {
		return "", fmt.Errorf("build finished but engine binary is missing: %w", err)
	}
	return target, nil
}

func runStreaming(args []string) error {
	Logger.Infof("running build cmd %v", args)
	cmd := exec.Command(args[0], args[1:]...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	copied := make(chan error, 2)
	go func() { _, err := io.Copy(os.Stderr, stderr); copied <- err }()
	go func() { _, err := io.Copy(os.Stdout, stdout); copied <- err }()
	copyErr := errors.Join(<-copied, <-copied)
	if err := cmd.Wait(); err != nil {
		return err
	}
	if copyErr != nil {
		return fmt.Errorf("failed to forward build output: %w", copyErr)
	}
	return nil
}
