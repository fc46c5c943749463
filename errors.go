package main

import (
	"errors"
	"fmt"
)

var ErrInvalidRequest = errors.New("invalid invocation request")

// ExecutableNotFoundError is returned when the default engine location does not exist.
type ExecutableNotFoundError struct {
	Path string
}

func (e *ExecutableNotFoundError) Error() string {
	return fmt.Sprintf("benchmark executable not found at %v", e.Path)
}

// ExecutionFailedError is returned when the engine exits with a non-zero status.
type ExecutionFailedError struct {
	ExitCode int
}

func (e *ExecutionFailedError) Error() string {
	return fmt.Sprintf("benchmark execution failed with exit status %v", e.ExitCode)
}

// LaunchFailedError is returned when the engine process could not be started.
type LaunchFailedError struct {
	Executable string
	Err        error
}

func (e *LaunchFailedError) Error() string {
	return fmt.Sprintf("failed to launch %v: %v", e.Executable, e.Err)
}

func (e *LaunchFailedError) Unwrap() error { return e.Err }
