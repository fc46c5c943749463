package main

import (
	"fmt"
	"os/exec"
	"runtime"
)

type Session struct {
	Warmup      int
	Attempts    int
	ClearCaches bool
}

type AttemptResult struct {
	Attempt int
	InvocationResult
	Err error
}

// cacheDropCommands lists the commands that flush the page cache on goos, in order.
func cacheDropCommands(goos string) ([][]string, error) {
	switch goos {
	case "linux":
		return [][]string{{"sync"}, {"sh", "-c", "echo 3 | sudo tee /proc/sys/vm/drop_caches"}}, nil
	case "darwin":
		return [][]string{{"sync"}, {"purge"}}, nil
	}
	return nil, fmt.Errorf("unable to clear caches for platform '%v'", goos)
}

func clearCaches() error {
	commands, err := cacheDropCommands(runtime.GOOS)
	if err != nil {
		return err
	}
	for _, args := range commands {
		if out, err := exec.Command(args[0], args[1:]...).CombinedOutput(); err != nil {
			return fmt.Errorf("%v failed: err=%w, out=%v", args, err, string(out))
		}
	}
	return nil
}

func (s *Session) clearCachesIfNeeded() {
	if !s.ClearCaches {
		return
	}
	Logger.Info("clear caches")
	if err := clearCaches(); err != nil {
		Logger.Warnf("failed to clear fs caches: %v", err)
	}
}

func (s *Session) Run(engine Engine, request InvocationRequest) ([]AttemptResult, error) {
	for i := 0; i < s.Warmup; i++ {
		Logger.Infof("running warmup #%v/%v", i+1, s.Warmup)
		if _, err := engine.Invoke(request); err != nil {
			return nil, fmt.Errorf("warmup #%v failed: %w", i+1, err)
		}
	}

	attempts := max(s.Attempts, 1)
	results := make([]AttemptResult, 0, attempts)
	for i := 0; i < attempts; i++ {
		s.clearCachesIfNeeded()

		Logger.Infof("running attempt #%v/%v", i+1, attempts)
		result, err := engine.Invoke(request)
		if result.Args != nil {
			results = append(results, AttemptResult{Attempt: i + 1, InvocationResult: result, Err: err})
		}
		if err != nil {
			return results, fmt.Errorf("attempt #%v failed: %w", i+1, err)
		}
	}
	return results, nil
}
