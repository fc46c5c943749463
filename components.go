package main

// Launcher starts argv[0] with the remaining arguments and waits for it.
// A process that ran and exited reports its status with a nil error; a non-nil
// error means the process could not be run at all.
type Launcher interface {
	Launch(args []string) (int, error)
}

type Engine interface {
	Invoke(request InvocationRequest) (InvocationResult, error)
}
