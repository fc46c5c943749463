package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

var cfg Config

var rootCmd = &cobra.Command{
	Use:           "compression-bench",
	Short:         "Runs the compression benchmark engine against a DuckDB database.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = LoadConfig()
	},
}

func init() {
	rootCmd.AddCommand(runCmd, buildCmd, schemasCmd, reportCmd, historyCmd)
}

// exitCode maps a command error to the process exit status; engine failures keep their own status.
func exitCode(err error) int {
	var failed *ExecutionFailedError
	if errors.As(err, &failed) && failed.ExitCode > 0 {
		return failed.ExitCode
	}
	return 1
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		Logger.Errorf("%v", err)
	}
	Logger.Sync()
	if err != nil {
		os.Exit(exitCode(err))
	}
}
