package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var runFlags struct {
	schema      string
	executable  string
	attempts    int
	warmup      int
	clearCaches bool
	summary     bool
	checkSchema bool
}

var runCmd = &cobra.Command{
	Use:   "run <database> <output>",
	Short: "Run the engine on a database and write the CSV report.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		request := InvocationRequest{DatabasePath: args[0], OutputPath: args[1]}
		if cmd.Flags().Changed("schema") {
			request.SchemaFilter = &runFlags.schema
		}
		if runFlags.executable != "" {
			request.ExecutablePath = &runFlags.executable
		}
		if schema, ok := request.Schema(); ok && runFlags.checkSchema {
			if err := CheckSchema(cmd.Context(), request.DatabasePath, schema); err != nil {
				return err
			}
		}

		invoker, err := NewInvoker(cfg.EngineSubpath)
		if err != nil {
			return err
		}
		session := Session{
			Warmup:      cfg.Warmup,
			Attempts:    cfg.Attempts,
			ClearCaches: cfg.ClearCaches,
		}
		if cmd.Flags().Changed("attempts") {
			session.Attempts = runFlags.attempts
		}
		if cmd.Flags().Changed("warmup") {
			session.Warmup = runFlags.warmup
		}
		if cmd.Flags().Changed("clear-caches") {
			session.ClearCaches = runFlags.clearCaches
		}

		info := HostStat()
		Logger.Infof("host stat: %+v", info)

		started := time.Now()
		attempts, runErr := session.Run(invoker, request)
		if err := recordRuns(info, started, request, attempts); err != nil {
			Logger.Errorf("failed to record runs: %v", err)
		}
		if runErr != nil {
			return runErr
		}

		if runFlags.summary {
			rows, err := ReadReport(request.OutputPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Summary of %v (%v rows)\n", request.OutputPath, len(rows))
			PrintSummary(os.Stdout, Summarize(rows))
		}
		return nil
	},
}

func recordRuns(info SysInfo, started time.Time, request InvocationRequest, attempts []AttemptResult) error {
	if cfg.ResultsDb == "" || len(attempts) == 0 {
		return nil
	}
	storage, err := OpenStorage(cfg.ResultsDb)
	if err != nil {
		return err
	}
	defer storage.Close()
	if err := storage.Init(info.Parameters()); err != nil {
		return err
	}
	return storage.RecordRuns(RunRecords(started, request, attempts))
}

func init() {
	flags := runCmd.Flags()
	flags.StringVar(&runFlags.schema, "schema", "", "Restrict the benchmark to one schema of the database")
	flags.StringVar(&runFlags.executable, "executable", "", "Path to the engine executable (skips the default location)")
	flags.IntVar(&runFlags.attempts, "attempts", 1, "Number of recorded invocations")
	flags.IntVar(&runFlags.warmup, "warmup", 0, "Number of unrecorded invocations before the attempts")
	flags.BoolVar(&runFlags.clearCaches, "clear-caches", false, "Drop OS page caches before every attempt")
	flags.BoolVar(&runFlags.summary, "summary", false, "Print a per-algorithm summary of the report")
	flags.BoolVar(&runFlags.checkSchema, "check-schema", false, "Verify the schema exists in the database before running")
}

