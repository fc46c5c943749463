package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var buildSource string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the engine from source into its default location.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		source := buildSource
		if source == "" {
			source = cfg.EngineSource
		}
		if source == "" {
			invoker, err := NewInvoker(cfg.EngineSubpath)
			if err != nil {
				return err
			}
			source = invoker.InstallDir
		}
		target, err := BuildEngine(source, cfg.EngineSubpath)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, target)
		return nil
	},
}

var schemasCmd = &cobra.Command{
	Use:   "schemas <database>",
	Short: "List the schemas of a DuckDB database.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schemas, err := ListSchemas(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		for _, schema := range schemas {
			fmt.Fprintln(os.Stdout, schema)
		}
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report <csv>",
	Short: "Summarize an engine CSV report per algorithm.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := ReadReport(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Summary of %v (%v rows)\n", filepath.Base(args[0]), len(rows))
		PrintSummary(os.Stdout, Summarize(rows))
		return nil
	},
}

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded runs from the results database.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.ResultsDb == "" {
			return fmt.Errorf("RESULTS_DB is not set")
		}
		storage, err := OpenStorage(cfg.ResultsDb)
		if err != nil {
			return err
		}
		defer storage.Close()
		records, err := storage.History(historyLimit)
		if err != nil {
			return err
		}
		for _, r := range records {
			status := color.GreenString("ok")
			if r.Error != "" {
				status = color.RedString("exit %d", r.ExitCode)
			}
			fmt.Fprintf(os.Stdout, "%v  #%d  %s  %.3fs  %v -> %v  schema=%q\n",
				r.Started.Format(timeLayout), r.Attempt, status, r.Elapsed, r.Database, r.Output, r.Schema)
		}
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildSource, "source", "", "Engine source directory (defaults to ENGINE_SOURCE or the install directory)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Number of runs to show")
}
