package main

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStorageDriver(t *testing.T) {
	require.Equal(t, "libsql", StorageDriver("libsql://bench-org.turso.io?authToken=x"))
	require.Equal(t, "libsql", StorageDriver("https://bench-org.turso.io"))
	require.Equal(t, "sqlite3", StorageDriver("results.db"))
	require.Equal(t, "sqlite3", StorageDriver("sqlite:///tmp/results.db"))
}

func TestStorageRecordsRuns(t *testing.T) {
	storage, err := OpenStorage("sqlite://" + filepath.Join(t.TempDir(), "results.db"))
	require.Nil(t, err)
	defer storage.Close()

	info := SysInfo{Arch: "amd64", Hostname: "bench-host", CPUCount: 8}
	require.Nil(t, storage.Init(info.Parameters()))
	require.Nil(t, storage.Init(info.Parameters()))

	parameters, err := storage.Parameters()
	require.Nil(t, err)
	require.Equal(t, "bench-host", parameters["hostname"])
	require.Equal(t, "8", parameters["cpu"])
	require.Contains(t, parameters, "time")

	started := time.Date(2026, 10, 17, 12, 30, 0, 0, time.Local)
	request := InvocationRequest{DatabasePath: "tpch.duckdb", OutputPath: "out.csv", SchemaFilter: ptr(" tpch ")}
	attempts := []AttemptResult{
		{Attempt: 1, InvocationResult: InvocationResult{Executable: "eng", ExitCode: 0, Elapsed: 1500 * time.Millisecond}},
		{Attempt: 2, InvocationResult: InvocationResult{Executable: "eng", ExitCode: 1, Elapsed: time.Second}, Err: &ExecutionFailedError{ExitCode: 1}},
	}
	require.Nil(t, storage.RecordRuns(RunRecords(started, request, attempts)))

	history, err := storage.History(10)
	require.Nil(t, err)
	require.Len(t, history, 2)
	require.Equal(t, 2, history[0].Attempt)
	require.Equal(t, 1, history[0].ExitCode)
	require.Equal(t, "benchmark execution failed with exit status 1", history[0].Error)
	require.Equal(t, 1, history[1].Attempt)
	require.Equal(t, "", history[1].Error)
	require.Equal(t, 1.5, history[1].Elapsed)
	require.Equal(t, "tpch", history[1].Schema)
	require.True(t, started.Equal(history[1].Started))

	history, err = storage.History(1)
	require.Nil(t, err)
	require.Len(t, history, 1)
}

func TestRunRecordsWithoutSchema(t *testing.T) {
	records := RunRecords(time.Now(), InvocationRequest{DatabasePath: "db", OutputPath: "out"}, []AttemptResult{
		{Attempt: 1, InvocationResult: InvocationResult{Executable: "eng", ExitCode: -1}, Err: &LaunchFailedError{Executable: "eng", Err: errors.New("permission denied")}},
	})
	require.Len(t, records, 1)
	require.Equal(t, "", records[0].Schema)
	require.Equal(t, -1, records[0].ExitCode)
	require.Equal(t, "failed to launch eng: permission denied", records[0].Error)
}
