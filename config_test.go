package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"ENGINE_SUBPATH", "ENGINE_SOURCE", "BENCHMARK_ATTEMPTS", "BENCHMARK_WARMUP", "BENCHMARK_CLEAR_CACHES", "RESULTS_DB"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := LoadConfig()
	require.Equal(t, DefaultEngineSubpath, cfg.EngineSubpath)
	require.Equal(t, 1, cfg.Attempts)
	require.Equal(t, 0, cfg.Warmup)
	require.False(t, cfg.ClearCaches)
	require.Equal(t, "", cfg.ResultsDb)
}

func TestLoadConfigFromEnvAndDotenv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("BENCHMARK_ATTEMPTS", "5")
	t.Setenv("RESULTS_DB", "")
	os.Unsetenv("RESULTS_DB")
	t.Setenv("ENGINE_SUBPATH", "")
	os.Unsetenv("ENGINE_SUBPATH")
	dotenv := "BENCHMARK_ATTEMPTS=2\nRESULTS_DB=" + filepath.Join(dir, "results.db") + "\nENGINE_SUBPATH=CompressionBenchmarkCLI\n"
	require.Nil(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(dotenv), 0o644))

	cfg := LoadConfig()
	require.Equal(t, 5, cfg.Attempts)
	require.Equal(t, filepath.Join(dir, "results.db"), cfg.ResultsDb)
	require.Equal(t, "CompressionBenchmarkCLI", cfg.EngineSubpath)
}

func TestEnvHelpersFallback(t *testing.T) {
	t.Setenv("COMPRESSION_BENCH_INT", "many")
	t.Setenv("COMPRESSION_BENCH_BOOL", "sometimes")
	require.Equal(t, 7, IntEnv("COMPRESSION_BENCH_INT", 7))
	require.True(t, BoolEnv("COMPRESSION_BENCH_BOOL", true))

	t.Setenv("COMPRESSION_BENCH_BOOL", "false")
	require.False(t, BoolEnv("COMPRESSION_BENCH_BOOL", true))
	require.Equal(t, "x", StringEnv("COMPRESSION_BENCH_MISSING", "x"))
}
