package main

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const DefaultEngineSubpath = "build/release/CompressionBenchmarkCLI"

type Config struct {
	EngineSubpath string
	EngineSource  string
	Attempts      int
	Warmup        int
	ClearCaches   bool
	ResultsDb     string
}

// LoadConfig reads .env (if present) into the environment and then builds the config from it.
// Variables already set in the environment win over .env values.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		Logger.Warnf("failed to load .env file: %v", err)
	}
	if logLevel, ok := os.LookupEnv("LOG_LEVEL"); ok {
		SetLogLevel(logLevel)
	}
	return Config{
		EngineSubpath: StringEnv("ENGINE_SUBPATH", DefaultEngineSubpath),
		EngineSource:  StringEnv("ENGINE_SOURCE", ""),
		Attempts:      IntEnv("BENCHMARK_ATTEMPTS", 1),
		Warmup:        IntEnv("BENCHMARK_WARMUP", 0),
		ClearCaches:   BoolEnv("BENCHMARK_CLEAR_CACHES", false),
		ResultsDb:     StringEnv("RESULTS_DB", ""),
	}
}

func StringEnv(key string, def string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	return value
}

func IntEnv(key string, def int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		Logger.Warnf("invalid integer in %v=%q, fallback to %v", key, value, def)
		return def
	}
	return parsed
}

func BoolEnv(key string, def bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		Logger.Warnf("invalid boolean in %v=%q, fallback to %v", key, value, def)
		return def
	}
	return parsed
}
