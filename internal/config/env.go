package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment holds CLI defaults read from the process environment
type Environment struct {
	PolicyFile  string
	LogLevel    string
	Concurrency int
	Format      string
	Locale      string
}

// LoadEnvironment loads the given .env files (".env" when none are given) without
// overriding variables already set, then reads the PAYROLL_* variables. Missing .env
// files are not an error.
func LoadEnvironment(files ...string) (*Environment, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	concurrency, err := strconv.Atoi(getEnv("PAYROLL_CONCURRENCY", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_CONCURRENCY: %w", err)
	}
	if concurrency < 1 {
		return nil, fmt.Errorf("invalid PAYROLL_CONCURRENCY: must be at least 1, got %d", concurrency)
	}

	return &Environment{
		PolicyFile:  getEnv("PAYROLL_POLICY_FILE", ""),
		LogLevel:    getEnv("PAYROLL_LOG_LEVEL", "info"),
		Concurrency: concurrency,
		Format:      getEnv("PAYROLL_FORMAT", "console"),
		Locale:      getEnv("PAYROLL_LOCALE", "vi"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
