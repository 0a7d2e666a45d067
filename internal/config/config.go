// internal/config/config.go
//
// Runtime configuration for the Wordling server and terminal player.
//
// Sources, in order of precedence:
//   1. Command-line flags (applied by the cmd layer after Load).
//   2. Process environment.
//   3. A `.env` file in the working directory (development only).
//   4. Built-in defaults.
//
// Environment variables:
//   PORT, LOG_LEVEL, MAX_ATTEMPTS, WORD_LIST, WORDS_FILE,
//   STORE (memory|redis|sqlite), REDIS_ADDR, REDIS_PASSWORD, REDIS_DB,
//   SQLITE_PATH, SESSION_SECRET, SESSION_TTL, CLIENT_ORIGIN, DAILY_SALT

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every tunable setting.
type Config struct {
	Port          string
	LogLevel      string
	MaxAttempts   int
	WordList      string
	WordsFile     string
	Store         string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SQLitePath    string
	SessionSecret string
	SessionTTL    time.Duration
	ClientOrigin  string
	DailySalt     string
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "5175"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		WordList:      getEnv("WORD_LIST", "Golden Words"),
		WordsFile:     os.Getenv("WORDS_FILE"),
		Store:         getEnv("STORE", "memory"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		SQLitePath:    getEnv("SQLITE_PATH", "./data/wordling.db"),
		SessionSecret: getEnv("SESSION_SECRET", "dev_secret_change_me"),
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		DailySalt:     getEnv("DAILY_SALT", "local_dev_salt"),
	}

	var err error
	if cfg.MaxAttempts, err = envInt("MAX_ATTEMPTS", 4); err != nil {
		return Config{}, err
	}
	if cfg.MaxAttempts <= 0 {
		return Config{}, fmt.Errorf("config: MAX_ATTEMPTS must be positive, got %d", cfg.MaxAttempts)
	}
	if cfg.RedisDB, err = envInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = envDuration("SESSION_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	switch cfg.Store {
	case "memory", "redis", "sqlite":
	default:
		return Config{}, fmt.Errorf("config: unknown STORE %q", cfg.Store)
	}
	return cfg, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", k, err)
	}
	return n, nil
}

func envDuration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", k, err)
	}
	return d, nil
}
