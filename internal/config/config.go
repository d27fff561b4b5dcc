package config

import (
	"os"
	"strconv"
)

// DurationPresets are the selectable round lengths, in seconds.
var DurationPresets = []int{10, 30, 60}

type Config struct {
	Port          string
	DatabaseURL   string
	RoundDuration int // seconds, must be one of DurationPresets
}

func Load() Config {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RoundDuration: getEnvInt("ROUND_DURATION", 30),
	}
	if !ValidDuration(cfg.RoundDuration) {
		cfg.RoundDuration = 30
	}
	return cfg
}

// ValidDuration reports whether d is one of the preset round lengths.
func ValidDuration(d int) bool {
	for _, p := range DurationPresets {
		if d == p {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
