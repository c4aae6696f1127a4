package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds the process-wide defaults, overridable per command via
// flags or a language profile.
type Config struct {
	Dialect     string
	Cases       []string
	Genders     []string
	PluralCount int
	WorkerCount int
	DatabaseURL string
}

// Load reads configuration from the environment, with .env support.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		Dialect:     getEnv("DIALECT", "openttd"),
		Cases:       getEnvList("CASES"),
		Genders:     getEnvList("GENDERS"),
		PluralCount: getEnvInt("PLURAL_COUNT", 2),
		WorkerCount: getEnvInt("WORKER_COUNT", 8),
		DatabaseURL: getEnv("DATABASE_URL", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
