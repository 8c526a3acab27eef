package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	OutputDir string

	PortalBaseURL    string
	TermCode         string
	ClassNumberStart int
	ClassNumberEnd   int
	RequestDelayMs   int
	SectionTimeoutMs int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		PortalBaseURL:    getEnv("PORTAL_BASE_URL", "https://more.app.vanderbilt.edu/more"),
		TermCode:         getEnv("TERM_CODE", "1055"),
		ClassNumberStart: getEnvInt("CLASS_NUMBER_START", 1000),
		ClassNumberEnd:   getEnvInt("CLASS_NUMBER_END", 13000),
		RequestDelayMs:   getEnvInt("REQUEST_DELAY_MS", 50),
		SectionTimeoutMs: getEnvInt("SECTION_TIMEOUT_MS", 2000),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
