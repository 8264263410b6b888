package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Storage backend names accepted in INVOICEPAD_STORAGE.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	DataDir       string
	Backend       string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DatabaseURL   string
	StartNumber   string
}

// Load reads configuration from a .env file (if present) and the
// environment. Every field has a usable default; the tool runs with no
// configuration at all.
func Load() Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	return Config{
		DataDir:       getEnv("INVOICEPAD_DATA_DIR", defaultDataDir()),
		Backend:       getEnv("INVOICEPAD_STORAGE", BackendFile),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		StartNumber:   getEnv("INVOICEPAD_START_NUMBER", "1"),
	}
}

func ValidBackend(name string) bool {
	switch name {
	case BackendFile, BackendMemory, BackendRedis, BackendPostgres:
		return true
	}
	return false
}

func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".invoicepad"
	}
	return filepath.Join(base, "invoicepad")
}

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}
