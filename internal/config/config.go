package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type envConfig struct {
	APP_PORT      string
	LOG_FILE_PATH string

	// postgres or datastore
	STORE_BACKEND string

	DB_HOST              string
	DB_PORT              string
	DB_USER              string
	DB_PASSWORD          string
	DB_NAME              string
	DB_SSL_MODE          string
	DB_MAX_OPEN_CONNS    int
	DB_MAX_IDLE_CONNS    int
	DB_CONN_MAX_LIFETIME time.Duration

	GCP_PROJECT_ID string

	ELASTIC_URL string

	CACHE_ENABLED bool

	REPORT_CONFIG_PATH string
}

// DefaultEnvConfig holds the process configuration after LoadEnvConfig.
var DefaultEnvConfig envConfig

// LoadEnvConfig reads configuration from the environment, loading a local
// .env file first when one exists.
func LoadEnvConfig() error {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	DefaultEnvConfig = envConfig{
		APP_PORT:      getEnv("APP_PORT", "8080"),
		LOG_FILE_PATH: os.Getenv("LOG_FILE_PATH"),

		STORE_BACKEND: getEnv("STORE_BACKEND", "postgres"),

		DB_HOST:     getEnv("DB_HOST", "localhost"),
		DB_PORT:     getEnv("DB_PORT", "5432"),
		DB_USER:     getEnv("DB_USER", "postgres"),
		DB_PASSWORD: os.Getenv("DB_PASSWORD"),
		DB_NAME:     getEnv("DB_NAME", "taskforge"),
		DB_SSL_MODE: getEnv("DB_SSL_MODE", "disable"),

		GCP_PROJECT_ID: os.Getenv("GCP_PROJECT_ID"),

		ELASTIC_URL: os.Getenv("ELASTIC_URL"),

		REPORT_CONFIG_PATH: os.Getenv("REPORT_CONFIG_PATH"),
	}

	var err error
	if DefaultEnvConfig.DB_MAX_OPEN_CONNS, err = getEnvInt("DB_MAX_OPEN_CONNS", 25); err != nil {
		return err
	}
	if DefaultEnvConfig.DB_MAX_IDLE_CONNS, err = getEnvInt("DB_MAX_IDLE_CONNS", 5); err != nil {
		return err
	}

	lifetimeMin, err := getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)
	if err != nil {
		return err
	}
	DefaultEnvConfig.DB_CONN_MAX_LIFETIME = time.Duration(lifetimeMin) * time.Minute

	DefaultEnvConfig.CACHE_ENABLED, err = getEnvBool("CACHE_ENABLED", true)
	if err != nil {
		return err
	}

	switch DefaultEnvConfig.STORE_BACKEND {
	case "postgres", "datastore":
	default:
		return fmt.Errorf("unsupported STORE_BACKEND %q", DefaultEnvConfig.STORE_BACKEND)
	}
	if DefaultEnvConfig.STORE_BACKEND == "datastore" && DefaultEnvConfig.GCP_PROJECT_ID == "" {
		return fmt.Errorf("STORE_BACKEND=datastore requires GCP_PROJECT_ID")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
