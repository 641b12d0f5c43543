package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env  string
	Port int

	// Upstream events backend the wizard reads from and submits to.
	UpstreamBaseURL string

	// Session persistence. Empty DBURL keeps sessions in memory.
	DBURL string

	// Refdata cache. Empty RedisAddr disables the shared cache layer.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RefdataTTL    time.Duration

	// HS256 secret shared with the platform's auth service.
	AuthSecret string

	OtelEndpoint   string
	AllowedOrigins []string
}

func Load() Config {
	env := getEnv("APP_ENV", "dev")
	port := getEnvInt("PORT", 8080)

	return Config{
		Env:             env,
		Port:            port,
		UpstreamBaseURL: getEnv("EVENTS_API_URL", "http://127.0.0.1:9000"),
		DBURL:           buildDBURL(),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		RefdataTTL:      getEnvDuration("REFDATA_TTL", 5*time.Minute),
		AuthSecret:      getEnv("AUTH_SECRET", "dev-secret"),
		OtelEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		AllowedOrigins:  strings.Split(getEnv("ADMIN_ORIGINS", "http://localhost:3000"), ","),
	}
}

func buildDBURL() string {
	host := getEnv("DB_HOST", "")

	if host == "" {
		// no database configured; session store falls back to memory
		return ""
	}

	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "eventwizard")
	pass := getEnv("DB_PASSWORD", "eventwizard")
	name := getEnv("DB_NAME", "eventwizard")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return d
	}
	return fallback
}
