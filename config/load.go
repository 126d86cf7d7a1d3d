package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

func Load() App {
	godotenv.Load()

	cfg := App{
		HTTPPort:  getenv("HTTP_PORT", "8081"),
		HTTPSPort: getenv("HTTPS_PORT", "8082"),
		CertFile:  os.Getenv("CERT_FILE"),
		KeyFile:   os.Getenv("KEY_FILE"),

		DatabaseURL:     databaseURL(),
		MaxOpenConns:    getenvInt("DATABASE_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getenvInt("DATABASE_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getenvDuration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),

		JWTSecret:       must("JWT_SECRET"),
		JWTExpiresHours: getenvInt("JWT_EXPIRES_HOURS", 1),

		DropboxAccessToken: os.Getenv("DROPBOX_ACCESS_TOKEN"),

		Env: getenv("APP_ENV", "dev"),
	}
	return cfg
}

// databaseURL prefers DATABASE_URL and otherwise assembles a DSN from the
// individual DB_* variables.
func databaseURL() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}
	host := getenv("DB_HOST", "localhost")
	port := getenv("DB_PORT", "5432")
	user := getenv("DB_USER", "postgres")
	pass := getenv("DB_PASSWORD", "postgres")
	name := getenv("DB_NAME", "rentaproducto")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, pass, host, port, name)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
