package config

import "time"

type App struct {
	HTTPPort  string
	HTTPSPort string
	CertFile  string
	KeyFile   string

	DatabaseURL     string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	JWTSecret       string
	JWTExpiresHours int

	DropboxAccessToken string

	Env string
}
