package config

import (
	"encoding/hex"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Database *Database
	HTTP     *HTTP
	Auth     *Auth
	Storage  *Storage
	Mail     *Mail
	App      *App
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel string `env:"LOG_LEVEL"`
	Mode     string `env:"APP_MODE"`
	LogFile  string `env:"LOG_FILE"`
}

// Database with an empty DSN selects the in-memory store.
type Database struct {
	DSN string `env:"DATABASE_URI"`
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS"`
}

// Auth.Key is a hex encoded 32 byte paseto key. A random key is used when empty.
type Auth struct {
	Key      string        `env:"AUTH_KEY"`
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
}

// Storage with an empty bucket disables evidence image routes.
type Storage struct {
	Bucket    string `env:"S3_BUCKET"`
	Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	Endpoint  string `env:"S3_ENDPOINT"`
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY"`
	PublicURL string `env:"S3_PUBLIC_URL"`
}

// Mail with an empty host makes notifications go to the log.
type Mail struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"MAIL_FROM" envDefault:"no-reply@shoptrack.local"`
	SiteURL  string `env:"SITE_URL" envDefault:"http://localhost:8080"`
	Workers  int    `env:"MAIL_WORKERS" envDefault:"2"`
}

func NewConfig() (*Config, error) {
	var db Database
	var http HTTP
	var auth Auth
	var storage Storage
	var mail Mail
	var app App

	flag.StringVar(&db.DSN, "d", "", "Database string")
	flag.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	flag.StringVar(&app.LogLevel, "l", `error`, "Log level")
	flag.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	flag.StringVar(&app.LogFile, "f", "", "Log file")
	flag.Parse()

	for name, section := range map[string]any{
		"database": &db,
		"http":     &http,
		"auth":     &auth,
		"storage":  &storage,
		"mail":     &mail,
		"app":      &app,
	} {
		if err := env.Parse(section); err != nil {
			return nil, fmt.Errorf("error parsing %s config: %w", name, err)
		}
	}

	if auth.Key != "" {
		if _, err := auth.KeyBytes(); err != nil {
			return nil, fmt.Errorf("error parsing auth key: %w", err)
		}
	}

	config := Config{
		Database: &db,
		HTTP:     &http,
		Auth:     &auth,
		Storage:  &storage,
		Mail:     &mail,
		App:      &app,
	}

	return &config, nil
}

func (a *Auth) KeyBytes() ([]byte, error) {
	key, err := hex.DecodeString(a.Key)
	if err != nil {
		return nil, err
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("key must be 32 bytes, got %d", len(key))
	}
	return key, nil
}
