package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	DBDSN    string `env:"DB_DSN" envDefault:"arcticfresh.db"`
	MongoDB  string `env:"MONGO_DB" envDefault:"arcticfresh"`
	MediaDir string `env:"MEDIA_DIR" envDefault:"./web/media"`
	LogFile  string `env:"LOG_FILE"`

	JWTSecret         string `env:"JWT_SECRET"`
	AdminUsername     string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword     string `env:"ADMIN_PASSWORD"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
	CookieSecure      bool   `env:"COOKIE_SECURE" envDefault:"false"`

	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"`

	ResendAPIKey string `env:"RESEND_API_KEY"`
	MailFrom     string `env:"MAIL_FROM" envDefault:"Arctic Fresh <no-reply@arcticfresh.test>"`
	MailTo       string `env:"MAIL_TO" envDefault:"sales@arcticfresh.test"`

	CloudinaryURL string `env:"CLOUDINARY_URL"`

	SeedDemo bool `env:"SEED_DEMO" envDefault:"true"`
}

// UsesMongo reports whether DB_DSN points at a MongoDB deployment.
func (c Config) UsesMongo() bool {
	return strings.HasPrefix(c.DBDSN, "mongodb://") || strings.HasPrefix(c.DBDSN, "mongodb+srv://")
}

// MailConfigured reports whether a transactional mail provider is available.
func (c Config) MailConfigured() bool { return c.ResendAPIKey != "" }

// Parse reads the environment into a Config without touching .env files.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.JWTSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return Config{}, err
		}
		cfg.JWTSecret = secret
		log.Printf("[config] JWT_SECRET not set; generated an ephemeral secret (sessions reset on restart)")
	}
	return cfg, nil
}

// Load reads an optional .env file, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[config] no .env file found, using process environment")
	}
	cfg, err := Parse()
	if err != nil {
		return Config{}, err
	}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s ADMIN_USERNAME=%s MAIL=%t CLOUDINARY=%t",
		cfg.Port, mask(cfg.DBDSN), cfg.MediaDir, cfg.LogFile, cfg.AdminUsername, cfg.MailConfigured(), cfg.CloudinaryURL != "")
	return cfg, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate jwt secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// mask hides credentials embedded in a connection string.
func mask(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	scheme := strings.Index(dsn, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return dsn
	}
	return dsn[:scheme+3] + "***" + dsn[at:]
}
