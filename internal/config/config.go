package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DBDSN         string
	LogFile       string
	TemplatesDir  string
	CORSOrigins   string
	AdminEmail    string
	AdminPassword string
	SeedOnStart   bool
}

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func Load() Config {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] could not read .env: %v", err)
	}

	seed, err := strconv.ParseBool(env("SEED_ON_START", "true"))
	if err != nil {
		seed = true
	}

	cfg := Config{
		Port:          env("PORT", "5000"),
		DBDSN:         env("DB_DSN", "jerseystore.db"),
		LogFile:       os.Getenv("LOG_FILE"),
		TemplatesDir:  env("TEMPLATES_DIR", "./web/templates"),
		CORSOrigins:   env("CORS_ORIGINS", "*"),
		AdminEmail:    env("ADMIN_EMAIL", "admin@jerseystore.test"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SeedOnStart:   seed,
	}
	if _, set := os.LookupEnv("LOG_FILE"); !set {
		cfg.LogFile = "./jerseystore.log"
	}

	pw := "<unset>"
	if cfg.AdminPassword != "" {
		pw = "<redacted>"
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s TEMPLATES_DIR=%s CORS_ORIGINS=%s ADMIN_EMAIL=%s ADMIN_PASSWORD=%s SEED_ON_START=%t",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.TemplatesDir, cfg.CORSOrigins, cfg.AdminEmail, pw, cfg.SeedOnStart)
	return cfg
}
