// Package config loads application configuration from environment
// variables.  A .env file is honoured when present so local
// development matches the deployed environment variable surface.
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  Database variables
// keep the FSTR_DB_* names used by the existing deployments of the
// tourism association infrastructure.
type Config struct {
	Env    string // application environment (e.g. "dev", "prod")
	Port   string // HTTP port to listen on
	DBUser string // database login
	DBPass string // database password (optional)
	DBHost string // database host address
	DBPort string // database port number
	DBName string // database name
}

// Load reads configuration from the environment.  Missing required
// variables abort startup with a fatal log message.
func Load() Config {
	_ = godotenv.Load() // .env is optional
	return Config{
		Env:    must("APP_ENV"),
		Port:   must("APP_PORT"),
		DBUser: must("FSTR_DB_LOGIN"),
		DBPass: os.Getenv("FSTR_DB_PASS"), // empty allowed
		DBHost: must("FSTR_DB_HOST"),
		DBPort: must("FSTR_DB_PORT"),
		DBName: must("FSTR_DB_NAME"),
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
