package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// City is one sync partition: events are fetched, transformed, and persisted
// per city independently of the other cities.
type City struct {
	Name      string `yaml:"name"`
	StateCode string `yaml:"state_code"`
}

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string

	EventsTable string
	VenuesTable string

	// Ticketmaster API key resolution: prefer the SSM parameter when set,
	// fall back to the TM_API_KEY env var for local development.
	TMAPIKeyParam string
	TMAPIKey      string

	SyncTokenSecret string

	MailerProvider string
	MailerFrom     string
	SyncReportTo   string

	CORSOrigins []string

	Cities []City
}

// Load loads configuration from environment variables.
// It attempts to load from .env file if not in production.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production .env might not exist and we rely on system environment
	// variables, so a load failure is only a warning.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:        env,
		Port:               os.Getenv("PORT"),
		AWSRegion:          os.Getenv("AWS_REGION"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		EventsTable:        os.Getenv("EVENTS_TABLE"),
		VenuesTable:        os.Getenv("VENUES_TABLE"),
		TMAPIKeyParam:      os.Getenv("TM_API_KEY_PARAM"),
		TMAPIKey:           os.Getenv("TM_API_KEY"),
		SyncTokenSecret:    os.Getenv("SYNC_TOKEN_SECRET"),
		MailerProvider:     os.Getenv("MAILER_PROVIDER"),
		MailerFrom:         os.Getenv("MAILER_FROM"),
		SyncReportTo:       os.Getenv("SYNC_REPORT_TO"),
	}

	// Set defaults
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.AWSRegion == "" {
		cfg.AWSRegion = "us-east-1"
	}
	if cfg.EventsTable == "" {
		cfg.EventsTable = "TickX-Events"
	}
	if cfg.VenuesTable == "" {
		cfg.VenuesTable = "TickX-Venues"
	}
	if cfg.MailerProvider == "" {
		cfg.MailerProvider = "noop"
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = strings.Split(origins, ",")
	}

	cities, err := loadCities(os.Getenv("CITIES_CONFIG"))
	if err != nil {
		return nil, err
	}
	cfg.Cities = cities

	return cfg, nil
}

type citiesFile struct {
	Cities []City `yaml:"cities"`
}

// loadCities reads the sync partition list from a YAML file. An empty path
// falls back to the default partitions.
func loadCities(path string) ([]City, error) {
	if path == "" {
		return []City{
			{Name: "Chicago", StateCode: "IL"},
			{Name: "New York", StateCode: "NY"},
		}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cities config: %w", err)
	}
	var f citiesFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse cities config: %w", err)
	}
	if len(f.Cities) == 0 {
		return nil, fmt.Errorf("cities config %s has no cities", path)
	}
	return f.Cities, nil
}
