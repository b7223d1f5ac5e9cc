package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverCSV   = "csv"
	DriverMongo = "mongo"
)

type Config struct {
	Port      string
	GinMode   string
	LogLevel  string
	LogFormat string

	StoreDriver   string
	DataDir       string
	MongoURI      string
	MongoDatabase string

	JWTSecret   string
	JWTTTL      time.Duration
	CORSOrigins []string

	TextbeltURL    string
	TextbeltAPIKey string
	CountryCode    string

	RemindersEnabled bool
	ReminderAt       string
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	// a missing .env is fine, the environment may already be set
	_ = godotenv.Load()
	return FromViper(viper.New())
}

// FromViper builds a Config from v after applying defaults and binding the
// environment.
func FromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Port:             v.GetString("API_PORT"),
		GinMode:          v.GetString("GIN_MODE"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormat:        v.GetString("LOG_FORMAT"),
		StoreDriver:      strings.ToLower(v.GetString("STORE_DRIVER")),
		DataDir:          v.GetString("DATA_DIR"),
		MongoURI:         v.GetString("MONGO_URI"),
		MongoDatabase:    v.GetString("MONGO_DATABASE"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTTTL:           v.GetDuration("JWT_TTL"),
		CORSOrigins:      splitList(v.GetString("CORS_ORIGINS")),
		TextbeltURL:      v.GetString("TEXTBELT_URL"),
		TextbeltAPIKey:   v.GetString("TEXTBELT_API_KEY"),
		CountryCode:      v.GetString("WHATSAPP_COUNTRY_CODE"),
		RemindersEnabled: v.GetBool("REMINDER_ENABLED"),
		ReminderAt:       v.GetString("REMINDER_AT"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("STORE_DRIVER", DriverCSV)
	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("TEXTBELT_URL", "https://textbelt.com/text")
	v.SetDefault("WHATSAPP_COUNTRY_CODE", "57")
	v.SetDefault("REMINDER_ENABLED", false)
	v.SetDefault("REMINDER_AT", "18:00")
}

func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	switch c.StoreDriver {
	case DriverCSV:
		if c.DataDir == "" {
			errs = append(errs, errors.New("DATA_DIR is not set"))
		}
	case DriverMongo:
		if c.MongoURI == "" || c.MongoDatabase == "" {
			errs = append(errs, errors.New("MONGO_URI and MONGO_DATABASE are required with STORE_DRIVER=mongo"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}
	if c.RemindersEnabled && c.TextbeltAPIKey == "" {
		errs = append(errs, errors.New("REMINDER_ENABLED needs TEXTBELT_API_KEY"))
	}
	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
