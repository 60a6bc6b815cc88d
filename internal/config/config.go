package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"invite-app-go/pkg/logger"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

const eventDateLayout = "2006-01-02T15:04:05"

type Config struct {
	HTTPPort           string
	Env                string
	AdminCode          string
	GuestsFile         string
	CORSAllowedOrigins []string
	MetricsEnabled     bool
	DB                 DBConfig
	Event              EventConfig
}

type DBConfig struct {
	Driver          string
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type EventConfig struct {
	Title        string
	Hosts        []string
	StartsAt     time.Time
	Location     *time.Location
	VenueName    string
	VenueAddress string
}

func Load(log logger.Logger) (Config, error) {
	if err := loadDotEnv(log); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	event, err := loadEvent()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		AdminCode:          os.Getenv("ADMIN_CODE"),
		GuestsFile:         getEnv("GUESTS_FILE", ""),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
		DB: DBConfig{
			Driver:          strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", ""),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "invite_app"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			AutoMigrate:     getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Event: event,
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.AdminCode == "" {
		return fmt.Errorf("ADMIN_CODE is required")
	}
	if strings.TrimSpace(c.HTTPPort) == "" {
		return fmt.Errorf("HTTP_PORT is required")
	}
	switch c.DB.Driver {
	case DriverPostgres, DriverMySQL, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	return nil
}

func loadEvent() (EventConfig, error) {
	zone := getEnv("EVENT_TIMEZONE", "America/Argentina/Buenos_Aires")
	location, err := time.LoadLocation(zone)
	if err != nil {
		return EventConfig{}, fmt.Errorf("EVENT_TIMEZONE %q: %w", zone, err)
	}

	raw := getEnv("EVENT_DATE", "2025-09-05T21:00:00")
	startsAt, err := parseEventDate(raw, location)
	if err != nil {
		return EventConfig{}, fmt.Errorf("EVENT_DATE %q: %w", raw, err)
	}

	return EventConfig{
		Title:        getEnv("EVENT_TITLE", "Mis 15 - Azul"),
		Hosts:        getEnvList("EVENT_HOSTS", []string{"Azul"}),
		StartsAt:     startsAt,
		Location:     location,
		VenueName:    getEnv("EVENT_VENUE_NAME", "Salón de Eventos"),
		VenueAddress: getEnv("EVENT_VENUE_ADDRESS", "Dirección del evento"),
	}, nil
}

// parseEventDate accepts RFC 3339 or a zone-less local timestamp interpreted
// in the event location.
func parseEventDate(value string, location *time.Location) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed.In(location), nil
	}
	return time.ParseInLocation(eventDateLayout, value, location)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item != "" {
			result = append(result, item)
		}
	}
	if len(result) == 0 {
		return fallback
	}
	return result
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}

	switch c.Driver {
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.User, c.Password, c.Host, c.portOr("3306"), c.Name)
	case DriverSQLite:
		return c.Name + ".db"
	default:
		return "host=" + c.Host +
			" user=" + c.User +
			" password=" + c.Password +
			" dbname=" + c.Name +
			" port=" + c.portOr("5432") +
			" sslmode=" + c.SSLMode +
			" TimeZone=" + c.TimeZone
	}
}

func (c DBConfig) portOr(fallback string) string {
	if c.Port == "" {
		return fallback
	}
	return c.Port
}
