package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/stafflane/backoffice-go/internal/domain/shift"
)

type Config struct {
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

type RedisConfig struct {
	Host string
	Port int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	Timezone       string
	AllowedOrigins []string
}

// AttendanceConfig holds the shift boundary policy and the weekly off days.
// The defaults are the long-standing org policy; env overrides exist for
// companies that need different boundaries.
type AttendanceConfig struct {
	DayEarliestHour      int
	DayLatestExtraHour   int
	DayLatestCeilingHour int
	NightLeadInHours     int
	AutoCloseGrace       time.Duration
	WeekendDays          []time.Weekday
}

// Policy converts the attendance section into the engine's policy type.
func (a AttendanceConfig) Policy() shift.Policy {
	return shift.Policy{
		DayEarliestHour:      a.DayEarliestHour,
		DayLatestExtraHour:   a.DayLatestExtraHour,
		DayLatestCeilingHour: a.DayLatestCeilingHour,
		NightLeadInHours:     a.NightLeadInHours,
		AutoCloseGrace:       a.AutoCloseGrace,
	}
}

func Load() (*Config, error) {
	// A missing .env file is fine in deployed environments where the
	// variables come from the process environment.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbMaxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	dbMinConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "backoffice"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(dbMaxConns),
		MinConns: int32(dbMinConns),
	}

	// Redis configuration
	redisPort, err := strconv.Atoi(getEnv("REDIS_PORT", "6379"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_PORT: %w", err)
	}

	config.Redis = RedisConfig{
		Host: getEnv("REDIS_HOST", "localhost"),
		Port: redisPort,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Timezone:       getEnv("APP_TIMEZONE", "Asia/Jakarta"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Attendance policy configuration
	dayEarliest, err := strconv.Atoi(getEnv("ATTENDANCE_DAY_EARLIEST_HOUR", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_DAY_EARLIEST_HOUR: %w", err)
	}
	dayExtra, err := strconv.Atoi(getEnv("ATTENDANCE_DAY_LATEST_EXTRA_HOUR", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_DAY_LATEST_EXTRA_HOUR: %w", err)
	}
	dayCeiling, err := strconv.Atoi(getEnv("ATTENDANCE_DAY_LATEST_CEILING_HOUR", "22"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_DAY_LATEST_CEILING_HOUR: %w", err)
	}
	nightLeadIn, err := strconv.Atoi(getEnv("ATTENDANCE_NIGHT_LEAD_IN_HOURS", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_NIGHT_LEAD_IN_HOURS: %w", err)
	}
	autoCloseGrace, err := time.ParseDuration(getEnv("ATTENDANCE_AUTO_CLOSE_GRACE", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_AUTO_CLOSE_GRACE: %w", err)
	}
	weekendDays, err := parseWeekendDays(getEnv("ATTENDANCE_WEEKEND_DAYS", "Saturday,Sunday"))
	if err != nil {
		return nil, err
	}

	config.Attendance = AttendanceConfig{
		DayEarliestHour:      dayEarliest,
		DayLatestExtraHour:   dayExtra,
		DayLatestCeilingHour: dayCeiling,
		NightLeadInHours:     nightLeadIn,
		AutoCloseGrace:       autoCloseGrace,
		WeekendDays:          weekendDays,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// RedisAddr returns the Redis host:port address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekendDays(value string) ([]time.Weekday, error) {
	var days []time.Weekday
	for _, name := range strings.Split(value, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		day, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("invalid ATTENDANCE_WEEKEND_DAYS entry: %q", name)
		}
		days = append(days, day)
	}
	return days, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return strings.Split(value, ",")
}
