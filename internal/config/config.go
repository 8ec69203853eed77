package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Geofence   GeofenceConfig
	Attendance AttendanceConfig
	Payroll    PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds the token verification secret. Tokens are issued by the
// identity service, this backend only verifies them.
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// GeofenceConfig holds the fallback office point used when no geofence
// row is active in the database.
type GeofenceConfig struct {
	DefaultLatitude  float64
	DefaultLongitude float64
	DefaultRadius    float64
}

// AttendanceConfig holds derivation thresholds.
type AttendanceConfig struct {
	LateThresholdHour   int
	LateThresholdMinute int
	FullDayMinutes      int
	HalfDayMinutes      int
	LunchWindowStart    int
	LunchWindowEnd      int
	SweepLookbackDays   int
	TrainingDays        int
}

// PayrollConfig holds statutory defaults.
type PayrollConfig struct {
	DefaultPFPercent  decimal.Decimal
	DefaultESIPercent decimal.Decimal
	TrainingDailyRate decimal.Decimal
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("no .env file found, using environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "workforce"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
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
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Geofence fallback office point
	defaultLat, err := strconv.ParseFloat(getEnv("GEOFENCE_DEFAULT_LATITUDE", "23.351633"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid GEOFENCE_DEFAULT_LATITUDE: %w", err)
	}
	defaultLon, err := strconv.ParseFloat(getEnv("GEOFENCE_DEFAULT_LONGITUDE", "85.3162779"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid GEOFENCE_DEFAULT_LONGITUDE: %w", err)
	}
	defaultRadius, err := strconv.ParseFloat(getEnv("GEOFENCE_DEFAULT_RADIUS_METERS", "70"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid GEOFENCE_DEFAULT_RADIUS_METERS: %w", err)
	}

	config.Geofence = GeofenceConfig{
		DefaultLatitude:  defaultLat,
		DefaultLongitude: defaultLon,
		DefaultRadius:    defaultRadius,
	}

	config.Attendance = AttendanceConfig{
		LateThresholdHour:   getEnvInt("LATE_THRESHOLD_HOUR", 10),
		LateThresholdMinute: getEnvInt("LATE_THRESHOLD_MINUTE", 30),
		FullDayMinutes:      getEnvInt("FULL_DAY_MINUTES", 420),
		HalfDayMinutes:      getEnvInt("HALF_DAY_MINUTES", 240),
		LunchWindowStart:    getEnvInt("LUNCH_WINDOW_START_HOUR", 14),
		LunchWindowEnd:      getEnvInt("LUNCH_WINDOW_END_HOUR", 15),
		SweepLookbackDays:   getEnvInt("ABSENT_SWEEP_LOOKBACK_DAYS", 60),
		TrainingDays:        getEnvInt("TRAINING_DAYS", 7),
	}

	pfPercent, err := decimal.NewFromString(getEnv("DEFAULT_PF_PERCENT", "12"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_PF_PERCENT: %w", err)
	}
	esiPercent, err := decimal.NewFromString(getEnv("DEFAULT_ESI_PERCENT", "0.75"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_ESI_PERCENT: %w", err)
	}
	trainingRate, err := decimal.NewFromString(getEnv("TRAINING_DAILY_RATE", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid TRAINING_DAILY_RATE: %w", err)
	}

	config.Payroll = PayrollConfig{
		DefaultPFPercent:  pfPercent,
		DefaultESIPercent: esiPercent,
		TrainingDailyRate: trainingRate,
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
	if c.Geofence.DefaultRadius <= 0 {
		return fmt.Errorf("GEOFENCE_DEFAULT_RADIUS_METERS must be positive")
	}
	if c.Attendance.TrainingDays <= 0 {
		return fmt.Errorf("TRAINING_DAYS must be positive")
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
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvSlice(env string, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}
