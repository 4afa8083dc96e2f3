package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	App struct {
		Env  string
		Port string
	}
	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
	}
	JWT struct {
		Secret        string
		ExpiryMinutes int
	}
	// Scoring holds the tunable cricket rules. Points values are configuration
	// rather than constants: win=2/tie=1/loss=0 are the product defaults, but a
	// league may override them per deployment.
	Scoring struct {
		WinPoints     int
		TiePoints     int
		LossPoints    int
		OversPerMatch int // default for tournaments that don't set their own
		BallsPerOver  int
	}
	Jobs struct {
		// StaleMatchHours is how long a match may sit in_progress without a
		// scoring event before the sweeper cancels it. 0 disables the sweep.
		StaleMatchHours int
	}
}

// Global DB instance, set by ConnectDB via Initialize.
var DB *gorm.DB

var appConfig *Config
var once sync.Once

// LoadConfig loads configuration from environment variables into the Config
// struct. Designed to be called once.
func LoadConfig() (*Config, error) {
	// A missing .env file is fine; production sets env vars directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system environment variables.")
	}

	cfg := &Config{}

	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.Port = getEnv("PORT", "8088")

	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "password")
	cfg.DB.Name = getEnv("DB_NAME", "pavilion_db")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.JWT.Secret = getEnv("JWT_SECRET", "change-me-in-production")

	var err error
	cfg.JWT.ExpiryMinutes, err = getEnvAsInt("JWT_EXPIRY_MINUTES", 60)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_MINUTES: %w", err)
	}

	cfg.Scoring.WinPoints, err = getEnvAsInt("SCORING_WIN_POINTS", 2)
	if err != nil {
		return nil, fmt.Errorf("invalid SCORING_WIN_POINTS: %w", err)
	}
	cfg.Scoring.TiePoints, err = getEnvAsInt("SCORING_TIE_POINTS", 1)
	if err != nil {
		return nil, fmt.Errorf("invalid SCORING_TIE_POINTS: %w", err)
	}
	cfg.Scoring.LossPoints, err = getEnvAsInt("SCORING_LOSS_POINTS", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid SCORING_LOSS_POINTS: %w", err)
	}
	cfg.Scoring.OversPerMatch, err = getEnvAsInt("SCORING_OVERS_PER_MATCH", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid SCORING_OVERS_PER_MATCH: %w", err)
	}
	cfg.Scoring.BallsPerOver = 6

	cfg.Jobs.StaleMatchHours, err = getEnvAsInt("JOBS_STALE_MATCH_HOURS", 48)
	if err != nil {
		return nil, fmt.Errorf("invalid JOBS_STALE_MATCH_HOURS: %w", err)
	}

	if cfg.JWT.Secret == "change-me-in-production" && cfg.App.Env == "production" {
		log.Println("WARNING: Using default JWT secret in production. Set JWT_SECRET.")
	}

	appConfig = cfg
	return cfg, nil
}

// ConnectDB establishes the database connection and sets the global DB.
func ConnectDB(dbCfg Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		dbCfg.DB.Host,
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Name,
		dbCfg.DB.Port,
		dbCfg.DB.SSLMode,
	)

	gormConfig := &gorm.Config{}
	if dbCfg.App.Env == "development" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = gormDB
	log.Println("Successfully connected to database")
	return gormDB, nil
}

// Initialize loads configuration and connects to the database. Call once from
// main.
func Initialize() error {
	var loadErr error
	once.Do(func() {
		loadedCfg, err := LoadConfig()
		if err != nil {
			loadErr = fmt.Errorf("failed to load configuration: %w", err)
			return
		}
		appConfig = loadedCfg

		if _, err = ConnectDB(*appConfig); err != nil {
			loadErr = fmt.Errorf("failed to connect to database during initialization: %w", err)
		}
	})
	return loadErr
}

// GetConfig returns the loaded application configuration.
func GetConfig() *Config {
	if appConfig == nil {
		log.Fatal("Configuration not loaded. Call config.Initialize() first.")
	}
	return appConfig
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return fallback, fmt.Errorf("env var %s: expected integer, got '%s'", key, valueStr)
	}
	return value, nil
}
