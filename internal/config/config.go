package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type API struct {
	BaseURL        string
	RequestTimeout time.Duration
}

type DB struct {
	Driver string
	DSN    string
}

type Log struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Verbose    bool
}

type DevServer struct {
	Port         int
	JWTSecretKey string
	TokenTTL     time.Duration
	Seed         bool
	AllowOrigins []string
}

type Config struct {
	API       API
	DB        DB
	Log       Log
	DevServer DevServer
	HomeDir   string
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// parseDuration returns fallback for malformed values, "0" disables the limit
func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func homeDir() string {
	if dir := os.Getenv("COMMUNITY_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".community"
	}
	return filepath.Join(home, ".community")
}

func LoadAPI() API {
	return API{
		BaseURL:        getEnv("API_URL", "http://localhost:5000/api"),
		RequestTimeout: parseDuration(getEnv("REQUEST_TIMEOUT", "0s"), 0),
	}
}

func LoadDB(home string) DB {
	return DB{
		Driver: getEnv("SESSION_DB_DRIVER", "sqlite3"),
		DSN:    getEnv("SESSION_DB_DSN", filepath.Join(home, "session.db")),
	}
}

func LoadLog(home string) Log {
	return Log{
		File:       getEnv("LOG_FILE", filepath.Join(home, "community.log")),
		MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 10),
		MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 3),
		MaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 28),
		Verbose:    getEnvBool("LOG_VERBOSE", false),
	}
}

func LoadDevServer() DevServer {
	return DevServer{
		Port:         getEnvAsInt("DEV_SERVER_PORT", 5000),
		JWTSecretKey: getEnv("DEV_JWT_SECRET_KEY", "dev-secret-key"),
		TokenTTL:     parseDuration(getEnv("DEV_TOKEN_TTL", "24h"), 24*time.Hour),
		Seed:         getEnvBool("DEV_SEED", true),
		AllowOrigins: []string{getEnv("DEV_ALLOW_ORIGIN", "http://localhost:3000")},
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	home := homeDir()

	return &Config{
		API:       LoadAPI(),
		DB:        LoadDB(home),
		Log:       LoadLog(home),
		DevServer: LoadDevServer(),
		HomeDir:   home,
	}
}
