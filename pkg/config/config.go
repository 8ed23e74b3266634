package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Catalog  CatalogConfig
	Search   SearchConfig
	Places   PlacesConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port           string
	RequestTimeout time.Duration
}

type DatabaseConfig struct {
	URL string
}

type CatalogConfig struct {
	Source          string // postgres, s3 or file
	File            string
	S3              S3Config
	RefreshSchedule string
	Seed            bool
}

type S3Config struct {
	Bucket    string
	Key       string
	Endpoint  string
	AccessKey string
	SecretKey string
}

type SearchConfig struct {
	GeohashPrecision uint
	MaxCells         int
	DefaultLimit     int
	MaxLimit         int
	DefaultRadiusKm  float64
}

type PlacesConfig struct {
	APIKey       string
	BaseURL      string
	RadiusMeters int
	Timeout      time.Duration
}

type LogConfig struct {
	Level string
	JSON  bool
}

func Load() *Config {
	godotenv.Load() // .env is optional

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "3000"),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Catalog: CatalogConfig{
			Source: getEnv("CATALOG_SOURCE", "postgres"),
			File:   getEnv("CATALOG_FILE", "pkg/data/catalog.json"),
			S3: S3Config{
				Bucket:    getEnv("CATALOG_S3_BUCKET", ""),
				Key:       getEnv("CATALOG_S3_KEY", "catalog.json"),
				Endpoint:  getEnv("CATALOG_S3_ENDPOINT", ""),
				AccessKey: getEnv("CATALOG_S3_ACCESS_KEY", ""),
				SecretKey: getEnv("CATALOG_S3_SECRET_KEY", ""),
			},
			RefreshSchedule: getEnv("CATALOG_REFRESH_SCHEDULE", "@every 5m"),
			Seed:            getEnvBool("CATALOG_SEED", false),
		},
		Search: SearchConfig{
			GeohashPrecision: uint(getEnvInt("GEOHASH_PRECISION", 5)),
			MaxCells:         getEnvInt("GEO_MAX_CELLS", 1024),
			DefaultLimit:     getEnvInt("SEARCH_DEFAULT_LIMIT", 20),
			MaxLimit:         getEnvInt("SEARCH_MAX_LIMIT", 100),
			DefaultRadiusKm:  getEnvFloat("SEARCH_DEFAULT_RADIUS_KM", 5),
		},
		Places: PlacesConfig{
			APIKey:       getEnv("PLACES_API_KEY", ""),
			BaseURL:      getEnv("PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place"),
			RadiusMeters: getEnvInt("PLACES_RADIUS_METERS", 1500),
			Timeout:      getEnvDuration("PLACES_TIMEOUT", 3*time.Second),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			JSON:  getEnvBool("LOG_JSON", false),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil && f > 0 {
		return f
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}
