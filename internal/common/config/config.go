package config

import (
	"os"
	"strconv"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port           string
	Environment    string
	ReadTimeout    int
	WriteTimeout   int
	UploadDir      string
	DBPath         string
	MigrationsPath string
	Tolerance      float64
	UnitScale      float64
}

// Load загружает конфигурацию из переменных окружения.
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "3000"),
		Environment:    getEnv("ENV", "development"),
		ReadTimeout:    getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout:   getEnvAsInt("WRITE_TIMEOUT", 10),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		DBPath:         getEnv("DB_PATH", "data/db/conversions.db"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations/001_init_conversions.sql"),
		Tolerance:      getEnvAsFloat("GEOM_TOLERANCE", 5.0),
		UnitScale:      getEnvAsFloat("SCALE_FACTOR", 0.3048),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}
