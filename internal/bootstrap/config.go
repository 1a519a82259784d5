package bootstrap

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ServerAddr string
	LogLevel   string

	DatabaseDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MediaDir string
	MediaTTL time.Duration
	ScanTTL  time.Duration

	DetectorURL    string
	ProductAPIURL  string
	TranslateURL   string
	TTSAddress     string
	TTSVoice       string
}

func LoadConfig() *Config {
	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		DatabaseDSN: getEnv("DATABASE_DSN", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       0,

		MediaDir: getEnv("MEDIA_DIR", "./media"),
		MediaTTL: time.Duration(getEnvInt("MEDIA_TTL_MINUTES", 60)) * time.Minute,
		ScanTTL:  time.Duration(getEnvInt("SCAN_TTL_MINUTES", 60)) * time.Minute,

		DetectorURL:   getEnv("DETECTOR_URL", ""),
		ProductAPIURL: getEnv("PRODUCT_API_URL", "https://world.openfoodfacts.org"),
		TranslateURL:  getEnv("TRANSLATE_URL", "http://localhost:5000"),
		TTSAddress:    getEnv("TTS_ADDRESS", "http://localhost:50053"),
		TTSVoice:      getEnv("TTS_VOICE", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
