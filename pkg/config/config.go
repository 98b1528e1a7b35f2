package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	FirebaseProject string
	FirebaseApiKey  string
	Environment     string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int

	// Practical UI bound carried over from the mobile client input,
	// not a protocol limit.
	ChatMaxMessageLength int
	CartTTLHours         int64
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		FirebaseProject:      getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseApiKey:       getEnv("FIREBASE_API_KEY", ""),
		Environment:          getEnv("ENVIRONMENT", "development"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		RedisDB:              int(getEnvAsInt64("REDIS_DB", 0)),
		ChatMaxMessageLength: int(getEnvAsInt64("CHAT_MAX_MESSAGE_LENGTH", 500)),
		CartTTLHours:         getEnvAsInt64("CART_TTL_HOURS", 72),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
