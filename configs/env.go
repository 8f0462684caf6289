package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv reads the .env file once at startup. Missing files are fine in
// production where variables come from the environment itself.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
}

func EnvMongoURI() string {
	return getenv("MONGOURI", "mongodb://localhost:27017")
}

func EnvMongoDatabase() string {
	return getenv("MONGO_DATABASE", "shopApi")
}

func EnvRedisAddr() string {
	return getenv("REDIS_ADDR", "localhost:6379")
}

func EnvJWTSecret() string {
	return os.Getenv("JWT_SECRET")
}

func EnvPort() string {
	return getenv("PORT", "3000")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
