package config

import (
	"os"
	"time"
)

type Config struct {
	ServerAddress   string
	JWTSecret       string
	JWTExpiration   time.Duration
	DataDir         string
	UploadDir       string
	MaxUploadSizeMB int64

	// Origin is the public base URL used when building shareable card links.
	Origin string

	MongoURI      string
	MongoDatabase string

	FirebaseProjectID       string
	FirebaseCredentialsJSON string
}

func Load() *Config {
	return &Config{
		ServerAddress:   getEnv("SERVER_ADDRESS", ":8080"),
		JWTSecret:       getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiration:   24 * time.Hour,
		DataDir:         getEnv("DATA_DIR", "./data"),
		UploadDir:       getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadSizeMB: 10,

		Origin: getEnv("PUBLIC_ORIGIN", "http://localhost:8080"),

		MongoURI:      getEnv("MONGODB_URI", ""),
		MongoDatabase: getEnv("MONGODB_DATABASE", "ecard"),

		FirebaseProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseCredentialsJSON: getEnv("FIREBASE_CREDENTIALS_JSON", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
