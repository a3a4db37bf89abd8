package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries everything the process needs, constructed once at startup
// and passed to each component explicitly.
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	ServerPort string

	JWTSecret   string
	TokenMaxAge int // seconds

	S3Endpoint        string
	S3Region          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3BucketName      string
	S3PublicURL       string

	DefaultAvatarURL string

	TMDBAPIKey        string
	GoogleBooksAPIKey string
	IGDBClientID      string
	IGDBClientSecret  string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	tokenMaxAge, err := strconv.Atoi(os.Getenv("TOKEN_MAX_AGE"))
	if err != nil || tokenMaxAge <= 0 {
		tokenMaxAge = 3600
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	sslMode := os.Getenv("DB_SSLMODE")
	if sslMode == "" {
		sslMode = "require"
	}

	region := os.Getenv("S3_REGION")
	if region == "" {
		region = "auto"
	}

	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  sslMode,

		ServerPort: serverPort,

		JWTSecret:   os.Getenv("JWT_SECRET"),
		TokenMaxAge: tokenMaxAge,

		S3Endpoint:        os.Getenv("S3_ENDPOINT"),
		S3Region:          region,
		S3AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		S3BucketName:      os.Getenv("S3_BUCKET_NAME"),
		S3PublicURL:       os.Getenv("S3_PUBLIC_URL"),

		DefaultAvatarURL: os.Getenv("DEFAULT_AVATAR_URL"),

		TMDBAPIKey:        os.Getenv("TMDB_API_KEY"),
		GoogleBooksAPIKey: os.Getenv("GOOGLE_BOOKS_API_KEY"),
		IGDBClientID:      os.Getenv("IGDB_CLIENT_ID"),
		IGDBClientSecret:  os.Getenv("IGDB_API_CLIENT_SECRET"),
	}, nil
}
