package configs

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	MongoURI       string
	DBName         string
	JWTSecret      string
	RequestTimeout int // seconds, per store call
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	requestTimeout := 5
	if val := os.Getenv("REQUEST_TIMEOUT_SECONDS"); val != "" {
		_, err := fmt.Sscanf(val, "%d", &requestTimeout)
		if err != nil {
			log.Fatalf("Invalid REQUEST_TIMEOUT_SECONDS: %v", err)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	return Config{
		Port:           port,
		MongoURI:       os.Getenv("MONGO_URI"),
		DBName:         os.Getenv("DB_NAME"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		RequestTimeout: requestTimeout,
	}
}
