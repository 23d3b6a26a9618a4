package config

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Config holds application configuration loaded from the environment
type Config struct {
	Port           string
	DBPath         string
	JWTSecret      string
	BcryptCost     int
	FareAmount     float64  // fare recorded automatically when a travel ends
	AllowedOrigins []string // CORS allow-list
}

// Load reads configuration from environment variables with defaults
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/fleet/fleet.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	bcryptCost := bcrypt.DefaultCost
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		if cost, err := strconv.Atoi(v); err == nil && cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			bcryptCost = cost
		}
	}

	fare := 5.0
	if v := os.Getenv("FARE_AMOUNT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			fare = f
		}
	}

	origins := []string{
		"http://localhost:3000",
		"https://colectivedriver.vercel.app",
		"https://colectivedrivery.vercel.app",
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		origins = strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
	}

	return &Config{
		Port:           port,
		DBPath:         dbPath,
		JWTSecret:      jwtSecret,
		BcryptCost:     bcryptCost,
		FareAmount:     fare,
		AllowedOrigins: origins,
	}
}
