package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port     string
	AppURL   string
	LogLevel string

	// Track matching.
	MatchWorkers      int
	SearchesPerSecond float64

	// Provider OAuth apps.
	SpotifyClientID     string
	SpotifyClientSecret string
	SpotifyRedirectURI  string
	YouTubeClientID     string
	YouTubeClientSecret string
	YouTubeRedirectURI  string
}

// Load reads configuration from .env file (if present) and environment variables.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	workers, err := strconv.Atoi(getEnv("MATCH_WORKERS", "5"))
	if err != nil {
		workers = 5
	}

	searchRate, err := strconv.ParseFloat(getEnv("SEARCH_RATE_LIMIT", "5"), 64)
	if err != nil {
		searchRate = 5
	}

	return &Config{
		Port:              getEnv("PORT", "8080"),
		AppURL:            getEnv("APP_URL", "http://127.0.0.1:3000"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		MatchWorkers:      workers,
		SearchesPerSecond: searchRate,

		SpotifyClientID:     getEnv("SPOTIFY_CLIENT_ID", ""),
		SpotifyClientSecret: getEnv("SPOTIFY_CLIENT_SECRET", ""),
		SpotifyRedirectURI:  getEnv("SPOTIFY_REDIRECT_URI", ""),
		YouTubeClientID:     getEnv("YOUTUBE_CLIENT_ID", ""),
		YouTubeClientSecret: getEnv("YOUTUBE_CLIENT_SECRET", ""),
		YouTubeRedirectURI:  getEnv("YOUTUBE_REDIRECT_URI", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
