package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything read from the environment. A .env file is
// loaded first when present; real env vars win.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	YouTubeAPIKey string
	GeminiAPIKey  string

	// Vosk speech server. VoskModel is informational, the model is loaded
	// by the server itself (vosk-model-small-en-us-0.15 by default).
	VoskServerURL string
	VoskModel     string

	RedisAddr string // empty disables the cache

	ThumbnailDir string
	VoiceToneDir string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("WARN: no .env file found, relying on process env")
	}

	cfg := Config{
		Port:          getenv("PORT", "8080"),
		DatabaseURL:   mustGetenv("DATABASE_URL"),
		JWTSecret:     mustGetenv("JWT_SECRET"),
		YouTubeAPIKey: mustGetenv("YOUTUBE_API_KEY"),
		GeminiAPIKey:  mustGetenv("GEMINI_API_KEY"),
		VoskServerURL: getenv("VOSK_SERVER_URL", "ws://localhost:2700"),
		VoskModel:     getenv("VOSK_MODEL", "vosk-model-small-en-us-0.15"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		ThumbnailDir:  getenv("THUMBNAIL_STORAGE_PATH", "assets/thumbnails"),
		VoiceToneDir:  getenv("VOICE_TONE_DIR", "assets/voice_tones"),
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func mustGetenv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(key + " is not set")
	}
	return v
}
