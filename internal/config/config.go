// Package config centralises all environment / flag configuration for the API.
// It should be imported only by the cmd binaries (and test code). Business
// logic layers receive an already-built Config instance via dependency
// injection.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime option the server needs.
// Keep it flat and simple—prefer primitive types over embedding structs.
type Config struct {
	// Network
	Port string

	// Data stores
	MongoURI string
	DBName   string

	// Vertex AI. When ProjectID is empty the server falls back to the static
	// in-process AI stubs so the API stays usable without credentials.
	ProjectID       string
	Location        string
	CredentialsFile string
	EmbedModel      string
	ChatModel       string

	// Knowledge retrieval
	KnowledgeApprover string

	// Wix Data mirror (optional secondary source of dive logs)
	WixAPIKey string
	WixSiteID string

	// Server tuning
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	ChatTimeout  time.Duration // budget for one full chat pipeline run
	SaveTimeout  time.Duration // budget for the detached memory save
}

// Load parses the environment (and an optional .env file) into Config.
// It terminates the program on missing critical variables so
// mis-configurations fail fast.
func Load() Config {
	// godotenv.Load() is a no-op if .env doesn't exist—safe in production.
	_ = godotenv.Load()

	return Config{
		Port:              getEnv("PORT", "8080"),
		MongoURI:          must("MONGODB_URI"),
		DBName:            getEnv("MONGODB_DB", "koval_deep_ai"),
		ProjectID:         getEnv("GCP_PROJECT_ID", ""),
		Location:          getEnv("GCP_LOCATION", "us-central1"),
		CredentialsFile:   getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		EmbedModel:        getEnv("EMBED_MODEL", "text-embedding-005"),
		ChatModel:         getEnv("CHAT_MODEL", "gemini-2.0-flash-lite-001"),
		KnowledgeApprover: getEnv("KNOWLEDGE_APPROVED_BY", "koval"),
		WixAPIKey:         getEnv("WIX_API_KEY", ""),
		WixSiteID:         getEnv("WIX_SITE_ID", ""),
		ReadTimeout:       getDuration("READ_TIMEOUT_SEC", 15),
		WriteTimeout:      getDuration("WRITE_TIMEOUT_SEC", 45),
		ChatTimeout:       getDuration("CHAT_TIMEOUT_SEC", 40),
		SaveTimeout:       getDuration("SAVE_TIMEOUT_SEC", 10),
	}
}

// must fetches a required env var or terminates the program.
func must(key string) string {
	val := os.Getenv(key)
	if val == "" {
		log.Fatalf("env var %s is required", key)
	}
	return val
}

// getEnv returns env[key] if set, otherwise defaultVal.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getDuration reads an integer (seconds) from env, falling back to defaultSec.
func getDuration(key string, defaultSec int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if sec, err := strconv.Atoi(v); err == nil {
			return time.Duration(sec) * time.Second
		}
		log.Printf("invalid %s=%q; using default %ds", key, v, defaultSec)
	}
	return time.Duration(defaultSec) * time.Second
}
