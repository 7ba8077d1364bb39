package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseDSN string

	// Intake watcher
	WatchFilePath   string
	StagingFilePath string
	PollInterval    time.Duration
	AICallTimeout   time.Duration

	// IMAP intake source (optional alternative to the spreadsheet)
	IMAPAddress  string
	IMAPUsername string
	IMAPPassword string

	// AI providers
	AIProvider    string
	GeminiApiKey  string
	OllamaBaseURL string
	OllamaModel   string

	// Notification delivery
	GoogleProjectID     string
	GooglePubSubTopic   string
	GoogleCredentials   string
	FirebaseCredentials string
	GmailClientID       string
	GmailClientSecret   string
	GmailRefreshToken   string
	SenderEmail         string
	SenderName          string

	// Chatbot vector store
	ChromaAPIKey   string
	ChromaTenant   string
	ChromaDatabase string

	// Dashboard auth
	JWTSecret         string
	JWTAccessExpiry   time.Duration
	AdminUsername     string
	AdminPasswordHash string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	pollInterval := 5 * time.Second
	if v := os.Getenv("POLL_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			pollInterval = parsed
		}
	}

	aiTimeout := 30 * time.Second
	if v := os.Getenv("AI_CALL_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			aiTimeout = parsed
		}
	}

	accessExpiry := 15 * time.Minute
	if v := os.Getenv("JWT_ACCESS_EXPIRY"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			accessExpiry = parsed
		}
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=orders port=5432 sslmode=disable"),

		WatchFilePath:   getEnv("WATCH_FILE_PATH", "Sample.xlsx"),
		StagingFilePath: getEnv("STAGING_FILE_PATH", "changes.json"),
		PollInterval:    pollInterval,
		AICallTimeout:   aiTimeout,

		IMAPAddress:  getEnv("IMAP_ADDRESS", ""),
		IMAPUsername: getEnv("IMAP_USERNAME", ""),
		IMAPPassword: getEnv("IMAP_PASSWORD", ""),

		AIProvider:    getEnv("AI_PROVIDER", "auto"),
		GeminiApiKey:  getEnv("GEMINI_API_KEY", ""),
		OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:   getEnv("OLLAMA_MODEL", "llama3"),

		GoogleProjectID:     getEnv("GOOGLE_PROJECT_ID", ""),
		GooglePubSubTopic:   getEnv("GOOGLE_PUBSUB_TOPIC", "order-events"),
		GoogleCredentials:   getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),
		GmailClientID:       getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret:   getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRefreshToken:   getEnv("GMAIL_REFRESH_TOKEN", ""),
		SenderEmail:         getEnv("SENDER_EMAIL", ""),
		SenderName:          getEnv("SENDER_NAME", "Order Desk"),

		ChromaAPIKey:   getEnv("CHROMA_API_KEY", ""),
		ChromaTenant:   getEnv("CHROMA_TENANT", ""),
		ChromaDatabase: getEnv("CHROMA_DATABASE", ""),

		JWTSecret:         getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTAccessExpiry:   accessExpiry,
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
