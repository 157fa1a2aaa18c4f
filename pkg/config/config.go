package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Admin    AdminConfig
	Razorpay RazorpayConfig
	Calendar CalendarConfig
	Email    EmailConfig
	Storage  StorageConfig
	Meeting  MeetingConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	URL string
}

type AdminConfig struct {
	Passcode  string
	JWTSecret string
}

type RazorpayConfig struct {
	KeyID         string
	KeySecret     string
	WebhookSecret string
	Currency      string
}

type CalendarConfig struct {
	Enabled         bool
	CredentialsFile string
	CalendarID      string
	Keyword         string
}

type EmailConfig struct {
	ResendAPIKey string
}

type StorageConfig struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

type MeetingConfig struct {
	Platform        string
	StartHour       int
	StartMinute     int
	DurationMinutes int
	Title           string
	Description     string
}

func Load() *Config {
	godotenv.Load() // .env dosyasını yükle

	startHour, startMinute := parseClock(getEnv("MEETING_START_TIME", "19:00"))

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Admin: AdminConfig{
			Passcode:  getEnv("ADMIN_PASSCODE", ""),
			JWTSecret: getEnv("ADMIN_JWT_SECRET", ""),
		},
		Razorpay: RazorpayConfig{
			KeyID:         getEnv("RAZORPAY_KEY_ID", ""),
			KeySecret:     getEnv("RAZORPAY_KEY_SECRET", ""),
			WebhookSecret: getEnv("RAZORPAY_WEBHOOK_SECRET", ""),
			Currency:      getEnv("RAZORPAY_CURRENCY", "INR"),
		},
		Calendar: CalendarConfig{
			Enabled:         getEnv("CALENDAR_ENABLED", "false") == "true",
			CredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
			CalendarID:      getEnv("GOOGLE_CALENDAR_ID", "primary"),
			Keyword:         getEnv("CALENDAR_KEYWORD", "Daily Session"),
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		},
		Storage: StorageConfig{
			Bucket:    getEnv("S3_BUCKET", "dailymeet-exports"),
			Region:    getEnv("S3_REGION", "ap-south-1"),
			AccessKey: getEnv("S3_ACCESS_KEY", ""),
			SecretKey: getEnv("S3_SECRET_KEY", ""),
			Endpoint:  getEnv("S3_ENDPOINT", ""),
		},
		Meeting: MeetingConfig{
			Platform:        getEnv("MEETING_PLATFORM", "google-meet"),
			StartHour:       startHour,
			StartMinute:     startMinute,
			DurationMinutes: getEnvInt("MEETING_DURATION_MINUTES", 60),
			Title:           getEnv("MEETING_TITLE", "Daily Session"),
			Description:     getEnv("MEETING_DESCRIPTION", "Join the daily live session."),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// parseClock "HH:MM" biçimindeki saati ayrıştırır.
func parseClock(s string) (hour, minute int) {
	hour, minute = 19, 0
	parts := strings.SplitN(s, ":", 2)
	if len(parts) == 2 {
		if h, err := strconv.Atoi(parts[0]); err == nil {
			hour = h
		}
		if m, err := strconv.Atoi(parts[1]); err == nil {
			minute = m
		}
	}
	return hour, minute
}
