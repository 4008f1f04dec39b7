package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every setting read from the environment (.env is optional).
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBTimeZone string

	GormLogLevel string
	JWTSecret    string

	S3Endpoint      string
	S3Region        string
	S3AccessKey     string
	S3SecretKey     string
	S3Bucket        string
	S3PublicBaseURL string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	CORSAllowedOrigins  []string
	ComparisonCacheSize int
	ExpiryCron          string
	PublicBaseURL       string
}

// Load reads .env (when present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          getEnv("DB_NAME", "boqportal"),
		DBSSLMode:       getEnv("DB_SSLMODE", "disable"),
		DBTimeZone:      getEnv("DB_TIMEZONE", "Asia/Kolkata"),
		GormLogLevel:    getEnv("GORM_LOG_LEVEL", "warn"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		S3Endpoint:      os.Getenv("S3_ENDPOINT"),
		S3Region:        getEnv("S3_REGION", "auto"),
		S3AccessKey:     os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:     os.Getenv("S3_SECRET_KEY"),
		S3Bucket:        os.Getenv("S3_BUCKET"),
		S3PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPPort:        getEnv("SMTP_PORT", "587"),
		SMTPUser:        os.Getenv("SMTP_USER"),
		SMTPPassword:    os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:        os.Getenv("SMTP_FROM"),
		ExpiryCron:      getEnv("EXPIRY_CRON", "30 0 * * *"),
		PublicBaseURL:   getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
	}

	cfg.CORSAllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8080"))

	cacheSize, err := strconv.Atoi(getEnv("COMPARISON_CACHE_SIZE", "256"))
	if err != nil || cacheSize < 0 {
		log.Printf("Invalid COMPARISON_CACHE_SIZE, falling back to 256")
		cacheSize = 256
	}
	cfg.ComparisonCacheSize = cacheSize

	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET is not set, using an insecure development secret")
		cfg.JWTSecret = "boqportal-dev-secret"
	}

	return cfg
}

// PostgresDSN builds the key/value DSN understood by both lib/pq and the gorm driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode, c.DBTimeZone)
}

// ObjectStorageEnabled reports whether S3 settings are complete.
func (c *Config) ObjectStorageEnabled() bool {
	return c.S3Bucket != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

// SMTPEnabled reports whether status e-mails can be sent.
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
