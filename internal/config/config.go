package config

import (
	"os"
	"strconv"
	"strings"
)

// UploadConfig holds file upload limits and the on-disk layout settings.
type UploadConfig struct {
	Dir               string
	MaxFileSize       int64
	AllowedExtensions []string
}

// StorageConfig selects the artifact storage backend.
// "local" keeps one file per document under UploadConfig.Dir;
// "minio" stores the same keys in an S3-compatible bucket.
type StorageConfig struct {
	Backend string
	MinIO   MinIOConfig
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// OpenAIConfig holds settings for the chat-completion endpoint used by the
// compliance agent. An empty APIKey disables the model entirely and the
// agent falls back to its heuristic checks.
type OpenAIConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	TimeoutSec int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppName string
	Version string
	AppHost string
	Port    string
	Upload  UploadConfig
	Storage StorageConfig
	OpenAI  OpenAIConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppName: getEnv("APP_NAME", "AI Document Compliance Checker"),
		Version: getEnv("APP_VERSION", "1.0.0"),
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		Upload: UploadConfig{
			Dir:               getEnv("UPLOAD_DIR", "uploads"),
			MaxFileSize:       getEnvInt64("MAX_FILE_SIZE", 10*1024*1024), // 10MB
			AllowedExtensions: splitList(getEnv("ALLOWED_EXTENSIONS", "pdf,docx")),
		},
		Storage: StorageConfig{
			Backend: getEnv("STORAGE_BACKEND", "local"),
			MinIO: MinIOConfig{
				Endpoint:  getEnv("MINIO_ENDPOINT", ""),
				AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
				SecretKey: getEnv("MINIO_SECRET_KEY", ""),
				Bucket:    getEnv("MINIO_BUCKET", ""),
				UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			},
		},
		OpenAI: OpenAIConfig{
			APIKey:     getEnv("OPENAI_API_KEY", ""),
			BaseURL:    getEnv("OPENAI_BASE_URL", ""),
			Model:      getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
			TimeoutSec: getEnvInt("OPENAI_TIMEOUT_SEC", 60),
		},
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return i
		}
	}
	return def
}
