package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Save current env and restore later
	origDir := os.Getenv("UPLOAD_DIR")
	defer os.Setenv("UPLOAD_DIR", origDir)

	os.Setenv("UPLOAD_DIR", "test-uploads")
	os.Setenv("MAX_FILE_SIZE", "2048")
	os.Setenv("ALLOWED_EXTENSIONS", "pdf, DOCX ,txt")
	os.Setenv("MINIO_USE_SSL", "true")
	defer func() {
		os.Unsetenv("MAX_FILE_SIZE")
		os.Unsetenv("ALLOWED_EXTENSIONS")
		os.Unsetenv("MINIO_USE_SSL")
	}()

	cfg := Load()

	assert.Equal(t, "test-uploads", cfg.Upload.Dir)
	assert.Equal(t, int64(2048), cfg.Upload.MaxFileSize)
	assert.Equal(t, []string{"pdf", "docx", "txt"}, cfg.Upload.AllowedExtensions)
	assert.True(t, cfg.Storage.MinIO.UseSSL)
	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.Equal(t, "gpt-3.5-turbo", cfg.OpenAI.Model)
}

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("MAX_FILE_SIZE")
	os.Unsetenv("ALLOWED_EXTENSIONS")

	cfg := Load()

	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxFileSize)
	assert.Equal(t, []string{"pdf", "docx"}, cfg.Upload.AllowedExtensions)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt64(t *testing.T) {
	key := "TEST_INT64_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, int64(123), getEnvInt64(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, int64(10), getEnvInt64(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, int64(10), getEnvInt64(key, 10))
}
