package config

import (
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "bookmarket-service", cfg.ServiceName)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, int64(10<<20), cfg.UploadMaxBytes)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.False(t, cfg.SMTPEnabled())
	assert.Equal(t, []string{"jpg", "jpeg", "png", "gif", "webp"}, cfg.AllowedExtensions())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("MONGO_USE_TRANSACTIONS", "true")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("UPLOAD_ALLOWED_EXTENSIONS", " .PNG, jpg ,,")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_EMAIL", "noreply@example.com")

	cfg, err := LoadConfig(logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.HTTPPort)
	assert.True(t, cfg.MongoUseTransactions)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"png", "jpg"}, cfg.AllowedExtensions())
	assert.True(t, cfg.SMTPEnabled())
}
