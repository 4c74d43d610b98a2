package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/chat-relay-backend/internal/core/domain"
)

func TestParseContactSeed(t *testing.T) {
	t.Run("parses id address pairs", func(t *testing.T) {
		seed, err := parseContactSeed("cust-1:+15550001111, cust-2:+15550002222")
		require.NoError(t, err)
		assert.Equal(t, []domain.ContactIdentity{
			{ContactID: "cust-1", Address: "+15550001111"},
			{ContactID: "cust-2", Address: "+15550002222"},
		}, seed)
	})

	t.Run("empty value means no seed", func(t *testing.T) {
		seed, err := parseContactSeed("")
		require.NoError(t, err)
		assert.Nil(t, seed)
	})

	t.Run("trailing comma is tolerated", func(t *testing.T) {
		seed, err := parseContactSeed("cust-1:+15550001111,")
		require.NoError(t, err)
		assert.Len(t, seed, 1)
	})

	t.Run("entry without address is rejected", func(t *testing.T) {
		_, err := parseContactSeed("cust-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CONTACT_SEED")
	})
}

func TestConfigValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			WhatsApp: WhatsAppConfig{VerifyToken: "secret"},
			App:      AppConfig{Environment: "development"},
			Database: DatabaseConfig{MaxOpenConns: 10, MaxIdleConns: 2},
		}
	}

	t.Run("valid development config", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("verify token is always required", func(t *testing.T) {
		cfg := base()
		cfg.WhatsApp.VerifyToken = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "WHATSAPP_VERIFY_TOKEN")
	})

	t.Run("production needs access token and origins", func(t *testing.T) {
		cfg := base()
		cfg.App.Environment = "production"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "WHATSAPP_ACCESS_TOKEN")
		assert.Contains(t, err.Error(), "WS_ALLOWED_ORIGINS")
	})

	t.Run("idle connections cannot exceed open connections", func(t *testing.T) {
		cfg := base()
		cfg.Database.MaxIdleConns = 20
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_MAX_IDLE_CONNS")
	})
}

func TestConfigStringRedactsSecrets(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Port: ":8080"},
		Database: DatabaseConfig{URL: "postgres://user:pass@db:5432/app"},
		App:      AppConfig{Environment: "development"},
	}

	s := cfg.String()
	assert.NotContains(t, s, "pass")
	assert.Contains(t, s, "[REDACTED]")
}
