package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default configuration", func(t *testing.T) {
		cfg, err := Load()

		assert.NoError(t, err)
		assert.NotNil(t, cfg)

		// Check server defaults
		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, 5000, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Server.Mode)
		assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)

		// Check model defaults
		assert.Equal(t, "public/models", cfg.Model.Dir)
		assert.Equal(t, "vectorizer.json", cfg.Model.VectorizerFile)
		assert.Equal(t, "model.json", cfg.Model.ClassifierFile)
		assert.Equal(t, "model_metadata.json", cfg.Model.MetadataFile)
		assert.Equal(t, "1.0", cfg.Model.Version)

		// Check database defaults
		assert.False(t, cfg.Database.Enabled)
		assert.Equal(t, DriverPostgres, cfg.Database.Driver)
		assert.Equal(t, "spamguard.db", cfg.Database.Path)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "spamguard", cfg.Database.User)
		assert.Equal(t, "disable", cfg.Database.SSLMode)

		// Check redis defaults
		assert.False(t, cfg.Redis.Enabled)
		assert.Equal(t, "localhost", cfg.Redis.Host)
		assert.Equal(t, 6379, cfg.Redis.Port)
		assert.Equal(t, 0, cfg.Redis.DB)
		assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)

		// Check log defaults
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)

		assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
	})

	t.Run("reads from environment variables", func(t *testing.T) {
		t.Setenv("SPAMGUARD_SERVER_PORT", "9090")
		t.Setenv("SPAMGUARD_MODEL_DIR", "/srv/models")
		t.Setenv("SPAMGUARD_REDIS_ENABLED", "true")
		t.Setenv("SPAMGUARD_LOG_LEVEL", "debug")
		t.Setenv("SPAMGUARD_DATABASE_DRIVER", "sqlite")

		cfg, err := Load()

		assert.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "/srv/models", cfg.Model.Dir)
		assert.True(t, cfg.Redis.Enabled)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	})
}

func TestLoadFile(t *testing.T) {
	t.Run("reads yaml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "server:\n  port: 7070\nmodel:\n  dir: ./artifacts\n  version: \"2.1\"\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := LoadFile(path)

		require.NoError(t, err)
		assert.Equal(t, 7070, cfg.Server.Port)
		assert.Equal(t, "./artifacts", cfg.Model.Dir)
		assert.Equal(t, "2.1", cfg.Model.Version)
		assert.Equal(t, "model.json", cfg.Model.ClassifierFile)
	})

	t.Run("env overrides file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 7070\n"), 0o644))
		t.Setenv("SPAMGUARD_SERVER_PORT", "6060")

		cfg, err := LoadFile(path)

		require.NoError(t, err)
		assert.Equal(t, 6060, cfg.Server.Port)
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestServerConfig_Addr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 5000}
	assert.Equal(t, "127.0.0.1:5000", s.Addr())
}
