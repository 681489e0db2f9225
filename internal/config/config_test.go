package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValidConfig(t *testing.T) {
	t.Parallel()

	// Create a temp config file
	content := `
server:
  host: "127.0.0.1"
  port: 9090
  max_connections: 5000

redis:
  addr: "redis:6379"
  password: "secret"
  db: 1

room:
  max_players: 4
  room_ttl: 12
  sweep_interval: 10

security:
  allowed_origins:
    - "http://localhost:3000"
    - "https://example.com"
  rate_limit:
    max_per_second: 20
    max_per_minute: 120
    ban_duration: 120
  message_limit:
    max_per_second: 50
  chat_limit:
    max_per_second: 2
    max_per_minute: 60
    cooldown: 10
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configPath, []byte(content), 0o600)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Verify loaded values
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5000, cfg.Server.MaxConnections)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "secret", cfg.Redis.Password)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.Equal(t, 4, cfg.Room.MaxPlayers)
	assert.Equal(t, 12*time.Hour, cfg.Room.RoomTTLDuration())
	assert.Equal(t, 10*time.Minute, cfg.Room.SweepIntervalDuration())
	assert.Len(t, cfg.Security.AllowedOrigins, 2)
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	cfg, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configPath, []byte("server: [not a map"), 0o600)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configPath, []byte("server:\n  port: 1234\n"), 0o600)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 1234, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8, cfg.Room.MaxPlayers)
	assert.Equal(t, 24*time.Hour, cfg.Room.RoomTTLDuration())
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 8, cfg.Room.MaxPlayers)
	assert.Equal(t, 5*time.Minute, cfg.Room.SweepIntervalDuration())
	assert.Equal(t, 30, cfg.Security.MessageLimit.MaxPerSecond)
}
