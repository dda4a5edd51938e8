package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWritesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, resolved, err := Load(nil, path)
	require.NoError(t, err)
	assert.Equal(t, path, resolved)
	assert.Equal(t, Default(), cfg)

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr, "default config should be written")
}

func TestLoadFileAndEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := []byte("irc_addr: \":7000\"\nserver_name: irc.example\nmax_channels: 3\nshutdown_timeout: 2s\nws_enabled: false\n")
	require.NoError(t, os.WriteFile(path, contents, 0o600))

	t.Setenv("WIRECHAT_MAX_CHANNELS", "7")

	cfg, _, err := Load(nil, path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.IRCAddr)
	assert.Equal(t, "irc.example", cfg.ServerName)
	assert.Equal(t, 7, cfg.MaxChannels, "env must win over file")
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.WSEnabled)
	assert.Equal(t, ":8080", cfg.HTTPAddr, "unset keys keep defaults")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.MaxLineBytes = 10
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.MaxChannels = 0
	assert.Error(t, cfg.Validate())
}

func TestUpdateFrom(t *testing.T) {
	cfg := Default()
	cfg.UpdateFrom(Config{IRCAddr: ":6697", LogLevel: "debug"})

	assert.Equal(t, ":6697", cfg.IRCAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
}
