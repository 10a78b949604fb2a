package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadWritesDefaultConfigWhenMissing(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, resolved, err := Load(nil, path)
	req.NoError(err)
	req.Equal(path, resolved)
	req.Equal(Default(), cfg)

	_, statErr := os.Stat(path)
	req.NoError(statErr)

	// The written file must round-trip to the same values.
	again, _, err := Load(nil, path)
	req.NoError(err)
	req.Equal(cfg, again)
}

func TestLoadReadsFileValues(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("addr: \":9090\"\nheartbeat_outgoing: 10s\ndisconnect_delay: 2s\nallowed_origins:\n  - example.com\n")
	req.NoError(os.WriteFile(path, content, 0o600))

	cfg, _, err := Load(nil, path)
	req.NoError(err)
	req.Equal(":9090", cfg.Addr)
	req.Equal(10*time.Second, cfg.HeartbeatOutgoing)
	req.Equal(2*time.Second, cfg.DisconnectDelay)
	req.Equal([]string{"example.com"}, cfg.AllowedOrigins)
	req.Equal(25*time.Second, cfg.HeartbeatIncoming)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	req.NoError(os.WriteFile(path, []byte("addr: \":9090\"\n"), 0o600))
	t.Setenv("CHATRELAY_ADDR", ":7070")
	t.Setenv("CHATRELAY_SEND_BUFFER", "8")

	cfg, _, err := Load(nil, path)
	req.NoError(err)
	req.Equal(":7070", cfg.Addr)
	req.Equal(8, cfg.SendBuffer)
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	req.NoError(os.WriteFile(path, []byte("addr: [unterminated\n"), 0o600))

	_, _, err := Load(nil, path)
	req.Error(err)
}

func TestUpdateFromOverridesNonZero(t *testing.T) {
	req := require.New(t)
	cfg := Default()

	cfg.UpdateFrom(Config{Addr: ":1234", LogLevel: "debug"})

	req.Equal(":1234", cfg.Addr)
	req.Equal("debug", cfg.LogLevel)
	req.Equal(Default().HeartbeatOutgoing, cfg.HeartbeatOutgoing)
}
