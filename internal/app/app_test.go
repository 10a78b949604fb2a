package app

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/chatrelay/internal/config"
)

func TestRunStopsOnContextCancel(t *testing.T) {
	req := require.New(t)
	logger := zerolog.Nop()
	cfg := config.Default()
	cfg.Addr = "127.0.0.1:0"
	cfg.ShutdownTimeout = time.Second

	application := New(cfg, &logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunReturnsListenError(t *testing.T) {
	logger := zerolog.Nop()
	cfg := config.Default()
	cfg.Addr = "256.0.0.1:bad"

	err := New(cfg, &logger).Run(context.Background())
	require.Error(t, err)
}
