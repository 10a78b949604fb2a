package http

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coder/websocket"
)

var errHeartbeatTimeout = errors.New("heartbeat timeout")

// heartbeatLoop pings the peer every interval and fails when a pong does not
// arrive within grace. It returns nil on ctx cancellation.
func heartbeatLoop(ctx context.Context, conn *websocket.Conn, interval, grace time.Duration) error {
	if interval <= 0 {
		<-ctx.Done()
		return nil
	}
	if grace <= 0 {
		grace = interval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, grace)
			err := conn.Ping(pingCtx)
			cancel()
			if err == nil {
				continue
			}
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, context.DeadlineExceeded) {
				return fmt.Errorf("ping: %w", errHeartbeatTimeout)
			}
			return fmt.Errorf("ping: %w", err)
		}
	}
}

// readDeadline returns how long a read may idle before the peer is considered gone.
func readDeadline(incoming, grace time.Duration) time.Duration {
	if incoming <= 0 {
		return 0
	}
	return incoming + grace
}
