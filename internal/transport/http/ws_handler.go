package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	stdhttp "net/http"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/chatrelay/internal/config"
	"github.com/vovakirdan/chatrelay/internal/core"
	"github.com/vovakirdan/chatrelay/internal/proto"
	"github.com/vovakirdan/chatrelay/internal/utils"
)

// SessionHub is the part of the core hub the transport talks to.
type SessionHub interface {
	Connect(s *core.Session) error
	Disconnect(s *core.Session) error
	Subscribe(s *core.Session, topic string) error
	Unsubscribe(s *core.Session, topic string) error
	Send(s *core.Session, msg core.ChatMessage) error
	Count() int
}

// WSHandler upgrades HTTP connections and bridges them to core sessions.
type WSHandler struct {
	hub SessionHub
	cfg config.Config
	log *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(hub SessionHub, cfg config.Config, logger *zerolog.Logger) stdhttp.Handler {
	return &WSHandler{hub: hub, cfg: cfg, log: logger}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.cfg.AllowedOrigins,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.CloseNow()

	if h.cfg.MaxMessageBytes > 0 {
		conn.SetReadLimit(h.cfg.MaxMessageBytes)
	}

	session := core.NewSession(utils.NewID(), h.cfg.SendBuffer)
	log := h.log.With().Str("session_id", session.ID).Logger()

	if err := h.hub.Connect(session); err != nil {
		log.Warn().Err(err).Msg("hub rejected session")
		conn.Close(websocket.StatusTryAgainLater, "server shutting down")
		return
	}
	defer func() {
		if err := h.hub.Disconnect(session); err != nil {
			log.Debug().Err(err).Msg("disconnect not delivered")
		}
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	limiter := newRateLimiter(h.cfg.RateLimitPerMinute)

	errCh := make(chan error, 3)
	go func() {
		errCh <- h.readLoop(ctx, conn, session, limiter, &log)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, session, &log)
	}()
	go func() {
		errCh <- heartbeatLoop(ctx, conn, h.cfg.HeartbeatOutgoing, h.cfg.DisconnectDelay)
	}()

	err = <-errCh

	status, reason := closeStatus(err)
	switch status {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
	case websocket.StatusMessageTooBig:
		log.Debug().Err(err).Msg("ws frame over read limit")
	default:
		log.Warn().Err(err).Msg("ws connection closed with error")
	}

	// Close before cancel: a cancelled read drops the socket without a close frame.
	conn.Close(status, reason)
	cancel()
	<-errCh
	<-errCh
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, session *core.Session, limiter *rateLimiter, log *zerolog.Logger) error {
	idle := readDeadline(h.cfg.HeartbeatIncoming, h.cfg.DisconnectDelay)

	// The idle timer closes with a status instead of expiring the read
	// context, which would drop the socket before the peer learns why.
	var expired atomic.Bool
	var idleTimer *time.Timer
	if idle > 0 {
		idleTimer = time.AfterFunc(idle, func() {
			expired.Store(true)
			conn.Close(websocket.StatusPolicyViolation, "heartbeat timeout")
		})
		defer idleTimer.Stop()
	}

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			if expired.Load() {
				return fmt.Errorf("read: %w", errHeartbeatTimeout)
			}
			return err
		}
		if idleTimer != nil {
			idleTimer.Reset(idle)
		}

		if typ != websocket.MessageText {
			h.reject(session, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "binary frames are not supported"}, log)
			continue
		}

		inbound, protoErr := decodeInbound(data)
		if protoErr != nil {
			h.reject(session, protoErr, log)
			continue
		}

		if err := h.dispatch(session, inbound, limiter, log); err != nil {
			return err
		}
	}
}

// dispatch forwards a valid frame to the hub. Only hub failures are returned;
// client mistakes are answered with an error frame.
func (h *WSHandler) dispatch(session *core.Session, inbound proto.Inbound, limiter *rateLimiter, log *zerolog.Logger) error {
	switch inbound.Type {
	case proto.InboundTypeSend:
		msg, protoErr := chatMessageFromSend(inbound)
		if protoErr != nil {
			h.reject(session, protoErr, log)
			return nil
		}
		if !limiter.allow() {
			h.reject(session, &proto.Error{Code: core.ErrCodeRateLimited, Msg: "too many messages"}, log)
			return nil
		}
		return h.hub.Send(session, msg)
	case proto.InboundTypeSubscribe:
		return h.hub.Subscribe(session, inbound.Destination)
	case proto.InboundTypeUnsubscribe:
		return h.hub.Unsubscribe(session, inbound.Destination)
	case proto.InboundTypeHeartbeat:
		return nil
	default:
		h.reject(session, &proto.Error{Code: core.ErrCodeInvalidMessage, Msg: "unknown message type"}, log)
		return nil
	}
}

func (h *WSHandler) reject(session *core.Session, protoErr *proto.Error, log *zerolog.Logger) {
	log.Warn().Str("code", protoErr.Code).Str("reason", protoErr.Msg).Msg("inbound frame rejected")
	if !session.Deliver(errorDelivery(protoErr)) {
		log.Debug().Msg("error frame dropped")
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, session *core.Session, log *zerolog.Logger) error {
	for {
		select {
		case d := <-session.Outbox:
			writeCtx, cancel := context.WithTimeout(ctx, h.writeTimeout())
			err := wsjson.Write(writeCtx, conn, outboundFromDelivery(d))
			cancel()
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.Error().Err(err).Msg("write ws frame")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (h *WSHandler) writeTimeout() time.Duration {
	if h.cfg.DisconnectDelay > 0 {
		return h.cfg.DisconnectDelay
	}
	return 5 * time.Second
}

// closeStatus maps the error that ended a session onto a websocket close code.
func closeStatus(err error) (websocket.StatusCode, string) {
	switch {
	case err == nil, errors.Is(err, context.Canceled), errors.Is(err, io.EOF):
		return websocket.StatusNormalClosure, "closing"
	case errors.Is(err, errHeartbeatTimeout):
		return websocket.StatusPolicyViolation, "heartbeat timeout"
	case errors.Is(err, core.ErrHubStopped):
		return websocket.StatusGoingAway, "server shutting down"
	case errors.Is(err, websocket.ErrMessageTooBig):
		return websocket.StatusMessageTooBig, "message too big"
	}

	switch s := websocket.CloseStatus(err); s {
	case -1:
		return websocket.StatusInternalError, "internal error"
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return s, "closing"
	default:
		return s, err.Error()
	}
}
