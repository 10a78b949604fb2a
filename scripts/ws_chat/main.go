package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/chatrelay/internal/core"
	"github.com/vovakirdan/chatrelay/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_chat: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/chat", "WebSocket address")
	sender := flag.String("sender", "cli-user", "name shown on sent messages")
	heartbeat := flag.Duration("heartbeat", 20*time.Second, "interval between heartbeat frames, 0 to disable")
	flag.Parse()

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	fmt.Printf("Connected to %s as %s\n", *addr, *sender)
	fmt.Println("Type messages and press Enter to send. Ctrl+C to exit.")

	go func() {
		defer cancel()
		readLoop(ctx, conn)
	}()
	if *heartbeat > 0 {
		go heartbeatLoop(ctx, conn, *heartbeat)
	}

	writeLoop(ctx, conn, *sender)

	stop()
	cancel()
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
	return nil
}

type frame struct {
	Type        string          `json:"type"`
	Destination string          `json:"destination"`
	Body        json.RawMessage `json:"body"`
	Error       *proto.Error    `json:"error"`
}

func readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		var f frame
		if err := wsjson.Read(ctx, conn, &f); err != nil {
			// Treat expected shutdowns quietly.
			if errors.Is(err, context.Canceled) {
				return
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			log.Printf("read error: %v", err)
			return
		}

		if f.Type == proto.OutboundTypeError && f.Error != nil {
			fmt.Printf("! %s: %s\n", f.Error.Code, f.Error.Msg)
			continue
		}

		switch f.Destination {
		case core.TopicMessages:
			var msg proto.ChatMessage
			if err := json.Unmarshal(f.Body, &msg); err != nil {
				log.Printf("unmarshal message: %v", err)
				continue
			}
			fmt.Printf("[%s] %s: %s\n", msg.Timestamp.Format(time.TimeOnly), msg.Sender, msg.Content)
		case core.TopicUserCount:
			fmt.Printf("* %s online\n", string(f.Body))
		default:
			fmt.Printf("type=%s destination=%s body=%s\n", f.Type, f.Destination, string(f.Body))
		}
	}
}

func heartbeatLoop(ctx context.Context, conn *websocket.Conn, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := wsjson.Write(ctx, conn, proto.Inbound{Type: proto.InboundTypeHeartbeat}); err != nil {
				return
			}
		}
	}
}

func writeLoop(ctx context.Context, conn *websocket.Conn, sender string) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}

			payload, err := json.Marshal(proto.SendData{Sender: sender, Content: text})
			if err != nil {
				log.Printf("marshal msg: %v", err)
				return
			}
			inbound := proto.Inbound{
				Type:        proto.InboundTypeSend,
				Destination: core.DestinationSendMessage,
				Body:        payload,
			}
			if err := wsjson.Write(ctx, conn, inbound); err != nil {
				log.Printf("send error: %v", err)
				return
			}
		}
	}
}
