package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/coder/websocket"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	nick := flag.String("nick", "tester", "nickname to register with")
	pass := flag.String("pass", "", "server password, if one is configured")
	channel := flag.String("channel", "#general", "channel to join")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(line string) error {
		if err := conn.Write(ctx, websocket.MessageText, []byte(line)); err != nil {
			return fmt.Errorf("send %q: %w", line, err)
		}
		return nil
	}

	var script []string
	if *pass != "" {
		script = append(script, "PASS "+*pass)
	}
	script = append(script,
		"NICK "+*nick,
		"USER "+*nick+" 0 * :smoke test",
		"JOIN "+*channel,
	)
	for _, line := range script {
		if err := send(line); err != nil {
			return err
		}
	}

	endOfNames := fmt.Sprintf("366 %s %s ", *nick, *channel)
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		line := string(data)
		fmt.Println("<-", line)

		switch {
		case strings.HasPrefix(line, "ERROR "):
			return nil
		case strings.HasPrefix(line, "4"), strings.HasPrefix(line, "5"):
			return fmt.Errorf("server rejected the session: %s", line)
		case strings.HasPrefix(line, endOfNames):
			if err := send("QUIT :smoke test done"); err != nil {
				return err
			}
		}
	}
}
