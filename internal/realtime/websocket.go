package realtime

import (
	"context"
	"fmt"

	"golang.org/x/net/websocket"
)

// Conn is one open socket carrying text frames.
type Conn interface {
	Receive() ([]byte, error)
	Send(frame []byte) error
	Close() error
}

// Dialer opens a Conn to url.
type Dialer interface {
	Dial(ctx context.Context, url, origin string) (Conn, error)
}

// WebsocketDialer dials with golang.org/x/net/websocket.
type WebsocketDialer struct{}

// Dial performs the handshake.
func (WebsocketDialer) Dial(ctx context.Context, url, origin string) (Conn, error) {
	cfg, err := websocket.NewConfig(url, origin)
	if err != nil {
		return nil, fmt.Errorf("websocket config: %w", err)
	}
	ws, err := cfg.DialContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("websocket dial: %w", err)
	}
	return &wsConn{ws: ws}, nil
}

type wsConn struct {
	ws *websocket.Conn
}

func (c *wsConn) Receive() ([]byte, error) {
	var msg string
	if err := websocket.Message.Receive(c.ws, &msg); err != nil {
		return nil, err
	}
	return []byte(msg), nil
}

func (c *wsConn) Send(frame []byte) error {
	return websocket.Message.Send(c.ws, string(frame))
}

func (c *wsConn) Close() error { return c.ws.Close() }
