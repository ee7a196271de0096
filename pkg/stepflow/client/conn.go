// Package client connects a session to a workflow runner over a
// message-oriented transport.
package client

import (
	"context"

	"github.com/coder/websocket"
)

// Conn is a message-oriented transport carrying one JSON document per
// frame. Implementations must support one concurrent reader and one
// concurrent writer.
type Conn interface {
	// Read blocks until the next frame arrives.
	Read(ctx context.Context) ([]byte, error)

	// Write sends one frame.
	Write(ctx context.Context, data []byte) error

	// Close shuts the transport down.
	Close() error
}

// wsConn adapts a WebSocket connection to Conn.
type wsConn struct {
	conn *websocket.Conn
}

// Dial opens a WebSocket connection to the runner.
func Dial(ctx context.Context, url string) (Conn, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return &wsConn{conn: conn}, nil
}

func (c *wsConn) Read(ctx context.Context) ([]byte, error) {
	_, data, err := c.conn.Read(ctx)
	return data, err
}

func (c *wsConn) Write(ctx context.Context, data []byte) error {
	return c.conn.Write(ctx, websocket.MessageText, data)
}

func (c *wsConn) Close() error {
	return c.conn.Close(websocket.StatusNormalClosure, "")
}
