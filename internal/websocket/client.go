package websocket

import (
	"context"
	"time"

	ws "github.com/coder/websocket"
)

const (
	sendBufferSize = 16
	pingInterval   = 30 * time.Second
	writeTimeout   = 10 * time.Second
)

// Client is one signed-in relative subscribed to the event stream.
type Client struct {
	hub  *Hub
	conn *ws.Conn
	uid  string
	send chan []byte
}

func NewClient(hub *Hub, conn *ws.Conn, uid string) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		uid:  uid,
		send: make(chan []byte, sendBufferSize),
	}
}

// Run registers the client and writes hub events until the peer goes away,
// ctx ends or the hub drops the client.
func (c *Client) Run(ctx context.Context) {
	c.hub.Register(c)
	defer c.hub.Unregister(c)
	defer c.conn.CloseNow()

	// The stream is one-way. CloseRead handles control frames and cancels
	// ctx when the peer closes or sends a data frame.
	ctx = c.conn.CloseRead(ctx)

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				c.conn.Close(ws.StatusGoingAway, "")
				return
			}
			if err := c.write(ctx, msg); err != nil {
				return
			}
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := c.conn.Ping(pctx)
			cancel()
			if err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) write(ctx context.Context, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return c.conn.Write(ctx, ws.MessageText, msg)
}
