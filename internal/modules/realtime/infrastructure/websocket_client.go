package infrastructure

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"bookingHub/internal/modules/realtime/domain"
)

const (
	pingInterval = 30 * time.Second
	readTimeout  = 60 * time.Second
	writeTimeout = 5 * time.Second
)

type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	id         string
	code       string
	commands   *CommandProcessor
	subscribed map[string]struct{}
	closeOnce  sync.Once
}

// NewClient creates a feed client. A non-empty code restricts the client to
// events about that reservation.
func NewClient(hub *Hub, conn *websocket.Conn, code string, buf int) *Client {
	client := &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, buf),
		id:         uuid.NewString(),
		code:       strings.TrimSpace(code),
		subscribed: make(map[string]struct{}),
	}
	client.commands = NewCommandProcessor(hub)
	return client
}

func (c *Client) ID() string { return c.id }

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

// SendDomainMessage queues msg for this client only.
func (c *Client) SendDomainMessage(msg *domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("websocket marshal error", slog.Any("error", err))
		return
	}
	c.hub.deliver(c, data)
}

func (c *Client) WritePump() {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				slog.Warn("websocket write error", slog.String("clientId", c.id), slog.Any("error", err))
				go c.hub.detachClient(c)
				return
			}
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				slog.Warn("websocket ping error", slog.String("clientId", c.id), slog.Any("error", err))
				go c.hub.detachClient(c)
				return
			}
		}
	}
}

func (c *Client) ReadPump() {
	c.conn.SetReadLimit(1 << 16)
	_ = c.conn.SetReadDeadline(time.Now().Add(readTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(readTimeout))
	})
	defer c.hub.detachClient(c)
	for {
		var cmd Command
		_ = c.conn.SetReadDeadline(time.Now().Add(readTimeout))
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("websocket read error", slog.String("clientId", c.id), slog.Any("error", err))
			}
			return
		}
		c.commands.Process(c, cmd)
	}
}
