package voteclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

var (
	ErrConnectionClosed = errors.New("connection closed")
	ErrSendBufferFull   = errors.New("send buffer full")
)

type eventKind int

const (
	eventMessage eventKind = iota
	eventError
	eventClose
)

// event is one inbound occurrence on a connection, consumed by the client's dispatcher.
type event struct {
	kind eventKind
	conn *Connection
	data []byte
	err  error
}

// Connection is one WebSocket to the results service. It is created per
// connect attempt and never reused.
type Connection struct {
	ID          string
	URL         string
	ConnectedAt time.Time

	conn   *websocket.Conn
	send   chan []byte
	emit   func(event)
	config ConnectionConfig
	clock  clockwork.Clock

	done      chan struct{}
	closeOnce sync.Once

	mu       sync.Mutex
	lastPong time.Time
}

// dial opens the WebSocket. The pumps are not started until start is called.
func dial(ctx context.Context, dialer *websocket.Dialer, endpoint string, header http.Header, config ConnectionConfig, clock clockwork.Clock, emit func(event)) (*Connection, error) {
	conn, resp, err := dialer.DialContext(ctx, endpoint, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("failed to dial %s (status %d): %w", endpoint, resp.StatusCode, err)
		}
		return nil, fmt.Errorf("failed to dial %s: %w", endpoint, err)
	}

	sendBuffer := config.SendBufferSize
	if sendBuffer <= 0 {
		sendBuffer = 1
	}

	now := clock.Now()
	return &Connection{
		ID:          uuid.New().String(),
		URL:         endpoint,
		ConnectedAt: now,
		conn:        conn,
		send:        make(chan []byte, sendBuffer),
		emit:        emit,
		config:      config,
		clock:       clock,
		done:        make(chan struct{}),
		lastPong:    now,
	}, nil
}

func (c *Connection) start() {
	go c.writePump()
	go c.readPump()
}

// Send queues a text frame without blocking.
func (c *Connection) Send(data []byte) error {
	select {
	case <-c.done:
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- data:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// Close asks the writer to send a close frame and tear the socket down.
func (c *Connection) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
	})
	return nil
}

// LastPong returns when the server last answered a ping.
func (c *Connection) LastPong() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastPong
}

func (c *Connection) closing() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// writePump handles sending messages to the WebSocket connection
func (c *Connection) writePump() {
	ticker := c.clock.NewTicker(c.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(c.clock.Now().Add(c.config.WriteTimeout))
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			if err := c.conn.WriteMessage(websocket.CloseMessage, msg); err != nil {
				log.Debug().Err(err).Str("connection_id", c.ID).Msg("failed to send close frame")
			}
			return

		case message := <-c.send:
			c.conn.SetWriteDeadline(c.clock.Now().Add(c.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("failed to write message to WebSocket")
				c.emit(event{kind: eventError, conn: c, err: fmt.Errorf("write: %w", err)})
				return
			}

		case <-ticker.Chan():
			c.conn.SetWriteDeadline(c.clock.Now().Add(c.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("failed to send ping")
				c.emit(event{kind: eventError, conn: c, err: fmt.Errorf("ping: %w", err)})
				return
			}
		}
	}
}

// readPump turns inbound frames into events until the socket fails or closes
func (c *Connection) readPump() {
	var closeErr error
	defer func() {
		c.Close()
		c.conn.Close()
		c.emit(event{kind: eventClose, conn: c, err: closeErr})
	}()

	c.conn.SetReadLimit(c.config.MaxMessageSize)
	c.conn.SetReadDeadline(c.clock.Now().Add(c.config.ReadTimeout))
	c.conn.SetPongHandler(func(string) error {
		now := c.clock.Now()
		c.conn.SetReadDeadline(now.Add(c.config.ReadTimeout))
		c.mu.Lock()
		c.lastPong = now
		c.mu.Unlock()
		return nil
	})

	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			if c.closing() {
				log.Debug().Err(err).Str("connection_id", c.ID).Msg("connection closed locally")
			} else if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("unexpected WebSocket close error")
				c.emit(event{kind: eventError, conn: c, err: err})
			}
			closeErr = err
			return
		}

		if messageType != websocket.TextMessage {
			log.Debug().Str("connection_id", c.ID).Int("type", messageType).Msg("ignoring non-text frame")
		} else {
			c.emit(event{kind: eventMessage, conn: c, data: message})
		}
		c.conn.SetReadDeadline(c.clock.Now().Add(c.config.ReadTimeout))
	}
}
