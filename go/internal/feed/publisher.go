package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/genrevote/go/internal/tally"
)

// Config holds configuration for the NATS tally feed
type Config struct {
	URL           string
	Subject       string
	ConnectName   string
	Timeout       time.Duration
	MaxReconnects int
	ReconnectWait time.Duration
}

// DefaultConfig returns default feed configuration
func DefaultConfig() Config {
	return Config{
		URL:           nats.DefaultURL,
		Subject:       "genrevote.tally",
		ConnectName:   "genrevote",
		Timeout:       2 * time.Second,
		MaxReconnects: -1, // Infinite
		ReconnectWait: 2 * time.Second,
	}
}

// OptionVotes is one entry of a published tally.
type OptionVotes struct {
	Option string `json:"option"`
	Label  string `json:"label"`
	Votes  int    `json:"votes"`
}

// Message is the payload published for every confirmed tally.
type Message struct {
	Options     []OptionVotes `json:"options"`
	Total       int           `json:"total"`
	PublishedAt time.Time     `json:"published_at"`
}

// NewMessage converts a snapshot into the published payload, in catalogue order.
func NewMessage(s tally.Snapshot, at time.Time) (Message, error) {
	cat := s.Catalogue()
	if cat == nil {
		return Message{}, errors.New("snapshot has no catalogue")
	}

	msg := Message{
		Options:     make([]OptionVotes, 0, cat.Len()),
		Total:       s.Total(),
		PublishedAt: at.UTC(),
	}
	for _, opt := range cat.Options() {
		g, _ := cat.Genre(opt)
		msg.Options = append(msg.Options, OptionVotes{
			Option: opt.Name(),
			Label:  g.DisplayLabel(),
			Votes:  s.Count(opt),
		})
	}
	return msg, nil
}

// Conn is the part of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
	Close()
}

// Publisher mirrors confirmed tallies onto a NATS subject so other local
// consumers can follow the poll without their own WebSocket.
type Publisher struct {
	conn    Conn
	subject string
	now     func() time.Time
}

// Connect dials NATS and returns a publisher for cfg.Subject.
func Connect(cfg Config) (*Publisher, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectName),
		nats.Timeout(cfg.Timeout),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	log.Info().Str("url", nc.ConnectedUrl()).Str("subject", cfg.Subject).Msg("tally feed connected")
	return NewPublisher(nc, cfg.Subject), nil
}

// NewPublisher wraps an existing connection.
func NewPublisher(conn Conn, subject string) *Publisher {
	return &Publisher{conn: conn, subject: subject, now: time.Now}
}

// Render publishes s. It satisfies the client's Renderer interface.
func (p *Publisher) Render(s tally.Snapshot) error {
	msg, err := NewMessage(s, p.now())
	if err != nil {
		return err
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal tally: %w", err)
	}

	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish tally: %w", err)
	}

	log.Debug().Str("subject", p.subject).Int("total", msg.Total).Msg("tally published")
	return nil
}

// Close drops the NATS connection.
func (p *Publisher) Close() {
	log.Info().Msg("stopping tally feed")
	p.conn.Close()
}
