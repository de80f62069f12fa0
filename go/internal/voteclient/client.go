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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/genrevote/go/internal/cache"
	"github.com/mcdev12/genrevote/go/internal/catalogue"
	"github.com/mcdev12/genrevote/go/internal/protocol"
	"github.com/mcdev12/genrevote/go/internal/tally"
)

var (
	ErrUnknownOption    = errors.New("unknown option")
	ErrAlreadyVoted     = errors.New("already voted this session")
	ErrVotePending      = errors.New("vote awaiting confirmation")
	ErrNotConnected     = errors.New("not connected")
	ErrAlreadyConnected = errors.New("already connected")
	ErrClientClosed     = errors.New("client closed")
)

const cacheWriteTimeout = 5 * time.Second

// Renderer draws a tally snapshot. Errors are logged by the client, never fatal.
type Renderer interface {
	Render(tally.Snapshot) error
}

// Client is one voting session against the results service. It enforces a
// single vote per session and keeps a local snapshot in sync with the tallies
// the service broadcasts.
//
// Inbound events from the connection are handled one at a time by a single
// dispatcher goroutine. SubmitVote may be called from any goroutine.
type Client struct {
	id       string
	cfg      Config
	cat      *catalogue.Catalogue
	dialer   *websocket.Dialer
	clock    clockwork.Clock
	store    cache.Store
	renderer Renderer
	notifier Notifier
	log      zerolog.Logger

	mu         sync.Mutex
	conn       *Connection
	connecting bool
	closed     bool
	voted      bool
	pending    catalogue.Option
	snapshot   tally.Snapshot
	question   string

	events    chan event
	quit      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithStore sets the cache holding the last confirmed tally.
func WithStore(store cache.Store) ClientOption {
	return func(c *Client) { c.store = store }
}

// WithRenderer sets the renderer invoked on every snapshot change.
func WithRenderer(r Renderer) ClientOption {
	return func(c *Client) { c.renderer = r }
}

// WithNotifier sets the receiver of user-facing notices.
func WithNotifier(n Notifier) ClientOption {
	return func(c *Client) { c.notifier = n }
}

// WithClock replaces the real clock, for tests.
func WithClock(clock clockwork.Clock) ClientOption {
	return func(c *Client) { c.clock = clock }
}

// WithCookieJar makes the dialer present cookies from jar, e.g. the voter id.
func WithCookieJar(jar http.CookieJar) ClientOption {
	return func(c *Client) { c.dialer.Jar = jar }
}

// New creates a client for cat. The session starts Disconnected.
func New(cfg Config, cat *catalogue.Catalogue, opts ...ClientOption) *Client {
	id := uuid.New().String()
	c := &Client{
		id:  id,
		cfg: cfg,
		cat: cat,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: cfg.Connection.HandshakeTimeout,
			ReadBufferSize:   cfg.Connection.ReadBufferSize,
			WriteBufferSize:  cfg.Connection.WriteBufferSize,
		},
		clock:    clockwork.NewRealClock(),
		store:    cache.NewMemoryStore(),
		notifier: discardNotifier{},
		log:      log.With().Str("session_id", id).Logger(),
		snapshot: tally.Empty(cat),
		events:   make(chan event, 64),
		quit:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.wg.Add(1)
	go c.dispatch()

	return c
}

// ID returns the session id used in logs.
func (c *Client) ID() string { return c.id }

// Catalogue returns the catalogue the session votes on.
func (c *Client) Catalogue() *catalogue.Catalogue { return c.cat }

// State returns the current session state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Client) stateLocked() State {
	switch {
	case c.conn != nil && c.voted:
		return StateConnectedVoted
	case c.conn != nil:
		return StateConnectedNotVoted
	case c.connecting:
		return StateConnecting
	default:
		return StateDisconnected
	}
}

// AlreadyVoted reports whether the service confirmed a vote for this session.
func (c *Client) AlreadyVoted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.voted
}

// Pending returns the option of a sent vote that has not been confirmed yet.
func (c *Client) Pending() (catalogue.Option, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending, !c.pending.IsZero()
}

// Snapshot returns the latest tally.
func (c *Client) Snapshot() tally.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// Question returns the poll question announced by the service, if any.
func (c *Client) Question() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.question
}

// LoadCached pre-populates the snapshot from the cache and renders it. A cached
// array that does not line up with the catalogue is discarded.
func (c *Client) LoadCached(ctx context.Context) error {
	counts, err := c.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load cached tally: %w", err)
	}
	if counts == nil {
		return nil
	}

	snap, err := tally.FromCounts(c.cat, counts)
	if err != nil {
		c.log.Warn().Err(err).Ints("counts", counts).Msg("discarding cached tally")
		return nil
	}

	c.mu.Lock()
	c.snapshot = snap
	c.mu.Unlock()

	c.log.Debug().Int("total", snap.Total()).Msg("loaded cached tally")
	c.render(snap)
	return nil
}

// Connect opens the transport to the configured endpoint. A failure leaves the
// session Disconnected, produces a not-connected notice and is returned for
// logging. Connecting again after a disconnect keeps the session's vote state.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClientClosed
	}
	if c.conn != nil || c.connecting {
		c.mu.Unlock()
		return ErrAlreadyConnected
	}
	c.connecting = true
	c.mu.Unlock()

	c.log.Info().Str("url", c.cfg.URL).Msg("connecting to results service")

	conn, err := dial(ctx, c.dialer, c.cfg.URL, nil, c.cfg.Connection, c.clock, c.emit)

	c.mu.Lock()
	c.connecting = false
	if err != nil {
		c.mu.Unlock()
		c.log.Error().Err(err).Str("url", c.cfg.URL).Msg("failed to connect to results service")
		c.notify(NoticeNotConnected, "not connected to the results service")
		return err
	}
	if c.closed {
		c.mu.Unlock()
		conn.conn.Close()
		return ErrClientClosed
	}
	c.conn = conn
	state := c.stateLocked()
	c.mu.Unlock()

	conn.start()

	c.log.Info().
		Str("connection_id", conn.ID).
		Str("state", state.String()).
		Msg("connected to results service")
	c.notify(NoticeConnected, "connected to the results service")
	return nil
}

// Vote resolves free-form input such as "axé" and submits it.
func (c *Client) Vote(input string) error {
	opt, _ := c.cat.Resolve(input)
	return c.submit(opt, input)
}

// SubmitVote sends a vote for opt. At most one vote request is sent per
// session: once a vote is pending or confirmed, further calls are rejected
// locally. The local tally is never incremented here; it only changes when
// the service broadcasts new results.
func (c *Client) SubmitVote(opt catalogue.Option) error {
	return c.submit(opt, opt.Name())
}

func (c *Client) submit(opt catalogue.Option, input string) error {
	c.mu.Lock()

	switch {
	case c.voted:
		c.mu.Unlock()
		c.notify(NoticeAlreadyVoted, "you have already voted in this poll")
		return ErrAlreadyVoted

	case !c.pending.IsZero():
		pending := c.pending
		c.mu.Unlock()
		c.notify(NoticeVotePending, fmt.Sprintf("your vote for %s is awaiting confirmation", pending.Name()))
		return ErrVotePending

	case !c.cat.Contains(opt):
		c.mu.Unlock()
		c.notify(NoticeUnknownOption, fmt.Sprintf("%q is not an option in this poll", input))
		return fmt.Errorf("%w: %q", ErrUnknownOption, input)

	case c.conn == nil:
		c.mu.Unlock()
		c.notify(NoticeNotConnected, "not connected to the results service")
		return ErrNotConnected
	}

	data, err := protocol.NewVoteRequest(opt.Name()).Encode()
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("failed to encode vote: %w", err)
	}

	conn := c.conn
	if err := conn.Send(data); err != nil {
		c.mu.Unlock()
		c.log.Error().Err(err).Str("connection_id", conn.ID).Msg("failed to queue vote")
		c.notify(NoticeSendFailed, "your vote could not be sent")
		return fmt.Errorf("failed to send vote: %w", err)
	}
	c.pending = opt
	c.mu.Unlock()

	c.log.Info().
		Str("connection_id", conn.ID).
		Str("option", opt.Name()).
		Msg("vote sent")
	return nil
}

// HandleMessage applies one inbound payload. Malformed or unknown payloads are ignored.
func (c *Client) HandleMessage(raw []byte) {
	msg, err := protocol.Decode(raw)
	if err != nil {
		c.log.Debug().Err(err).Int("size", len(raw)).Msg("ignoring inbound message")
		return
	}

	switch m := msg.(type) {
	case protocol.ResultsUpdated:
		c.handleResults(m)

	case protocol.VoteRegistered:
		c.mu.Lock()
		c.voted = true
		c.pending = catalogue.Option{}
		c.mu.Unlock()

		c.log.Info().Str("option", m.Option).Msg("vote registered")
		text := m.Message
		if text == "" {
			text = "your vote was registered"
		}
		c.notify(NoticeVoteConfirmed, text)

	case protocol.ErrorMessage:
		c.log.Warn().Str("message", m.Message).Msg("results service reported an error")
		c.notify(NoticeServerError, m.Message)

	case protocol.CurrentPoll:
		c.handleCurrentPoll(m.Poll)
	}
}

func (c *Client) handleResults(m protocol.ResultsUpdated) {
	snap, report := tally.FromResults(c.cat, m.Options)
	if len(report.Unmatched) > 0 || len(report.Clamped) > 0 {
		c.log.Warn().
			Strs("unmatched", report.Unmatched).
			Strs("clamped", report.Clamped).
			Msg("results did not line up with the catalogue")
	}

	c.mu.Lock()
	c.snapshot = snap
	if m.Question != "" {
		c.question = m.Question
	}
	markedVoted := false
	if m.AlreadyVoted != nil && *m.AlreadyVoted && !c.voted {
		c.voted = true
		c.pending = catalogue.Option{}
		markedVoted = true
	}
	c.mu.Unlock()

	c.log.Debug().Int("total", snap.Total()).Msg("results updated")
	c.render(snap)
	c.persist(snap)

	if markedVoted {
		c.notify(NoticeAlreadyVoted, "you have already voted in this poll")
	}
}

func (c *Client) handleCurrentPoll(poll protocol.Poll) {
	c.mu.Lock()
	if poll.Question != "" {
		c.question = poll.Question
	}
	c.mu.Unlock()

	var unknown []string
	served := make(map[string]bool, len(poll.Options))
	for _, name := range poll.Options {
		served[name] = true
		if _, ok := c.cat.Lookup(name); !ok {
			unknown = append(unknown, name)
		}
	}
	var missing []string
	for _, name := range c.cat.Names() {
		if !served[name] {
			missing = append(missing, name)
		}
	}

	if len(unknown) > 0 || len(missing) > 0 {
		c.log.Warn().
			Str("poll_id", poll.ID).
			Strs("unknown_to_catalogue", unknown).
			Strs("missing_from_poll", missing).
			Msg("poll options differ from the catalogue")
		return
	}
	c.log.Info().Str("poll_id", poll.ID).Str("question", poll.Question).Msg("poll announced")
}

// Close tears the session down. It is safe to call more than once.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		conn := c.conn
		c.mu.Unlock()

		if conn != nil {
			conn.Close()
		}
		close(c.quit)
		c.wg.Wait()

		c.mu.Lock()
		c.conn = nil
		c.mu.Unlock()

		c.log.Info().Msg("vote session closed")
	})
	return nil
}

// emit hands an event to the dispatcher, dropping it once the client is closed.
func (c *Client) emit(ev event) {
	select {
	case c.events <- ev:
	case <-c.quit:
	}
}

func (c *Client) dispatch() {
	defer c.wg.Done()

	for {
		select {
		case <-c.quit:
			return
		case ev := <-c.events:
			c.handleEvent(ev)
		}
	}
}

func (c *Client) handleEvent(ev event) {
	switch ev.kind {
	case eventMessage:
		c.HandleMessage(ev.data)

	case eventError:
		c.log.Error().Err(ev.err).Str("connection_id", ev.conn.ID).Msg("transport error")

	case eventClose:
		c.mu.Lock()
		current := c.conn == ev.conn
		if current {
			c.conn = nil
		}
		closed := c.closed
		c.mu.Unlock()

		if !current {
			return
		}
		c.log.Info().Err(ev.err).Str("connection_id", ev.conn.ID).Msg("disconnected from results service")
		if !closed {
			c.notify(NoticeDisconnected, "disconnected from the results service")
		}
	}
}

func (c *Client) render(snap tally.Snapshot) {
	if c.renderer == nil {
		return
	}
	if err := c.renderer.Render(snap); err != nil {
		c.log.Error().Err(err).Msg("failed to render tally")
	}
}

func (c *Client) persist(snap tally.Snapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheWriteTimeout)
	defer cancel()

	if err := c.store.Save(ctx, snap.Counts()); err != nil {
		c.log.Error().Err(err).Msg("failed to cache tally")
	}
}

func (c *Client) notify(kind NoticeKind, text string) {
	c.notifier.Notify(Notice{Kind: kind, Text: text, At: c.clock.Now()})
}
