package voteclient

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/genrevote/go/internal/catalogue"
	"github.com/mcdev12/genrevote/go/internal/tally"
)

// fakeService is a minimal results service that records what clients send.
type fakeService struct {
	t        *testing.T
	srv      *httptest.Server
	upgrader websocket.Upgrader

	// onConnect runs before the read loop starts; it may write to conn.
	onConnect func(r *http.Request, conn *websocket.Conn)

	mu       sync.Mutex
	received []string
	cookies  []string

	conns   chan *websocket.Conn
	handled chan struct{}
}

func newFakeService(t *testing.T) *fakeService {
	t.Helper()
	fs := &fakeService{
		t:       t,
		conns:   make(chan *websocket.Conn, 4),
		handled: make(chan struct{}, 4),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", fs.handleWS)
	mux.HandleFunc(VoterIDPath, func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: VoterCookie, Value: "issued-id", Path: "/", HttpOnly: true})
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"usuario_id":"issued-id"}`))
	})

	fs.srv = httptest.NewServer(mux)
	t.Cleanup(fs.srv.Close)
	return fs
}

func (fs *fakeService) handleWS(w http.ResponseWriter, r *http.Request) {
	defer func() { fs.handled <- struct{}{} }()

	conn, err := fs.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	if c, err := r.Cookie(VoterCookie); err == nil {
		fs.mu.Lock()
		fs.cookies = append(fs.cookies, c.Value)
		fs.mu.Unlock()
	}

	if fs.onConnect != nil {
		fs.onConnect(r, conn)
	}
	fs.conns <- conn

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		fs.mu.Lock()
		fs.received = append(fs.received, string(msg))
		fs.mu.Unlock()
	}
}

func (fs *fakeService) url() string {
	return "ws" + strings.TrimPrefix(fs.srv.URL, "http") + "/ws"
}

func (fs *fakeService) messages() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	out := make([]string, len(fs.received))
	copy(out, fs.received)
	return out
}

func (fs *fakeService) voterCookies() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	out := make([]string, len(fs.cookies))
	copy(out, fs.cookies)
	return out
}

// nextConn returns the server side of the next accepted connection.
func (fs *fakeService) nextConn() *websocket.Conn {
	fs.t.Helper()
	select {
	case conn := <-fs.conns:
		return conn
	case <-time.After(2 * time.Second):
		fs.t.Fatal("no connection accepted")
		return nil
	}
}

// waitHandled blocks until a server handler has returned.
func (fs *fakeService) waitHandled() {
	fs.t.Helper()
	select {
	case <-fs.handled:
	case <-time.After(2 * time.Second):
		fs.t.Fatal("server handler did not finish")
	}
}

type noticeRecorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *noticeRecorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *noticeRecorder) kinds() []NoticeKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]NoticeKind, len(r.notices))
	for i, n := range r.notices {
		out[i] = n.Kind
	}
	return out
}

func (r *noticeRecorder) last() Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}
	}
	return r.notices[len(r.notices)-1]
}

func (r *noticeRecorder) count(kind NoticeKind) int {
	n := 0
	for _, k := range r.kinds() {
		if k == kind {
			n++
		}
	}
	return n
}

type renderRecorder struct {
	mu        sync.Mutex
	snapshots []tally.Snapshot
}

func (r *renderRecorder) Render(s tally.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, s)
	return nil
}

func (r *renderRecorder) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snapshots)
}

func twoOptions() *catalogue.Catalogue {
	return catalogue.MustNew([]catalogue.Genre{{Name: "A"}, {Name: "B"}})
}

func mustOption(t *testing.T, cat *catalogue.Catalogue, name string) catalogue.Option {
	t.Helper()
	opt, ok := cat.Lookup(name)
	require.True(t, ok, name)
	return opt
}

func writeJSON(t *testing.T, conn *websocket.Conn, payload string) {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(payload)))
}

const waitFor = 2 * time.Second
const tick = 10 * time.Millisecond
