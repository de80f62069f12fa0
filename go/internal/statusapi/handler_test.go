package statusapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/genrevote/go/internal/catalogue"
	"github.com/mcdev12/genrevote/go/internal/tally"
	"github.com/mcdev12/genrevote/go/internal/voteclient"
)

type fakeProvider struct {
	state    voteclient.State
	voted    bool
	pending  catalogue.Option
	question string
	snap     tally.Snapshot
}

func (f *fakeProvider) ID() string { return "session-1" }
func (f *fakeProvider) State() voteclient.State { return f.state }
func (f *fakeProvider) AlreadyVoted() bool { return f.voted }
func (f *fakeProvider) Question() string { return f.question }
func (f *fakeProvider) Snapshot() tally.Snapshot { return f.snap }
func (f *fakeProvider) Pending() (catalogue.Option, bool) {
	return f.pending, !f.pending.IsZero()
}

func newProvider(t *testing.T) (*fakeProvider, *catalogue.Catalogue) {
	t.Helper()
	cat := catalogue.MustNew([]catalogue.Genre{
		{Name: "Axe", Label: "Axé", Color: "#ffcc00"},
		{Name: "Rock"},
	})
	snap, err := tally.FromCounts(cat, []int{1, 3})
	require.NoError(t, err)
	return &fakeProvider{
		state:    voteclient.StateConnectedNotVoted,
		question: "Qual o seu gênero favorito?",
		snap:     snap,
	}, cat
}

func TestHandleTally(t *testing.T) {
	p, _ := newProvider(t)
	srv := httptest.NewServer(NewServer(p))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/tally")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body TallyResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 4, body.Total)
	require.Len(t, body.Options, 2)
	assert.Equal(t, TallyEntry{Option: "Axe", Label: "Axé", Color: "#ffcc00", Votes: 1, Share: 0.25}, body.Options[0])
	assert.Equal(t, "Rock", body.Options[1].Label)
	assert.Equal(t, 3, body.Options[1].Votes)
}

func TestHandleTallyWithoutSnapshot(t *testing.T) {
	h := NewHandler(&fakeProvider{})
	rec := httptest.NewRecorder()
	h.HandleTally(rec, httptest.NewRequest(http.MethodGet, "/api/tally", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"options":[],"total":0}`, rec.Body.String())
}

func TestHandleSession(t *testing.T) {
	p, cat := newProvider(t)
	rock, ok := cat.Lookup("Rock")
	require.True(t, ok)
	p.pending = rock

	h := NewHandler(p)
	rec := httptest.NewRecorder()
	h.HandleSession(rec, httptest.NewRequest(http.MethodGet, "/api/session", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, SessionResponse{
		SessionID:    "session-1",
		State:        voteclient.StateConnectedNotVoted.String(),
		Connected:    true,
		AlreadyVoted: false,
		Pending:      "Rock",
		Question:     "Qual o seu gênero favorito?",
	}, body)
}

func TestMethodNotAllowed(t *testing.T) {
	p, _ := newProvider(t)
	h := NewHandler(p)

	for _, fn := range []http.HandlerFunc{h.HandleTally, h.HandleSession} {
		rec := httptest.NewRecorder()
		fn(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	}
}

func TestHealthAndCORS(t *testing.T) {
	p, _ := newProvider(t)
	srv := httptest.NewServer(NewServer(p))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
