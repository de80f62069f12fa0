package statusapi

import (
	"encoding/json"
	"net/http"

	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/genrevote/go/internal/catalogue"
	"github.com/mcdev12/genrevote/go/internal/tally"
	"github.com/mcdev12/genrevote/go/internal/voteclient"
)

// SessionProvider exposes the session state served by the API.
type SessionProvider interface {
	ID() string
	State() voteclient.State
	AlreadyVoted() bool
	Pending() (catalogue.Option, bool)
	Question() string
	Snapshot() tally.Snapshot
}

// TallyResponse is returned by GET /api/tally
type TallyResponse struct {
	Options []TallyEntry `json:"options"`
	Total   int          `json:"total"`
}

// TallyEntry is one option of a TallyResponse
type TallyEntry struct {
	Option string  `json:"option"`
	Label  string  `json:"label"`
	Color  string  `json:"color,omitempty"`
	Votes  int     `json:"votes"`
	Share  float64 `json:"share"`
}

// SessionResponse is returned by GET /api/session
type SessionResponse struct {
	SessionID    string `json:"session_id"`
	State        string `json:"state"`
	Connected    bool   `json:"connected"`
	AlreadyVoted bool   `json:"already_voted"`
	Pending      string `json:"pending,omitempty"`
	Question     string `json:"question,omitempty"`
}

// Handler serves read-only session status over HTTP
type Handler struct {
	provider SessionProvider
}

// NewHandler creates a new status handler
func NewHandler(provider SessionProvider) *Handler {
	return &Handler{provider: provider}
}

// HandleTally handles GET /api/tally
func (h *Handler) HandleTally(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := h.provider.Snapshot()
	resp := TallyResponse{Options: []TallyEntry{}, Total: snap.Total()}
	if cat := snap.Catalogue(); cat != nil {
		for _, opt := range cat.Options() {
			g, _ := cat.Genre(opt)
			resp.Options = append(resp.Options, TallyEntry{
				Option: opt.Name(),
				Label:  g.DisplayLabel(),
				Color:  g.Color,
				Votes:  snap.Count(opt),
				Share:  snap.Share(opt),
			})
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleSession handles GET /api/session
func (h *Handler) HandleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state := h.provider.State()
	resp := SessionResponse{
		SessionID:    h.provider.ID(),
		State:        state.String(),
		Connected:    state.Connected(),
		AlreadyVoted: h.provider.AlreadyVoted(),
		Question:     h.provider.Question(),
	}
	if opt, ok := h.provider.Pending(); ok {
		resp.Pending = opt.Name()
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleHealth handles GET /health
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		log.Error().Err(err).Msg("failed to write health check response")
	}
}

// RegisterRoutes registers the status routes with an HTTP mux
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.HandleHealth)
	mux.HandleFunc("/api/tally", h.HandleTally)
	mux.HandleFunc("/api/session", h.HandleSession)
}

// NewServer returns the routes wrapped with CORS so a page on another origin can poll them.
func NewServer(provider SessionProvider) http.Handler {
	mux := http.NewServeMux()
	NewHandler(provider).RegisterRoutes(mux)

	c := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodHead, http.MethodGet},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(mux)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
