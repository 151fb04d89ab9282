// internal/httpserver/routes_sessions.go
//
// HTTP routes for play sessions:
//   - POST   /poems/{id}/sessions   → start a session {"mode":"easy"|"hard"}
//   - GET    /sessions/{sid}        → current view
//   - POST   /sessions/{sid}/input  → full value of the guess box {"text"}
//   - POST   /sessions/{sid}/reveal → cheat: {"word"} (easy) or {"index"} (hard)
//   - POST   /sessions/{sid}/reset  → start the poem over
//   - DELETE /sessions/{sid}        → end the session
//
// Sessions live in memory only; scores reach the store when a poem is
// completed. Idle sessions are swept whenever a new one is started.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/byrote/internal/score"
	"github.com/robalobadob/byrote/internal/session"
)

// registry holds live sessions keyed by ID.
type registry struct {
	ttl time.Duration

	mu       sync.Mutex
	sessions map[string]*session.Session
}

func newRegistry(ttl time.Duration) *registry {
	return &registry{ttl: ttl, sessions: make(map[string]*session.Session)}
}

func (g *registry) put(s *session.Session) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sessions[s.ID] = s
}

func (g *registry) get(id string) (*session.Session, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, ok := g.sessions[id]
	return s, ok
}

func (g *registry) remove(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, ok := g.sessions[id]
	if ok {
		s.Close()
		delete(g.sessions, id)
	}
	return ok
}

// dropPoem ends every session playing poemID.
func (g *registry) dropPoem(poemID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for id, s := range g.sessions {
		if s.PoemID == poemID {
			s.Close()
			delete(g.sessions, id)
		}
	}
}

// sweep ends sessions idle for longer than the TTL.
func (g *registry) sweep(now time.Time) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for id, s := range g.sessions {
		if now.Sub(s.IdleSince()) > g.ttl {
			s.Close()
			delete(g.sessions, id)
			n++
		}
	}
	return n
}

func (g *registry) closeAll() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for id, s := range g.sessions {
		s.Close()
		delete(g.sessions, id)
	}
}

type newSessionReq struct {
	Mode string `json:"mode"`
}

type inputReq struct {
	Text string `json:"text"`
}

type revealReq struct {
	Word  string `json:"word"`
	Index *int   `json:"index"`
}

func (s *Server) mountSessions() {
	s.r.Route("/sessions/{sid}", func(r chi.Router) {
		r.Get("/", s.withSession(func(w http.ResponseWriter, r *http.Request, ss *session.Session) {
			writeJSON(w, http.StatusOK, ss.View(r.Context()))
		}))
		r.Post("/input", s.withSession(s.handleInput))
		r.Post("/reveal", s.withSession(s.handleReveal))
		r.Post("/reset", s.withSession(func(w http.ResponseWriter, r *http.Request, ss *session.Session) {
			writeJSON(w, http.StatusOK, ss.Reset(r.Context()))
		}))
		r.Delete("/", func(w http.ResponseWriter, r *http.Request) {
			if !s.sessions.remove(chi.URLParam(r, "sid")) {
				writeError(w, http.StatusNotFound, "no_session")
				return
			}
			writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		})
	})
}

// handleNewSession starts a session. An unknown poem is the explicit
// "no poem" state: no session is created.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req newSessionReq
	// An empty body starts an easy session.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	mode := score.Easy
	if req.Mode != "" {
		m, err := score.ParseMode(req.Mode)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unknown_mode")
			return
		}
		mode = m
	}

	poemID := chi.URLParam(r, "id")
	p, err := s.store.GetPoem(r.Context(), poemID)
	if err != nil {
		storeError(w, err, "no_poem")
		return
	}

	if n := s.sessions.sweep(time.Now()); n > 0 {
		log.Debug().Int("count", n).Msg("swept idle sessions")
	}
	ss := session.New(uuid.NewString(), poemID, p, mode, s.store, session.Options{Debounce: s.cfg.Debounce})
	s.sessions.put(ss)
	log.Info().Str("session", ss.ID).Str("poem", poemID).Str("mode", string(mode)).Msg("session started")
	writeJSON(w, http.StatusCreated, ss.View(r.Context()))
}

func (s *Server) handleInput(w http.ResponseWriter, r *http.Request, ss *session.Session) {
	var req inputReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	writeJSON(w, http.StatusOK, ss.Input(r.Context(), req.Text))
}

func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request, ss *session.Session) {
	var req revealReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	switch {
	case ss.Mode == score.Hard && req.Index != nil:
		writeJSON(w, http.StatusOK, ss.RevealAt(r.Context(), *req.Index))
	case ss.Mode == score.Hard:
		writeJSON(w, http.StatusOK, ss.RevealNext(r.Context()))
	case req.Word != "":
		writeJSON(w, http.StatusOK, ss.Reveal(r.Context(), req.Word))
	default:
		writeError(w, http.StatusBadRequest, "missing_word")
	}
}

// withSession resolves {sid} before calling h.
func (s *Server) withSession(h func(http.ResponseWriter, *http.Request, *session.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ss, ok := s.sessions.get(chi.URLParam(r, "sid"))
		if !ok {
			writeError(w, http.StatusNotFound, "no_session")
			return
		}
		h(w, r, ss)
	}
}
