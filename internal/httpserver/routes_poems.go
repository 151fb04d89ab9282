// internal/httpserver/routes_poems.go
//
// HTTP routes for the poem list and score histories:
//   - GET    /poems              → all poems, oldest first
//   - POST   /poems              → add a poem (auth)
//   - POST   /poems/import       → add every poem of a YAML pack (auth)
//   - GET    /poems/{id}         → one poem
//   - DELETE /poems/{id}         → delete a poem and its scores (auth)
//   - GET    /poems/{id}/scores  → easy and hard histories with summaries

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/byrote/internal/poem"
	"github.com/robalobadob/byrote/internal/score"
)

// maxPackBytes bounds POST /poems/import bodies.
const maxPackBytes = 1 << 20

type poemRes struct {
	ID string `json:"id"`
	poem.Poem
	Words int `json:"words"`
}

type historyRes struct {
	Scores  []int  `json:"scores"`
	Summary string `json:"summary"`
}

func (s *Server) mountPoems() {
	s.r.Route("/poems", func(r chi.Router) {
		r.Get("/", s.handleListPoems)
		r.With(s.requireAuth).Post("/", s.handleAddPoem)
		r.With(s.requireAuth).Post("/import", s.handleImport)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetPoem)
			r.With(s.requireAuth).Delete("/", s.handleDeletePoem)
			r.Get("/scores", s.handleScores)
			r.Post("/sessions", s.handleNewSession)
		})
	})
}

func (s *Server) handleListPoems(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.ListPoems(r.Context())
	if err != nil {
		storeError(w, err, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetPoem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := s.store.GetPoem(r.Context(), id)
	if err != nil {
		storeError(w, err, "no_poem")
		return
	}
	writeJSON(w, http.StatusOK, poemRes{ID: id, Poem: p, Words: poem.Structure(p.Text).WordCount()})
}

func (s *Server) handleAddPoem(w http.ResponseWriter, r *http.Request) {
	var p poem.Poem
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	id, err := s.store.AddPoem(r.Context(), p)
	if err != nil {
		storeError(w, err, "not_found")
		return
	}
	log.Info().Str("poem", id).Str("title", p.Title).Msg("poem added")
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPackBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "pack_too_large")
			return
		}
		writeError(w, http.StatusBadRequest, "read_failed")
		return
	}
	poems, err := poem.ParsePack(data)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_pack", "detail": err.Error()})
		return
	}
	ids := make([]string, 0, len(poems))
	for _, p := range poems {
		id, err := s.store.AddPoem(r.Context(), p)
		if err != nil {
			storeError(w, err, "not_found")
			return
		}
		ids = append(ids, id)
	}
	log.Info().Int("count", len(ids)).Msg("poems imported")
	writeJSON(w, http.StatusCreated, map[string][]string{"ids": ids})
}

func (s *Server) handleDeletePoem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.DeletePoem(r.Context(), id); err != nil {
		storeError(w, err, "no_poem")
		return
	}
	s.sessions.dropPoem(id)
	log.Info().Str("poem", id).Msg("poem deleted")
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.store.GetPoem(r.Context(), id); err != nil {
		storeError(w, err, "no_poem")
		return
	}
	out := make(map[score.Mode]historyRes, 2)
	for _, m := range []score.Mode{score.Easy, score.Hard} {
		h, err := s.store.ScoreHistory(r.Context(), id, m)
		if err != nil {
			storeError(w, err, "no_poem")
			return
		}
		out[m] = historyRes{Scores: h, Summary: score.Summarize(h)}
	}
	writeJSON(w, http.StatusOK, out)
}
