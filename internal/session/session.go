// internal/session/session.go
//
// A play session binds one engine (easy or hard) to one poem for one user.
// Responsibilities:
//   - Hold the guess buffer fed by the input boundary (full value, not deltas).
//   - Debounce easy-mode evaluation: settle after a pause, or immediately
//     when the buffer ends in a space.
//   - Evaluate hard-mode input on every change.
//   - Append the score to the store when the poem is completed.
//   - Assemble render-ready views with the score summary.
//
// Notes:
//   - A Session is safe for concurrent use; the debounce timer fires on its
//     own goroutine.
//   - Score persistence is best-effort: failures are logged, never returned.

package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/byrote/internal/game"
	"github.com/robalobadob/byrote/internal/poem"
	"github.com/robalobadob/byrote/internal/score"
)

// DefaultDebounce is the easy-mode settle delay.
const DefaultDebounce = 350 * time.Millisecond

// ScoreStore is the part of the persistence layer a session needs.
type ScoreStore interface {
	ScoreHistory(ctx context.Context, poemID string, mode score.Mode) ([]int, error)
	AppendScore(ctx context.Context, poemID string, mode score.Mode, s int) error
}

// Options tunes a session.
type Options struct {
	// Debounce overrides DefaultDebounce when positive.
	Debounce time.Duration
}

// View is what the presentation layer renders.
type View struct {
	SessionID string     `json:"sessionId"`
	PoemID    string     `json:"poemId"`
	Mode      score.Mode `json:"mode"`
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	Guess     string     `json:"guess"`
	Lines     []game.Row `json:"lines"`
	Completed bool       `json:"completed"`
	Cheats    int        `json:"cheats"`
	Progress  int        `json:"progress"` // known distinct words (easy) or cursor (hard)
	Words     int        `json:"words"`    // vocabulary size (easy) or word count (hard)
	Summary   string     `json:"summary"`
}

// Session is one user's run over one poem.
type Session struct {
	ID     string
	PoemID string
	Mode   score.Mode

	poem     poem.Poem
	scores   ScoreStore
	debounce *Debouncer

	mu      sync.Mutex
	easy    *game.Easy
	hard    *game.Hard
	guess   string
	gen     uint64 // bumped on every buffer change; stale timer fires compare against it
	closed  bool
	touched time.Time
}

// New starts a session over p in mode. Unknown modes fall back to easy.
func New(id, poemID string, p poem.Poem, mode score.Mode, scores ScoreStore, opts Options) *Session {
	delay := opts.Debounce
	if delay <= 0 {
		delay = DefaultDebounce
	}
	s := &Session{
		ID:       id,
		PoemID:   poemID,
		Mode:     mode,
		poem:     p,
		scores:   scores,
		debounce: NewDebouncer(delay),
		touched:  time.Now(),
	}
	if mode == score.Hard {
		s.hard = game.NewHard(p.Text)
	} else {
		s.Mode = score.Easy
		s.easy = game.NewEasy(p.Text)
	}
	return s
}

// Input receives the current value of the guess box.
func (s *Session) Input(ctx context.Context, text string) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.viewLocked(ctx)
	}
	s.touched = time.Now()
	s.guess = text
	s.gen++

	if s.hard != nil {
		if res := s.hard.Guess(text); res.Accepted {
			s.guess = ""
			s.recordLocked(ctx, res)
		}
		return s.viewLocked(ctx)
	}

	switch {
	case text == "":
		s.debounce.Cancel()
	case strings.HasSuffix(text, " "):
		// The user finished a word: no need to wait.
		s.debounce.Cancel()
		s.evaluateLocked(ctx, strings.TrimSpace(text))
	default:
		gen := s.gen
		s.debounce.Trigger(func() { s.settle(gen) })
	}
	return s.viewLocked(ctx)
}

// Flush evaluates a pending easy-mode guess immediately.
func (s *Session) Flush(ctx context.Context) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.easy != nil && !s.closed && s.debounce.Cancel() {
		s.evaluateLocked(ctx, s.guess)
	}
	return s.viewLocked(ctx)
}

// Reveal reveals word as a cheat (easy mode).
func (s *Session) Reveal(ctx context.Context, word string) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.easy != nil && !s.closed {
		s.touched = time.Now()
		s.recordLocked(ctx, s.easy.Reveal(word))
	}
	return s.viewLocked(ctx)
}

// RevealAt reveals the word with the given index, which must be the next
// one (hard mode).
func (s *Session) RevealAt(ctx context.Context, index int) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hard != nil && !s.closed {
		s.touched = time.Now()
		s.recordLocked(ctx, s.hard.Reveal(index))
	}
	return s.viewLocked(ctx)
}

// RevealNext reveals the next word (hard mode).
func (s *Session) RevealNext(ctx context.Context) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hard != nil && !s.closed {
		s.touched = time.Now()
		s.recordLocked(ctx, s.hard.RevealNext())
	}
	return s.viewLocked(ctx)
}

// Reset starts the poem over. A pending evaluation is dropped.
func (s *Session) Reset(ctx context.Context) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debounce.Cancel()
	s.gen++
	s.guess = ""
	s.touched = time.Now()
	if s.easy != nil {
		s.easy.Reset()
	} else {
		s.hard.Reset()
	}
	log.Debug().Str("session", s.ID).Str("poem", s.PoemID).Msg("session reset")
	return s.viewLocked(ctx)
}

// View returns the current view.
func (s *Session) View(ctx context.Context) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked(ctx)
}

// Completed reports whether the poem is done.
func (s *Session) Completed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completedLocked()
}

// IdleSince returns the time of the last input event.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}

// Close stops the session. Later timer fires and inputs are ignored.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.gen++
	s.debounce.Cancel()
}

// settle runs when the debounce delay elapses.
func (s *Session) settle(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.gen {
		return
	}
	s.evaluateLocked(context.Background(), s.guess)
}

func (s *Session) evaluateLocked(ctx context.Context, text string) {
	res := s.easy.Guess(text)
	if !res.Accepted {
		return
	}
	s.guess = ""
	s.gen++
	s.recordLocked(ctx, res)
}

func (s *Session) recordLocked(ctx context.Context, res game.Result) {
	if !res.Completed {
		return
	}
	l := log.With().Str("session", s.ID).Str("poem", s.PoemID).Str("mode", string(s.Mode)).Int("score", res.Score).Logger()
	if err := s.scores.AppendScore(ctx, s.PoemID, s.Mode, res.Score); err != nil {
		l.Warn().Err(err).Msg("append score")
		return
	}
	l.Info().Msg("poem completed")
}

func (s *Session) completedLocked() bool {
	if s.easy != nil {
		return s.easy.Completed()
	}
	return s.hard.Completed()
}

func (s *Session) viewLocked(ctx context.Context) View {
	v := View{
		SessionID: s.ID,
		PoemID:    s.PoemID,
		Mode:      s.Mode,
		Title:     s.poem.Title,
		Author:    s.poem.Author,
		Guess:     s.guess,
		Completed: s.completedLocked(),
	}
	if s.easy != nil {
		v.Lines = s.easy.Render()
		v.Cheats = s.easy.Cheats()
		v.Progress = s.easy.Known()
		v.Words = s.easy.Words()
	} else {
		v.Lines = s.hard.Render()
		v.Cheats = len(s.hard.Cheats())
		v.Progress = s.hard.Cursor()
		v.Words = s.hard.Words()
	}

	history, err := s.scores.ScoreHistory(ctx, s.PoemID, s.Mode)
	if err != nil {
		log.Warn().Err(err).Str("poem", s.PoemID).Msg("score history")
	}
	v.Summary = score.Summarize(history)
	return v
}
