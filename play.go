// play.go
//
// Terminal drill for `byrote play`.
// Responsibilities:
//   - Feed typed lines to a session word by word.
//   - Handle :r / :n / :reset / :q commands.
//   - Print the masked poem after every step.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/robalobadob/byrote/internal/game"
	"github.com/robalobadob/byrote/internal/score"
	"github.com/robalobadob/byrote/internal/session"
	"github.com/robalobadob/byrote/internal/store"
)

// PlayCmd runs a drill in the terminal. Each input line is fed word by
// word as if the user typed it followed by a space.
type PlayCmd struct {
	ID   string `arg:"" help:"Poem ID"`
	Hard bool   `help:"Words must be typed in order"`
}

const playHelp = `type words separated by spaces; commands:
  :r WORD   reveal WORD (easy)      :n        reveal the next word (hard)
  :reset    start over              :q        quit`

func (c *PlayCmd) Run(st store.Store) error {
	ctx := context.Background()
	p, err := st.GetPoem(ctx, c.ID)
	if err != nil {
		return noPoem(err, c.ID)
	}
	mode := score.Easy
	if c.Hard {
		mode = score.Hard
	}
	s := session.New(uuid.NewString(), c.ID, p, mode, st, session.Options{})
	defer s.Close()
	return drill(ctx, s, os.Stdin, os.Stdout)
}

// drill reads commands from in until :q, EOF or completion.
func drill(ctx context.Context, s *session.Session, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, playHelp)
	v := s.View(ctx)
	printView(out, v)

	sc := bufio.NewScanner(in)
	for !v.Completed && sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == ":q":
			return nil
		case line == ":reset":
			v = s.Reset(ctx)
		case line == ":n":
			v = s.RevealNext(ctx)
		case strings.HasPrefix(line, ":r "):
			arg := strings.TrimSpace(line[3:])
			if i, err := strconv.Atoi(arg); err == nil && s.Mode == score.Hard {
				v = s.RevealAt(ctx, i)
			} else {
				v = s.Reveal(ctx, arg)
			}
		default:
			for _, w := range strings.Fields(line) {
				if s.Mode == score.Hard {
					v = s.Input(ctx, w)
				} else {
					v = s.Input(ctx, w+" ")
				}
			}
		}
		printView(out, v)
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if v.Completed {
		fmt.Fprintf(out, "done with %d cheats. %s\n", v.Cheats, v.Summary)
	}
	return nil
}

func printView(out io.Writer, v session.View) {
	fmt.Fprintf(out, "\n%s", v.Title)
	if v.Author != "" {
		fmt.Fprintf(out, " (%s)", v.Author)
	}
	fmt.Fprintf(out, "  [%d/%d, %d cheats]\n", v.Progress, v.Words, v.Cheats)
	for _, row := range v.Lines {
		var b strings.Builder
		for _, c := range row {
			switch {
			case c.Kind == game.CellShown && c.Revealed:
				b.WriteString("*" + c.Text + "*")
			default:
				b.WriteString(c.Text)
			}
		}
		fmt.Fprintln(out, b.String())
	}
}
