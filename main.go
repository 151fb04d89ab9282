// Command byrote serves and drives the poem memorization drill.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/byrote/assets"
	"github.com/robalobadob/byrote/internal/httpserver"
	"github.com/robalobadob/byrote/internal/poem"
	"github.com/robalobadob/byrote/internal/score"
	"github.com/robalobadob/byrote/internal/store"
)

// CLI defines the command-line interface.
var CLI struct {
	DB       string `name:"db" env:"BYROTE_DB" default:"./data/byrote.db" help:"SQLite database path (:memory: for a throwaway store)"`
	LogLevel string `name:"log-level" env:"LOG_LEVEL" default:"info" help:"zerolog level"`

	Serve        ServeCmd        `cmd:"" help:"Start the HTTP API"`
	Add          AddCmd          `cmd:"" help:"Add a poem from a file or stdin"`
	Import       ImportCmd       `cmd:"" help:"Import a YAML poem pack (default: bundled poems)"`
	List         ListCmd         `cmd:"" help:"List poems"`
	Delete       DeleteCmd       `cmd:"" help:"Delete a poem and its scores"`
	Scores       ScoresCmd       `cmd:"" help:"Show score histories of a poem"`
	Play         PlayCmd         `cmd:"" help:"Learn a poem in the terminal"`
	HashPassword HashPasswordCmd `cmd:"" name:"hash-password" help:"Print a bcrypt hash for BYROTE_PASSWORD_HASH"`
}

// ServeCmd starts the HTTP API.
type ServeCmd struct {
	Port           string `env:"PORT" default:"5175" help:"Listen port"`
	ClientOrigin   string `name:"client-origin" env:"CLIENT_ORIGIN" help:"CORS origin"`
	JWTSecret      string `name:"jwt-secret" env:"JWT_SECRET" help:"HS256 key for login tokens"`
	JWTExpiresDays int    `name:"jwt-expires-days" env:"JWT_EXPIRES_DAYS" default:"14" help:"Login token lifetime"`
	PasswordHash   string `name:"password-hash" env:"BYROTE_PASSWORD_HASH" help:"bcrypt hash guarding poem changes"`
	SecureCookies  bool   `name:"secure-cookies" env:"SECURE_COOKIES" help:"Mark cookies Secure (HTTPS deployments)"`
	DebounceMS     int    `name:"debounce-ms" env:"DEBOUNCE_MS" default:"350" help:"Easy-mode settle delay"`
}

func (c *ServeCmd) Run(st store.Store) error {
	if c.JWTSecret == "" && c.PasswordHash != "" {
		log.Warn().Msg("JWT_SECRET unset; using the development secret")
	}
	srv := httpserver.New(st, httpserver.Config{
		ClientOrigin:   c.ClientOrigin,
		JWTSecret:      c.JWTSecret,
		JWTExpiresDays: c.JWTExpiresDays,
		PasswordHash:   c.PasswordHash,
		SecureCookies:  c.SecureCookies,
		Debounce:       time.Duration(c.DebounceMS) * time.Millisecond,
	})
	defer srv.Close()
	log.Info().Str("port", c.Port).Msg("starting byrote")
	return srv.Start(":" + c.Port)
}

// AddCmd adds one poem.
type AddCmd struct {
	Title  string `help:"Poem title"`
	Author string `help:"Poem author"`
	File   string `arg:"" optional:"" type:"existingfile" help:"Text file (stdin when omitted)"`
}

func (c *AddCmd) Run(st store.Store) error {
	var r io.Reader = os.Stdin
	if c.File != "" {
		f, err := os.Open(c.File)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	text, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read poem: %w", err)
	}
	id, err := st.AddPoem(context.Background(), poem.Poem{Title: c.Title, Author: c.Author, Text: string(text)})
	if err != nil {
		return err
	}
	fmt.Println(id)
	return nil
}

// ImportCmd loads a poem pack.
type ImportCmd struct {
	File string `arg:"" optional:"" type:"existingfile" help:"YAML pack"`
}

func (c *ImportCmd) Run(st store.Store) error {
	var (
		data []byte
		err  error
	)
	if c.File == "" {
		data, err = assets.SamplePoems()
	} else {
		data, err = os.ReadFile(c.File)
	}
	if err != nil {
		return err
	}
	poems, err := poem.ParsePack(data)
	if err != nil {
		return err
	}
	for _, p := range poems {
		id, err := st.AddPoem(context.Background(), p)
		if err != nil {
			return fmt.Errorf("add %q: %w", p.Title, err)
		}
		fmt.Printf("%s\t%s\n", id, p.Title)
	}
	return nil
}

// ListCmd prints every poem.
type ListCmd struct{}

func (c *ListCmd) Run(st store.Store) error {
	list, err := st.ListPoems(context.Background())
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, e := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d words\n", e.ID, e.Title, e.Author, poem.Structure(e.Text).WordCount())
	}
	return tw.Flush()
}

// DeleteCmd removes a poem.
type DeleteCmd struct {
	ID string `arg:"" help:"Poem ID"`
}

func (c *DeleteCmd) Run(st store.Store) error {
	return noPoem(st.DeletePoem(context.Background(), c.ID), c.ID)
}

// ScoresCmd prints both histories of a poem.
type ScoresCmd struct {
	ID string `arg:"" help:"Poem ID"`
}

func (c *ScoresCmd) Run(st store.Store) error {
	ctx := context.Background()
	p, err := st.GetPoem(ctx, c.ID)
	if err != nil {
		return noPoem(err, c.ID)
	}
	fmt.Println(p.Title)
	for _, m := range []score.Mode{score.Easy, score.Hard} {
		h, err := st.ScoreHistory(ctx, c.ID, m)
		if err != nil {
			return err
		}
		fmt.Printf("  %-4s %s %v\n", m, score.Summarize(h), h)
	}
	return nil
}

// noPoem turns ErrNotFound into a message naming the poem.
func noPoem(err error, id string) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no poem %q", id)
	}
	return err
}

func openStore(path string) (store.Store, func(), error) {
	if path == ":memory:" {
		return store.NewMemoryStore(), func() {}, nil
	}
	s, err := store.OpenSQLite(path)
	if err != nil {
		return nil, nil, err
	}
	return s, func() { _ = s.Close() }, nil
}

func main() {
	_ = godotenv.Load()
	ctx := kong.Parse(&CLI,
		kong.Name("byrote"),
		kong.Description("Learn poems by heart, one masked word at a time."),
		kong.UsageOnError(),
	)

	if lvl, err := zerolog.ParseLevel(strings.ToLower(CLI.LogLevel)); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if ctx.Command() != "serve" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	// Hashing a password needs no database.
	if ctx.Command() == "hash-password" {
		ctx.FatalIfErrorf(ctx.Run())
		return
	}

	st, closeStore, err := openStore(CLI.DB)
	if err != nil {
		log.Fatal().Err(err).Str("db", CLI.DB).Msg("open store")
	}
	ctx.BindTo(st, (*store.Store)(nil))
	err = ctx.Run()
	closeStore()
	ctx.FatalIfErrorf(err)
}
