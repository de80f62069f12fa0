package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/genrevote/go/internal/catalogue"
	"github.com/mcdev12/genrevote/go/internal/render"
	"github.com/mcdev12/genrevote/go/internal/tally"
	"github.com/mcdev12/genrevote/go/internal/voteclient"
)

const helpText = `commands:
  list              show the genres on the ballot
  show <genre>      show a genre's sample track and description
  vote <genre>      cast your vote (once per session)
  tally             print the current results
  status            print the session state
  reconnect         reconnect to the results service
  quit              leave
`

// session is the part of *voteclient.Client the prompt drives.
type session interface {
	Catalogue() *catalogue.Catalogue
	State() voteclient.State
	Snapshot() tally.Snapshot
	Question() string
	Vote(input string) error
	Connect(ctx context.Context) error
}

type prompt struct {
	session session
	in      io.Reader
	out     io.Writer
}

func newPrompt(s session, in io.Reader, out io.Writer) *prompt {
	return &prompt{session: s, in: in, out: out}
}

// run reads commands until quit, EOF or ctx is done.
func (p *prompt) run(ctx context.Context) {
	fmt.Fprint(p.out, helpText)

	scanner := bufio.NewScanner(p.in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		if !p.exec(ctx, scanner.Text()) {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("failed to read input")
	}
}

// exec runs one command line and reports whether the prompt should continue.
func (p *prompt) exec(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "":
	case "quit", "exit":
		return false

	case "help":
		fmt.Fprint(p.out, helpText)

	case "list":
		cat := p.session.Catalogue()
		if q := p.session.Question(); q != "" {
			fmt.Fprintln(p.out, q)
		}
		for i, opt := range cat.Options() {
			g, _ := cat.Genre(opt)
			fmt.Fprintf(p.out, "%2d. %s\n", i+1, g.DisplayLabel())
		}

	case "show":
		cat := p.session.Catalogue()
		opt, ok := cat.Resolve(arg)
		if !ok {
			fmt.Fprintf(p.out, "unknown genre %q\n", arg)
			break
		}
		g, _ := cat.Genre(opt)
		if err := render.Genre(p.out, g); err != nil {
			log.Error().Err(err).Msg("failed to show genre")
		}

	case "vote":
		if arg == "" {
			fmt.Fprintln(p.out, "usage: vote <genre>")
			break
		}
		// Rejections are reported to the user through notices.
		if err := p.session.Vote(arg); err != nil {
			log.Debug().Err(err).Str("input", arg).Msg("vote rejected")
		}

	case "tally":
		if err := render.NewTerminal(p.out).Render(p.session.Snapshot()); err != nil {
			log.Error().Err(err).Msg("failed to render tally")
		}

	case "status":
		fmt.Fprintln(p.out, p.session.State())

	case "reconnect":
		err := p.session.Connect(ctx)
		if errors.Is(err, voteclient.ErrAlreadyConnected) {
			fmt.Fprintln(p.out, "already connected")
		}

	default:
		fmt.Fprintf(p.out, "unknown command %q, type help\n", cmd)
	}
	return true
}
