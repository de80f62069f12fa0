package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/genrevote/go/internal/catalogue"
	"github.com/mcdev12/genrevote/go/internal/tally"
	"github.com/mcdev12/genrevote/go/internal/voteclient"
)

type fakeSession struct {
	cat      *catalogue.Catalogue
	votes    []string
	connects int
	connErr  error
}

func (f *fakeSession) Catalogue() *catalogue.Catalogue { return f.cat }
func (f *fakeSession) State() voteclient.State { return voteclient.StateConnectedNotVoted }
func (f *fakeSession) Snapshot() tally.Snapshot { return tally.Empty(f.cat) }
func (f *fakeSession) Question() string { return "Qual seu gênero musical favorito?" }

func (f *fakeSession) Vote(input string) error {
	f.votes = append(f.votes, input)
	return nil
}

func (f *fakeSession) Connect(context.Context) error {
	f.connects++
	return f.connErr
}

func runPrompt(t *testing.T, s *fakeSession, input string) string {
	t.Helper()
	var out bytes.Buffer
	newPrompt(s, strings.NewReader(input), &out).run(context.Background())
	return out.String()
}

func TestPromptVote(t *testing.T) {
	s := &fakeSession{cat: catalogue.Default()}
	runPrompt(t, s, "vote axé\nvote\nquit\nvote Rock\n")

	assert.Equal(t, []string{"axé"}, s.votes, "quit stops reading")
}

func TestPromptList(t *testing.T) {
	s := &fakeSession{cat: catalogue.Default()}
	out := runPrompt(t, s, "list\n")

	assert.Contains(t, out, "Qual seu gênero musical favorito?")
	assert.Contains(t, out, " 1. Rock\n")
	assert.Contains(t, out, " 6. Axé\n")
	assert.Contains(t, out, "13. Reggae\n")
}

func TestPromptShowAndTally(t *testing.T) {
	s := &fakeSession{cat: catalogue.Default()}
	out := runPrompt(t, s, "show forro\nshow polka\ntally\nstatus\n")

	assert.Contains(t, out, "Forró")
	assert.Contains(t, out, `unknown genre "polka"`)
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "connected_not_voted")
}

func TestPromptReconnect(t *testing.T) {
	s := &fakeSession{cat: catalogue.Default(), connErr: voteclient.ErrAlreadyConnected}
	out := runPrompt(t, s, "reconnect\nbogus\n")

	require.Equal(t, 1, s.connects)
	assert.Contains(t, out, "already connected")
	assert.Contains(t, out, `unknown command "bogus"`)
}
