package render

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/mcdev12/genrevote/go/internal/catalogue"
	"github.com/mcdev12/genrevote/go/internal/tally"
)

// Renderer draws a tally snapshot somewhere.
type Renderer interface {
	Render(tally.Snapshot) error
}

// Terminal prints the tally as a table with a proportional bar per genre.
type Terminal struct {
	mu       sync.Mutex
	out      io.Writer
	barWidth int
}

// NewTerminal creates a renderer writing to out.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out, barWidth: 30}
}

func (t *Terminal) Render(s tally.Snapshot) error {
	cat := s.Catalogue()
	if cat == nil {
		return errors.New("snapshot has no catalogue")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	total := s.Total()
	tw := tabwriter.NewWriter(t.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "GENRE\tVOTES\tSHARE\t\n")
	for _, opt := range cat.Options() {
		g, _ := cat.Genre(opt)
		share := s.Share(opt)
		fmt.Fprintf(tw, "%s\t%d\t%5.1f%%\t%s\n", g.DisplayLabel(), s.Count(opt), share*100, bar(share, t.barWidth))
	}
	fmt.Fprintf(tw, "TOTAL\t%d\t\t\n", total)
	return tw.Flush()
}

func bar(share float64, width int) string {
	n := int(share*float64(width) + 0.5)
	if n > width {
		n = width
	}
	return strings.Repeat("█", n)
}

// Genre prints the details shown when a genre is picked: sample track,
// description and media paths.
func Genre(out io.Writer, g catalogue.Genre) error {
	title := g.DisplayLabel()
	lines := []string{
		title,
		strings.Repeat("─", utf8.RuneCountInString(title)),
	}
	if g.Track.Title != "" {
		lines = append(lines, "♪ "+g.Track.Title)
	}
	if g.Track.Artist != "" {
		lines = append(lines, "🎤 Artista: "+g.Track.Artist)
	}
	if g.Track.Album != "" {
		lines = append(lines, "💿 Álbum: "+g.Track.Album)
	}
	if g.Description != "" {
		lines = append(lines, g.Description)
	}
	if g.SamplePath != "" {
		lines = append(lines, "sample: "+g.SamplePath)
	}
	if g.CoverPath != "" {
		lines = append(lines, "cover:  "+g.CoverPath)
	}

	_, err := fmt.Fprintln(out, strings.Join(lines, "\n"))
	return err
}

// Multi fans a snapshot out to several renderers. Every renderer runs; the
// errors are joined.
type Multi []Renderer

func (m Multi) Render(s tally.Snapshot) error {
	var errs []error
	for _, r := range m {
		if r == nil {
			continue
		}
		if err := r.Render(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
