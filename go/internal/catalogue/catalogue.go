package catalogue

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrEmpty     = errors.New("catalogue has no options")
	ErrBlankName = errors.New("option name is blank")
	ErrDuplicate = errors.New("duplicate option name")
)

// Option identifies one entry of a Catalogue. The zero value is not a valid option.
type Option struct {
	name  string
	index int
}

// Name returns the wire name of the option.
func (o Option) Name() string { return o.name }

// Index returns the option's position in its catalogue.
func (o Option) Index() int { return o.index }

// IsZero reports whether o is the zero Option.
func (o Option) IsZero() bool { return o.name == "" }

func (o Option) String() string { return o.name }

// Track is the sample song played for a genre.
type Track struct {
	Title  string `yaml:"title" json:"title"`
	Artist string `yaml:"artist" json:"artist"`
	Album  string `yaml:"album" json:"album"`
}

// Genre holds the display metadata of a catalogue entry
type Genre struct {
	Name        string `yaml:"name" json:"name"`
	Label       string `yaml:"label" json:"label"`
	Description string `yaml:"description" json:"description"`
	SamplePath  string `yaml:"sample" json:"sample"`
	CoverPath   string `yaml:"cover" json:"cover"`
	Color       string `yaml:"color" json:"color"`
	Track       Track  `yaml:"track" json:"track"`
}

// DisplayLabel returns the label, falling back to the wire name.
func (g Genre) DisplayLabel() string {
	if g.Label != "" {
		return g.Label
	}
	return g.Name
}

// Catalogue is the fixed, ordered list of options a session can vote for.
// It is immutable once built.
type Catalogue struct {
	genres   []Genre
	byName   map[string]int
	byFolded map[string]int
}

// New validates genres and builds a catalogue in the given order.
func New(genres []Genre) (*Catalogue, error) {
	if len(genres) == 0 {
		return nil, ErrEmpty
	}

	c := &Catalogue{
		genres:   make([]Genre, len(genres)),
		byName:   make(map[string]int, len(genres)),
		byFolded: make(map[string]int, len(genres)),
	}
	copy(c.genres, genres)

	for i, g := range c.genres {
		if strings.TrimSpace(g.Name) == "" {
			return nil, fmt.Errorf("option %d: %w", i, ErrBlankName)
		}
		if _, exists := c.byName[g.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicate, g.Name)
		}
		folded := Fold(g.Name)
		if j, exists := c.byFolded[folded]; exists {
			return nil, fmt.Errorf("%w: %q collides with %q", ErrDuplicate, g.Name, c.genres[j].Name)
		}
		c.byName[g.Name] = i
		c.byFolded[folded] = i
	}

	return c, nil
}

// MustNew is like New but panics on invalid input. Intended for static tables.
func MustNew(genres []Genre) *Catalogue {
	c, err := New(genres)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of options.
func (c *Catalogue) Len() int { return len(c.genres) }

// Options returns every option in catalogue order.
func (c *Catalogue) Options() []Option {
	opts := make([]Option, len(c.genres))
	for i, g := range c.genres {
		opts[i] = Option{name: g.Name, index: i}
	}
	return opts
}

// Names returns the wire names in catalogue order.
func (c *Catalogue) Names() []string {
	names := make([]string, len(c.genres))
	for i, g := range c.genres {
		names[i] = g.Name
	}
	return names
}

// At returns the option at position i.
func (c *Catalogue) At(i int) (Option, bool) {
	if i < 0 || i >= len(c.genres) {
		return Option{}, false
	}
	return Option{name: c.genres[i].Name, index: i}, true
}

// Lookup finds an option by exact wire name.
func (c *Catalogue) Lookup(name string) (Option, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Option{}, false
	}
	return Option{name: c.genres[i].Name, index: i}, true
}

// Resolve maps free-form user input to an option. Exact names win; otherwise
// the input is compared case- and accent-insensitively against names and labels.
func (c *Catalogue) Resolve(input string) (Option, bool) {
	input = strings.TrimSpace(input)
	if opt, ok := c.Lookup(input); ok {
		return opt, true
	}

	folded := Fold(input)
	if i, ok := c.byFolded[folded]; ok {
		return Option{name: c.genres[i].Name, index: i}, true
	}
	for i, g := range c.genres {
		if g.Label != "" && Fold(g.Label) == folded {
			return Option{name: g.Name, index: i}, true
		}
	}
	return Option{}, false
}

// Contains reports whether opt belongs to this catalogue.
func (c *Catalogue) Contains(opt Option) bool {
	if opt.index < 0 || opt.index >= len(c.genres) {
		return false
	}
	return c.genres[opt.index].Name == opt.name
}

// Genre returns the metadata for opt.
func (c *Catalogue) Genre(opt Option) (Genre, bool) {
	if !c.Contains(opt) {
		return Genre{}, false
	}
	return c.genres[opt.index], true
}

// Fold lowercases s and strips combining marks, so "Axé" and "axe" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC, cases.Fold())
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return out
}
