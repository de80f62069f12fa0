package catalogue

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.Equal(t, 13, c.Len())

	names := c.Names()
	assert.Equal(t, "Rock", names[0])
	assert.Equal(t, "Reggae", names[12])

	opt, ok := c.Lookup("Axe")
	require.True(t, ok)
	assert.Equal(t, 5, opt.Index())

	g, ok := c.Genre(opt)
	require.True(t, ok)
	assert.Equal(t, "Axé", g.DisplayLabel())
	assert.Equal(t, "Sons/Axé.mp3", g.SamplePath)
}

func TestLookupIsExact(t *testing.T) {
	c := Default()

	_, ok := c.Lookup("Axé")
	assert.False(t, ok, "accented spelling is not a wire name")

	_, ok = c.Lookup("rock")
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	c := Default()

	tests := []struct {
		input string
		want  string
	}{
		{"Rock", "Rock"},
		{"rock", "Rock"},
		{"  axé ", "Axe"},
		{"ELETRÔNICA", "Eletronica"},
		{"forro", "Forro"},
		{"mpb", "MPB"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			opt, ok := c.Resolve(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.want, opt.Name())
		})
	}

	_, ok := c.Resolve("Jazz")
	assert.False(t, ok)
}

func TestNewRejectsInvalidCatalogues(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = New([]Genre{{Name: "A"}, {Name: " "}})
	assert.ErrorIs(t, err, ErrBlankName)

	_, err = New([]Genre{{Name: "A"}, {Name: "A"}})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = New([]Genre{{Name: "Axe"}, {Name: "Axé"}})
	assert.ErrorIs(t, err, ErrDuplicate, "names equal after folding are ambiguous")
}

func TestContains(t *testing.T) {
	a := MustNew([]Genre{{Name: "A"}, {Name: "B"}})
	b := MustNew([]Genre{{Name: "B"}, {Name: "A"}})

	optA, _ := a.Lookup("A")
	assert.True(t, a.Contains(optA))
	assert.False(t, b.Contains(optA), "same name at a different position belongs to another catalogue")
	assert.False(t, a.Contains(Option{}))
}

func TestAt(t *testing.T) {
	c := MustNew([]Genre{{Name: "A"}, {Name: "B"}})

	opt, ok := c.At(1)
	require.True(t, ok)
	assert.Equal(t, "B", opt.Name())

	_, ok = c.At(2)
	assert.False(t, ok)
	_, ok = c.At(-1)
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogue.yaml")
	data := []byte(`
question: Qual seu gênero musical favorito?
options:
  - name: Rock
    label: Rock
    sample: Sons/Rock.mp3
    track:
      title: Sweet Child O' Mine
      artist: Guns N' Roses
  - name: Axe
    label: Axé
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rock", "Axe"}, c.Names())

	opt, _ := c.Lookup("Rock")
	g, _ := c.Genre(opt)
	assert.Equal(t, "Guns N' Roses", g.Track.Artist)
}

func TestLoadOrDefault(t *testing.T) {
	c, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, 13, c.Len())

	_, err = LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("options: [\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("options: []\n"))
	assert.ErrorIs(t, err, ErrEmpty)
}
