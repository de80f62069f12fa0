package catalogue

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the YAML layout of a catalogue override:
//
//	question: Qual seu gênero musical favorito?
//	options:
//	  - name: Rock
//	    label: Rock
//	    sample: Sons/Rock.mp3
type File struct {
	Question string  `yaml:"question"`
	Options  []Genre `yaml:"options"`
}

// Load reads a catalogue from a YAML file.
func Load(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue file: %w", err)
	}
	return Parse(data)
}

// Parse builds a catalogue from YAML bytes.
func Parse(data []byte) (*Catalogue, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalogue: %w", err)
	}

	c, err := New(file.Options)
	if err != nil {
		return nil, fmt.Errorf("invalid catalogue: %w", err)
	}
	return c, nil
}

// LoadOrDefault loads path when set and falls back to the built-in catalogue otherwise.
func LoadOrDefault(path string) (*Catalogue, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
