package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-breakout/internal/breakout"
)

// packFile is the YAML layout of a level pack file:
//
//	id: spiral
//	name: Spiral
//	levels:
//	  - id: one
//	    name: First
//	    rows: ["111111111", "1.......1", ...]
type packFile struct {
	ID     string      `yaml:"id"`
	Name   string      `yaml:"name"`
	Levels []levelFile `yaml:"levels"`
}

type levelFile struct {
	ID   string   `yaml:"id"`
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

// Parse decodes and validates a YAML level pack.
func Parse(data []byte) (Pack, error) {
	var f packFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Pack{}, fmt.Errorf("registry: parse pack: %w", err)
	}

	p := Pack{ID: f.ID, Name: f.Name}
	if p.Name == "" {
		p.Name = p.ID
	}
	for i, lf := range f.Levels {
		id := lf.ID
		if id == "" {
			id = fmt.Sprintf("%s-%d", f.ID, i+1)
		}
		name := lf.Name
		if name == "" {
			name = fmt.Sprintf("Level %d", i+1)
		}
		l, err := breakout.ParseLevel(id, name, lf.Rows)
		if err != nil {
			return Pack{}, fmt.Errorf("registry: pack %q: %w", f.ID, err)
		}
		p.Levels = append(p.Levels, l)
	}

	if err := p.Validate(); err != nil {
		return Pack{}, err
	}
	return p, nil
}

// LoadFile reads a YAML level pack from path.
func LoadFile(path string) (Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pack{}, fmt.Errorf("registry: read pack: %w", err)
	}
	return Parse(data)
}
