package typedb

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"copyck/internal/logging"
	"copyck/internal/ty"
)

// File is the YAML layout of a type database.
type File struct {
	Closures []ClosureEntry `yaml:"closures"`
	Adts     []AdtEntry     `yaml:"adts"`
}

// ClosureEntry is a closure as written in YAML; types use ty.Parse syntax.
type ClosureEntry struct {
	ID       string   `yaml:"id"`
	Captures []string `yaml:"captures"`
	Inputs   []string `yaml:"inputs"`
	Output   string   `yaml:"output"`
}

// AdtEntry is a user type as written in YAML.
type AdtEntry struct {
	ID         string `yaml:"id"`
	Params     int    `yaml:"params"`
	Copy       bool   `yaml:"copy"`
	CopyBounds []int  `yaml:"copy_bounds"`
}

// LoadFile reads a database from a YAML file.
func LoadFile(path string) (*Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read type database %s: %w", path, err)
	}
	db, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("type database %s: %w", path, err)
	}
	logging.Get(logging.CategoryTypeDB).Info("loaded %d closures and %d adts from %s",
		len(db.closures), len(db.adts), path)
	return db, nil
}

// Parse builds a database from YAML bytes.
func Parse(data []byte) (*Memory, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse type database: %w", err)
	}

	db := New()
	for _, entry := range f.Closures {
		c, err := entry.toClosure()
		if err != nil {
			return nil, err
		}
		db.AddClosure(c)
	}
	for _, entry := range f.Adts {
		if entry.ID == "" {
			return nil, fmt.Errorf("adt without id")
		}
		adt := Adt{
			ID:         ty.AdtID(entry.ID),
			Params:     entry.Params,
			CopyImpl:   entry.Copy,
			CopyBounds: entry.CopyBounds,
		}
		if err := db.AddAdt(adt); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func (e ClosureEntry) toClosure() (Closure, error) {
	if e.ID == "" {
		return Closure{}, fmt.Errorf("closure without id")
	}
	captures, err := parseAll(e.Captures)
	if err != nil {
		return Closure{}, fmt.Errorf("closure %s captures: %w", e.ID, err)
	}
	inputs, err := parseAll(e.Inputs)
	if err != nil {
		return Closure{}, fmt.Errorf("closure %s inputs: %w", e.ID, err)
	}
	c := Closure{ID: ty.ClosureID(e.ID), Captures: captures, Inputs: inputs}
	if e.Output != "" {
		out, err := ty.Parse(e.Output)
		if err != nil {
			return Closure{}, fmt.Errorf("closure %s output: %w", e.ID, err)
		}
		c.Output = out
	}
	return c, nil
}

func parseAll(srcs []string) ([]ty.Ty, error) {
	out := make([]ty.Ty, 0, len(srcs))
	for _, src := range srcs {
		t, err := ty.Parse(src)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
