package dice

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FaceDef is the YAML schema for a single die face.
type FaceDef struct {
	Kind   string `yaml:"kind"`
	Value  int    `yaml:"value"`
	Symbol string `yaml:"symbol"`
}

// DieDef is the YAML schema for one die in a class set.
type DieDef struct {
	Faces []FaceDef `yaml:"faces"`
}

// ClassDef is the YAML schema for a class dice catalog file.
type ClassDef struct {
	ID   string   `yaml:"id"`
	Name string   `yaml:"name"`
	Dice []DieDef `yaml:"dice"`
}

// Validate checks the class dice catalog invariants.
//
// Precondition: c must not be nil.
// Postcondition: Returns nil iff ID is non-empty, the set has exactly 3 dice,
// each die has 4-8 faces, every face kind parses, attack/defense faces carry a
// non-negative value, and special faces carry a symbol.
func (c *ClassDef) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("class dice: id must not be empty")
	}
	if len(c.Dice) != 3 {
		return fmt.Errorf("class dice %q: set must have exactly 3 dice, got %d", c.ID, len(c.Dice))
	}
	for i, die := range c.Dice {
		if len(die.Faces) < 4 || len(die.Faces) > 8 {
			return fmt.Errorf("class dice %q: die[%d] must have 4-8 faces, got %d", c.ID, i, len(die.Faces))
		}
		for j, face := range die.Faces {
			kind, err := ParseFaceKind(face.Kind)
			if err != nil {
				return fmt.Errorf("class dice %q: die[%d] face[%d]: %w", c.ID, i, j, err)
			}
			if face.Value < 0 {
				return fmt.Errorf("class dice %q: die[%d] face[%d]: value must be >= 0, got %d", c.ID, i, j, face.Value)
			}
			if kind == FaceSpecial && face.Symbol == "" {
				return fmt.Errorf("class dice %q: die[%d] face[%d]: special face must have a symbol", c.ID, i, j)
			}
			if kind != FaceSpecial && face.Symbol != "" {
				return fmt.Errorf("class dice %q: die[%d] face[%d]: symbol only allowed on special faces", c.ID, i, j)
			}
		}
	}
	return nil
}

// Build constructs a fresh Set from the catalog definition. Each call mints
// new die identities, so every run gets its own physical dice.
//
// Precondition: c must have passed Validate().
func (c *ClassDef) Build() (*Set, error) {
	built := make([]*Die, 0, len(c.Dice))
	for i, dieDef := range c.Dice {
		faces := make([]Face, 0, len(dieDef.Faces))
		for _, fd := range dieDef.Faces {
			kind, err := ParseFaceKind(fd.Kind)
			if err != nil {
				return nil, fmt.Errorf("class dice %q: die[%d]: %w", c.ID, i, err)
			}
			value := fd.Value
			if kind != FaceAttack && kind != FaceDefense {
				value = 0
			}
			faces = append(faces, Face{Kind: kind, Value: value, Symbol: fd.Symbol})
		}
		die, err := NewDie(faces)
		if err != nil {
			return nil, fmt.Errorf("class dice %q: die[%d]: %w", c.ID, i, err)
		}
		built = append(built, die)
	}
	return NewSet(built[0], built[1], built[2]), nil
}

// LoadClassDefFromBytes parses a single class dice catalog from raw YAML.
//
// Postcondition: Returns a validated *ClassDef, or an error.
func LoadClassDefFromBytes(data []byte) (*ClassDef, error) {
	var def ClassDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing class dice YAML: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// LoadClassDefs reads all *.yaml files in dir and returns the parsed class
// dice catalogs keyed by class id.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all catalogs or an error on the first parse or
// validate failure; on error, the partial result is discarded.
func LoadClassDefs(dir string) (map[string]*ClassDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading class dice dir %q: %w", dir, err)
	}

	defs := make(map[string]*ClassDef)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		def, err := LoadClassDefFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		if _, dup := defs[def.ID]; dup {
			return nil, fmt.Errorf("loading %q: duplicate class id %q", path, def.ID)
		}
		defs[def.ID] = def
	}
	return defs, nil
}
