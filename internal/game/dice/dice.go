// Package dice provides the die-face model and the core randomness
// abstraction for the Diceforge combat engine.
package dice

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// FaceKind classifies what a rolled die face contributes to a turn.
type FaceKind int

const (
	// FaceAttack contributes its Value when assigned to the attack slot.
	FaceAttack FaceKind = iota
	// FaceDefense contributes its Value when assigned to the defense slot.
	FaceDefense
	// FaceCrit carries no value; it feeds crit-counting specials.
	FaceCrit
	// FaceMagic carries no value; it feeds magic-counting specials.
	FaceMagic
	// FaceSpecial carries a class symbol that drives passive/special logic.
	FaceSpecial
)

// String returns the lowercase catalog identifier for the face kind.
func (k FaceKind) String() string {
	switch k {
	case FaceAttack:
		return "attack"
	case FaceDefense:
		return "defense"
	case FaceCrit:
		return "crit"
	case FaceMagic:
		return "magic"
	case FaceSpecial:
		return "special"
	default:
		return "unknown"
	}
}

// ParseFaceKind converts a catalog identifier to a FaceKind.
//
// Postcondition: Returns a valid FaceKind, or an error for unrecognised input.
func ParseFaceKind(s string) (FaceKind, error) {
	switch strings.ToLower(s) {
	case "attack":
		return FaceAttack, nil
	case "defense":
		return FaceDefense, nil
	case "crit":
		return FaceCrit, nil
	case "magic":
		return FaceMagic, nil
	case "special":
		return FaceSpecial, nil
	default:
		return 0, fmt.Errorf("unknown face kind %q", s)
	}
}

// Face is one printed outcome on a die. Faces are immutable after
// construction; Value is meaningful only for attack and defense kinds, and
// Symbol is present only for special kinds.
type Face struct {
	Kind   FaceKind
	Value  int
	Symbol string
}

// String returns a short human-readable label, e.g. "Attack 6" or "flame".
func (f Face) String() string {
	switch f.Kind {
	case FaceAttack:
		return fmt.Sprintf("Attack %d", f.Value)
	case FaceDefense:
		return fmt.Sprintf("Defense %d", f.Value)
	case FaceCrit:
		return "Crit"
	case FaceMagic:
		return "Magic"
	case FaceSpecial:
		return f.Symbol
	default:
		return "?"
	}
}

// Die owns an ordered list of faces and the outcome of its last roll.
// Die identity persists across rerolls within a run so the engine and the
// presentation layer can reference a specific physical die.
type Die struct {
	// ID uniquely identifies this die for the duration of a run.
	ID string
	// Faces is the ordered face list; faces are not guaranteed unique.
	Faces []Face
	// Current is the face showing after the last roll; nil before any roll.
	Current *Face
	// Rolled is true once the die has been rolled in the current cycle.
	Rolled bool
}

// NewDie creates a die with a fresh UUID identity.
//
// Precondition: faces must contain between 4 and 8 entries.
// Postcondition: Returns an unrolled die, or an error on a bad face count.
func NewDie(faces []Face) (*Die, error) {
	if len(faces) < 4 || len(faces) > 8 {
		return nil, fmt.Errorf("die must have 4-8 faces, got %d", len(faces))
	}
	copied := make([]Face, len(faces))
	copy(copied, faces)
	return &Die{ID: uuid.New().String(), Faces: copied}, nil
}

// Roll selects one face uniformly at random and records it as Current.
// Repeats across consecutive rolls are not avoided.
//
// Precondition: src must be non-nil.
// Postcondition: Current is non-nil and Rolled is true.
func (d *Die) Roll(src Source) Face {
	face := d.Faces[src.Intn(len(d.Faces))]
	d.Current = &face
	d.Rolled = true
	return face
}

// Reset clears the rolled state ahead of a fresh roll cycle.
//
// Postcondition: Current is nil and Rolled is false.
func (d *Die) Reset() {
	d.Current = nil
	d.Rolled = false
}

// Set is the ordered collection of three dice belonging to one class.
type Set struct {
	Dice []*Die
}

// NewSet creates a Set from exactly three dice.
//
// Precondition: all three dice must be non-nil.
func NewSet(d1, d2, d3 *Die) *Set {
	return &Set{Dice: []*Die{d1, d2, d3}}
}

// ResetAll clears the rolled state of every die in the set.
//
// Postcondition: no die in the set is Rolled.
func (s *Set) ResetAll() {
	for _, d := range s.Dice {
		d.Reset()
	}
}

// RollAll resets and rolls every die in the set.
//
// Postcondition: every die is Rolled with a non-nil Current face.
func (s *Set) RollAll(src Source) {
	for _, d := range s.Dice {
		d.Reset()
		d.Roll(src)
	}
}

// Find returns the die with the given ID, or nil if the set does not own it.
func (s *Set) Find(id string) *Die {
	for _, d := range s.Dice {
		if d.ID == id {
			return d
		}
	}
	return nil
}
