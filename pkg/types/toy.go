package types

import (
	"fmt"
	"io"
)

// Kind names one variant of the closed set of toys.
type Kind string

// Toy kinds. The set is closed; the factory never builds anything else.
const (
	KindTrain          Kind = "train"
	KindTrampoline     Kind = "trampoline"
	KindBall           Kind = "ball"
	KindNintendoSwitch Kind = "nintendo_switch"
)

// validKinds is the set of recognized toy kinds.
var validKinds = map[Kind]bool{
	KindTrain:          true,
	KindTrampoline:     true,
	KindBall:           true,
	KindNintendoSwitch: true,
}

// Kinds returns every toy kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindTrain, KindTrampoline, KindBall, KindNintendoSwitch}
}

// Valid reports whether k is one of the recognized kinds.
func (k Kind) Valid() bool {
	return validKinds[k]
}

// ParseKind converts a string to a Kind.
// Returns ErrUnknownKind if the string does not name a known kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// Toy is the capability every product of the toy factory exposes.
// Callers hold a Toy without knowing which concrete variant they received.
type Toy interface {
	// Kind returns the variant of this toy.
	Kind() Kind

	// ID returns the serial assigned when the toy was built.
	ID() string

	// Play writes the toy's sound to w as a single line.
	Play(w io.Writer) error
}
