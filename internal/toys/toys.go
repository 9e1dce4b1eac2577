// Package toys implements the toy variants, the age catalog that maps ages
// to variants, and the factory built from that catalog.
package toys

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/toybox/pkg/types"
)

// Train is the toy for the youngest children.
type Train struct {
	id string
}

// Kind returns KindTrain.
func (t *Train) Kind() types.Kind { return types.KindTrain }

// ID returns the toy's serial.
func (t *Train) ID() string { return t.id }

// Play writes "choo choo".
func (t *Train) Play(w io.Writer) error {
	_, err := fmt.Fprintln(w, "choo choo")
	return err
}

// Trampoline is the toy for early school age.
type Trampoline struct {
	id string
}

// Kind returns KindTrampoline.
func (t *Trampoline) Kind() types.Kind { return types.KindTrampoline }

// ID returns the toy's serial.
func (t *Trampoline) ID() string { return t.id }

// Play writes "Jump high".
func (t *Trampoline) Play(w io.Writer) error {
	_, err := fmt.Fprintln(w, "Jump high")
	return err
}

// Ball is the toy for older children and the catalog's usual default.
type Ball struct {
	id string
}

// Kind returns KindBall.
func (b *Ball) Kind() types.Kind { return types.KindBall }

// ID returns the toy's serial.
func (b *Ball) ID() string { return b.id }

// Play writes "Bounce".
func (b *Ball) Play(w io.Writer) error {
	_, err := fmt.Fprintln(w, "Bounce")
	return err
}

// NintendoSwitch is the toy for adults.
type NintendoSwitch struct {
	id string
}

// Kind returns KindNintendoSwitch.
func (n *NintendoSwitch) Kind() types.Kind { return types.KindNintendoSwitch }

// ID returns the toy's serial.
func (n *NintendoSwitch) ID() string { return n.id }

// Play writes "Save Hyrule!".
func (n *NintendoSwitch) Play(w io.Writer) error {
	_, err := fmt.Fprintln(w, "Save Hyrule!")
	return err
}

// New builds a toy of the given kind with a fresh serial.
// Returns ErrUnknownKind if kind is not recognized.
func New(kind types.Kind) (types.Toy, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownKind, kind)
	}
	return build(kind), nil
}

// build assumes kind has already been validated.
func build(kind types.Kind) types.Toy {
	id := newSerial()
	switch kind {
	case types.KindTrain:
		return &Train{id: id}
	case types.KindTrampoline:
		return &Trampoline{id: id}
	case types.KindNintendoSwitch:
		return &NintendoSwitch{id: id}
	default:
		return &Ball{id: id}
	}
}

// newSerial generates a UUID v7 serial for a toy.
func newSerial() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
