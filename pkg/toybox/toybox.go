// Package toybox provides the public API for the toy factory.
//
// Example:
//
//	toy := toybox.ProduceToy(19)
//	toy.Play(os.Stdout) // Save Hyrule!
package toybox

import (
	"github.com/mesh-intelligence/toybox/internal/toys"
	"github.com/mesh-intelligence/toybox/pkg/types"
)

// Factory produces toys by age.
type Factory = toys.Factory

// Catalog is the age rule table a Factory is built from.
type Catalog = toys.Catalog

// AgeRange is one rule of a Catalog.
type AgeRange = toys.AgeRange

// DefaultCatalog returns the built-in rule table.
func DefaultCatalog() Catalog {
	return toys.DefaultCatalog()
}

// NewFactory creates a Factory from catalog.
func NewFactory(catalog Catalog) (*Factory, error) {
	return toys.NewFactory(catalog)
}

var defaultFactory = mustFactory(toys.DefaultCatalog())

func mustFactory(c Catalog) *Factory {
	f, err := toys.NewFactory(c)
	if err != nil {
		panic(err)
	}
	return f
}

// ProduceToy returns a new toy for age using the built-in catalog.
func ProduceToy(age int) types.Toy {
	return defaultFactory.Produce(age)
}
