package toys

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/toybox/pkg/types"
)

// DefaultRuleName is the name under which the catalog's default kind is
// reported. Catalog rules may not use it.
const DefaultRuleName = "default"

// AgeRange maps an inclusive range of ages to a toy kind.
// A nil bound is open on that side.
type AgeRange struct {
	Name   string     `yaml:"name" json:"name"`
	Kind   types.Kind `yaml:"kind" json:"kind"`
	MinAge *int       `yaml:"min_age,omitempty" json:"min_age,omitempty"`
	MaxAge *int       `yaml:"max_age,omitempty" json:"max_age,omitempty"`
}

// Contains reports whether age falls inside the range.
func (r AgeRange) Contains(age int) bool {
	if r.MinAge != nil && age < *r.MinAge {
		return false
	}
	if r.MaxAge != nil && age > *r.MaxAge {
		return false
	}
	return true
}

// String renders the range as "lo..hi", ">=lo" or "<=hi".
func (r AgeRange) String() string {
	switch {
	case r.MinAge != nil && r.MaxAge != nil:
		return fmt.Sprintf("%d..%d", *r.MinAge, *r.MaxAge)
	case r.MinAge != nil:
		return fmt.Sprintf(">=%d", *r.MinAge)
	case r.MaxAge != nil:
		return fmt.Sprintf("<=%d", *r.MaxAge)
	default:
		return "any"
	}
}

// Catalog is the ordered rule table the toy factory is built from.
// Ranges are checked in order; the first that contains the age wins.
// Ages no range contains get the Default kind.
type Catalog struct {
	Ranges  []AgeRange `yaml:"rules" json:"rules"`
	Default types.Kind `yaml:"default" json:"default"`
}

func intPtr(v int) *int { return &v }

// DefaultCatalog returns the built-in table: trains up to 6, trampolines
// 7 to 9, balls 10 to 18, Nintendo Switches above 18, and balls for any
// other age.
func DefaultCatalog() Catalog {
	return Catalog{
		Ranges: []AgeRange{
			{Name: "toddler", Kind: types.KindTrain, MinAge: intPtr(0), MaxAge: intPtr(6)},
			{Name: "child", Kind: types.KindTrampoline, MinAge: intPtr(7), MaxAge: intPtr(9)},
			{Name: "teen", Kind: types.KindBall, MinAge: intPtr(10), MaxAge: intPtr(18)},
			{Name: "adult", Kind: types.KindNintendoSwitch, MinAge: intPtr(19)},
		},
		Default: types.KindBall,
	}
}

// Validate checks that every range has a unique name, a known kind and
// ordered bounds, and that the default kind is known.
// Returns an error wrapping ErrInvalidCatalog.
func (c Catalog) Validate() error {
	if !c.Default.Valid() {
		return fmt.Errorf("%w: default kind %q: %w", types.ErrInvalidCatalog, c.Default, types.ErrUnknownKind)
	}

	seen := make(map[string]bool, len(c.Ranges))
	for i, r := range c.Ranges {
		if r.Name == "" {
			return fmt.Errorf("%w: rule %d has no name", types.ErrInvalidCatalog, i)
		}
		if r.Name == DefaultRuleName {
			return fmt.Errorf("%w: rule name %q is reserved", types.ErrInvalidCatalog, r.Name)
		}
		if seen[r.Name] {
			return fmt.Errorf("%w: duplicate rule name %q", types.ErrInvalidCatalog, r.Name)
		}
		seen[r.Name] = true

		if !r.Kind.Valid() {
			return fmt.Errorf("%w: rule %q kind %q: %w", types.ErrInvalidCatalog, r.Name, r.Kind, types.ErrUnknownKind)
		}
		if r.MinAge != nil && r.MaxAge != nil && *r.MinAge > *r.MaxAge {
			return fmt.Errorf("%w: rule %q min_age %d exceeds max_age %d",
				types.ErrInvalidCatalog, r.Name, *r.MinAge, *r.MaxAge)
		}
	}
	return nil
}

// ParseCatalog decodes and validates a YAML catalog. Unknown fields are
// rejected.
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return Catalog{}, fmt.Errorf("%w: empty document", types.ErrInvalidCatalog)
		}
		return Catalog{}, fmt.Errorf("%w: %w", types.ErrInvalidCatalog, err)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// LoadCatalog reads and parses the catalog file at path.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// Encode returns the catalog as YAML in the format ParseCatalog reads.
func (c Catalog) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return buf.Bytes(), nil
}

// clone returns a deep copy so callers cannot change a factory's table.
func (c Catalog) clone() Catalog {
	out := Catalog{Default: c.Default, Ranges: make([]AgeRange, len(c.Ranges))}
	for i, r := range c.Ranges {
		out.Ranges[i] = AgeRange{Name: r.Name, Kind: r.Kind}
		if r.MinAge != nil {
			out.Ranges[i].MinAge = intPtr(*r.MinAge)
		}
		if r.MaxAge != nil {
			out.Ranges[i].MaxAge = intPtr(*r.MaxAge)
		}
	}
	return out
}
