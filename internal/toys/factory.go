package toys

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/toybox/internal/classify"
	"github.com/mesh-intelligence/toybox/pkg/types"
)

// Option configures a Factory.
type Option func(*Factory)

// WithLogger sets the logger for rule decisions.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Factory produces toys by age according to a Catalog.
// It is immutable after NewFactory and safe for concurrent use.
type Factory struct {
	catalog Catalog
	inner   *classify.Factory[int, types.Toy]
	logger  *zap.Logger
}

// NewFactory validates catalog and compiles it into a Factory.
func NewFactory(catalog Catalog, opts ...Option) (*Factory, error) {
	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	f := &Factory{catalog: catalog.clone(), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(f)
	}

	rules := make([]classify.Rule[int, types.Toy], 0, len(f.catalog.Ranges))
	for _, r := range f.catalog.Ranges {
		rules = append(rules, classify.Rule[int, types.Toy]{
			Name:  r.Name,
			Match: r.Contains,
			Build: builder(r.Kind),
		})
	}

	inner, err := classify.New(rules,
		classify.WithDefault(DefaultRuleName, builder(f.catalog.Default)),
		classify.WithLogger[int, types.Toy](f.logger))
	if err != nil {
		return nil, err
	}
	f.inner = inner
	return f, nil
}

func builder(kind types.Kind) func(int) types.Toy {
	return func(int) types.Toy { return build(kind) }
}

// Produce returns a new toy for age. It never fails: ages no rule covers,
// including negative ones, get the catalog's default kind.
func (f *Factory) Produce(age int) types.Toy {
	toy, _ := f.ProduceWithRule(age)
	return toy
}

// ProduceWithRule returns a new toy for age together with the name of the
// rule that built it.
func (f *Factory) ProduceWithRule(age int) (types.Toy, string) {
	toy, rule, err := f.inner.ProduceRule(age)
	if err != nil {
		// NewFactory always installs a default rule.
		panic(err)
	}
	return toy, rule
}

// Classify returns the name of the rule that Produce would use for age,
// or DefaultRuleName when no range covers it.
func (f *Factory) Classify(age int) string {
	name, err := f.inner.Classify(age)
	if err != nil {
		panic(err)
	}
	return name
}

// Rules returns the rule names in evaluation order, DefaultRuleName last.
func (f *Factory) Rules() []string {
	return f.inner.Rules()
}

// Catalog returns a copy of the table the factory was built from.
func (f *Factory) Catalog() Catalog {
	return f.catalog.clone()
}
