// Package classify implements a factory that maps a key to one of a fixed
// set of products through an ordered list of rules.
//
// Rules are evaluated in the order given to New. The first rule whose Match
// returns true builds the product. If none match, the default rule (if one
// was configured) builds it instead. A gap in the rules is therefore not an
// error as long as a default exists.
package classify

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/toybox/pkg/types"
)

// Rule pairs a predicate over the key domain with the constructor of the
// product to return when the predicate matches.
type Rule[K any, P any] struct {
	// Name identifies the rule in logs and in Classify results.
	Name string

	// Match reports whether this rule applies to the key.
	Match func(K) bool

	// Build constructs a new product for the key. It must not fail.
	Build func(K) P
}

func (r Rule[K, P]) validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: name must not be empty", types.ErrInvalidRule)
	}
	if r.Match == nil {
		return fmt.Errorf("%w: rule %q has no match function", types.ErrInvalidRule, r.Name)
	}
	if r.Build == nil {
		return fmt.Errorf("%w: rule %q has no build function", types.ErrInvalidRule, r.Name)
	}
	return nil
}

// Option configures a Factory.
type Option[K any, P any] func(*Factory[K, P])

// WithDefault sets the rule that fires when no other rule matches.
// The default's Match function is ignored and may be nil.
func WithDefault[K any, P any](name string, build func(K) P) Option[K, P] {
	return func(f *Factory[K, P]) {
		f.fallback = &Rule[K, P]{Name: name, Match: func(K) bool { return true }, Build: build}
	}
}

// WithLogger sets the logger used to report which rule fired.
func WithLogger[K any, P any](logger *zap.Logger) Option[K, P] {
	return func(f *Factory[K, P]) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Factory selects and builds products by rule. It holds no mutable state
// after New returns and is safe for concurrent use.
type Factory[K any, P any] struct {
	rules    []Rule[K, P]
	fallback *Rule[K, P]
	logger   *zap.Logger
}

// New creates a Factory from rules, evaluated in slice order.
// Returns ErrInvalidRule if a rule is incomplete or two rules share a name.
func New[K any, P any](rules []Rule[K, P], opts ...Option[K, P]) (*Factory[K, P], error) {
	f := &Factory[K, P]{
		rules:  make([]Rule[K, P], len(rules)),
		logger: zap.NewNop(),
	}
	copy(f.rules, rules)

	for _, opt := range opts {
		opt(f)
	}

	seen := make(map[string]bool, len(f.rules)+1)
	for _, r := range f.rules {
		if err := r.validate(); err != nil {
			return nil, err
		}
		if seen[r.Name] {
			return nil, fmt.Errorf("%w: duplicate rule name %q", types.ErrInvalidRule, r.Name)
		}
		seen[r.Name] = true
	}
	if f.fallback != nil {
		if err := f.fallback.validate(); err != nil {
			return nil, err
		}
		if seen[f.fallback.Name] {
			return nil, fmt.Errorf("%w: duplicate rule name %q", types.ErrInvalidRule, f.fallback.Name)
		}
	}

	return f, nil
}

// Produce builds a new product for key using the first matching rule, or
// the default rule when nothing matches. Every call returns a fresh product.
// Returns ErrUnclassifiable if no rule matches and there is no default.
func (f *Factory[K, P]) Produce(key K) (P, error) {
	p, _, err := f.ProduceRule(key)
	return p, err
}

// ProduceRule is Produce that also returns the name of the rule that built
// the product.
func (f *Factory[K, P]) ProduceRule(key K) (P, string, error) {
	r, err := f.find(key)
	if err != nil {
		var zero P
		return zero, "", err
	}
	return r.Build(key), r.Name, nil
}

// Classify returns the name of the rule Produce would use for key.
func (f *Factory[K, P]) Classify(key K) (string, error) {
	r, err := f.find(key)
	if err != nil {
		return "", err
	}
	return r.Name, nil
}

// Rules returns the rule names in evaluation order. The default rule, if
// any, is last.
func (f *Factory[K, P]) Rules() []string {
	names := make([]string, 0, len(f.rules)+1)
	for _, r := range f.rules {
		names = append(names, r.Name)
	}
	if f.fallback != nil {
		names = append(names, f.fallback.Name)
	}
	return names
}

// HasDefault reports whether a default rule is configured.
func (f *Factory[K, P]) HasDefault() bool {
	return f.fallback != nil
}

func (f *Factory[K, P]) find(key K) (*Rule[K, P], error) {
	for i := range f.rules {
		if f.rules[i].Match(key) {
			f.logger.Debug("rule matched",
				zap.String("rule", f.rules[i].Name),
				zap.Any("key", key))
			return &f.rules[i], nil
		}
	}
	if f.fallback == nil {
		f.logger.Warn("no rule matched", zap.Any("key", key))
		return nil, fmt.Errorf("%w: %v", types.ErrUnclassifiable, key)
	}
	f.logger.Debug("default rule used",
		zap.String("rule", f.fallback.Name),
		zap.Any("key", key))
	return f.fallback, nil
}
