// Package singleton provides Lazy, a one-time initializer for a shared
// instance whose construction can fail.
//
// Unlike sync.Once, a failed construction does not consume the guard: the
// error is returned to the caller that attempted it and the next Get tries
// again. Once construction succeeds the instance is fixed for the life of
// the Lazy.
package singleton

import (
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/toybox/pkg/types"
)

// State is the lifecycle position of a Lazy.
type State int32

// Lazy lifecycle states. Ready is terminal.
const (
	StateUninitialized State = iota
	StateConstructing
	StateReady
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateConstructing:
		return "constructing"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Option configures a Lazy.
type Option func(*options)

type options struct {
	name   string
	logger *zap.Logger
}

// WithName sets the name reported in logs and errors.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger sets the logger used to report construction attempts.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Lazy holds a value of type T that is built on first use.
// The zero value is not usable; create one with New.
type Lazy[T any] struct {
	mu    sync.Mutex
	state atomic.Int32
	value T
	build func() (T, error)
	opts  options
}

// New returns a Lazy that calls build on the first Get.
// build runs at most once successfully; it is called again only after it
// returned an error or panicked.
func New[T any](build func() (T, error), opts ...Option) *Lazy[T] {
	o := options{name: "singleton", logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Lazy[T]{build: build, opts: o}
}

// Get returns the shared instance, constructing it if no call has yet
// succeeded. Concurrent first callers block until construction finishes;
// after that Get does not block.
//
// If construction fails the error, wrapped with ErrConstructionFailed, goes
// to the caller that ran it and the Lazy returns to StateUninitialized.
func (l *Lazy[T]) Get() (T, error) {
	if State(l.state.Load()) == StateReady {
		return l.value, nil
	}
	return l.slowGet()
}

func (l *Lazy[T]) slowGet() (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if State(l.state.Load()) == StateReady {
		return l.value, nil
	}

	l.state.Store(int32(StateConstructing))
	ok := false
	defer func() {
		if !ok {
			l.state.Store(int32(StateUninitialized))
		}
	}()

	l.opts.logger.Debug("constructing shared instance", zap.String("singleton", l.opts.name))
	v, err := l.build()
	if err != nil {
		l.opts.logger.Warn("shared instance construction failed",
			zap.String("singleton", l.opts.name),
			zap.Error(err))
		var zero T
		return zero, fmt.Errorf("%w: %s: %w", types.ErrConstructionFailed, l.opts.name, err)
	}

	l.value = v
	ok = true
	l.state.Store(int32(StateReady))
	l.opts.logger.Info("shared instance ready", zap.String("singleton", l.opts.name))
	return v, nil
}

// State returns the current lifecycle state.
func (l *Lazy[T]) State() State {
	return State(l.state.Load())
}

// Ready reports whether the instance has been constructed.
func (l *Lazy[T]) Ready() bool {
	return l.State() == StateReady
}
