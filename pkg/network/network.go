// Package network provides the public API for the network manager: a
// constructor for explicit use and Shared, the process-wide instance.
//
// Prefer building a Manager once at the composition root and passing it to
// the code that needs it. Shared exists for call sites that cannot be given
// one explicitly.
//
// Example:
//
//	network.SetConfigSource(func() (types.NetworkConfig, error) {
//	    return types.NetworkConfig{BaseURL: cfg.BaseURL}, nil
//	})
//	m, err := network.Shared()
package network

import (
	"fmt"
	"sync"

	"github.com/mesh-intelligence/toybox/internal/network"
	"github.com/mesh-intelligence/toybox/internal/singleton"
	"github.com/mesh-intelligence/toybox/pkg/types"
)

// Manager is the shared holder of the base endpoint.
type Manager = network.Manager

// DefaultBaseURL is the base URL Shared uses when no config source is set.
const DefaultBaseURL = "https://api.toybox.dev/v1"

// ConfigSource supplies the configuration for the shared Manager. It is
// called once per construction attempt.
type ConfigSource func() (types.NetworkConfig, error)

// DefaultConfig returns a NetworkConfig pointing at DefaultBaseURL.
func DefaultConfig() (types.NetworkConfig, error) {
	return types.NetworkConfig{BaseURL: DefaultBaseURL}, nil
}

// NewManager validates cfg and returns a new, unshared Manager.
func NewManager(cfg types.NetworkConfig) (*Manager, error) {
	return network.NewManager(cfg)
}

var (
	sourceMu sync.Mutex
	source   ConfigSource = DefaultConfig
	shared                = newShared()
)

func newShared() *singleton.Lazy[*Manager] {
	return singleton.New(func() (*Manager, error) {
		sourceMu.Lock()
		src := source
		sourceMu.Unlock()

		cfg, err := src()
		if err != nil {
			return nil, err
		}
		return network.NewManager(cfg)
	}, singleton.WithName("network"))
}

// SetConfigSource replaces the source Shared builds its Manager from.
// Returns ErrAlreadyInitialized once construction of the shared Manager has
// started, since a running build has already read the old source. After a
// failed build the source may be replaced again. A nil src restores
// DefaultConfig.
func SetConfigSource(src ConfigSource) error {
	sourceMu.Lock()
	defer sourceMu.Unlock()

	// The build reads source under sourceMu after entering StateConstructing,
	// so holding the lock here makes the check and the swap atomic with it.
	if st := shared.State(); st != singleton.StateUninitialized {
		return fmt.Errorf("%w: shared manager is %s", types.ErrAlreadyInitialized, st)
	}
	if src == nil {
		src = DefaultConfig
	}
	source = src
	return nil
}

// Shared returns the process-wide Manager, building it on the first call.
// Every successful call returns the same *Manager. If building fails the
// error wraps ErrConstructionFailed and a later call tries again.
func Shared() (*Manager, error) {
	return shared.Get()
}
