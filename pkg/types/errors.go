package types

import "errors"

// Factory errors.
var (
	ErrUnclassifiable = errors.New("key matched no rule and no default is defined")
	ErrInvalidRule    = errors.New("invalid classification rule")
	ErrInvalidCatalog = errors.New("invalid toy catalog")
	ErrUnknownKind    = errors.New("unknown toy kind")
)

// Singleton errors.
var (
	ErrConstructionFailed = errors.New("singleton construction failed")
	ErrAlreadyInitialized = errors.New("singleton is already initialized")
)

// Network configuration errors.
var (
	ErrBaseURLEmpty   = errors.New("base url must not be empty")
	ErrBaseURLInvalid = errors.New("base url is invalid")
)

// Endpoint errors.
var (
	ErrEndpointAbsolute    = errors.New("endpoint must be a relative reference")
	ErrEndpointOutsideBase = errors.New("endpoint resolves outside the base path")
)
