package core

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrNotInitialized is returned by subsystems whose Initialize has
	// not been called yet.
	ErrNotInitialized = errors.New("subsystem not initialized")
	ErrUnknown        = errors.New("unknown")
)
