package core

import (
	"fmt"

	"github.com/google/uuid"
)

// NewIdentifier returns a unique identifier for a renderer-owned object,
// prefixed with the kind of object it names. Used to tag storages and to
// label GPU resources in log output.
func NewIdentifier(kind string) string {
	return fmt.Sprintf("%s-%s", kind, uuid.New().String())
}
