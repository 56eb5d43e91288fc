package resource

import (
	"github.com/cockroachdb/errors"

	"github.com/spaghettifunk/trekanten/engine/core"
)

var (
	// ErrInvalidHandle is returned when a zero-value or released handle is
	// used to resolve a resource.
	ErrInvalidHandle = errors.New("invalid resource handle")
	// ErrWrongStorage is returned when a handle issued by one storage is
	// resolved against another.
	ErrWrongStorage = errors.New("handle does not belong to this storage")
)

// Handle is an opaque typed reference to a resource living in a Storage.
// The zero value is invalid. A handle only resolves in the storage that
// issued it.
type Handle[T any] struct {
	id  uint32
	tag string
}

// IsValid reports whether the handle was issued by a storage. It does not
// guarantee the resource is still alive.
func (h Handle[T]) IsValid() bool {
	return h.id != 0 && h.tag != ""
}

// ID returns the raw slot number, for logging.
func (h Handle[T]) ID() uint32 {
	return h.id
}

type slot[T any] struct {
	value T
	live  bool
}

// Storage owns resources of one type and issues handles for them. Freed
// slots are recycled.
type Storage[T any] struct {
	tag   string
	slots []slot[T]
	free  []uint32
}

// NewStorage creates an empty storage. The kind names the resource type in
// handle provenance errors and log lines.
func NewStorage[T any](kind string) *Storage[T] {
	return newStorageWithTag[T](core.NewIdentifier(kind))
}

func newStorageWithTag[T any](tag string) *Storage[T] {
	return &Storage[T]{tag: tag}
}

// Add stores the resource and returns its handle.
func (s *Storage[T]) Add(value T) Handle[T] {
	if n := len(s.free); n > 0 {
		idx := s.free[n-1]
		s.free = s.free[:n-1]
		s.slots[idx] = slot[T]{value: value, live: true}
		return Handle[T]{id: idx + 1, tag: s.tag}
	}
	s.slots = append(s.slots, slot[T]{value: value, live: true})
	return Handle[T]{id: uint32(len(s.slots)), tag: s.tag}
}

func (s *Storage[T]) index(h Handle[T]) (uint32, error) {
	if !h.IsValid() {
		return 0, ErrInvalidHandle
	}
	if h.tag != s.tag {
		return 0, ErrWrongStorage
	}
	idx := h.id - 1
	if idx >= uint32(len(s.slots)) || !s.slots[idx].live {
		return 0, ErrInvalidHandle
	}
	return idx, nil
}

// Get resolves the handle to the stored resource.
func (s *Storage[T]) Get(h Handle[T]) (*T, error) {
	idx, err := s.index(h)
	if err != nil {
		return nil, err
	}
	return &s.slots[idx].value, nil
}

// Has reports whether the handle resolves in this storage.
func (s *Storage[T]) Has(h Handle[T]) bool {
	_, err := s.index(h)
	return err == nil
}

// Remove releases the slot and returns the resource so the caller can
// destroy its GPU objects.
func (s *Storage[T]) Remove(h Handle[T]) (T, error) {
	var zero T
	idx, err := s.index(h)
	if err != nil {
		return zero, err
	}
	value := s.slots[idx].value
	s.slots[idx] = slot[T]{}
	s.free = append(s.free, idx)
	return value, nil
}

// Len returns the number of live resources.
func (s *Storage[T]) Len() int {
	return len(s.slots) - len(s.free)
}

// ForEach visits every live resource. Used for bulk teardown.
func (s *Storage[T]) ForEach(fn func(Handle[T], *T)) {
	for i := range s.slots {
		if s.slots[i].live {
			fn(Handle[T]{id: uint32(i) + 1, tag: s.tag}, &s.slots[i].value)
		}
	}
}
