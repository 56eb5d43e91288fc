package resource

import (
	"testing"

	"github.com/cockroachdb/errors"
)

type fakeBuffer struct {
	size uint64
}

func TestStorageAddGetRemove(t *testing.T) {
	s := NewStorage[fakeBuffer]("buffer")

	h := s.Add(fakeBuffer{size: 128})
	if !h.IsValid() {
		t.Fatal("handle should be valid")
	}
	got, err := s.Get(h)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.size != 128 {
		t.Fatalf("expected size 128, got %d", got.size)
	}

	removed, err := s.Remove(h)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if removed.size != 128 {
		t.Fatalf("expected removed size 128, got %d", removed.size)
	}
	if _, err := s.Get(h); !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("expected ErrInvalidHandle after remove, got %v", err)
	}
}

func TestStorageZeroHandleInvalid(t *testing.T) {
	s := NewStorage[fakeBuffer]("buffer")
	var h Handle[fakeBuffer]
	if h.IsValid() {
		t.Fatal("zero handle must be invalid")
	}
	if _, err := s.Get(h); !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("expected ErrInvalidHandle, got %v", err)
	}
}

func TestStorageHandleProvenance(t *testing.T) {
	a := NewStorage[fakeBuffer]("buffer")
	b := NewStorage[fakeBuffer]("buffer")

	h := a.Add(fakeBuffer{size: 1})
	if _, err := b.Get(h); !errors.Is(err, ErrWrongStorage) {
		t.Fatalf("handle from one storage must not resolve in another, got %v", err)
	}
	if b.Has(h) {
		t.Fatal("Has must reject foreign handles")
	}
}

func TestStorageSlotReuse(t *testing.T) {
	s := NewStorage[fakeBuffer]("buffer")
	h1 := s.Add(fakeBuffer{size: 1})
	h2 := s.Add(fakeBuffer{size: 2})

	if _, err := s.Remove(h1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	h3 := s.Add(fakeBuffer{size: 3})
	if h3.ID() != h1.ID() {
		t.Fatalf("freed slot should be recycled: got %d, want %d", h3.ID(), h1.ID())
	}
	// The stale handle to the recycled slot now resolves to the new value.
	// Callers must not keep handles past Remove.
	v, err := s.Get(h2)
	if err != nil || v.size != 2 {
		t.Fatalf("untouched handle broken: %v %v", v, err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected len 2, got %d", s.Len())
	}
}

func TestStorageForEach(t *testing.T) {
	s := NewStorage[fakeBuffer]("buffer")
	s.Add(fakeBuffer{size: 1})
	h := s.Add(fakeBuffer{size: 2})
	s.Add(fakeBuffer{size: 3})
	s.Remove(h)

	total := uint64(0)
	s.ForEach(func(_ Handle[fakeBuffer], b *fakeBuffer) {
		total += b.size
	})
	if total != 4 {
		t.Fatalf("expected visited sum 4, got %d", total)
	}
}
