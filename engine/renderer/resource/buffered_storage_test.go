package resource

import (
	"testing"

	"github.com/cockroachdb/errors"
)

type fakeUniform struct {
	frame uint32
	value float32
}

func TestBufferedStorageAddAndPerFrameGet(t *testing.T) {
	b := NewBufferedStorage[fakeUniform]("uniform", 2)

	h, err := b.Add(func(bufferIdx uint32) (fakeUniform, error) {
		return fakeUniform{frame: bufferIdx}, nil
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	for frame := uint32(0); frame < 2; frame++ {
		u, err := b.Get(h, frame)
		if err != nil {
			t.Fatalf("get frame %d: %v", frame, err)
		}
		if u.frame != frame {
			t.Fatalf("frame %d resolved copy for frame %d", frame, u.frame)
		}
	}
	if _, err := b.Get(h, 2); !errors.Is(err, ErrFrameIndexOutOfRange) {
		t.Fatalf("expected ErrFrameIndexOutOfRange, got %v", err)
	}
}

func TestBufferedStorageCopiesAreIndependent(t *testing.T) {
	b := NewBufferedStorage[fakeUniform]("uniform", 2)
	h, _ := b.Add(func(bufferIdx uint32) (fakeUniform, error) {
		return fakeUniform{frame: bufferIdx}, nil
	})

	u0, _ := b.Get(h, 0)
	u0.value = 1.5

	u1, _ := b.Get(h, 1)
	if u1.value != 0 {
		t.Fatal("writing frame 0's copy must not touch frame 1's")
	}

	all, err := b.GetAll(h)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 2 || all[0].value != 1.5 || all[1].value != 0 {
		t.Fatalf("unexpected copies: %+v", all)
	}
}

func TestBufferedStorageSharedHandle(t *testing.T) {
	b := NewBufferedStorage[fakeUniform]("uniform", 2)
	h1, _ := b.Add(func(uint32) (fakeUniform, error) { return fakeUniform{}, nil })
	h2, _ := b.Add(func(uint32) (fakeUniform, error) { return fakeUniform{}, nil })
	if h1 == h2 {
		t.Fatal("distinct resources must get distinct handles")
	}

	removed, err := b.Remove(h1)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(removed) != 2 {
		t.Fatalf("expected 2 removed copies, got %d", len(removed))
	}
	if _, err := b.Get(h1, 0); !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("expected ErrInvalidHandle after remove, got %v", err)
	}
	if b.Len() != 1 {
		t.Fatalf("expected 1 live resource, got %d", b.Len())
	}
}

func TestBufferedStorageAddRollsBackOnError(t *testing.T) {
	b := NewBufferedStorage[fakeUniform]("uniform", 2)
	boom := errors.New("allocation failed")

	_, err := b.Add(func(bufferIdx uint32) (fakeUniform, error) {
		if bufferIdx == 1 {
			return fakeUniform{}, boom
		}
		return fakeUniform{}, nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected create error, got %v", err)
	}
	if b.Len() != 0 {
		t.Fatalf("partial create must roll back, len=%d", b.Len())
	}
}
