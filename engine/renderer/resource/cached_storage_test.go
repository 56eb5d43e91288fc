package resource

import (
	"testing"

	"github.com/cockroachdb/errors"
)

type textureDesc struct {
	path string
}

type fakeTexture struct {
	path string
}

func TestCachedStorageDeduplicates(t *testing.T) {
	c := NewCachedStorage[textureDesc, fakeTexture]("texture")

	creates := 0
	create := func(d textureDesc) (fakeTexture, error) {
		creates++
		return fakeTexture{path: d.path}, nil
	}

	h1, cached, err := c.GetOrCreate(textureDesc{path: "a.png"}, create)
	if err != nil || cached {
		t.Fatalf("first create: cached=%v err=%v", cached, err)
	}
	h2, cached, err := c.GetOrCreate(textureDesc{path: "a.png"}, create)
	if err != nil || !cached {
		t.Fatalf("second create: cached=%v err=%v", cached, err)
	}
	if h1 != h2 {
		t.Fatal("same descriptor must return same handle")
	}
	if creates != 1 {
		t.Fatalf("create called %d times, want 1", creates)
	}

	h3, cached, err := c.GetOrCreate(textureDesc{path: "b.png"}, create)
	if err != nil || cached {
		t.Fatalf("distinct descriptor: cached=%v err=%v", cached, err)
	}
	if h3 == h1 {
		t.Fatal("distinct descriptors must get distinct handles")
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 live resources, got %d", c.Len())
	}
}

func TestCachedStorageCreateError(t *testing.T) {
	c := NewCachedStorage[textureDesc, fakeTexture]("texture")
	boom := errors.New("decode failed")

	_, _, err := c.GetOrCreate(textureDesc{path: "bad.png"}, func(textureDesc) (fakeTexture, error) {
		return fakeTexture{}, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected create error to propagate, got %v", err)
	}
	if c.Len() != 0 {
		t.Fatal("failed create must not cache")
	}
}

func TestCachedStorageEvictByDescriptor(t *testing.T) {
	c := NewCachedStorage[textureDesc, fakeTexture]("pipeline")
	create := func(d textureDesc) (fakeTexture, error) {
		return fakeTexture{path: d.path}, nil
	}

	hA, _, _ := c.GetOrCreate(textureDesc{path: "a.spv"}, create)
	hB, _, _ := c.GetOrCreate(textureDesc{path: "b.spv"}, create)

	var released []string
	n := c.Evict(
		func(d textureDesc) bool { return d.path == "a.spv" },
		func(d textureDesc, v fakeTexture) { released = append(released, v.path) })
	if n != 1 {
		t.Fatalf("expected 1 eviction, got %d", n)
	}
	if len(released) != 1 || released[0] != "a.spv" {
		t.Fatalf("release callback saw %v", released)
	}

	if _, err := c.Get(hA); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("evicted handle must stop resolving, got %v", err)
	}
	if _, err := c.Get(hB); err != nil {
		t.Errorf("unmatched resource must survive eviction: %v", err)
	}

	_, cached, _ := c.GetOrCreate(textureDesc{path: "a.spv"}, create)
	if cached {
		t.Error("evicted descriptor must be recreated, not served from cache")
	}
}

func TestCachedStorageRemoveEvicts(t *testing.T) {
	c := NewCachedStorage[textureDesc, fakeTexture]("texture")
	creates := 0
	create := func(d textureDesc) (fakeTexture, error) {
		creates++
		return fakeTexture{path: d.path}, nil
	}

	h, _, _ := c.GetOrCreate(textureDesc{path: "a.png"}, create)
	if _, err := c.Remove(h); err != nil {
		t.Fatalf("remove: %v", err)
	}
	_, cached, _ := c.GetOrCreate(textureDesc{path: "a.png"}, create)
	if cached {
		t.Fatal("removed descriptor must be recreated, not served from cache")
	}
	if creates != 2 {
		t.Fatalf("create called %d times, want 2", creates)
	}
}
