package resource

import (
	"github.com/cockroachdb/errors"

	"github.com/spaghettifunk/trekanten/engine/core"
)

// ErrFrameIndexOutOfRange is returned when a buffered lookup names a frame
// slot beyond the storage's buffering degree.
var ErrFrameIndexOutOfRange = errors.New("frame index out of range")

// BufferedStorage keeps one copy of each resource per frame in flight so
// the CPU can rewrite the current frame's copy while the GPU still reads
// another. A single handle addresses all copies; lookups pick the copy for
// a frame index.
//
// Used for uniform buffers and descriptor sets, whose contents change every
// frame.
type BufferedStorage[T any] struct {
	buffers []*Storage[T]
}

func NewBufferedStorage[T any](kind string, numBuffers uint32) *BufferedStorage[T] {
	tag := core.NewIdentifier(kind)
	buffers := make([]*Storage[T], numBuffers)
	for i := range buffers {
		buffers[i] = newStorageWithTag[T](tag)
	}
	return &BufferedStorage[T]{buffers: buffers}
}

// NumBuffers returns the buffering degree.
func (b *BufferedStorage[T]) NumBuffers() uint32 {
	return uint32(len(b.buffers))
}

// Add creates one resource copy per buffer by calling create with the
// buffer index, and returns the shared handle. All copies occupy the same
// slot in their respective sub-storage.
func (b *BufferedStorage[T]) Add(create func(bufferIdx uint32) (T, error)) (Handle[T], error) {
	var handle Handle[T]
	for i, storage := range b.buffers {
		value, err := create(uint32(i))
		if err != nil {
			// Roll back copies created so far.
			for j := 0; j < i; j++ {
				b.buffers[j].Remove(handle)
			}
			return Handle[T]{}, err
		}
		h := storage.Add(value)
		if i == 0 {
			handle = h
		} else if h != handle {
			core.LogFatal("buffered storage slots diverged: %d != %d", h.ID(), handle.ID())
		}
	}
	return handle, nil
}

// Get resolves the copy for the given frame index.
func (b *BufferedStorage[T]) Get(h Handle[T], frameIdx uint32) (*T, error) {
	if frameIdx >= uint32(len(b.buffers)) {
		return nil, errors.Wrapf(ErrFrameIndexOutOfRange, "frame %d of %d", frameIdx, len(b.buffers))
	}
	return b.buffers[frameIdx].Get(h)
}

// GetAll resolves every per-frame copy, ordered by frame index.
func (b *BufferedStorage[T]) GetAll(h Handle[T]) ([]*T, error) {
	all := make([]*T, len(b.buffers))
	for i, storage := range b.buffers {
		v, err := storage.Get(h)
		if err != nil {
			return nil, err
		}
		all[i] = v
	}
	return all, nil
}

// Remove releases every per-frame copy, returning them so the caller can
// destroy the GPU objects.
func (b *BufferedStorage[T]) Remove(h Handle[T]) ([]T, error) {
	removed := make([]T, 0, len(b.buffers))
	for _, storage := range b.buffers {
		v, err := storage.Remove(h)
		if err != nil {
			return nil, err
		}
		removed = append(removed, v)
	}
	return removed, nil
}

// Len returns the number of live resources (not copies).
func (b *BufferedStorage[T]) Len() int {
	return b.buffers[0].Len()
}

// ForEach visits every copy of every live resource.
func (b *BufferedStorage[T]) ForEach(fn func(Handle[T], *T)) {
	for _, storage := range b.buffers {
		storage.ForEach(fn)
	}
}
