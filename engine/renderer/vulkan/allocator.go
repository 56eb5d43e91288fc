package vulkan

import "fmt"

// Allocation is a slice of a larger device memory block.
type Allocation struct {
	Offset uint64
	Size   uint64
}

func (a *Allocation) String() string {
	return fmt.Sprintf("[%d %d]", a.Offset, a.Size)
}

func alignUp(a uint64, align uint64) uint64 {
	m := a % align
	if m == 0 {
		return a
	}
	return (a - m) + align
}

// PoolAllocator hands out aligned sub-ranges of a fixed-size memory block.
// Uniform buffer slices must respect minUniformBufferOffsetAlignment, so
// every offset is aligned up. Frees leave holes that later allocations can
// fill.
type PoolAllocator struct {
	Size   uint64
	Align  uint64
	allocs []*Allocation
}

func NewPoolAllocator(size, align uint64) *PoolAllocator {
	if align == 0 {
		align = 1
	}
	return &PoolAllocator{Size: size, Align: align}
}

// Allocate reserves size bytes at an aligned offset, or returns nil when no
// hole is large enough.
func (p *PoolAllocator) Allocate(size uint64) *Allocation {
	if p.Align == 0 {
		p.Align = 1
	}
	if len(p.allocs) == 0 {
		if size > p.Size {
			return nil
		}
		na := &Allocation{Offset: 0, Size: size}
		p.allocs = append(p.allocs, na)
		return na
	}

	// Hole before the first allocation.
	if p.allocs[0].Offset >= size {
		na := &Allocation{Offset: 0, Size: size}
		p.allocs = append([]*Allocation{na}, p.allocs...)
		return na
	}

	// Holes between neighbors.
	for i := 0; i+1 < len(p.allocs); i++ {
		c := p.allocs[i]
		n := p.allocs[i+1]
		l := alignUp(c.Offset+c.Size, p.Align)
		if n.Offset >= l && n.Offset-l >= size {
			na := &Allocation{Offset: l, Size: size}
			p.allocs = append(p.allocs[:i+1], append([]*Allocation{na}, p.allocs[i+1:]...)...)
			return na
		}
	}

	// Tail.
	last := p.allocs[len(p.allocs)-1]
	l := alignUp(last.Offset+last.Size, p.Align)
	if p.Size >= l && p.Size-l >= size {
		na := &Allocation{Offset: l, Size: size}
		p.allocs = append(p.allocs, na)
		return na
	}
	return nil
}

// Free releases a previously returned allocation.
func (p *PoolAllocator) Free(fa *Allocation) {
	for i, a := range p.allocs {
		if a == fa {
			p.allocs = append(p.allocs[:i], p.allocs[i+1:]...)
			return
		}
	}
}

// InUse returns the sum of live allocation sizes.
func (p *PoolAllocator) InUse() uint64 {
	total := uint64(0)
	for _, a := range p.allocs {
		total += a.Size
	}
	return total
}

func (p *PoolAllocator) String() string {
	return fmt.Sprintf("%v", p.allocs)
}
