package vulkan

import (
	"github.com/cockroachdb/errors"
	vk "github.com/goki/vulkan"
)

// VulkanUniformArena is one host-visible buffer carved into aligned slices
// by the pool allocator, so all uniform data of a frame slot shares a
// single device memory allocation. One arena exists per frame in flight.
type VulkanUniformArena struct {
	Buffer *VulkanBuffer
	pool   *PoolAllocator
}

func NewUniformArena(context *VulkanContext, size vk.DeviceSize) (*VulkanUniformArena, error) {
	buffer, err := BufferCreate(
		context,
		size,
		vk.BufferUsageFlags(vk.BufferUsageUniformBufferBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit),
		true)
	if err != nil {
		return nil, err
	}
	limits := context.Device.Properties.Limits
	limits.Deref()
	return &VulkanUniformArena{
		Buffer: buffer,
		pool:   NewPoolAllocator(uint64(size), uint64(limits.MinUniformBufferOffsetAlignment)),
	}, nil
}

// Allocate reserves an aligned uniform slice within the arena's buffer.
func (a *VulkanUniformArena) Allocate(size uint64) (*Allocation, error) {
	alloc := a.pool.Allocate(size)
	if alloc == nil {
		return nil, errors.Newf("uniform arena exhausted: %d bytes requested, %d of %d in use", size, a.pool.InUse(), a.pool.Size)
	}
	return alloc, nil
}

// Free releases a slice back to the arena.
func (a *VulkanUniformArena) Free(alloc *Allocation) {
	a.pool.Free(alloc)
}

// Write copies data into the slice. Only valid while the owning frame slot
// is not in flight.
func (a *VulkanUniformArena) Write(context *VulkanContext, alloc *Allocation, data []byte) error {
	if uint64(len(data)) > alloc.Size {
		return errors.Newf("uniform write of %d bytes exceeds the %d byte slice", len(data), alloc.Size)
	}
	return a.Buffer.LoadData(context, vk.DeviceSize(alloc.Offset), data)
}

func (a *VulkanUniformArena) Destroy(context *VulkanContext) {
	a.Buffer.Destroy(context)
}
