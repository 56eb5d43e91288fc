package vulkan

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	vk "github.com/goki/vulkan"
)

type VulkanBuffer struct {
	Handle              vk.Buffer
	Memory              vk.DeviceMemory
	TotalSize           vk.DeviceSize
	Usage               vk.BufferUsageFlags
	MemoryPropertyFlags vk.MemoryPropertyFlags
	IsLocked            bool
}

func BufferCreate(context *VulkanContext, size vk.DeviceSize, usage vk.BufferUsageFlags, memoryPropertyFlags vk.MemoryPropertyFlags, bindOnCreate bool) (*VulkanBuffer, error) {
	buffer := &VulkanBuffer{
		TotalSize:           size,
		Usage:               usage,
		MemoryPropertyFlags: memoryPropertyFlags,
	}

	bufferInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        size,
		Usage:       usage,
		SharingMode: vk.SharingModeExclusive,
	}

	var handle vk.Buffer
	if res := vk.CreateBuffer(context.Device.LogicalDevice, &bufferInfo, context.Allocator, &handle); res != vk.Success {
		return nil, VulkanError(res, "vkCreateBuffer")
	}
	buffer.Handle = handle

	var memoryRequirements vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(context.Device.LogicalDevice, buffer.Handle, &memoryRequirements)
	memoryRequirements.Deref()

	memoryIndex := context.FindMemoryIndex(memoryRequirements.MemoryTypeBits, uint32(memoryPropertyFlags))
	if memoryIndex == -1 {
		buffer.Destroy(context)
		return nil, errors.New("unable to create buffer: required memory type not found")
	}

	allocateInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  memoryRequirements.Size,
		MemoryTypeIndex: uint32(memoryIndex),
	}

	var memory vk.DeviceMemory
	if res := vk.AllocateMemory(context.Device.LogicalDevice, &allocateInfo, context.Allocator, &memory); res != vk.Success {
		buffer.Destroy(context)
		return nil, VulkanError(res, "vkAllocateMemory")
	}
	buffer.Memory = memory

	if bindOnCreate {
		if err := buffer.Bind(context, 0); err != nil {
			buffer.Destroy(context)
			return nil, err
		}
	}
	return buffer, nil
}

func (b *VulkanBuffer) Destroy(context *VulkanContext) {
	if b.Memory != nil {
		vk.FreeMemory(context.Device.LogicalDevice, b.Memory, context.Allocator)
		b.Memory = nil
	}
	if b.Handle != nil {
		vk.DestroyBuffer(context.Device.LogicalDevice, b.Handle, context.Allocator)
		b.Handle = nil
	}
	b.TotalSize = 0
	b.IsLocked = false
}

func (b *VulkanBuffer) Bind(context *VulkanContext, offset vk.DeviceSize) error {
	if res := vk.BindBufferMemory(context.Device.LogicalDevice, b.Handle, b.Memory, offset); res != vk.Success {
		return VulkanError(res, "vkBindBufferMemory")
	}
	return nil
}

func (b *VulkanBuffer) LockMemory(context *VulkanContext, offset, size vk.DeviceSize, flags vk.MemoryMapFlags) (unsafe.Pointer, error) {
	var data unsafe.Pointer
	if res := vk.MapMemory(context.Device.LogicalDevice, b.Memory, offset, size, flags, &data); res != vk.Success {
		return nil, VulkanError(res, "vkMapMemory")
	}
	b.IsLocked = true
	return data, nil
}

func (b *VulkanBuffer) UnlockMemory(context *VulkanContext) {
	vk.UnmapMemory(context.Device.LogicalDevice, b.Memory)
	b.IsLocked = false
}

// LoadData maps the buffer's memory, copies data into it and unmaps. Only
// valid for host-visible buffers.
func (b *VulkanBuffer) LoadData(context *VulkanContext, offset vk.DeviceSize, data []byte) error {
	dst, err := b.LockMemory(context, offset, vk.DeviceSize(len(data)), 0)
	if err != nil {
		return err
	}
	vk.Memcopy(dst, data)
	b.UnlockMemory(context)
	return nil
}

// BufferCopyTo records and submits a one-shot transfer from this buffer.
func (b *VulkanBuffer) CopyTo(context *VulkanContext, pool vk.CommandPool, queue vk.Queue, dst *VulkanBuffer, size vk.DeviceSize) error {
	cb, err := AllocateAndBeginSingleUse(context, pool)
	if err != nil {
		return err
	}
	cb.CopyBuffer(b.Handle, dst.Handle, size)
	return cb.EndSingleUse(context, pool, queue)
}

// BufferCreateStagingWithData builds a host-visible staging buffer holding
// the given bytes. Used as the transfer source for device-local uploads.
func BufferCreateStagingWithData(context *VulkanContext, data []byte) (*VulkanBuffer, error) {
	staging, err := BufferCreate(
		context,
		vk.DeviceSize(len(data)),
		vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit),
		true)
	if err != nil {
		return nil, err
	}
	if err := staging.LoadData(context, 0, data); err != nil {
		staging.Destroy(context)
		return nil, err
	}
	return staging, nil
}

// BufferCreateDeviceLocalWithData uploads data into a device-local buffer
// by staging. The extra usage bits select vertex or index use.
func BufferCreateDeviceLocalWithData(context *VulkanContext, data []byte, usage vk.BufferUsageFlags) (*VulkanBuffer, error) {
	staging, err := BufferCreateStagingWithData(context, data)
	if err != nil {
		return nil, err
	}
	defer staging.Destroy(context)

	deviceLocal, err := BufferCreate(
		context,
		vk.DeviceSize(len(data)),
		usage|vk.BufferUsageFlags(vk.BufferUsageTransferDstBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit),
		true)
	if err != nil {
		return nil, err
	}

	if err := staging.CopyTo(context, context.Device.GraphicsCommandPool, context.Device.GraphicsQueue, deviceLocal, vk.DeviceSize(len(data))); err != nil {
		deviceLocal.Destroy(context)
		return nil, err
	}
	return deviceLocal, nil
}
