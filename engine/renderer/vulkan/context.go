package vulkan

import (
	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/trekanten/engine/core"
)

type VulkanContext struct {
	// The framebuffer's current width.
	FramebufferWidth uint32
	// The framebuffer's current height.
	FramebufferHeight uint32
	// Current generation of framebuffer size. If it does not match
	// FramebufferSizeLastGeneration, a new swapchain should be generated.
	FramebufferSizeGeneration uint64
	// The generation of the framebuffer when the swapchain was last
	// created. Set to FramebufferSizeGeneration when updated.
	FramebufferSizeLastGeneration uint64

	Instance  vk.Instance
	Allocator *vk.AllocationCallbacks
	Surface   vk.Surface

	debugMessenger vk.DebugReportCallback

	Device *VulkanDevice

	Swapchain      *VulkanSwapchain
	MainRenderpass *VulkanRenderpass

	// Preferred present mode; the swapchain falls back to FIFO when the
	// device does not offer it.
	DesiredPresentMode vk.PresentMode

	// Serializes externally-synchronized Vulkan calls.
	LockPool *VulkanLockPool

	// One primary command buffer per swapchain image.
	GraphicsCommandBuffers []*VulkanCommandBuffer

	// Per frame-in-flight sync objects, indexed by CurrentFrame.
	ImageAvailableSemaphores []vk.Semaphore
	QueueCompleteSemaphores  []vk.Semaphore
	InFlightFences           []*VulkanFence

	// Which in-flight frame last used each swapchain image, or -1. Guards
	// against re-recording an image a previous frame still references,
	// since the presentation engine may hand images back out of order.
	ImageToFrame []int32

	ImageIndex   uint32
	CurrentFrame uint32

	// Number of frames the CPU may record ahead of the GPU.
	FramesInFlight uint32

	RecreatingSwapchain bool
}

func (vc *VulkanContext) FindMemoryIndex(typeFilter, propertyFlags uint32) int32 {
	var memoryProperties vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(vc.Device.PhysicalDevice, &memoryProperties)
	memoryProperties.Deref()

	for i := uint32(0); i < memoryProperties.MemoryTypeCount; i++ {
		// Check each memory type to see if its bit is set to 1.
		memoryProperties.MemoryTypes[i].Deref()
		if (typeFilter&(1<<i)) != 0 && (uint32(memoryProperties.MemoryTypes[i].PropertyFlags)&propertyFlags) == propertyFlags {
			return int32(i)
		}
	}
	core.LogWarn("Unable to find suitable memory type!")
	return -1
}
