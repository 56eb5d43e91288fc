package vulkan

import (
	"sync"

	vk "github.com/goki/vulkan"
)

type LockGroup string

const (
	SamplerManagement         LockGroup = "sampler_management"
	CommandBufferManagement   LockGroup = "command_buffer_management"
	BufferManagement          LockGroup = "buffer_management"
	ImageManagement           LockGroup = "image_management"
	DescriptorManagement      LockGroup = "descriptor_management"
	PipelineManagement        LockGroup = "pipeline_management"
	ShaderManagement          LockGroup = "shader_management"
	SynchronizationManagement LockGroup = "synchronization_management"
	SwapchainManagement       LockGroup = "swapchain_management"
	InstanceManagement        LockGroup = "instance_management"
)

// VulkanLockPool serializes access to Vulkan objects that are externally
// synchronized. Queues get their own mutex since vkQueueSubmit and
// vkQueuePresentKHR must never race on the same queue.
type VulkanLockPool struct {
	mu          sync.Mutex
	locks       map[LockGroup]*sync.Mutex
	queueLocks  map[vk.Queue]*sync.Mutex
}

func NewVulkanLockPool() *VulkanLockPool {
	return &VulkanLockPool{
		locks:      make(map[LockGroup]*sync.Mutex),
		queueLocks: make(map[vk.Queue]*sync.Mutex),
	}
}

func (vs *VulkanLockPool) lockFor(group LockGroup) *sync.Mutex {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	l, exists := vs.locks[group]
	if !exists {
		l = &sync.Mutex{}
		vs.locks[group] = l
	}
	return l
}

func (vs *VulkanLockPool) lockForQueue(queue vk.Queue) *sync.Mutex {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	l, exists := vs.queueLocks[queue]
	if !exists {
		l = &sync.Mutex{}
		vs.queueLocks[queue] = l
	}
	return l
}

// SafeCall runs fn while holding the group's mutex.
func (vs *VulkanLockPool) SafeCall(group LockGroup, fn func() error) error {
	l := vs.lockFor(group)
	l.Lock()
	defer l.Unlock()
	return fn()
}

// SafeQueueCall runs fn while holding the queue's mutex.
func (vs *VulkanLockPool) SafeQueueCall(queue vk.Queue, fn func() error) error {
	l := vs.lockForQueue(queue)
	l.Lock()
	defer l.Unlock()
	return fn()
}
