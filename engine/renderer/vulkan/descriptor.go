package vulkan

import (
	vk "github.com/goki/vulkan"
)

// VulkanDescriptorPool wraps a descriptor pool sized for uniform buffers
// and combined image samplers.
type VulkanDescriptorPool struct {
	Handle vk.DescriptorPool
}

// NewDescriptorPool creates a pool able to hold maxSets descriptor sets,
// each carrying up to one uniform buffer and one combined image sampler.
func NewDescriptorPool(context *VulkanContext, maxSets uint32) (*VulkanDescriptorPool, error) {
	poolSizes := []vk.DescriptorPoolSize{
		{
			Type:            vk.DescriptorTypeUniformBuffer,
			DescriptorCount: maxSets,
		},
		{
			Type:            vk.DescriptorTypeCombinedImageSampler,
			DescriptorCount: maxSets,
		},
	}

	createInfo := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		Flags:         vk.DescriptorPoolCreateFlags(vk.DescriptorPoolCreateFreeDescriptorSetBit),
		PoolSizeCount: uint32(len(poolSizes)),
		PPoolSizes:    poolSizes,
		MaxSets:       maxSets,
	}

	pool := &VulkanDescriptorPool{}
	var handle vk.DescriptorPool
	if err := context.LockPool.SafeCall(DescriptorManagement, func() error {
		if res := vk.CreateDescriptorPool(context.Device.LogicalDevice, &createInfo, context.Allocator, &handle); res != vk.Success {
			return VulkanError(res, "vkCreateDescriptorPool")
		}
		return nil
	}); err != nil {
		return nil, err
	}
	pool.Handle = handle
	return pool, nil
}

// Allocate returns count descriptor sets, all with the same layout.
func (p *VulkanDescriptorPool) Allocate(context *VulkanContext, layout vk.DescriptorSetLayout, count uint32) ([]vk.DescriptorSet, error) {
	layouts := make([]vk.DescriptorSetLayout, count)
	for i := range layouts {
		layouts[i] = layout
	}

	allocateInfo := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     p.Handle,
		DescriptorSetCount: count,
		PSetLayouts:        layouts,
	}

	sets := make([]vk.DescriptorSet, count)
	if err := context.LockPool.SafeCall(DescriptorManagement, func() error {
		if res := vk.AllocateDescriptorSets(context.Device.LogicalDevice, &allocateInfo, &sets[0]); res != vk.Success {
			return VulkanError(res, "vkAllocateDescriptorSets")
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return sets, nil
}

// Free returns previously allocated sets to the pool.
func (p *VulkanDescriptorPool) Free(context *VulkanContext, sets []vk.DescriptorSet) error {
	if len(sets) == 0 {
		return nil
	}
	return context.LockPool.SafeCall(DescriptorManagement, func() error {
		if res := vk.FreeDescriptorSets(context.Device.LogicalDevice, p.Handle, uint32(len(sets)), &sets[0]); res != vk.Success {
			return VulkanError(res, "vkFreeDescriptorSets")
		}
		return nil
	})
}

func (p *VulkanDescriptorPool) Destroy(context *VulkanContext) {
	if p.Handle != nil {
		vk.DestroyDescriptorPool(context.Device.LogicalDevice, p.Handle, context.Allocator)
		p.Handle = nil
	}
}

// DescriptorSetLayoutCreate builds a set layout from the given bindings.
func DescriptorSetLayoutCreate(context *VulkanContext, bindings []vk.DescriptorSetLayoutBinding) (vk.DescriptorSetLayout, error) {
	createInfo := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: uint32(len(bindings)),
		PBindings:    bindings,
	}

	var layout vk.DescriptorSetLayout
	if err := context.LockPool.SafeCall(DescriptorManagement, func() error {
		if res := vk.CreateDescriptorSetLayout(context.Device.LogicalDevice, &createInfo, context.Allocator, &layout); res != vk.Success {
			return VulkanError(res, "vkCreateDescriptorSetLayout")
		}
		return nil
	}); err != nil {
		return vk.NullDescriptorSetLayout, err
	}
	return layout, nil
}

func DescriptorSetLayoutDestroy(context *VulkanContext, layout vk.DescriptorSetLayout) {
	if layout != vk.NullDescriptorSetLayout {
		vk.DestroyDescriptorSetLayout(context.Device.LogicalDevice, layout, context.Allocator)
	}
}

// UniformBufferBinding is the standard vertex-stage uniform buffer layout
// binding at slot 0.
func UniformBufferBinding(binding uint32) vk.DescriptorSetLayoutBinding {
	return vk.DescriptorSetLayoutBinding{
		Binding:         binding,
		DescriptorType:  vk.DescriptorTypeUniformBuffer,
		DescriptorCount: 1,
		StageFlags:      vk.ShaderStageFlags(vk.ShaderStageVertexBit),
	}
}

// CombinedImageSamplerBinding is the standard fragment-stage sampler layout
// binding.
func CombinedImageSamplerBinding(binding uint32) vk.DescriptorSetLayoutBinding {
	return vk.DescriptorSetLayoutBinding{
		Binding:         binding,
		DescriptorType:  vk.DescriptorTypeCombinedImageSampler,
		DescriptorCount: 1,
		StageFlags:      vk.ShaderStageFlags(vk.ShaderStageFragmentBit),
	}
}

// DescriptorSetWriteUniform points a set's uniform buffer binding at a
// buffer range.
func DescriptorSetWriteUniform(context *VulkanContext, set vk.DescriptorSet, binding uint32, buffer vk.Buffer, offset vk.DeviceSize, size vk.DeviceSize) {
	bufferInfo := vk.DescriptorBufferInfo{
		Buffer: buffer,
		Offset: offset,
		Range:  size,
	}
	write := vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstSet:          set,
		DstBinding:      binding,
		DstArrayElement: 0,
		DescriptorType:  vk.DescriptorTypeUniformBuffer,
		DescriptorCount: 1,
		PBufferInfo:     []vk.DescriptorBufferInfo{bufferInfo},
	}
	vk.UpdateDescriptorSets(context.Device.LogicalDevice, 1, []vk.WriteDescriptorSet{write}, 0, nil)
}

// DescriptorSetWriteCombinedImageSampler points a set's sampler binding at
// a shader-readable image view.
func DescriptorSetWriteCombinedImageSampler(context *VulkanContext, set vk.DescriptorSet, binding uint32, view vk.ImageView, sampler vk.Sampler) {
	imageInfo := vk.DescriptorImageInfo{
		Sampler:     sampler,
		ImageView:   view,
		ImageLayout: vk.ImageLayoutShaderReadOnlyOptimal,
	}
	write := vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstSet:          set,
		DstBinding:      binding,
		DstArrayElement: 0,
		DescriptorType:  vk.DescriptorTypeCombinedImageSampler,
		DescriptorCount: 1,
		PImageInfo:      []vk.DescriptorImageInfo{imageInfo},
	}
	vk.UpdateDescriptorSets(context.Device.LogicalDevice, 1, []vk.WriteDescriptorSet{write}, 0, nil)
}
