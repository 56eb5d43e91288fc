package vulkan

import (
	vk "github.com/goki/vulkan"
)

// VulkanShaderStage bundles a shader module with the pipeline stage info
// that references it.
type VulkanShaderStage struct {
	Handle                vk.ShaderModule
	ShaderStageCreateInfo vk.PipelineShaderStageCreateInfo
}

// NewShaderStage wraps pre-compiled SPIR-V words into a shader module for
// the given pipeline stage.
func NewShaderStage(context *VulkanContext, code []uint32, stageFlag vk.ShaderStageFlagBits) (*VulkanShaderStage, error) {
	stage := &VulkanShaderStage{}

	createInfo := vk.ShaderModuleCreateInfo{
		SType: vk.StructureTypeShaderModuleCreateInfo,
		// CodeSize is in bytes, PCode in 32-bit words.
		CodeSize: uint(len(code) * 4),
		PCode:    code,
	}

	var handle vk.ShaderModule
	if err := context.LockPool.SafeCall(ShaderManagement, func() error {
		if res := vk.CreateShaderModule(
			context.Device.LogicalDevice,
			&createInfo,
			context.Allocator,
			&handle); res != vk.Success {
			return VulkanError(res, "vkCreateShaderModule")
		}
		return nil
	}); err != nil {
		return nil, err
	}
	stage.Handle = handle

	stage.ShaderStageCreateInfo = vk.PipelineShaderStageCreateInfo{
		SType:  vk.StructureTypePipelineShaderStageCreateInfo,
		Stage:  stageFlag,
		Module: stage.Handle,
		PName:  VulkanSafeString("main"),
	}
	return stage, nil
}

func (s *VulkanShaderStage) Destroy(context *VulkanContext) {
	if s.Handle != nil {
		vk.DestroyShaderModule(context.Device.LogicalDevice, s.Handle, context.Allocator)
		s.Handle = nil
	}
}
