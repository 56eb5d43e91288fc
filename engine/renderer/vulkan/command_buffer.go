package vulkan

import (
	vk "github.com/goki/vulkan"
)

type VulkanCommandBufferState int

const (
	COMMAND_BUFFER_STATE_READY VulkanCommandBufferState = iota
	COMMAND_BUFFER_STATE_RECORDING
	COMMAND_BUFFER_STATE_IN_RENDER_PASS
	COMMAND_BUFFER_STATE_RECORDING_ENDED
	COMMAND_BUFFER_STATE_SUBMITTED
	COMMAND_BUFFER_STATE_NOT_ALLOCATED
)

type VulkanCommandBuffer struct {
	Handle vk.CommandBuffer
	// Command buffer state.
	State VulkanCommandBufferState
}

func NewVulkanCommandBuffer(
	context *VulkanContext,
	pool vk.CommandPool,
	isPrimary bool,
) (*VulkanCommandBuffer, error) {
	vCommandBuffer := &VulkanCommandBuffer{
		State: COMMAND_BUFFER_STATE_NOT_ALLOCATED,
	}

	level := vk.CommandBufferLevelSecondary
	if isPrimary {
		level = vk.CommandBufferLevelPrimary
	}

	allocateInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        pool,
		CommandBufferCount: 1,
		Level:              level,
	}

	handles := make([]vk.CommandBuffer, 1)
	if res := vk.AllocateCommandBuffers(context.Device.LogicalDevice, &allocateInfo, handles); res != vk.Success {
		return nil, VulkanError(res, "vkAllocateCommandBuffers")
	}
	vCommandBuffer.Handle = handles[0]
	vCommandBuffer.State = COMMAND_BUFFER_STATE_READY

	return vCommandBuffer, nil
}

func (v *VulkanCommandBuffer) Free(
	context *VulkanContext,
	pool vk.CommandPool) {
	vk.FreeCommandBuffers(context.Device.LogicalDevice, pool, 1, []vk.CommandBuffer{v.Handle})
	v.Handle = nil
	v.State = COMMAND_BUFFER_STATE_NOT_ALLOCATED
}

func (v *VulkanCommandBuffer) Begin(
	isSingleUse,
	isRenderpassContinue,
	isSimultaneousUse bool) error {

	vBeginInfo := &vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: 0,
	}

	if isSingleUse {
		vBeginInfo.Flags |= vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit)
	}
	if isRenderpassContinue {
		vBeginInfo.Flags |= vk.CommandBufferUsageFlags(vk.CommandBufferUsageRenderPassContinueBit)
	}
	if isSimultaneousUse {
		vBeginInfo.Flags |= vk.CommandBufferUsageFlags(vk.CommandBufferUsageSimultaneousUseBit)
	}

	if res := vk.BeginCommandBuffer(v.Handle, vBeginInfo); res != vk.Success {
		return VulkanError(res, "vkBeginCommandBuffer")
	}
	v.State = COMMAND_BUFFER_STATE_RECORDING

	return nil
}

func (v *VulkanCommandBuffer) End() error {
	if res := vk.EndCommandBuffer(v.Handle); res != vk.Success {
		return VulkanError(res, "vkEndCommandBuffer")
	}
	v.State = COMMAND_BUFFER_STATE_RECORDING_ENDED
	return nil
}

func (v *VulkanCommandBuffer) UpdateSubmitted() {
	v.State = COMMAND_BUFFER_STATE_SUBMITTED
}

func (v *VulkanCommandBuffer) Reset() {
	v.State = COMMAND_BUFFER_STATE_READY
}

// Recording helpers. These chain so draw setup reads top to bottom:
//
//	cb.BindGraphicsPipeline(pipe).
//		BindVertexBuffer(vbuf, 0).
//		BindIndexBuffer(ibuf, vk.IndexTypeUint32).
//		BindDescriptorSet(pipe.PipelineLayout, set).
//		DrawIndexed(indexCount)

func (v *VulkanCommandBuffer) BindGraphicsPipeline(pipeline *VulkanPipeline) *VulkanCommandBuffer {
	vk.CmdBindPipeline(v.Handle, vk.PipelineBindPointGraphics, pipeline.Handle)
	return v
}

func (v *VulkanCommandBuffer) BindVertexBuffer(buffer vk.Buffer, offset vk.DeviceSize) *VulkanCommandBuffer {
	vk.CmdBindVertexBuffers(v.Handle, 0, 1, []vk.Buffer{buffer}, []vk.DeviceSize{offset})
	return v
}

func (v *VulkanCommandBuffer) BindIndexBuffer(buffer vk.Buffer, indexType vk.IndexType) *VulkanCommandBuffer {
	vk.CmdBindIndexBuffer(v.Handle, buffer, 0, indexType)
	return v
}

func (v *VulkanCommandBuffer) BindDescriptorSet(layout vk.PipelineLayout, set vk.DescriptorSet) *VulkanCommandBuffer {
	vk.CmdBindDescriptorSets(v.Handle, vk.PipelineBindPointGraphics, layout, 0, 1, []vk.DescriptorSet{set}, 0, nil)
	return v
}

func (v *VulkanCommandBuffer) SetViewport(viewport vk.Viewport) *VulkanCommandBuffer {
	vk.CmdSetViewport(v.Handle, 0, 1, []vk.Viewport{viewport})
	return v
}

func (v *VulkanCommandBuffer) SetScissor(scissor vk.Rect2D) *VulkanCommandBuffer {
	vk.CmdSetScissor(v.Handle, 0, 1, []vk.Rect2D{scissor})
	return v
}

func (v *VulkanCommandBuffer) DrawIndexed(indexCount uint32) *VulkanCommandBuffer {
	vk.CmdDrawIndexed(v.Handle, indexCount, 1, 0, 0, 0)
	return v
}

func (v *VulkanCommandBuffer) Draw(vertexCount uint32) *VulkanCommandBuffer {
	vk.CmdDraw(v.Handle, vertexCount, 1, 0, 0)
	return v
}

func (v *VulkanCommandBuffer) CopyBuffer(src, dst vk.Buffer, size vk.DeviceSize) *VulkanCommandBuffer {
	region := vk.BufferCopy{
		SrcOffset: 0,
		DstOffset: 0,
		Size:      size,
	}
	vk.CmdCopyBuffer(v.Handle, src, dst, 1, []vk.BufferCopy{region})
	return v
}

// Allocates and begins recording a one-shot command buffer.
func AllocateAndBeginSingleUse(
	context *VulkanContext,
	pool vk.CommandPool) (*VulkanCommandBuffer, error) {
	cb, err := NewVulkanCommandBuffer(context, pool, true)
	if err != nil {
		return nil, err
	}
	if err := cb.Begin(true, false, false); err != nil {
		return nil, err
	}
	return cb, nil
}

// Ends recording, submits to and waits for the queue operation and frees
// the provided command buffer.
func (v *VulkanCommandBuffer) EndSingleUse(
	context *VulkanContext,
	pool vk.CommandPool,
	queue vk.Queue) error {
	if err := v.End(); err != nil {
		return err
	}

	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{v.Handle},
	}

	if err := context.LockPool.SafeQueueCall(queue, func() error {
		if res := vk.QueueSubmit(queue, 1, []vk.SubmitInfo{submitInfo}, nil); res != vk.Success {
			return VulkanError(res, "vkQueueSubmit")
		}
		return nil
	}); err != nil {
		return err
	}

	if res := vk.QueueWaitIdle(queue); res != vk.Success {
		return VulkanError(res, "vkQueueWaitIdle")
	}

	v.Free(context, pool)
	return nil
}
