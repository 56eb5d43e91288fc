package renderer

import (
	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/trekanten/engine/renderer/resource"
	"github.com/spaghettifunk/trekanten/engine/renderer/vulkan"
)

// Frame is the recording context handed out by NextFrame and consumed by
// Submit. All per-frame mutation (uniform updates, draw recording) goes
// through it, which pins the work to one frame-in-flight slot.
type Frame struct {
	renderer      *Renderer
	frameIndex    uint32
	commandBuffer *vulkan.VulkanCommandBuffer
}

// Index is the frame-in-flight slot this frame records into.
func (f *Frame) Index() uint32 {
	return f.frameIndex
}

// BindPipeline binds the pipeline for subsequent draws.
func (f *Frame) BindPipeline(h resource.Handle[Pipeline]) error {
	pipeline, err := f.renderer.pipelines.Get(h)
	if err != nil {
		return err
	}
	f.commandBuffer.BindGraphicsPipeline(pipeline.Pipeline)
	return nil
}

// BindVertexBuffer binds the vertex buffer at binding 0.
func (f *Frame) BindVertexBuffer(h resource.Handle[VertexBuffer]) error {
	buffer, err := f.renderer.vertexBuffers.Get(h)
	if err != nil {
		return err
	}
	f.commandBuffer.BindVertexBuffer(buffer.Buffer.Handle, 0)
	return nil
}

// BindIndexBuffer binds the index buffer for indexed draws.
func (f *Frame) BindIndexBuffer(h resource.Handle[IndexBuffer]) error {
	buffer, err := f.renderer.indexBuffers.Get(h)
	if err != nil {
		return err
	}
	f.commandBuffer.BindIndexBuffer(buffer.Buffer.Handle, vk.IndexTypeUint32)
	return nil
}

// BindDescriptorSet binds this frame's copy of the descriptor set.
func (f *Frame) BindDescriptorSet(pipeline resource.Handle[Pipeline], set resource.Handle[DescriptorSet]) error {
	p, err := f.renderer.pipelines.Get(pipeline)
	if err != nil {
		return err
	}
	s, err := f.renderer.descriptorSets.Get(set, f.frameIndex)
	if err != nil {
		return err
	}
	f.commandBuffer.BindDescriptorSet(p.Pipeline.PipelineLayout, s.Set)
	return nil
}

// UpdateUniform writes data into this frame's copy of the uniform buffer.
// Copies belonging to other in-flight frames are untouched, so the GPU can
// still be reading them.
func (f *Frame) UpdateUniform(h resource.Handle[UniformBuffer], data []byte) error {
	uniform, err := f.renderer.uniformBuffers.Get(h, f.frameIndex)
	if err != nil {
		return err
	}
	return uniform.Arena.Write(f.renderer.backend.Context(), uniform.Allocation, data)
}

// DrawIndexed records an indexed draw.
func (f *Frame) DrawIndexed(indexCount uint32) {
	f.commandBuffer.DrawIndexed(indexCount)
}

// Draw records a non-indexed draw.
func (f *Frame) Draw(vertexCount uint32) {
	f.commandBuffer.Draw(vertexCount)
}
