package renderer

import (
	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/trekanten/engine/renderer/resource"
	"github.com/spaghettifunk/trekanten/engine/renderer/shaders"
	"github.com/spaghettifunk/trekanten/engine/renderer/vulkan"
)

// VertexBuffer is a device-local buffer of packed vertices.
type VertexBuffer struct {
	Buffer      *vulkan.VulkanBuffer
	VertexCount uint32
	Stride      uint32
}

// IndexBuffer is a device-local buffer of 32-bit indices.
type IndexBuffer struct {
	Buffer     *vulkan.VulkanBuffer
	IndexCount uint32
}

// UniformBuffer is an aligned slice of a per-frame uniform arena, one copy
// per frame in flight.
type UniformBuffer struct {
	Arena      *vulkan.VulkanUniformArena
	Allocation *vulkan.Allocation
	Size       uint64
}

// Texture is a sampled image with its sampler.
type Texture struct {
	Texture *vulkan.VulkanTexture
	Width   uint32
	Height  uint32
}

// Pipeline is a graphics pipeline together with the shader modules it was
// built from.
type Pipeline struct {
	Pipeline  *vulkan.VulkanPipeline
	vertStage *vulkan.VulkanShaderStage
	fragStage *vulkan.VulkanShaderStage
}

// DescriptorSet binds a uniform buffer and a texture for one frame copy.
type DescriptorSet struct {
	Set vk.DescriptorSet
}

// TextureDescriptor identifies a texture by its source file. Requesting
// the same descriptor twice returns the same handle.
type TextureDescriptor struct {
	Path            string
	GenerateMipmaps bool
}

// Cull modes, re-exported so callers build descriptors without touching
// the vulkan package.
const (
	CullNone  = vulkan.FaceCullModeNone
	CullBack  = vulkan.FaceCullModeBack
	CullFront = vulkan.FaceCullModeFront
)

// PipelineDescriptor identifies a pipeline by its shaders and fixed state.
// Requesting the same descriptor twice returns the same handle.
type PipelineDescriptor struct {
	VertexShaderPath   string
	FragmentShaderPath string
	CullMode           vulkan.FaceCullMode
	Wireframe          bool
	DepthTest          bool
	DepthWrite         bool
}

// CreateVertexBuffer uploads the vertices into a device-local buffer.
func (r *Renderer) CreateVertexBuffer(vertices []Vertex) (resource.Handle[VertexBuffer], error) {
	buf, err := vulkan.BufferCreateDeviceLocalWithData(
		r.backend.Context(),
		VerticesToBytes(vertices),
		vk.BufferUsageFlags(vk.BufferUsageVertexBufferBit))
	if err != nil {
		return resource.Handle[VertexBuffer]{}, err
	}
	return r.vertexBuffers.Add(VertexBuffer{
		Buffer:      buf,
		VertexCount: uint32(len(vertices)),
		Stride:      r.vertexLayout.Stride(),
	}), nil
}

// CreateIndexBuffer uploads the indices into a device-local buffer.
func (r *Renderer) CreateIndexBuffer(indices []uint32) (resource.Handle[IndexBuffer], error) {
	buf, err := vulkan.BufferCreateDeviceLocalWithData(
		r.backend.Context(),
		IndicesToBytes(indices),
		vk.BufferUsageFlags(vk.BufferUsageIndexBufferBit))
	if err != nil {
		return resource.Handle[IndexBuffer]{}, err
	}
	return r.indexBuffers.Add(IndexBuffer{
		Buffer:     buf,
		IndexCount: uint32(len(indices)),
	}), nil
}

// CreateUniformBuffer reserves one arena slice per frame in flight. Writes
// go through Frame.UpdateUniform so only the copy belonging to the
// recording frame is touched.
func (r *Renderer) CreateUniformBuffer(size uint64) (resource.Handle[UniformBuffer], error) {
	return r.uniformBuffers.Add(func(bufferIdx uint32) (UniformBuffer, error) {
		arena := r.uniformArenas[bufferIdx]
		alloc, err := arena.Allocate(size)
		if err != nil {
			return UniformBuffer{}, err
		}
		return UniformBuffer{Arena: arena, Allocation: alloc, Size: size}, nil
	})
}

// CreateTexture loads the image file and uploads it as a sampled texture.
// Textures are cached by descriptor.
func (r *Renderer) CreateTexture(desc TextureDescriptor) (resource.Handle[Texture], error) {
	h, _, err := r.textures.GetOrCreate(desc, func(desc TextureDescriptor) (Texture, error) {
		width, height, pixels, err := LoadImageRGBA(desc.Path)
		if err != nil {
			return Texture{}, err
		}
		tex, err := vulkan.TextureCreate(r.backend.Context(), width, height, pixels, desc.GenerateMipmaps)
		if err != nil {
			return Texture{}, err
		}
		return Texture{Texture: tex, Width: width, Height: height}, nil
	})
	return h, err
}

// CreatePipeline builds a graphics pipeline from compiled shaders.
// Pipelines are cached by descriptor.
func (r *Renderer) CreatePipeline(desc PipelineDescriptor) (resource.Handle[Pipeline], error) {
	h, _, err := r.pipelines.GetOrCreate(desc, func(desc PipelineDescriptor) (Pipeline, error) {
		context := r.backend.Context()

		vertCode, err := shaders.LoadSPIRV(desc.VertexShaderPath)
		if err != nil {
			return Pipeline{}, err
		}
		fragCode, err := shaders.LoadSPIRV(desc.FragmentShaderPath)
		if err != nil {
			return Pipeline{}, err
		}

		vertStage, err := vulkan.NewShaderStage(context, vertCode, vk.ShaderStageVertexBit)
		if err != nil {
			return Pipeline{}, err
		}
		fragStage, err := vulkan.NewShaderStage(context, fragCode, vk.ShaderStageFragmentBit)
		if err != nil {
			vertStage.Destroy(context)
			return Pipeline{}, err
		}

		pipeline, err := vulkan.NewGraphicsPipeline(context, &vulkan.VulkanPipelineConfig{
			Renderpass:           context.MainRenderpass,
			Stride:               r.vertexLayout.Stride(),
			Attributes:           r.vertexLayout.Attributes(),
			DescriptorSetLayouts: []vk.DescriptorSetLayout{r.setLayout},
			Stages: []vk.PipelineShaderStageCreateInfo{
				vertStage.ShaderStageCreateInfo,
				fragStage.ShaderStageCreateInfo,
			},
			Viewport: vk.Viewport{
				X:        0,
				Y:        float32(context.FramebufferHeight),
				Width:    float32(context.FramebufferWidth),
				Height:   -float32(context.FramebufferHeight),
				MinDepth: 0,
				MaxDepth: 1,
			},
			Scissor: vk.Rect2D{
				Offset: vk.Offset2D{X: 0, Y: 0},
				Extent: vk.Extent2D{Width: context.FramebufferWidth, Height: context.FramebufferHeight},
			},
			CullMode:    desc.CullMode,
			IsWireframe: desc.Wireframe,
			DepthTest:   desc.DepthTest,
			DepthWrite:  desc.DepthWrite,
		})
		if err != nil {
			vertStage.Destroy(context)
			fragStage.Destroy(context)
			return Pipeline{}, err
		}

		return Pipeline{Pipeline: pipeline, vertStage: vertStage, fragStage: fragStage}, nil
	})
	return h, err
}

// CreateDescriptorSet allocates one descriptor set per frame in flight,
// each pointing at that frame's uniform buffer copy and the texture.
func (r *Renderer) CreateDescriptorSet(
	ubo resource.Handle[UniformBuffer],
	tex resource.Handle[Texture]) (resource.Handle[DescriptorSet], error) {

	texture, err := r.textures.Get(tex)
	if err != nil {
		return resource.Handle[DescriptorSet]{}, err
	}

	return r.descriptorSets.Add(func(bufferIdx uint32) (DescriptorSet, error) {
		context := r.backend.Context()

		sets, err := r.descriptorPool.Allocate(context, r.setLayout, 1)
		if err != nil {
			return DescriptorSet{}, err
		}
		set := sets[0]

		uniform, err := r.uniformBuffers.Get(ubo, bufferIdx)
		if err != nil {
			return DescriptorSet{}, err
		}
		vulkan.DescriptorSetWriteUniform(context, set, 0, uniform.Arena.Buffer.Handle, vk.DeviceSize(uniform.Allocation.Offset), vk.DeviceSize(uniform.Size))
		vulkan.DescriptorSetWriteCombinedImageSampler(context, set, 1, texture.Texture.Image.View, texture.Texture.Sampler)

		return DescriptorSet{Set: set}, nil
	})
}
