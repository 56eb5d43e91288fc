package renderer

import (
	"path/filepath"

	"github.com/cockroachdb/errors"
	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/trekanten/engine/config"
	"github.com/spaghettifunk/trekanten/engine/core"
	"github.com/spaghettifunk/trekanten/engine/platform"
	"github.com/spaghettifunk/trekanten/engine/renderer/resource"
	"github.com/spaghettifunk/trekanten/engine/renderer/vulkan"
)

// ErrNeedsResize signals that the swapchain no longer matches the surface.
// The caller should call Resize (or simply retry NextFrame after a resize
// event) and skip the current frame.
var ErrNeedsResize = vulkan.ErrNeedsResize

// ErrFrameMismatch is returned when a Frame is submitted after the
// renderer has moved on to another frame slot.
var ErrFrameMismatch = errors.New("frame does not belong to the current frame slot")

// Renderer drives the frame cycle and owns every GPU resource through
// typed handle storages.
type Renderer struct {
	platform *platform.Platform
	backend  *vulkan.VulkanRenderer

	descriptorPool *vulkan.VulkanDescriptorPool
	setLayout      vk.DescriptorSetLayout
	vertexLayout   VertexSource
	uniformArenas  []*vulkan.VulkanUniformArena

	vertexBuffers  *resource.Storage[VertexBuffer]
	indexBuffers   *resource.Storage[IndexBuffer]
	uniformBuffers *resource.BufferedStorage[UniformBuffer]
	textures       *resource.CachedStorage[TextureDescriptor, Texture]
	pipelines      *resource.CachedStorage[PipelineDescriptor, Pipeline]
	descriptorSets *resource.BufferedStorage[DescriptorSet]
}

// Descriptor sets are allocated per frame copy, so the pool ceiling bounds
// live sets across all frames in flight.
const maxDescriptorSets = 1024

// Each frame slot's uniform data lives in one arena of this size, carved
// into aligned slices.
const uniformArenaSize = 1 << 20

func presentModeFor(mode config.PresentMode) vk.PresentMode {
	if mode == config.PresentModeMailbox {
		return vk.PresentModeMailbox
	}
	return vk.PresentModeFifo
}

// New initializes the Vulkan backend against the platform's window and
// prepares the resource storages.
func New(p *platform.Platform, cfg *config.Config) (*Renderer, error) {
	backend := vulkan.New(p, vulkan.RendererOptions{
		PresentMode:      presentModeFor(cfg.Renderer.PresentMode),
		FramesInFlight:   cfg.Renderer.FramesInFlight,
		EnableValidation: cfg.Renderer.ValidationLayers,
	})
	if err := backend.Initialize(cfg.Application.Name, cfg.Application.Width, cfg.Application.Height); err != nil {
		return nil, err
	}

	context := backend.Context()
	setLayout, err := vulkan.DescriptorSetLayoutCreate(context, []vk.DescriptorSetLayoutBinding{
		vulkan.UniformBufferBinding(0),
		vulkan.CombinedImageSamplerBinding(1),
	})
	if err != nil {
		backend.Shutdown()
		return nil, err
	}
	pool, err := vulkan.NewDescriptorPool(context, maxDescriptorSets)
	if err != nil {
		vulkan.DescriptorSetLayoutDestroy(context, setLayout)
		backend.Shutdown()
		return nil, err
	}

	framesInFlight := context.FramesInFlight
	arenas := make([]*vulkan.VulkanUniformArena, framesInFlight)
	for i := range arenas {
		arena, err := vulkan.NewUniformArena(context, uniformArenaSize)
		if err != nil {
			for _, a := range arenas[:i] {
				a.Destroy(context)
			}
			pool.Destroy(context)
			vulkan.DescriptorSetLayoutDestroy(context, setLayout)
			backend.Shutdown()
			return nil, err
		}
		arenas[i] = arena
	}

	return &Renderer{
		platform:       p,
		backend:        backend,
		descriptorPool: pool,
		setLayout:      setLayout,
		vertexLayout:   VertexLayout{},
		uniformArenas:  arenas,
		vertexBuffers:  resource.NewStorage[VertexBuffer]("vertex-buffer"),
		indexBuffers:   resource.NewStorage[IndexBuffer]("index-buffer"),
		uniformBuffers: resource.NewBufferedStorage[UniformBuffer]("uniform-buffer", framesInFlight),
		textures:       resource.NewCachedStorage[TextureDescriptor, Texture]("texture"),
		pipelines:      resource.NewCachedStorage[PipelineDescriptor, Pipeline]("pipeline"),
		descriptorSets: resource.NewBufferedStorage[DescriptorSet]("descriptor-set", framesInFlight),
	}, nil
}

// FramesInFlight is the buffering degree of the frame cycle.
func (r *Renderer) FramesInFlight() uint32 {
	return r.backend.Context().FramesInFlight
}

// NextFrame begins the next frame, blocking until its frame slot is free.
// Returns ErrNeedsResize when the frame must be skipped because the
// swapchain was (or is being) recreated.
func (r *Renderer) NextFrame() (*Frame, error) {
	if err := r.backend.NextFrame(); err != nil {
		return nil, err
	}
	return &Frame{
		renderer:      r,
		frameIndex:    r.backend.CurrentFrameIndex(),
		commandBuffer: r.backend.CommandBuffer(),
	}, nil
}

// Submit finishes the frame and queues it for presentation. The frame must
// be the one NextFrame returned for the current slot.
func (r *Renderer) Submit(frame *Frame) error {
	if frame == nil {
		return errors.New("cannot submit a nil frame")
	}
	if frame.frameIndex != r.backend.CurrentFrameIndex() {
		return errors.Wrapf(ErrFrameMismatch, "frame %d, current %d", frame.frameIndex, r.backend.CurrentFrameIndex())
	}
	return r.backend.Submit()
}

// InvalidatePipelines evicts cached pipelines built from the given shader
// file, destroying their GPU objects, so the next CreatePipeline with the
// same descriptor rebuilds them from the shader on disk. The caller must
// wait for the device to go idle first. Returns the number evicted.
func (r *Renderer) InvalidatePipelines(shaderPath string) int {
	context := r.backend.Context()
	path := filepath.Clean(shaderPath)
	return r.pipelines.Evict(
		func(d PipelineDescriptor) bool {
			return filepath.Clean(d.VertexShaderPath) == path || filepath.Clean(d.FragmentShaderPath) == path
		},
		func(d PipelineDescriptor, p Pipeline) {
			p.Pipeline.Destroy(context)
			p.vertStage.Destroy(context)
			p.fragStage.Destroy(context)
		})
}

// Resize records the new surface size; the swapchain is rebuilt on the
// next NextFrame call.
func (r *Renderer) Resize(width, height uint32) {
	r.backend.Resized(width, height)
}

// WaitIdle blocks until the GPU has drained all submitted work.
func (r *Renderer) WaitIdle() error {
	return r.backend.WaitIdle()
}

// Destroy tears down every resource in reverse creation order and shuts
// the backend down. The platform outlives the renderer.
func (r *Renderer) Destroy() error {
	if err := r.backend.WaitIdle(); err != nil {
		core.LogWarn("wait-idle before teardown failed: %s", err)
	}
	context := r.backend.Context()

	r.descriptorSets.ForEach(func(h resource.Handle[DescriptorSet], ds *DescriptorSet) {
		if err := r.descriptorPool.Free(context, []vk.DescriptorSet{ds.Set}); err != nil {
			core.LogWarn("failed to free descriptor set %d: %s", h.ID(), err)
		}
	})
	r.pipelines.ForEach(func(h resource.Handle[Pipeline], p *Pipeline) {
		p.Pipeline.Destroy(context)
		p.vertStage.Destroy(context)
		p.fragStage.Destroy(context)
	})
	r.textures.ForEach(func(h resource.Handle[Texture], t *Texture) {
		t.Texture.Destroy(context)
	})
	r.uniformBuffers.ForEach(func(h resource.Handle[UniformBuffer], u *UniformBuffer) {
		u.Arena.Free(u.Allocation)
	})
	for _, arena := range r.uniformArenas {
		arena.Destroy(context)
	}
	r.indexBuffers.ForEach(func(h resource.Handle[IndexBuffer], b *IndexBuffer) {
		b.Buffer.Destroy(context)
	})
	r.vertexBuffers.ForEach(func(h resource.Handle[VertexBuffer], b *VertexBuffer) {
		b.Buffer.Destroy(context)
	})

	r.descriptorPool.Destroy(context)
	vulkan.DescriptorSetLayoutDestroy(context, r.setLayout)

	return r.backend.Shutdown()
}
