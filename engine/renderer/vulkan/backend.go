package vulkan

import (
	"runtime"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/trekanten/engine/core"
	"github.com/spaghettifunk/trekanten/engine/platform"
)

// RendererOptions control swapchain behavior and debug tooling.
type RendererOptions struct {
	PresentMode      vk.PresentMode
	FramesInFlight   uint32
	EnableValidation bool
}

// VulkanRenderer owns the Vulkan instance, device, swapchain and the
// per-frame synchronization state driving the NextFrame/Submit cycle.
type VulkanRenderer struct {
	platform                *platform.Platform
	FrameNumber             uint64
	context                 *VulkanContext
	cachedFramebufferWidth  uint32
	cachedFramebufferHeight uint32

	debug bool
}

func New(p *platform.Platform, options RendererOptions) *VulkanRenderer {
	framesInFlight := options.FramesInFlight
	if framesInFlight == 0 || framesInFlight > MaxFramesInFlight {
		framesInFlight = MaxFramesInFlight
	}
	return &VulkanRenderer{
		platform:    p,
		FrameNumber: 0,
		context: &VulkanContext{
			Allocator:          nil,
			DesiredPresentMode: options.PresentMode,
			FramesInFlight:     framesInFlight,
			LockPool:           NewVulkanLockPool(),
		},
		debug: options.EnableValidation,
	}
}

// Context exposes the raw Vulkan state to resource-creation code.
func (vr *VulkanRenderer) Context() *VulkanContext {
	return vr.context
}

func (vr *VulkanRenderer) Initialize(appName string, appWidth, appHeight uint32) error {
	procAddr := glfw.GetVulkanGetInstanceProcAddress()
	if procAddr == nil {
		return errors.New("GetInstanceProcAddress is nil")
	}
	vk.SetGetInstanceProcAddr(procAddr)

	if err := vk.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize the Vulkan loader")
	}

	vr.context.FramebufferWidth = appWidth
	vr.context.FramebufferHeight = appHeight

	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         uint32(vk.MakeVersion(1, 2, 0)),
		ApplicationVersion: uint32(vk.MakeVersion(1, 0, 0)),
		PApplicationName:   VulkanSafeString(appName),
		PEngineName:        VulkanSafeString("Trekanten"),
	}

	createInfo := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: appInfo,
	}

	requiredExtensions := []string{"VK_KHR_surface"}
	requiredExtensions = append(requiredExtensions, vr.platform.GetRequiredExtensionNames()...)
	if runtime.GOOS == "darwin" {
		requiredExtensions = append(requiredExtensions,
			"VK_KHR_portability_enumeration",
			"VK_KHR_get_physical_device_properties2",
		)
		// VK_INSTANCE_CREATE_ENUMERATE_PORTABILITY_BIT_KHR
		createInfo.Flags |= 1
	}
	if vr.debug {
		requiredExtensions = append(requiredExtensions, vk.ExtDebugReportExtensionName)
		core.LogInfo("Required extensions:")
		for _, name := range requiredExtensions {
			core.LogInfo("  %s", name)
		}
	}

	createInfo.EnabledExtensionCount = uint32(len(requiredExtensions))
	createInfo.PpEnabledExtensionNames = VulkanSafeStrings(requiredExtensions)

	requiredLayers := []string{}
	if vr.debug {
		requiredLayers = []string{"VK_LAYER_KHRONOS_validation"}
		if err := verifyValidationLayers(requiredLayers); err != nil {
			return err
		}
	}
	createInfo.EnabledLayerCount = uint32(len(requiredLayers))
	createInfo.PpEnabledLayerNames = VulkanSafeStrings(requiredLayers)

	if err := vr.context.LockPool.SafeCall(InstanceManagement, func() error {
		if res := vk.CreateInstance(&createInfo, vr.context.Allocator, &vr.context.Instance); res != vk.Success {
			return VulkanError(res, "vkCreateInstance")
		}
		return nil
	}); err != nil {
		return err
	}
	if err := vk.InitInstance(vr.context.Instance); err != nil {
		return errors.Wrap(err, "failed to load instance-level procedures")
	}
	core.LogInfo("Vulkan instance created.")

	if vr.debug {
		debugCreateInfo := vk.DebugReportCallbackCreateInfo{
			SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
			Flags:       vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit | vk.DebugReportPerformanceWarningBit),
			PfnCallback: dbgCallbackFunc,
		}
		var dbg vk.DebugReportCallback
		if res := vk.CreateDebugReportCallback(vr.context.Instance, &debugCreateInfo, nil, &dbg); res != vk.Success {
			return VulkanError(res, "vkCreateDebugReportCallback")
		}
		vr.context.debugMessenger = dbg
		core.LogDebug("Vulkan debugger created.")
	}

	surface, err := vr.platform.Window.CreateWindowSurface(vr.context.Instance, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create window surface")
	}
	vr.context.Surface = vk.SurfaceFromPointer(surface)
	core.LogDebug("Vulkan surface created.")

	if err := DeviceCreate(vr.context); err != nil {
		return errors.Wrap(err, "failed to create device")
	}

	sc, err := SwapchainCreate(vr.context, vr.context.FramebufferWidth, vr.context.FramebufferHeight)
	if err != nil {
		return errors.Wrap(err, "failed to create swapchain")
	}
	vr.context.Swapchain = sc

	rp, err := RenderpassCreate(
		vr.context,
		0, 0, float32(vr.context.FramebufferWidth), float32(vr.context.FramebufferHeight),
		0.0, 0.0, 0.2, 1.0,
		1.0,
		0)
	if err != nil {
		return errors.Wrap(err, "failed to create renderpass")
	}
	vr.context.MainRenderpass = rp

	vr.context.Swapchain.Framebuffers = make([]*VulkanFramebuffer, vr.context.Swapchain.ImageCount)
	if err := vr.regenerateFramebuffers(vr.context.Swapchain, vr.context.MainRenderpass); err != nil {
		return err
	}

	if err := vr.createCommandBuffers(); err != nil {
		return err
	}

	if err := vr.createSyncObjects(); err != nil {
		return err
	}

	core.LogInfo("Vulkan renderer initialized successfully.")
	return nil
}

func (vr *VulkanRenderer) createSyncObjects() error {
	framesInFlight := int(vr.context.FramesInFlight)
	vr.context.ImageAvailableSemaphores = make([]vk.Semaphore, framesInFlight)
	vr.context.QueueCompleteSemaphores = make([]vk.Semaphore, framesInFlight)
	vr.context.InFlightFences = make([]*VulkanFence, framesInFlight)

	semaphoreCreateInfo := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}
	for i := 0; i < framesInFlight; i++ {
		if res := vk.CreateSemaphore(vr.context.Device.LogicalDevice, &semaphoreCreateInfo, vr.context.Allocator, &vr.context.ImageAvailableSemaphores[i]); res != vk.Success {
			return VulkanError(res, "vkCreateSemaphore")
		}
		if res := vk.CreateSemaphore(vr.context.Device.LogicalDevice, &semaphoreCreateInfo, vr.context.Allocator, &vr.context.QueueCompleteSemaphores[i]); res != vk.Success {
			return VulkanError(res, "vkCreateSemaphore")
		}
		// Created signaled so the first wait on each frame slot passes.
		f, err := NewFence(vr.context, true)
		if err != nil {
			return err
		}
		vr.context.InFlightFences[i] = f
	}

	vr.resetImageToFrame()
	return nil
}

// resetImageToFrame clears the record of which frame slot last used each
// swapchain image.
func (vr *VulkanRenderer) resetImageToFrame() {
	vr.context.ImageToFrame = make([]int32, vr.context.Swapchain.ImageCount)
	for i := range vr.context.ImageToFrame {
		vr.context.ImageToFrame[i] = -1
	}
}

func (vr *VulkanRenderer) Shutdown() error {
	vk.DeviceWaitIdle(vr.context.Device.LogicalDevice)

	// Destroy in the opposite order of creation.
	for i := 0; i < int(vr.context.FramesInFlight); i++ {
		if vr.context.ImageAvailableSemaphores[i] != vk.NullSemaphore {
			vk.DestroySemaphore(vr.context.Device.LogicalDevice, vr.context.ImageAvailableSemaphores[i], vr.context.Allocator)
			vr.context.ImageAvailableSemaphores[i] = vk.NullSemaphore
		}
		if vr.context.QueueCompleteSemaphores[i] != vk.NullSemaphore {
			vk.DestroySemaphore(vr.context.Device.LogicalDevice, vr.context.QueueCompleteSemaphores[i], vr.context.Allocator)
			vr.context.QueueCompleteSemaphores[i] = vk.NullSemaphore
		}
		vr.context.InFlightFences[i].FenceDestroy(vr.context)
	}
	vr.context.ImageAvailableSemaphores = nil
	vr.context.QueueCompleteSemaphores = nil
	vr.context.InFlightFences = nil
	vr.context.ImageToFrame = nil

	for i := range vr.context.GraphicsCommandBuffers {
		if vr.context.GraphicsCommandBuffers[i] != nil && vr.context.GraphicsCommandBuffers[i].Handle != nil {
			vr.context.GraphicsCommandBuffers[i].Free(vr.context, vr.context.Device.GraphicsCommandPool)
		}
	}
	vr.context.GraphicsCommandBuffers = nil

	for i := range vr.context.Swapchain.Framebuffers {
		vr.context.Swapchain.Framebuffers[i].Destroy(vr.context)
	}

	vr.context.MainRenderpass.RenderpassDestroy(vr.context)
	vr.context.Swapchain.SwapchainDestroy(vr.context)

	core.LogDebug("Destroying Vulkan device...")
	DeviceDestroy(vr.context)

	core.LogDebug("Destroying Vulkan surface...")
	if vr.context.Surface != vk.NullSurface {
		vk.DestroySurface(vr.context.Instance, vr.context.Surface, vr.context.Allocator)
		vr.context.Surface = vk.NullSurface
	}

	if vr.debug && vr.context.debugMessenger != vk.NullDebugReportCallback {
		core.LogDebug("Destroying Vulkan debugger...")
		vk.DestroyDebugReportCallback(vr.context.Instance, vr.context.debugMessenger, vr.context.Allocator)
	}

	core.LogDebug("Destroying Vulkan instance...")
	vk.DestroyInstance(vr.context.Instance, vr.context.Allocator)
	return nil
}

// Resized records the new framebuffer size. The swapchain is recreated
// lazily on the next NextFrame call.
func (vr *VulkanRenderer) Resized(width, height uint32) {
	vr.cachedFramebufferWidth = width
	vr.cachedFramebufferHeight = height
	vr.invalidateSwapchain()
	core.LogInfo("Renderer resized: w/h/gen: %d/%d/%d", width, height, vr.context.FramebufferSizeGeneration)
}

// invalidateSwapchain marks the swapchain stale so the next NextFrame call
// rebuilds it and refreshes the per-slot sync objects.
func (vr *VulkanRenderer) invalidateSwapchain() {
	vr.context.FramebufferSizeGeneration++
}

// NextFrame waits for the current frame slot to become free, acquires a
// swapchain image and begins command recording for it. Returns
// ErrNeedsResize when the swapchain no longer matches the surface; the
// caller should retry on the next iteration.
func (vr *VulkanRenderer) NextFrame() error {
	device := vr.context.Device

	if vr.context.RecreatingSwapchain {
		if result := vk.DeviceWaitIdle(device.LogicalDevice); !VulkanResultIsSuccess(result) {
			return VulkanError(result, "vkDeviceWaitIdle")
		}
		return ErrNeedsResize
	}

	// A size change invalidates the swapchain before acquisition can fail.
	if vr.context.FramebufferSizeGeneration != vr.context.FramebufferSizeLastGeneration {
		if result := vk.DeviceWaitIdle(device.LogicalDevice); !VulkanResultIsSuccess(result) {
			return VulkanError(result, "vkDeviceWaitIdle")
		}
		if err := vr.recreateSwapchain(); err != nil {
			return err
		}
		core.LogInfo("Swapchain recreated, skipping frame.")
		return ErrNeedsResize
	}

	// Wait until the GPU has finished with this frame slot.
	if err := vr.context.InFlightFences[vr.context.CurrentFrame].FenceWait(vr.context, DefaultTimeoutNs); err != nil {
		return errors.Wrap(err, "in-flight fence wait failure")
	}

	imageIndex, err := vr.context.Swapchain.SwapchainAcquireNextImageIndex(
		vr.context,
		DefaultTimeoutNs,
		vr.context.ImageAvailableSemaphores[vr.context.CurrentFrame],
		vk.NullFence)
	if err != nil {
		if errors.Is(err, ErrNeedsResize) {
			vr.invalidateSwapchain()
		}
		return err
	}
	vr.context.ImageIndex = imageIndex

	// The presentation engine may hand back an image a different in-flight
	// frame still references; wait for that frame before reusing it.
	if owner := vr.context.ImageToFrame[imageIndex]; owner >= 0 && uint32(owner) != vr.context.CurrentFrame {
		if err := vr.context.InFlightFences[owner].FenceWait(vr.context, DefaultTimeoutNs); err != nil {
			return errors.Wrap(err, "image-in-flight fence wait failure")
		}
	}
	vr.context.ImageToFrame[imageIndex] = int32(vr.context.CurrentFrame)

	commandBuffer := vr.context.GraphicsCommandBuffers[vr.context.ImageIndex]
	commandBuffer.Reset()
	if err := commandBuffer.Begin(false, false, false); err != nil {
		// The acquire above already signaled this slot's image-available
		// semaphore with no submit to consume it; force a rebuild so the
		// sync objects are refreshed before the slot is reused.
		vr.invalidateSwapchain()
		return err
	}

	viewport := vk.Viewport{
		X:        0.0,
		Y:        float32(vr.context.FramebufferHeight),
		Width:    float32(vr.context.FramebufferWidth),
		Height:   -float32(vr.context.FramebufferHeight),
		MinDepth: 0.0,
		MaxDepth: 1.0,
	}
	scissor := vk.Rect2D{
		Offset: vk.Offset2D{X: 0, Y: 0},
		Extent: vk.Extent2D{
			Width:  vr.context.FramebufferWidth,
			Height: vr.context.FramebufferHeight,
		},
	}
	commandBuffer.SetViewport(viewport).SetScissor(scissor)

	vr.context.MainRenderpass.W = float32(vr.context.FramebufferWidth)
	vr.context.MainRenderpass.H = float32(vr.context.FramebufferHeight)
	vr.context.MainRenderpass.RenderpassBegin(commandBuffer, vr.context.Swapchain.Framebuffers[vr.context.ImageIndex].Handle)

	return nil
}

// Submit finishes recording, submits the frame's command buffer and queues
// the image for presentation. Returns ErrNeedsResize when presentation
// reports the swapchain out of date; the frame still advances.
func (vr *VulkanRenderer) Submit() error {
	commandBuffer := vr.context.GraphicsCommandBuffers[vr.context.ImageIndex]

	vr.context.MainRenderpass.RenderpassEnd(commandBuffer)
	if err := commandBuffer.End(); err != nil {
		return err
	}

	if err := vr.context.InFlightFences[vr.context.CurrentFrame].FenceReset(vr.context); err != nil {
		return err
	}

	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{commandBuffer.Handle},
		// Rendering may not write color attachments until the acquired
		// image is actually available.
		WaitSemaphoreCount:   1,
		PWaitSemaphores:      []vk.Semaphore{vr.context.ImageAvailableSemaphores[vr.context.CurrentFrame]},
		PWaitDstStageMask:    []vk.PipelineStageFlags{vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{vr.context.QueueCompleteSemaphores[vr.context.CurrentFrame]},
	}

	if err := vr.context.LockPool.SafeQueueCall(vr.context.Device.GraphicsQueue, func() error {
		if result := vk.QueueSubmit(
			vr.context.Device.GraphicsQueue,
			1,
			[]vk.SubmitInfo{submitInfo},
			vr.context.InFlightFences[vr.context.CurrentFrame].Handle); result != vk.Success {
			return VulkanError(result, "vkQueueSubmit")
		}
		return nil
	}); err != nil {
		return err
	}
	commandBuffer.UpdateSubmitted()

	err := vr.context.Swapchain.SwapchainPresent(
		vr.context,
		vr.context.Device.PresentQueue,
		vr.context.QueueCompleteSemaphores[vr.context.CurrentFrame],
		vr.context.ImageIndex)

	// The frame advances even when presentation requests a resize; the
	// submission above still retires through this slot's fence.
	vr.FrameNumber++
	vr.context.CurrentFrame = (vr.context.CurrentFrame + 1) % vr.context.FramesInFlight

	if err != nil {
		if errors.Is(err, ErrNeedsResize) {
			vr.invalidateSwapchain()
		}
		return err
	}
	return nil
}

// CommandBuffer returns the command buffer recording the current frame.
// Only valid between NextFrame and Submit.
func (vr *VulkanRenderer) CommandBuffer() *VulkanCommandBuffer {
	return vr.context.GraphicsCommandBuffers[vr.context.ImageIndex]
}

// CurrentFrameIndex is the in-flight frame slot being recorded.
func (vr *VulkanRenderer) CurrentFrameIndex() uint32 {
	return vr.context.CurrentFrame
}

// WaitIdle blocks until the device has finished all submitted work.
func (vr *VulkanRenderer) WaitIdle() error {
	if result := vk.DeviceWaitIdle(vr.context.Device.LogicalDevice); !VulkanResultIsSuccess(result) {
		return VulkanError(result, "vkDeviceWaitIdle")
	}
	return nil
}

// commandBufferSliceFor sizes the per-image command buffer slice to the
// swapchain image count. When the count changed, the old entries are
// returned so the caller frees them before they are dropped.
func commandBufferSliceFor(existing []*VulkanCommandBuffer, count int) ([]*VulkanCommandBuffer, []*VulkanCommandBuffer) {
	if len(existing) == count {
		return existing, nil
	}
	return make([]*VulkanCommandBuffer, count), existing
}

func (vr *VulkanRenderer) createCommandBuffers() error {
	// Recreation can change the image count when the surface's minimum
	// differs across displays.
	count := int(vr.context.Swapchain.ImageCount)
	buffers, stale := commandBufferSliceFor(vr.context.GraphicsCommandBuffers, count)
	for _, cb := range stale {
		if cb != nil && cb.Handle != nil {
			cb.Free(vr.context, vr.context.Device.GraphicsCommandPool)
		}
	}
	vr.context.GraphicsCommandBuffers = buffers
	for i := 0; i < count; i++ {
		if buffers[i] != nil && buffers[i].Handle != nil {
			buffers[i].Free(vr.context, vr.context.Device.GraphicsCommandPool)
		}
		cb, err := NewVulkanCommandBuffer(vr.context, vr.context.Device.GraphicsCommandPool, true)
		if err != nil {
			return err
		}
		buffers[i] = cb
	}
	core.LogDebug("Vulkan command buffers created.")
	return nil
}

func (vr *VulkanRenderer) regenerateFramebuffers(swapchain *VulkanSwapchain, renderpass *VulkanRenderpass) error {
	for i := 0; i < int(swapchain.ImageCount); i++ {
		attachments := []vk.ImageView{
			swapchain.Views[i],
			swapchain.DepthAttachment.View,
		}
		fb, err := FramebufferCreate(vr.context, renderpass, vr.context.FramebufferWidth, vr.context.FramebufferHeight, attachments)
		if err != nil {
			return err
		}
		swapchain.Framebuffers[i] = fb
	}
	return nil
}

func (vr *VulkanRenderer) recreateSwapchain() error {
	if vr.context.RecreatingSwapchain {
		return errors.New("swapchain recreation already in progress")
	}

	width := vr.cachedFramebufferWidth
	height := vr.cachedFramebufferHeight
	if width == 0 || height == 0 {
		// Acquisition or presentation requested the resize without a size
		// change event; requery the current framebuffer size.
		width, height = vr.platform.GetFramebufferSize()
	}
	if width == 0 || height == 0 {
		// Minimized; keep the stale swapchain until the window comes back.
		return errors.New("cannot recreate swapchain with a zero-sized framebuffer")
	}

	vr.context.RecreatingSwapchain = true
	vk.DeviceWaitIdle(vr.context.Device.LogicalDevice)

	// An acquire may have signaled an image-available semaphore for a frame
	// that was never submitted; recreate them so no slot carries a stale
	// signal into the new swapchain.
	semaphoreCreateInfo := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}
	for i := range vr.context.ImageAvailableSemaphores {
		vk.DestroySemaphore(vr.context.Device.LogicalDevice, vr.context.ImageAvailableSemaphores[i], vr.context.Allocator)
		if res := vk.CreateSemaphore(vr.context.Device.LogicalDevice, &semaphoreCreateInfo, vr.context.Allocator, &vr.context.ImageAvailableSemaphores[i]); res != vk.Success {
			vr.context.RecreatingSwapchain = false
			return VulkanError(res, "vkCreateSemaphore")
		}
	}

	if err := DeviceQuerySwapchainSupport(vr.context.Device.PhysicalDevice, vr.context.Surface, &vr.context.Device.SwapchainSupport); err != nil {
		vr.context.RecreatingSwapchain = false
		return err
	}
	if err := DeviceDetectDepthFormat(vr.context.Device); err != nil {
		vr.context.RecreatingSwapchain = false
		return err
	}

	for i := range vr.context.GraphicsCommandBuffers {
		if vr.context.GraphicsCommandBuffers[i] != nil && vr.context.GraphicsCommandBuffers[i].Handle != nil {
			vr.context.GraphicsCommandBuffers[i].Free(vr.context, vr.context.Device.GraphicsCommandPool)
			vr.context.GraphicsCommandBuffers[i] = nil
		}
	}
	for i := range vr.context.Swapchain.Framebuffers {
		if vr.context.Swapchain.Framebuffers[i] != nil {
			vr.context.Swapchain.Framebuffers[i].Destroy(vr.context)
			vr.context.Swapchain.Framebuffers[i] = nil
		}
	}

	sc, err := vr.context.Swapchain.SwapchainRecreate(vr.context, width, height)
	if err != nil {
		vr.context.RecreatingSwapchain = false
		return err
	}
	vr.context.Swapchain = sc

	vr.context.FramebufferWidth = width
	vr.context.FramebufferHeight = height
	vr.context.MainRenderpass.X = 0
	vr.context.MainRenderpass.Y = 0
	vr.context.MainRenderpass.W = float32(width)
	vr.context.MainRenderpass.H = float32(height)
	vr.cachedFramebufferWidth = 0
	vr.cachedFramebufferHeight = 0
	vr.context.FramebufferSizeLastGeneration = vr.context.FramebufferSizeGeneration

	vr.context.Swapchain.Framebuffers = make([]*VulkanFramebuffer, vr.context.Swapchain.ImageCount)
	if err := vr.regenerateFramebuffers(vr.context.Swapchain, vr.context.MainRenderpass); err != nil {
		vr.context.RecreatingSwapchain = false
		return err
	}
	if err := vr.createCommandBuffers(); err != nil {
		vr.context.RecreatingSwapchain = false
		return err
	}
	vr.resetImageToFrame()

	vr.context.RecreatingSwapchain = false
	return nil
}

func verifyValidationLayers(required []string) error {
	var availableLayerCount uint32
	if res := vk.EnumerateInstanceLayerProperties(&availableLayerCount, nil); res != vk.Success {
		return VulkanError(res, "vkEnumerateInstanceLayerProperties")
	}
	availableLayers := make([]vk.LayerProperties, availableLayerCount)
	if res := vk.EnumerateInstanceLayerProperties(&availableLayerCount, availableLayers); res != vk.Success {
		return VulkanError(res, "vkEnumerateInstanceLayerProperties")
	}

	for _, name := range required {
		found := false
		for i := range availableLayers {
			availableLayers[i].Deref()
			if name == VulkanTrimString(availableLayers[i].LayerName[:]) {
				found = true
				break
			}
		}
		if !found {
			return errors.Newf("required validation layer is missing: %s", name)
		}
	}
	core.LogInfo("All required validation layers are present.")
	return nil
}

func dbgCallbackFunc(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType, object uint64, location uint64, messageCode int32, pLayerPrefix string, pMessage string, pUserData unsafe.Pointer) vk.Bool32 {
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		core.LogError("[%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		core.LogWarn("[%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		core.LogWarn("PERFORMANCE: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	default:
		core.LogInfo("[%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	}
	return vk.Bool32(vk.False)
}
