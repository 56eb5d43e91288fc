package platform

import (
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/trekanten/engine/core"
)

func init() {
	// GLFW event handling must run on the main OS thread.
	runtime.LockOSThread()
}

type Platform struct {
	Window *glfw.Window
}

func New() (*Platform, error) {
	return &Platform{
		Window: nil,
	}, nil
}

func (p *Platform) Startup(applicationName string, width uint32, height uint32) error {
	if err := glfw.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize glfw")
	}
	if !glfw.VulkanSupported() {
		return errors.New("glfw reports no Vulkan support on this machine")
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	// No OpenGL context; rendering goes through Vulkan.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create window")
	}
	p.Window = window

	p.Window.SetKeyCallback(keyCallback)
	p.Window.SetFramebufferSizeCallback(framebufferSizeCallback)
	p.Window.SetCloseCallback(closeCallback)

	return nil
}

func (p *Platform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	return nil
}

// PumpMessages polls window events and drains the queued application
// events they produced.
func (p *Platform) PumpMessages() {
	glfw.PollEvents()
	core.EventPump()
}

func (p *Platform) ShouldClose() bool {
	return p.Window.ShouldClose()
}

// GetRequiredExtensionNames lists the instance extensions the window
// system needs for surface creation.
func (p *Platform) GetRequiredExtensionNames() []string {
	return p.Window.GetRequiredInstanceExtensions()
}

// GetFramebufferSize returns the current framebuffer size in pixels.
func (p *Platform) GetFramebufferSize() (uint32, uint32) {
	w, h := p.Window.GetFramebufferSize()
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return uint32(w), uint32(h)
}

func keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	var context core.EventContext
	context.Data.U16[0] = uint16(key)
	switch action {
	case glfw.Press:
		core.EventPost(core.EVENT_CODE_KEY_PRESSED, w, context)
	case glfw.Release:
		core.EventPost(core.EVENT_CODE_KEY_RELEASED, w, context)
	}
}

func framebufferSizeCallback(w *glfw.Window, width, height int) {
	var context core.EventContext
	context.Data.U32[0] = uint32(width)
	context.Data.U32[1] = uint32(height)
	core.EventPost(core.EVENT_CODE_RESIZED, w, context)
}

func closeCallback(w *glfw.Window) {
	core.EventPost(core.EVENT_CODE_APPLICATION_QUIT, w, core.EventContext{})
}
