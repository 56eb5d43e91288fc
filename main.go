// Example application: a rotating textured quad driven by the renderer's
// NextFrame/Submit cycle.
package main

import (
	"os"
	"path/filepath"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/trekanten/engine/config"
	"github.com/spaghettifunk/trekanten/engine/core"
	"github.com/spaghettifunk/trekanten/engine/platform"
	"github.com/spaghettifunk/trekanten/engine/renderer"
	"github.com/spaghettifunk/trekanten/engine/renderer/shaders"
)

type uniformObject struct {
	Model mgl32.Mat4
	View  mgl32.Mat4
	Proj  mgl32.Mat4
}

func (u *uniformObject) bytes() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(u)), int(unsafe.Sizeof(*u)))
}

type app struct {
	running       bool
	pendingWidth  uint32
	pendingHeight uint32
	resized       bool
}

func (a *app) onEvent(code core.SystemEventCode, sender interface{}, listener interface{}, context core.EventContext) bool {
	switch code {
	case core.EVENT_CODE_APPLICATION_QUIT:
		a.running = false
		return true
	case core.EVENT_CODE_RESIZED:
		a.pendingWidth = context.Data.U32[0]
		a.pendingHeight = context.Data.U32[1]
		a.resized = true
	}
	return false
}

func run() error {
	cfg, err := config.Load("trekanten.toml")
	if err != nil {
		return err
	}

	core.EventInitialize()
	core.InputInitialize()
	core.MetricsInitialize()

	a := &app{running: true}
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, a, a.onEvent)
	core.EventRegister(core.EVENT_CODE_RESIZED, a, a.onEvent)

	p, err := platform.New()
	if err != nil {
		return err
	}
	if err := p.Startup(cfg.Application.Name, cfg.Application.Width, cfg.Application.Height); err != nil {
		return err
	}
	defer p.Shutdown()

	r, err := renderer.New(p, cfg)
	if err != nil {
		return err
	}
	defer r.Destroy()

	quad := []renderer.Vertex{
		{Position: mgl32.Vec3{-0.5, -0.5, 0}, Color: mgl32.Vec3{1, 0, 0}, TexCoord: mgl32.Vec2{0, 1}},
		{Position: mgl32.Vec3{0.5, -0.5, 0}, Color: mgl32.Vec3{0, 1, 0}, TexCoord: mgl32.Vec2{1, 1}},
		{Position: mgl32.Vec3{0.5, 0.5, 0}, Color: mgl32.Vec3{0, 0, 1}, TexCoord: mgl32.Vec2{1, 0}},
		{Position: mgl32.Vec3{-0.5, 0.5, 0}, Color: mgl32.Vec3{1, 1, 1}, TexCoord: mgl32.Vec2{0, 0}},
	}
	indices := []uint32{0, 1, 2, 2, 3, 0}

	vertexBuffer, err := r.CreateVertexBuffer(quad)
	if err != nil {
		return err
	}
	indexBuffer, err := r.CreateIndexBuffer(indices)
	if err != nil {
		return err
	}
	uniformBuffer, err := r.CreateUniformBuffer(uint64(unsafe.Sizeof(uniformObject{})))
	if err != nil {
		return err
	}
	texture, err := r.CreateTexture(renderer.TextureDescriptor{
		Path:            filepath.Join("assets", "checker.png"),
		GenerateMipmaps: true,
	})
	if err != nil {
		return err
	}
	pipelineDesc := renderer.PipelineDescriptor{
		VertexShaderPath:   filepath.Join(cfg.Renderer.ShaderDir, "quad.vert.spv"),
		FragmentShaderPath: filepath.Join(cfg.Renderer.ShaderDir, "quad.frag.spv"),
		CullMode:           renderer.CullBack,
		DepthTest:          true,
		DepthWrite:         true,
	}
	pipeline, err := r.CreatePipeline(pipelineDesc)
	if err != nil {
		return err
	}
	descriptorSet, err := r.CreateDescriptorSet(uniformBuffer, texture)
	if err != nil {
		return err
	}

	watcher, err := shaders.NewWatcher(cfg.Renderer.ShaderDir)
	if err != nil {
		core.LogWarn("shader hot reload disabled: %s", err)
		watcher = nil
	} else {
		defer watcher.Close()
	}

	clock := core.NewClock()
	clock.Start()
	lastTime := 0.0
	angle := float32(0)

	width := cfg.Application.Width
	height := cfg.Application.Height

	for a.running && !p.ShouldClose() {
		p.PumpMessages()

		if core.IsKeyPressed(core.KEY_ESCAPE) {
			a.running = false
		}
		core.InputUpdate()

		if a.resized {
			width, height = a.pendingWidth, a.pendingHeight
			r.Resize(width, height)
			a.resized = false
		}

		if watcher != nil {
			select {
			case changed := <-watcher.Changed():
				if err := r.WaitIdle(); err != nil {
					return err
				}
				if r.InvalidatePipelines(changed) > 0 {
					core.LogInfo("shader changed, rebuilding pipeline: %s", changed)
					if pipeline, err = r.CreatePipeline(pipelineDesc); err != nil {
						return err
					}
				}
			default:
			}
		}

		clock.Update()
		delta := clock.Elapsed() - lastTime
		lastTime = clock.Elapsed()

		frame, err := r.NextFrame()
		if err != nil {
			if errors.Is(err, renderer.ErrNeedsResize) {
				continue
			}
			return err
		}

		angle += float32(delta) * mgl32.DegToRad(45)
		aspect := float32(1)
		if height != 0 {
			aspect = float32(width) / float32(height)
		}
		ubo := uniformObject{
			Model: mgl32.HomogRotate3DZ(angle),
			View:  mgl32.LookAtV(mgl32.Vec3{0, 1.2, 1.2}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 1}),
			Proj:  mgl32.Perspective(mgl32.DegToRad(45), aspect, 0.1, 10),
		}
		if err := frame.UpdateUniform(uniformBuffer, ubo.bytes()); err != nil {
			return err
		}

		if err := frame.BindPipeline(pipeline); err != nil {
			return err
		}
		if err := frame.BindVertexBuffer(vertexBuffer); err != nil {
			return err
		}
		if err := frame.BindIndexBuffer(indexBuffer); err != nil {
			return err
		}
		if err := frame.BindDescriptorSet(pipeline, descriptorSet); err != nil {
			return err
		}
		frame.DrawIndexed(uint32(len(indices)))

		if err := r.Submit(frame); err != nil {
			if errors.Is(err, renderer.ErrNeedsResize) {
				continue
			}
			return err
		}

		core.MetricsUpdate(delta)
	}

	fps, frameTime := core.MetricsFrame()
	core.LogInfo("exiting at %.0f fps, %.2f ms/frame", fps, frameTime)
	return nil
}

func main() {
	if err := run(); err != nil {
		core.LogError("%+v", err)
		os.Exit(1)
	}
}
