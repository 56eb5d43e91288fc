package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Application.Width != 1280 || c.Application.Height != 720 {
		t.Fatalf("unexpected default extent %dx%d", c.Application.Width, c.Application.Height)
	}
	if c.Renderer.FramesInFlight != MaxFramesInFlight {
		t.Fatalf("unexpected frames in flight %d", c.Renderer.FramesInFlight)
	}
}

func TestLoadParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "renderer.toml")
	body := `
[application]
name = "demo"
width = 800
height = 600

[renderer]
present_mode = "fifo"
validation_layers = true
frames_in_flight = 2
shader_dir = "assets/shaders"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Application.Name != "demo" || c.Application.Width != 800 {
		t.Fatalf("unexpected application section: %+v", c.Application)
	}
	if c.Renderer.PresentMode != PresentModeFifo || !c.Renderer.ValidationLayers {
		t.Fatalf("unexpected renderer section: %+v", c.Renderer)
	}
	if c.Renderer.ShaderDir != "assets/shaders" {
		t.Fatalf("unexpected shader dir %q", c.Renderer.ShaderDir)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "renderer.toml")
	body := `
[renderer]
present_mode = "immediate"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown present mode")
	}
}

func TestFramesInFlightClamped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "renderer.toml")
	body := `
[renderer]
frames_in_flight = 8
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Renderer.FramesInFlight != MaxFramesInFlight {
		t.Fatalf("frames in flight not clamped: %d", c.Renderer.FramesInFlight)
	}
}
