package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/trekanten/engine/core"
)

// PresentMode names the preferred swapchain presentation strategy.
type PresentMode string

const (
	PresentModeFifo    PresentMode = "fifo"
	PresentModeMailbox PresentMode = "mailbox"
)

// Config drives renderer startup. Loaded from a TOML file next to the
// executable; every field has a usable default.
type Config struct {
	Application struct {
		Name   string `toml:"name"`
		Width  uint32 `toml:"width"`
		Height uint32 `toml:"height"`
	} `toml:"application"`
	Renderer struct {
		PresentMode      PresentMode `toml:"present_mode"`
		ValidationLayers bool        `toml:"validation_layers"`
		FramesInFlight   uint32      `toml:"frames_in_flight"`
		ShaderDir        string      `toml:"shader_dir"`
	} `toml:"renderer"`
}

// MaxFramesInFlight caps the number of frames the CPU may record ahead of
// the GPU. Two slots is the sweet spot for latency vs. throughput.
const MaxFramesInFlight uint32 = 2

func Default() *Config {
	c := &Config{}
	c.Application.Name = "Trekanten"
	c.Application.Width = 1280
	c.Application.Height = 720
	c.Renderer.PresentMode = PresentModeMailbox
	c.Renderer.ValidationLayers = false
	c.Renderer.FramesInFlight = MaxFramesInFlight
	c.Renderer.ShaderDir = "shaders"
	return c
}

// Load reads the TOML configuration at path, falling back to defaults when
// the file does not exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			core.LogInfo("config file %s not found, using defaults", path)
			return Default(), nil
		}
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	c := Default()
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file %s", path)
	}
	return c, c.validate()
}

func (c *Config) validate() error {
	if c.Application.Width == 0 || c.Application.Height == 0 {
		return errors.Newf("invalid window extent %dx%d", c.Application.Width, c.Application.Height)
	}
	switch c.Renderer.PresentMode {
	case PresentModeFifo, PresentModeMailbox:
	default:
		return errors.Newf("unknown present mode %q", c.Renderer.PresentMode)
	}
	if c.Renderer.FramesInFlight == 0 || c.Renderer.FramesInFlight > MaxFramesInFlight {
		c.Renderer.FramesInFlight = MaxFramesInFlight
	}
	return nil
}
