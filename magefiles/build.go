//go:build mage

package main

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Compiles the GLSL shaders to SPIR-V with glslc.
func (Build) Shaders() error {
	shaders := []string{"quad.vert", "quad.frag"}
	for _, shader := range shaders {
		src := "shaders/" + shader
		out := src + ".spv"
		if _, err := executeCmd("glslc", withArgs(src, "-o", out), withStream()); err != nil {
			return err
		}
	}
	return nil
}

// Generates the checkerboard texture the example samples from.
func (Build) Assets() error {
	if err := os.MkdirAll("assets", 0o755); err != nil {
		return err
	}
	const size, cell = 256, 32
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := color.NRGBA{R: 0xe8, G: 0xe8, B: 0xe8, A: 0xff}
			if (x/cell+y/cell)%2 == 0 {
				c = color.NRGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	f, err := os.Create("assets/checker.png")
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// Builds the example binary.
func (Build) Example() error {
	mg.Deps(Build.Shaders, Build.Assets)
	if _, err := executeCmd("go", withArgs("build", "-o", "trekanten", "."), withStream()); err != nil {
		return err
	}
	return nil
}
