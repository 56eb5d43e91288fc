package renderer

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestVertexLayoutStride(t *testing.T) {
	// 3 position + 3 color + 2 texcoord floats, packed.
	var layout VertexSource = VertexLayout{}
	if got := layout.Stride(); got != 32 {
		t.Errorf("expected stride 32, got %d", got)
	}
}

func TestVertexLayoutAttributeOffsets(t *testing.T) {
	attrs := VertexLayout{}.Attributes()
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	wantOffsets := []uint32{0, 12, 24}
	for i, attr := range attrs {
		if attr.Location != uint32(i) {
			t.Errorf("attribute %d: expected location %d, got %d", i, i, attr.Location)
		}
		if attr.Offset != wantOffsets[i] {
			t.Errorf("attribute %d: expected offset %d, got %d", i, wantOffsets[i], attr.Offset)
		}
	}
}

func TestVerticesToBytes(t *testing.T) {
	vertices := []Vertex{
		{Position: mgl32.Vec3{1, 2, 3}, Color: mgl32.Vec3{0.5, 0.25, 0.125}, TexCoord: mgl32.Vec2{0, 1}},
	}
	data := VerticesToBytes(vertices)
	if len(data) != 32 {
		t.Fatalf("expected 32 bytes, got %d", len(data))
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(data[0:])); got != 1 {
		t.Errorf("expected first float 1, got %f", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(data[28:])); got != 1 {
		t.Errorf("expected last float 1, got %f", got)
	}

	if VerticesToBytes(nil) != nil {
		t.Error("empty slice should produce nil")
	}
}

func TestIndicesToBytes(t *testing.T) {
	data := IndicesToBytes([]uint32{7, 0xdeadbeef})
	if len(data) != 8 {
		t.Fatalf("expected 8 bytes, got %d", len(data))
	}
	if binary.LittleEndian.Uint32(data) != 7 {
		t.Errorf("expected 7, got %d", binary.LittleEndian.Uint32(data))
	}
	if binary.LittleEndian.Uint32(data[4:]) != 0xdeadbeef {
		t.Errorf("expected 0xdeadbeef, got %#x", binary.LittleEndian.Uint32(data[4:]))
	}
}
