package renderer

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	vk "github.com/goki/vulkan"
)

// VertexSource describes a vertex layout to pipeline creation: the packed
// stride and the per-location attribute formats.
type VertexSource interface {
	Stride() uint32
	Attributes() []vk.VertexInputAttributeDescription
}

// Vertex is the layout consumed by the standard pipelines: position and
// color at locations 0 and 1, texture coordinates at location 2.
type Vertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
	TexCoord mgl32.Vec2
}

// VertexLayout is the VertexSource for Vertex.
type VertexLayout struct{}

// Stride is the packed size of one Vertex in bytes.
func (VertexLayout) Stride() uint32 {
	return uint32(unsafe.Sizeof(Vertex{}))
}

// Attributes describes the Vertex fields for pipeline creation.
func (VertexLayout) Attributes() []vk.VertexInputAttributeDescription {
	return []vk.VertexInputAttributeDescription{
		{
			Location: 0,
			Binding:  0,
			Format:   vk.FormatR32g32b32Sfloat,
			Offset:   uint32(unsafe.Offsetof(Vertex{}.Position)),
		},
		{
			Location: 1,
			Binding:  0,
			Format:   vk.FormatR32g32b32Sfloat,
			Offset:   uint32(unsafe.Offsetof(Vertex{}.Color)),
		},
		{
			Location: 2,
			Binding:  0,
			Format:   vk.FormatR32g32Sfloat,
			Offset:   uint32(unsafe.Offsetof(Vertex{}.TexCoord)),
		},
	}
}

// VerticesToBytes reinterprets the vertex slice as raw bytes for upload.
func VerticesToBytes(vertices []Vertex) []byte {
	if len(vertices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), len(vertices)*int(unsafe.Sizeof(Vertex{})))
}

// IndicesToBytes reinterprets the index slice as raw bytes for upload.
func IndicesToBytes(indices []uint32) []byte {
	if len(indices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&indices[0])), len(indices)*4)
}
