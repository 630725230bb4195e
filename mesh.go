package hellogl

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the per-vertex record uploaded to the GPU.
// Layout: Position (3 floats) + Color (3 floats) + TexCoord (2 floats).
type Vertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
	TexCoord mgl32.Vec2
}

// VertexStride is the size of one Vertex in bytes.
const VertexStride = int32(unsafe.Sizeof(Vertex{}))

// Attribute locations, matching the layout qualifiers in vertex_core.glsl.
const (
	AttribPosition uint32 = 0
	AttribColor    uint32 = 1
	AttribTexCoord uint32 = 2
)

// VertexAttrib describes one float attribute inside a Vertex.
type VertexAttrib struct {
	Location   uint32
	Components int32
	Offset     uintptr
}

// VertexLayout returns the attribute layout of Vertex.
func VertexLayout() []VertexAttrib {
	return []VertexAttrib{
		{Location: AttribPosition, Components: 3, Offset: unsafe.Offsetof(Vertex{}.Position)},
		{Location: AttribColor, Components: 3, Offset: unsafe.Offsetof(Vertex{}.Color)},
		{Location: AttribTexCoord, Components: 2, Offset: unsafe.Offsetof(Vertex{}.TexCoord)},
	}
}

// Mesh is indexed triangle geometry.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

var (
	// ErrEmptyMesh is returned when a mesh has no vertices or no indices.
	ErrEmptyMesh = errors.New("mesh has no vertices or indices")
	// ErrIndexOutOfRange is returned when an index points past the vertex slice.
	ErrIndexOutOfRange = errors.New("mesh index out of range")
)

// QuadMesh returns the unit quad: four vertices and two counter-clockwise
// triangles (0,1,2) and (0,2,3). Each call returns a fresh copy.
func QuadMesh() Mesh {
	return Mesh{
		Vertices: []Vertex{
			{Position: mgl32.Vec3{-0.5, 0.5, 0}, Color: mgl32.Vec3{1, 0, 0}, TexCoord: mgl32.Vec2{0, 1}},
			{Position: mgl32.Vec3{-0.5, -0.5, 0}, Color: mgl32.Vec3{0, 1, 0}, TexCoord: mgl32.Vec2{0, 0}},
			{Position: mgl32.Vec3{0.5, -0.5, 0}, Color: mgl32.Vec3{0, 0, 1}, TexCoord: mgl32.Vec2{1, 0}},
			{Position: mgl32.Vec3{0.5, 0.5, 0}, Color: mgl32.Vec3{1, 1, 0}, TexCoord: mgl32.Vec2{1, 1}},
		},
		Indices: []uint32{
			0, 1, 2, // Triangle 1
			0, 2, 3, // Triangle 2
		},
	}
}

// IndexCount returns the number of indices as the int32 GL expects.
func (m Mesh) IndexCount() int32 {
	return int32(len(m.Indices))
}

// Validate checks that the mesh is drawable.
func (m Mesh) Validate() error {
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return ErrEmptyMesh
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("index %d = %d with %d vertices: %w", i, idx, len(m.Vertices), ErrIndexOutOfRange)
		}
	}
	return nil
}
