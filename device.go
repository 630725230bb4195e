package hellogl

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// ShaderStage identifies a step of program construction.
type ShaderStage int

const (
	StageVertex ShaderStage = iota
	StageFragment
	StageLink
)

// String returns the stage name used in diagnostics.
func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageLink:
		return "link"
	default:
		return "unknown"
	}
}

// MeshHandle holds the GPU objects of an uploaded mesh.
type MeshHandle struct {
	VAO, VBO, EBO uint32
	VertexCount   int32
	IndexCount    int32
}

// TextureWrap is a texture coordinate wrap mode.
type TextureWrap int

const (
	WrapRepeat TextureWrap = iota
	WrapClampToEdge
)

// TextureFilter is a texture sampling filter.
type TextureFilter int

const (
	FilterLinear TextureFilter = iota
	FilterNearest
	FilterLinearMipmapLinear
)

// TextureParams are the sampling parameters set when a texture is created.
type TextureParams struct {
	WrapS, WrapT TextureWrap
	MinFilter    TextureFilter
	MagFilter    TextureFilter
}

// DefaultTextureParams returns repeat wrapping with trilinear minification
// and linear magnification.
func DefaultTextureParams() TextureParams {
	return TextureParams{
		WrapS:     WrapRepeat,
		WrapT:     WrapRepeat,
		MinFilter: FilterLinearMipmapLinear,
		MagFilter: FilterLinear,
	}
}

// Device is the graphics-API boundary. The OpenGL backend implements it;
// tests use a recording fake.
//
// All methods must be called from the thread that owns the GL context.
type Device interface {
	// CompileShader creates and compiles a shader for a vertex or fragment
	// stage. The shader handle is returned even when compilation fails.
	CompileShader(stage ShaderStage, source string) (shader uint32, infoLog string, ok bool)
	// LinkProgram creates a program, attaches the shaders and links it.
	// The program handle is returned even when linking fails.
	LinkProgram(shaders ...uint32) (program uint32, infoLog string, ok bool)
	DeleteShader(shader uint32)
	DeleteProgram(program uint32)
	UniformLocation(program uint32, name string) int32

	UploadMesh(m Mesh, layout []VertexAttrib) (MeshHandle, error)
	DeleteMesh(h MeshHandle)

	CreateTexture(params TextureParams) uint32
	// UploadTexture stores img as mip level 0 of tex and generates mip-maps.
	UploadTexture(tex uint32, img *image.RGBA)
	DeleteTexture(tex uint32)

	Clear(color mgl32.Vec4)
	UseProgram(program uint32)
	Uniform1i(location int32, v int32)
	BindTexture(unit int, tex uint32)
	BindMesh(h MeshHandle)
	DrawIndexed(count int32)
	// ResetBindings unbinds the program, vertex array and texture unit 0.
	ResetBindings()
}

// Window is the windowing boundary used by the frame loop.
type Window interface {
	ShouldClose() bool
	SetShouldClose(v bool)
	// PollEvents processes pending events without blocking and refreshes
	// the input state.
	PollEvents()
	SwapBuffers()
	Input() *InputState
	FramebufferSize() (width, height int)
	// Destroy destroys the window and terminates the windowing system.
	Destroy()
}
