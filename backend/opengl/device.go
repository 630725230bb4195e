// Package opengl provides the OpenGL 4.1 core and GLFW backend for hellogl.
package opengl

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/hellogl"
)

// Device implements hellogl.Device with OpenGL calls.
// It must be used on the thread that owns the current context.
type Device struct{}

var _ hellogl.Device = (*Device)(nil)

// NewDevice returns a device for the current context and applies the
// fixed render state from cfg.
func NewDevice(cfg hellogl.RenderConfig) *Device {
	d := &Device{}
	d.ApplyRenderState(cfg)
	return d
}

// ApplyRenderState sets depth testing, back-face culling, CCW front faces,
// fill polygon mode and alpha blending.
func (d *Device) ApplyRenderState(cfg hellogl.RenderConfig) {
	setEnabled(gl.DEPTH_TEST, cfg.DepthTest)

	setEnabled(gl.CULL_FACE, cfg.CullBack)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)

	setEnabled(gl.BLEND, cfg.Blend)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

func setEnabled(capability uint32, on bool) {
	if on {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

// CompileShader compiles source for the vertex or fragment stage.
func (d *Device) CompileShader(stage hellogl.ShaderStage, source string) (uint32, string, bool) {
	var kind uint32
	switch stage {
	case hellogl.StageVertex:
		kind = gl.VERTEX_SHADER
	case hellogl.StageFragment:
		kind = gl.FRAGMENT_SHADER
	default:
		return 0, fmt.Sprintf("cannot compile %s stage", stage), false
	}

	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		log := make([]byte, hellogl.InfoLogLimit)
		var n int32
		gl.GetShaderInfoLog(shader, hellogl.InfoLogLimit, &n, &log[0])
		return shader, string(log[:n]), false
	}
	return shader, "", true
}

// LinkProgram links the shaders into a new program.
func (d *Device) LinkProgram(shaders ...uint32) (uint32, string, bool) {
	program := gl.CreateProgram()
	for _, s := range shaders {
		if s != 0 {
			gl.AttachShader(program, s)
		}
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		log := make([]byte, hellogl.InfoLogLimit)
		var n int32
		gl.GetProgramInfoLog(program, hellogl.InfoLogLimit, &n, &log[0])
		return program, string(log[:n]), false
	}

	gl.UseProgram(0)
	return program, "", true
}

func (d *Device) DeleteShader(shader uint32) {
	if shader != 0 {
		gl.DeleteShader(shader)
	}
}

func (d *Device) DeleteProgram(program uint32) {
	if program != 0 {
		gl.DeleteProgram(program)
	}
}

// UniformLocation returns -1 for unknown or inactive uniforms.
func (d *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// UploadMesh creates a VAO, VBO and EBO and copies m into them once with
// STATIC_DRAW usage.
func (d *Device) UploadMesh(m hellogl.Mesh, layout []hellogl.VertexAttrib) (hellogl.MeshHandle, error) {
	if err := m.Validate(); err != nil {
		return hellogl.MeshHandle{}, err
	}

	h := hellogl.MeshHandle{VertexCount: int32(len(m.Vertices)), IndexCount: m.IndexCount()}

	// Create VAO
	gl.GenVertexArrays(1, &h.VAO)
	gl.BindVertexArray(h.VAO)

	// Create VBO
	gl.GenBuffers(1, &h.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, h.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*int(hellogl.VertexStride), gl.Ptr(m.Vertices), gl.STATIC_DRAW)

	// Create EBO
	gl.GenBuffers(1, &h.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, h.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	for _, a := range layout {
		gl.VertexAttribPointerWithOffset(a.Location, a.Components, gl.FLOAT, false, hellogl.VertexStride, a.Offset)
		gl.EnableVertexAttribArray(a.Location)
	}

	// The element buffer binding is VAO state, so only the VAO is unbound.
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return h, nil
}

// ReadVertices reads the vertex buffer of h back from the GPU.
func (d *Device) ReadVertices(h hellogl.MeshHandle) []hellogl.Vertex {
	out := make([]hellogl.Vertex, h.VertexCount)
	if h.VertexCount == 0 {
		return out
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, h.VBO)
	gl.GetBufferSubData(gl.ARRAY_BUFFER, 0, len(out)*int(hellogl.VertexStride), gl.Ptr(out))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return out
}

// ReadIndices reads the index buffer of h back from the GPU.
func (d *Device) ReadIndices(h hellogl.MeshHandle) []uint32 {
	out := make([]uint32, h.IndexCount)
	if h.IndexCount == 0 {
		return out
	}
	gl.BindVertexArray(h.VAO)
	gl.GetBufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, len(out)*int(unsafe.Sizeof(out[0])), gl.Ptr(out))
	gl.BindVertexArray(0)
	return out
}

func (d *Device) DeleteMesh(h hellogl.MeshHandle) {
	if h.EBO != 0 {
		gl.DeleteBuffers(1, &h.EBO)
	}
	if h.VBO != 0 {
		gl.DeleteBuffers(1, &h.VBO)
	}
	if h.VAO != 0 {
		gl.DeleteVertexArrays(1, &h.VAO)
	}
}

// CreateTexture creates an empty 2D texture with the given sampling parameters.
func (d *Device) CreateTexture(params hellogl.TextureParams) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, glWrap(params.WrapS))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, glWrap(params.WrapT))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(params.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(params.MagFilter))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// UploadTexture stores img as level 0 and generates the mip chain.
// Empty images are ignored and leave the texture without storage.
func (d *Device) UploadTexture(tex uint32, img *image.RGBA) {
	if img == nil || img.Rect.Empty() {
		return
	}
	size := img.Rect.Size()
	gl.BindTexture(gl.TEXTURE_2D, tex)
	// Rows of a sub-image may not be tightly packed.
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(size.X), int32(size.Y), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (d *Device) DeleteTexture(tex uint32) {
	if tex != 0 {
		gl.DeleteTextures(1, &tex)
	}
}

// Clear clears the color, depth and stencil buffers.
func (d *Device) Clear(c mgl32.Vec4) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
}

func (d *Device) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *Device) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (d *Device) BindTexture(unit int, tex uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, tex)
}

func (d *Device) BindMesh(h hellogl.MeshHandle) {
	gl.BindVertexArray(h.VAO)
}

// DrawIndexed draws count uint32 indices from the bound VAO as triangles.
func (d *Device) DrawIndexed(count int32) {
	gl.DrawElementsWithOffset(gl.TRIANGLES, count, gl.UNSIGNED_INT, 0)
}

func (d *Device) ResetBindings() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Error returns the pending GL error flag, or nil.
func (d *Device) Error() error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%04x", code)
	}
	return nil
}

// ReadPixels reads the current framebuffer. Row 0 is the bottom row.
func (d *Device) ReadPixels(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.PACK_ALIGNMENT, 4)
	return img
}

func glWrap(w hellogl.TextureWrap) int32 {
	switch w {
	case hellogl.WrapClampToEdge:
		return gl.CLAMP_TO_EDGE
	default:
		return gl.REPEAT
	}
}

func glFilter(f hellogl.TextureFilter) int32 {
	switch f {
	case hellogl.FilterNearest:
		return gl.NEAREST
	case hellogl.FilterLinearMipmapLinear:
		return gl.LINEAR_MIPMAP_LINEAR
	default:
		return gl.LINEAR
	}
}
