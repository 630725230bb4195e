package hellogl_test

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/hellogl"
)

// fakeDevice records every call and compiles any source that does not
// contain "syntax error".
type fakeDevice struct {
	calls []string
	next  uint32

	linkFails    bool
	linkLog      string
	compileLog   string
	uniformQuery map[string]int

	shaders  map[uint32]bool
	programs map[uint32]bool
	textures map[uint32]*image.RGBA
	meshes   map[uint32]hellogl.Mesh
	params   map[uint32]hellogl.TextureParams
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		compileLog:   "0:1(1): error: syntax error",
		linkLog:      "error: linking with uncompiled shader",
		uniformQuery: make(map[string]int),
		shaders:      make(map[uint32]bool),
		programs:     make(map[uint32]bool),
		textures:     make(map[uint32]*image.RGBA),
		meshes:       make(map[uint32]hellogl.Mesh),
		params:       make(map[uint32]hellogl.TextureParams),
	}
}

func (d *fakeDevice) id() uint32 {
	d.next++
	return d.next
}

func (d *fakeDevice) record(format string, args ...any) {
	d.calls = append(d.calls, fmt.Sprintf(format, args...))
}

func (d *fakeDevice) CompileShader(stage hellogl.ShaderStage, source string) (uint32, string, bool) {
	s := d.id()
	d.shaders[s] = strings.TrimSpace(source) != "" && !strings.Contains(source, "syntax error")
	d.record("compile %s %d", stage, s)
	if !d.shaders[s] {
		return s, d.compileLog, false
	}
	return s, "", true
}

func (d *fakeDevice) LinkProgram(shaders ...uint32) (uint32, string, bool) {
	p := d.id()
	d.programs[p] = true
	d.record("link %d", p)
	ok := !d.linkFails
	for _, s := range shaders {
		if !d.shaders[s] {
			ok = false
		}
	}
	if !ok {
		return p, d.linkLog, false
	}
	return p, "", true
}

func (d *fakeDevice) DeleteShader(shader uint32) {
	delete(d.shaders, shader)
	d.record("delete shader %d", shader)
}

func (d *fakeDevice) DeleteProgram(program uint32) {
	delete(d.programs, program)
	d.record("delete program %d", program)
}

func (d *fakeDevice) UniformLocation(program uint32, name string) int32 {
	d.uniformQuery[name]++
	switch name {
	case "texture0":
		return 0
	case "texture1":
		return 1
	default:
		return -1
	}
}

func (d *fakeDevice) UploadMesh(m hellogl.Mesh, layout []hellogl.VertexAttrib) (hellogl.MeshHandle, error) {
	if err := m.Validate(); err != nil {
		return hellogl.MeshHandle{}, err
	}
	h := hellogl.MeshHandle{VAO: d.id(), VBO: d.id(), EBO: d.id(),
		VertexCount: int32(len(m.Vertices)), IndexCount: m.IndexCount()}
	d.meshes[h.VAO] = m
	d.record("upload mesh %d", h.VAO)
	return h, nil
}

func (d *fakeDevice) DeleteMesh(h hellogl.MeshHandle) {
	delete(d.meshes, h.VAO)
	d.record("delete mesh %d", h.VAO)
}

func (d *fakeDevice) CreateTexture(params hellogl.TextureParams) uint32 {
	t := d.id()
	d.textures[t] = nil
	d.params[t] = params
	d.record("create texture %d", t)
	return t
}

func (d *fakeDevice) UploadTexture(tex uint32, img *image.RGBA) {
	d.textures[tex] = img
	d.record("upload texture %d", tex)
}

func (d *fakeDevice) DeleteTexture(tex uint32) {
	delete(d.textures, tex)
	d.record("delete texture %d", tex)
}

func (d *fakeDevice) Clear(c mgl32.Vec4) { d.record("clear %v", c) }
func (d *fakeDevice) UseProgram(program uint32) { d.record("use %d", program) }
func (d *fakeDevice) Uniform1i(loc, v int32) { d.record("uniform %d=%d", loc, v) }
func (d *fakeDevice) BindTexture(unit int, tex uint32) {
	d.record("bind texture %d=%d", unit, tex)
}
func (d *fakeDevice) BindMesh(h hellogl.MeshHandle) { d.record("bind mesh %d", h.VAO) }
func (d *fakeDevice) DrawIndexed(count int32) { d.record("draw %d", count) }
func (d *fakeDevice) ResetBindings() { d.record("reset") }

// reset clears recorded calls so a test can look at one phase.
func (d *fakeDevice) reset() {
	d.calls = nil
}

// fakeWindow presses Escape on a chosen frame.
type fakeWindow struct {
	input       *hellogl.InputState
	shouldClose bool
	escapeAt    int // PollEvents call that presses Escape, 0 = never

	polls     int
	swaps     int
	destroyed int
	log       *[]string
}

func newFakeWindow(escapeAt int, log *[]string) *fakeWindow {
	return &fakeWindow{input: hellogl.NewInputState(), escapeAt: escapeAt, log: log}
}

func (w *fakeWindow) ShouldClose() bool     { return w.shouldClose }
func (w *fakeWindow) SetShouldClose(v bool) { w.shouldClose = v }

func (w *fakeWindow) PollEvents() {
	w.polls++
	w.input.Reset()
	w.input.SetKey(hellogl.KeyEscape, w.escapeAt > 0 && w.polls >= w.escapeAt)
	*w.log = append(*w.log, "poll")
}

func (w *fakeWindow) SwapBuffers() {
	w.swaps++
	*w.log = append(*w.log, "swap")
}

func (w *fakeWindow) Input() *hellogl.InputState   { return w.input }
func (w *fakeWindow) FramebufferSize() (int, int) { return 640, 480 }

func (w *fakeWindow) Destroy() {
	w.destroyed++
	*w.log = append(*w.log, "destroy")
}

// captureLogs routes package logging into a buffer until the returned
// function is called.
func captureLogs() (*bytes.Buffer, func()) {
	var buf bytes.Buffer
	prev := hellogl.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf, func() { hellogl.SetLogger(prev) }
}

func fmtCall(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

func countLines(s, substr string) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}
