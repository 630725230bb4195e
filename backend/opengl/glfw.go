package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/hellogl"
)

// Window wraps a GLFW window and its current GL context.
// It implements hellogl.Window.
type Window struct {
	window *glfw.Window
	input  *hellogl.InputState

	destroyed bool
}

var _ hellogl.Window = (*Window)(nil)

// NewWindow initializes GLFW, creates a window with a core-profile context,
// makes the context current and loads GL function pointers.
//
// On any failure GLFW is terminated before returning, so the caller only
// has to call Destroy on success. The calling goroutine must be locked to
// the main OS thread.
func NewWindow(cfg hellogl.WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, cfg.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfwBool(cfg.Resizable))
	glfw.WindowHint(glfw.Visible, glfwBool(!cfg.Hidden))

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	w := &Window{
		window: window,
		input:  hellogl.NewInputState(),
	}

	window.SetFramebufferSizeCallback(w.framebufferSizeCallback)
	window.MakeContextCurrent()

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	// Initialize OpenGL.
	if err := gl.Init(); err != nil {
		hellogl.Logger().Error("ERROR::MAIN::GL_INIT_FAIL", "error", err)
		w.Destroy()
		return nil, fmt.Errorf("gl init: %w", err)
	}

	fbW, fbH := window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbW), int32(fbH))

	hellogl.Logger().Info("window created",
		"title", cfg.Title,
		"width", cfg.Width, "height", cfg.Height,
		"framebuffer", fmt.Sprintf("%dx%d", fbW, fbH),
		"gl", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	return w, nil
}

// framebufferSizeCallback keeps the viewport in sync with the drawable size.
func (w *Window) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	hellogl.Logger().Debug("framebuffer resized", "width", width, "height", height)
}

func (w *Window) ShouldClose() bool {
	return w.window.ShouldClose()
}

func (w *Window) SetShouldClose(v bool) {
	w.window.SetShouldClose(v)
}

// PollEvents processes pending events without waiting and samples the
// keys hellogl reacts to.
func (w *Window) PollEvents() {
	glfw.PollEvents()

	w.input.Reset()
	for key := hellogl.KeyNone + 1; key < hellogl.KeyCount; key++ {
		if k := keyToGLFW(key); k != glfw.KeyUnknown {
			w.input.SetKey(key, w.window.GetKey(k) == glfw.Press)
		}
	}
}

func (w *Window) SwapBuffers() {
	w.window.SwapBuffers()
}

// Input returns the input state sampled by the last PollEvents.
func (w *Window) Input() *hellogl.InputState {
	return w.input
}

func (w *Window) FramebufferSize() (int, int) {
	return w.window.GetFramebufferSize()
}

// Destroy destroys the window and terminates GLFW.
// Calls after the first are no-ops.
func (w *Window) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	w.window.Destroy()
	glfw.Terminate()
}

// GLFW returns the underlying GLFW window.
func (w *Window) GLFW() *glfw.Window {
	return w.window
}

// keyToGLFW maps hellogl keys to GLFW keys.
func keyToGLFW(key hellogl.Key) glfw.Key {
	switch key {
	case hellogl.KeyEscape:
		return glfw.KeyEscape
	default:
		return glfw.KeyUnknown
	}
}

func glfwBool(v bool) int {
	if v {
		return glfw.True
	}
	return glfw.False
}
