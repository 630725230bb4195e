package hellogl

import "github.com/go-gl/mathgl/mgl32"

// LoopState is the frame loop state.
type LoopState int

const (
	Running LoopState = iota
	Closing
)

func (s LoopState) String() string {
	switch s {
	case Running:
		return "running"
	case Closing:
		return "closing"
	default:
		return "unknown"
	}
}

// Loop drives the per-frame clear, draw and present sequence.
type Loop struct {
	win   Window
	dev   Device
	scene *Scene

	clearColor mgl32.Vec4
	maxFrames  int
	frameHook  func(frame int)

	frames int
	state  LoopState
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithClearColor sets the color the framebuffer is cleared to every frame.
func WithClearColor(c mgl32.Vec4) LoopOption {
	return func(l *Loop) { l.clearColor = c }
}

// WithMaxFrames requests close after n presented frames. Zero means no limit.
func WithMaxFrames(n int) LoopOption {
	return func(l *Loop) { l.maxFrames = n }
}

// WithFrameHook sets a function called after each frame is drawn and
// before it is presented. frame counts from 1.
func WithFrameHook(fn func(frame int)) LoopOption {
	return func(l *Loop) { l.frameHook = fn }
}

// NewLoop creates a frame loop over an already built scene.
func NewLoop(win Window, dev Device, scene *Scene, opts ...LoopOption) *Loop {
	l := &Loop{
		win:        win,
		dev:        dev,
		scene:      scene,
		clearColor: mgl32.Vec4{0, 0, 0, 1},
		state:      Running,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// State returns the current loop state.
func (l *Loop) State() LoopState {
	return l.state
}

// Frames returns the number of frames drawn so far.
func (l *Loop) Frames() int {
	return l.frames
}

// Step runs one frame if the window has not been asked to close.
// It returns false once the loop is closing.
func (l *Loop) Step() bool {
	if l.state == Closing {
		return false
	}
	if l.win.ShouldClose() {
		l.state = Closing
		return false
	}

	// Input
	l.win.PollEvents()
	if l.win.Input().KeyDown(KeyEscape) {
		logger.Debug("escape pressed, closing window", "frame", l.frames)
		l.win.SetShouldClose(true)
	}

	// Draw
	l.dev.Clear(l.clearColor)
	l.scene.Draw(l.dev)

	l.frames++
	if l.frameHook != nil {
		l.frameHook(l.frames)
	}
	l.win.SwapBuffers()

	l.dev.ResetBindings()

	if l.maxFrames > 0 && l.frames >= l.maxFrames {
		l.win.SetShouldClose(true)
	}
	return true
}

// Run steps until the window closes, then releases the scene and destroys
// the window. The scene is released first, while the context is current.
func (l *Loop) Run() {
	logger.Debug("frame loop started")
	for l.Step() {
	}
	l.Close()
	logger.Info("frame loop finished", "frames", l.frames)
}

// Close moves the loop to Closing and tears down the scene and window.
// Calls after the first are no-ops.
func (l *Loop) Close() {
	if l.win == nil {
		return
	}
	l.state = Closing
	l.scene.Release(l.dev)
	l.win.Destroy()
	l.win = nil
}
