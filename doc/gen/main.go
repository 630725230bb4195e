// Command gen renders the quad in a hidden window, captures the framebuffer
// and saves a JPEG screenshot to doc/imgs/quad.jpg.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"

	"github.com/go-theft-auto/hellogl"
	"github.com/go-theft-auto/hellogl/backend/opengl"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to a TOML or YAML config file")
	outDir := flag.String("out", filepath.Join("doc", "imgs"), "output directory")
	frames := flag.Int("frames", 2, "frames to render before capturing")
	flag.Parse()

	if err := run(*configPath, *outDir, *frames); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, outDir string, frames int) error {
	if frames < 1 {
		frames = 1
	}
	cfg := hellogl.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = hellogl.LoadConfig(configPath); err != nil {
			return err
		}
	}
	cfg.Window.Hidden = true
	cfg.Window.Resizable = false
	cfg.Window.Title = "screenshot-gen"
	// A missing texture would produce a misleading screenshot.
	cfg.StrictTextures = true

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	window, err := opengl.NewWindow(cfg.Window)
	if err != nil {
		return err
	}

	device := opengl.NewDevice(cfg.Render)
	scene, err := hellogl.NewScene(device, cfg)
	if err != nil {
		window.Destroy()
		return fmt.Errorf("scene setup: %w", err)
	}

	// Capture the last frame from the back buffer before it is swapped.
	width, height := window.FramebufferSize()
	path := filepath.Join(outDir, "quad.jpg")
	var saveErr error
	capture := func(frame int) {
		if frame < frames {
			return
		}
		if err := device.Error(); err != nil {
			saveErr = err
			return
		}
		// OpenGL origin is bottom-left.
		img := transform.FlipV(device.ReadPixels(width, height))
		saveErr = imgio.Save(path, img, imgio.JPEGEncoder(90))
	}

	loop := hellogl.NewLoop(window, device, scene,
		hellogl.WithClearColor(cfg.ClearColor()),
		hellogl.WithMaxFrames(frames),
		hellogl.WithFrameHook(capture),
	)
	loop.Run()

	if saveErr != nil {
		return fmt.Errorf("capture: %w", saveErr)
	}
	fmt.Printf("  %s (%dx%d)\n", path, width, height)
	return nil
}
