// Example opens a window and renders a textured quad until the window is
// closed or Escape is pressed.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run from the repository root so shaders/ and imgs/ resolve
//
// Flags:
//
//	-config path   TOML or YAML config file (defaults are built in)
//	-frames n      close after n frames (0 runs until closed)
//	-verbose       enable debug logging
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/go-theft-auto/hellogl"
	"github.com/go-theft-auto/hellogl/backend/opengl"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to a TOML or YAML config file")
	frames := flag.Int("frames", 0, "close after this many frames (0 = until closed)")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	hellogl.SetVerbose(*verbose)

	if err := run(*configPath, *frames); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, frames int) error {
	cfg := hellogl.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = hellogl.LoadConfig(configPath)
		if err != nil {
			return err
		}
	}

	window, err := opengl.NewWindow(cfg.Window)
	if err != nil {
		return err
	}

	device := opengl.NewDevice(cfg.Render)

	// Every GPU resource is created here, before the first frame.
	scene, err := hellogl.NewScene(device, cfg)
	if err != nil {
		window.Destroy()
		return fmt.Errorf("scene setup: %w", err)
	}

	loop := hellogl.NewLoop(window, device, scene,
		hellogl.WithClearColor(cfg.ClearColor()),
		hellogl.WithMaxFrames(frames),
	)
	loop.Run()

	return nil
}
