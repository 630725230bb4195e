/*
Package hellogl renders a single textured quad with OpenGL.

# Overview

The package covers the whole life of the demo: build a shader program from
two GLSL files, upload a fixed quad, load one texture per sampler uniform,
then draw every frame until the window closes. Every GPU resource is
created once before the first frame and only bound afterwards.

The graphics API and the window sit behind the Device and Window
interfaces. The backend/opengl package implements both with go-gl and
GLFW; tests use recording fakes.

# Quick Start

	window, err := opengl.NewWindow(cfg.Window)
	if err != nil {
	    return err
	}
	device := opengl.NewDevice(cfg.Render)

	scene, err := hellogl.NewScene(device, cfg)
	if err != nil {
	    window.Destroy()
	    return err
	}

	hellogl.NewLoop(window, device, scene,
	    hellogl.WithClearColor(cfg.ClearColor()),
	).Run()

# Files

Paths are relative to the working directory unless a config overrides them:

	shaders/vertex_core.glsl    vertex stage, attributes at locations 0, 1, 2
	shaders/fragment_core.glsl  fragment stage, samplers texture0 and texture1
	imgs/pusheen.png            bound to texture unit 0
	imgs/container.png          bound to texture unit 1

# Failures

BuildProgram runs every step even after one fails, so a missing vertex
file logs the open failure, the compile failure of the empty source and
the link failure. It then returns a *BuildError and no program.

A texture that fails to decode is logged with ERROR::TEXTURE LOAD FAIL and
left allocated but empty. NewScene treats that as fatal only when
Config.StrictTextures is set.
*/
package hellogl
