package hellogl

import (
	"errors"
	"fmt"
)

// Scene owns every GPU resource the demo draws with. All of them are
// created by NewScene before the first frame and released once by Release.
type Scene struct {
	Program  *Program
	Mesh     MeshHandle
	Textures []*Texture

	released bool
}

// NewScene builds the program, uploads the quad and loads the configured
// textures.
//
// A program or mesh failure is fatal. A texture that fails to decode is
// fatal only with cfg.StrictTextures; otherwise it stays bound but empty.
// On error everything created so far is released.
func NewScene(dev Device, cfg Config) (*Scene, error) {
	s := &Scene{}

	program, err := BuildProgram(dev, cfg.Shaders.Vertex, cfg.Shaders.Fragment)
	if err != nil {
		return nil, err
	}
	s.Program = program

	s.Mesh, err = dev.UploadMesh(QuadMesh(), VertexLayout())
	if err != nil {
		s.Release(dev)
		return nil, fmt.Errorf("upload quad: %w", err)
	}

	opts := cfg.TextureOptions()
	var texErrs []error
	for unit, binding := range cfg.Textures {
		tex, err := LoadTexture(dev, binding, unit, opts)
		s.Textures = append(s.Textures, tex)
		if err != nil {
			texErrs = append(texErrs, err)
		}
	}
	if len(texErrs) > 0 && cfg.StrictTextures {
		s.Release(dev)
		return nil, errors.Join(texErrs...)
	}

	logger.Info("scene ready", "program", s.Program.ID, "vao", s.Mesh.VAO,
		"textures", len(s.Textures), "texture_failures", len(texErrs))
	return s, nil
}

// Draw binds the program, textures and quad and issues one indexed draw.
func (s *Scene) Draw(dev Device) {
	dev.UseProgram(s.Program.ID)

	for _, t := range s.Textures {
		dev.Uniform1i(s.Program.Uniform(dev, t.Uniform), int32(t.Unit))
	}
	for _, t := range s.Textures {
		dev.BindTexture(t.Unit, t.ID)
	}

	dev.BindMesh(s.Mesh)
	dev.DrawIndexed(s.Mesh.IndexCount)
}

// Release deletes the scene's GPU resources. Calls after the first are no-ops.
func (s *Scene) Release(dev Device) {
	if s == nil || s.released {
		return
	}
	s.released = true

	for _, t := range s.Textures {
		t.Delete(dev)
	}
	if s.Mesh.VAO != 0 {
		dev.DeleteMesh(s.Mesh)
		s.Mesh = MeshHandle{}
	}
	s.Program.Delete(dev)
}
