package hellogl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// MaxTextureUnits is the number of texture units a config may bind.
// Core profile guarantees at least 16 per fragment stage.
const MaxTextureUnits = 16

// ErrUnsupportedConfig is returned for config files that are neither TOML nor YAML.
var ErrUnsupportedConfig = errors.New("unsupported config format")

// WindowConfig configures the window and its GL context.
type WindowConfig struct {
	Width     int    `toml:"width" yaml:"width"`
	Height    int    `toml:"height" yaml:"height"`
	Title     string `toml:"title" yaml:"title"`
	Resizable bool   `toml:"resizable" yaml:"resizable"`
	Hidden    bool   `toml:"hidden" yaml:"hidden"`
	VSync     bool   `toml:"vsync" yaml:"vsync"`
	GLMajor   int    `toml:"gl_major" yaml:"gl_major"`
	GLMinor   int    `toml:"gl_minor" yaml:"gl_minor"`
}

// ShaderConfig names the shader source files.
type ShaderConfig struct {
	Vertex   string `toml:"vertex" yaml:"vertex"`
	Fragment string `toml:"fragment" yaml:"fragment"`
}

// TextureBinding maps a sampler uniform to an image file.
// The texture unit is the binding's position in Config.Textures.
type TextureBinding struct {
	Uniform string `toml:"uniform" yaml:"uniform"`
	Path    string `toml:"path" yaml:"path"`
}

// RenderConfig holds fixed-function GL state applied once at startup.
type RenderConfig struct {
	ClearColor   [4]float32 `toml:"clear_color" yaml:"clear_color"`
	DepthTest    bool       `toml:"depth_test" yaml:"depth_test"`
	CullBack     bool       `toml:"cull_back" yaml:"cull_back"`
	Blend        bool       `toml:"blend" yaml:"blend"`
	FlipTextures bool       `toml:"flip_textures" yaml:"flip_textures"`
}

// Config is the full demo configuration.
type Config struct {
	Window   WindowConfig     `toml:"window" yaml:"window"`
	Shaders  ShaderConfig     `toml:"shaders" yaml:"shaders"`
	Textures []TextureBinding `toml:"textures" yaml:"textures"`
	Render   RenderConfig     `toml:"render" yaml:"render"`
	// StrictTextures makes a texture that fails to decode abort startup.
	StrictTextures bool `toml:"strict_textures" yaml:"strict_textures"`
}

// DefaultConfig returns the built-in configuration: a 640x480 window,
// the core shaders and two textures.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:     640,
			Height:    480,
			Title:     "hello :D",
			Resizable: true,
			VSync:     true,
			GLMajor:   4,
			GLMinor:   1,
		},
		Shaders: ShaderConfig{
			Vertex:   filepath.Join("shaders", "vertex_core.glsl"),
			Fragment: filepath.Join("shaders", "fragment_core.glsl"),
		},
		Textures: []TextureBinding{
			{Uniform: "texture0", Path: filepath.Join("imgs", "pusheen.png")},
			{Uniform: "texture1", Path: filepath.Join("imgs", "container.png")},
		},
		Render: RenderConfig{
			ClearColor:   [4]float32{0, 0, 0, 1},
			DepthTest:    true,
			CullBack:     true,
			Blend:        true,
			FlipTextures: true,
		},
	}
}

// LoadConfig reads a TOML or YAML file over DefaultConfig.
// The format is chosen by extension; "~" in path is expanded.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	path, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("expand config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	// A file that lists textures replaces the default list rather than
	// merging into it.
	defaults := cfg.Textures
	cfg.Textures = nil

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		cfg.Textures = defaults
		return cfg, fmt.Errorf("%s: %w", ext, ErrUnsupportedConfig)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Textures == nil {
		cfg.Textures = defaults
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	logger.Debug("config loaded", "path", path, "textures", len(cfg.Textures))
	return cfg, nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.GLMajor < 3 || (c.Window.GLMajor == 3 && c.Window.GLMinor < 3) {
		errs = append(errs, fmt.Errorf("GL %d.%d: core profile requires 3.3 or newer", c.Window.GLMajor, c.Window.GLMinor))
	}
	if c.Shaders.Vertex == "" || c.Shaders.Fragment == "" {
		errs = append(errs, errors.New("both shader paths are required"))
	}

	if len(c.Textures) > MaxTextureUnits {
		errs = append(errs, fmt.Errorf("%d textures exceed %d texture units", len(c.Textures), MaxTextureUnits))
	}
	seen := make(map[string]bool, len(c.Textures))
	for i, t := range c.Textures {
		if t.Uniform == "" || t.Path == "" {
			errs = append(errs, fmt.Errorf("texture %d: uniform and path are required", i))
			continue
		}
		if seen[t.Uniform] {
			errs = append(errs, fmt.Errorf("texture %d: duplicate uniform %q", i, t.Uniform))
		}
		seen[t.Uniform] = true
	}

	for i, v := range c.Render.ClearColor {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("clear_color[%d] = %v is outside [0,1]", i, v))
		}
	}

	return errors.Join(errs...)
}

// ClearColor returns the clear color as a vector.
func (c Config) ClearColor() mgl32.Vec4 {
	return mgl32.Vec4(c.Render.ClearColor)
}

// TextureOptions returns the texture options implied by the config.
func (c Config) TextureOptions() TextureOptions {
	opts := DefaultTextureOptions()
	opts.FlipVertical = c.Render.FlipTextures
	return opts
}
