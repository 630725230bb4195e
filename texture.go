package hellogl

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const msgTextureLoadFail = "ERROR::TEXTURE LOAD FAIL"

var (
	// ErrNotImage is returned when a texture file is not a recognised image.
	ErrNotImage = errors.New("not an image file")
	// ErrEmptyImage is returned for images with a zero width or height.
	ErrEmptyImage = errors.New("image has no pixels")
)

// Texture is a 2D texture bound to a fixed texture unit.
// Loaded is false when decoding failed: the texture object exists and can
// be bound, but holds no image data.
type Texture struct {
	ID      uint32
	Unit    int
	Uniform string
	Path    string
	Width   int
	Height  int
	Loaded  bool
}

// TextureOptions control how image files become textures.
type TextureOptions struct {
	Params TextureParams
	// FlipVertical stores the bottom image row first, matching the GL
	// texture origin, so the quad's texture coordinates show the image upright.
	FlipVertical bool
}

// DefaultTextureOptions returns the default sampling parameters with
// vertical flipping enabled.
func DefaultTextureOptions() TextureOptions {
	return TextureOptions{
		Params:       DefaultTextureParams(),
		FlipVertical: true,
	}
}

// DecodeImage reads an image file and converts it to RGBA.
func DecodeImage(path string, flip bool) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	kind, err := filetype.Match(data)
	if err != nil {
		return nil, fmt.Errorf("sniff %s: %w", path, err)
	}
	if kind == filetype.Unknown || !filetype.IsImage(data) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotImage)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s (%s): %w", path, kind.Extension, err)
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%s (%dx%d): %w", path, bounds.Dx(), bounds.Dy(), ErrEmptyImage)
	}
	logger.Debug("image decoded", "path", path, "format", format, "mime", kind.MIME.Value,
		"width", bounds.Dx(), "height", bounds.Dy())

	if flip {
		return transform.FlipV(img), nil
	}
	return clone.AsRGBA(img), nil
}

// LoadTexture creates a texture for a binding on the given unit.
//
// The texture object is created before decoding. If decoding fails the
// error is logged and returned together with the allocated, empty
// texture; callers decide whether that is fatal.
func LoadTexture(dev Device, binding TextureBinding, unit int, opts TextureOptions) (*Texture, error) {
	tex := &Texture{
		ID:      dev.CreateTexture(opts.Params),
		Unit:    unit,
		Uniform: binding.Uniform,
		Path:    binding.Path,
	}

	img, err := DecodeImage(binding.Path, opts.FlipVertical)
	if err != nil {
		logger.Error(msgTextureLoadFail, "path", binding.Path, "uniform", binding.Uniform, "error", err)
		return tex, fmt.Errorf("load texture %q: %w", binding.Uniform, err)
	}

	dev.UploadTexture(tex.ID, img)
	tex.Width = img.Rect.Dx()
	tex.Height = img.Rect.Dy()
	tex.Loaded = true

	logger.Debug("texture loaded", "uniform", tex.Uniform, "unit", unit, "id", tex.ID,
		"width", tex.Width, "height", tex.Height)
	return tex, nil
}

// Delete releases the texture. It is safe to call more than once.
func (t *Texture) Delete(dev Device) {
	if t == nil || t.ID == 0 {
		return
	}
	dev.DeleteTexture(t.ID)
	t.ID = 0
}
