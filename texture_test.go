package hellogl_test

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/hellogl"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

// writePNG writes a 2x3 image whose top row is red and the rest blue.
func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			c := blue
			if y == 0 {
				c = red
			}
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

// writeBMP writes a 24-bit BMP header for a width x height image whose
// rows are all zero bytes.
func writeBMP(t *testing.T, dir, name string, width, height int32) string {
	t.Helper()
	rowSize := (3*width + 3) &^ 3
	pixels := make([]byte, rowSize*height)

	var buf []byte
	buf = append(buf, 'B', 'M')
	buf = binary.LittleEndian.AppendUint32(buf, uint32(54+len(pixels)))
	buf = binary.LittleEndian.AppendUint32(buf, 0)
	buf = binary.LittleEndian.AppendUint32(buf, 54)
	buf = binary.LittleEndian.AppendUint32(buf, 40)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(width))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(height))
	buf = binary.LittleEndian.AppendUint16(buf, 1)
	buf = binary.LittleEndian.AppendUint16(buf, 24)
	for i := 0; i < 6; i++ {
		// compression, image size, resolution and palette fields
		buf = binary.LittleEndian.AppendUint32(buf, 0)
	}
	buf = append(buf, pixels...)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf, 0o644))
	return path
}

func TestDecodeImage(t *testing.T) {
	path := writePNG(t, t.TempDir(), "a.png")

	img, err := hellogl.DecodeImage(path, false)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 3), img.Bounds())
	assert.Equal(t, red, img.RGBAAt(0, 0))
	assert.Equal(t, blue, img.RGBAAt(1, 2))
}

func TestDecodeImageFlipsVertically(t *testing.T) {
	path := writePNG(t, t.TempDir(), "a.png")

	img, err := hellogl.DecodeImage(path, true)
	require.NoError(t, err)
	assert.Equal(t, blue, img.RGBAAt(0, 0))
	assert.Equal(t, red, img.RGBAAt(0, 2))
	assert.Equal(t, red, img.RGBAAt(1, 2))
}

func TestDecodeImageRejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.png")
	require.NoError(t, os.WriteFile(path, []byte("just some text, not pixels"), 0o644))

	_, err := hellogl.DecodeImage(path, true)
	assert.ErrorIs(t, err, hellogl.ErrNotImage)
}

func TestDecodeImageRejectsEmpty(t *testing.T) {
	dir := t.TempDir()
	for _, size := range [][2]int32{{0, 0}, {0, 5}, {5, 0}} {
		path := writeBMP(t, dir, "empty.bmp", size[0], size[1])
		_, err := hellogl.DecodeImage(path, true)
		assert.ErrorIs(t, err, hellogl.ErrEmptyImage, "size %v", size)
	}

	// A non-empty BMP of the same shape decodes.
	img, err := hellogl.DecodeImage(writeBMP(t, dir, "small.bmp", 3, 5), false)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 5), img.Bounds())
}

func TestLoadTextureEmptyImage(t *testing.T) {
	logs, restore := captureLogs()
	defer restore()

	dev := newFakeDevice()
	path := writeBMP(t, t.TempDir(), "empty.bmp", 0, 5)

	tex, err := hellogl.LoadTexture(dev, hellogl.TextureBinding{Uniform: "texture0", Path: path}, 0, hellogl.DefaultTextureOptions())
	require.ErrorIs(t, err, hellogl.ErrEmptyImage)
	require.NotNil(t, tex)
	assert.NotZero(t, tex.ID)
	assert.False(t, tex.Loaded)
	assert.Equal(t, []string{"create texture 1"}, dev.calls)
	assert.Contains(t, logs.String(), "TEXTURE LOAD FAIL")
}

func TestDecodeImageMissingFile(t *testing.T) {
	_, err := hellogl.DecodeImage(filepath.Join(t.TempDir(), "nope.png"), true)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadTexture(t *testing.T) {
	dev := newFakeDevice()
	path := writePNG(t, t.TempDir(), "a.png")

	tex, err := hellogl.LoadTexture(dev, hellogl.TextureBinding{Uniform: "texture0", Path: path}, 0, hellogl.DefaultTextureOptions())
	require.NoError(t, err)
	assert.True(t, tex.Loaded)
	assert.Equal(t, 2, tex.Width)
	assert.Equal(t, 3, tex.Height)
	assert.Equal(t, "texture0", tex.Uniform)
	assert.Equal(t, 0, tex.Unit)

	require.NotNil(t, dev.textures[tex.ID])
	assert.Equal(t, hellogl.DefaultTextureParams(), dev.params[tex.ID])
	assert.Equal(t, []string{"create texture 1", "upload texture 1"}, dev.calls)
}

func TestLoadTextureDecodeFailureKeepsHandle(t *testing.T) {
	logs, restore := captureLogs()
	defer restore()

	dev := newFakeDevice()
	missing := filepath.Join(t.TempDir(), "pusheen.png")

	tex, err := hellogl.LoadTexture(dev, hellogl.TextureBinding{Uniform: "texture1", Path: missing}, 1, hellogl.DefaultTextureOptions())
	require.Error(t, err)
	require.NotNil(t, tex)

	// The handle exists and can be bound, but holds no image.
	assert.NotZero(t, tex.ID)
	assert.False(t, tex.Loaded)
	assert.Equal(t, 1, tex.Unit)
	img, exists := dev.textures[tex.ID]
	assert.True(t, exists)
	assert.Nil(t, img)
	assert.Equal(t, []string{"create texture 1"}, dev.calls)

	assert.Contains(t, logs.String(), "TEXTURE LOAD FAIL")
}

func TestDefaultTextureParams(t *testing.T) {
	p := hellogl.DefaultTextureParams()
	assert.Equal(t, hellogl.WrapRepeat, p.WrapS)
	assert.Equal(t, hellogl.WrapRepeat, p.WrapT)
	assert.Equal(t, hellogl.FilterLinearMipmapLinear, p.MinFilter)
	assert.Equal(t, hellogl.FilterLinear, p.MagFilter)
}

func TestTextureDelete(t *testing.T) {
	dev := newFakeDevice()
	tex := &hellogl.Texture{ID: dev.CreateTexture(hellogl.DefaultTextureParams())}
	tex.Delete(dev)
	tex.Delete(dev)
	assert.Zero(t, tex.ID)
	assert.Empty(t, dev.textures)
}
