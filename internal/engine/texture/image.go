// Package texture loads images into RGBA pixel buffers and feeds frames to
// the display texture.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// ErrEmptyImage is returned for images without pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// Pixels is a tightly packed RGBA8 buffer, rows top to bottom.
type Pixels struct {
	Width  int
	Height int
	Pix    []byte
}

// Load decodes the image at path into an RGBA pixel buffer.
func Load(path string) (*Pixels, error) {
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		return loadTGA(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	px, err := FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("%s image %s: %w", format, path, err)
	}
	return px, nil
}

func loadTGA(path string) (*Pixels, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := DecodeTGA(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	px, err := FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("tga image %s: %w", path, err)
	}
	return px, nil
}

// FromImage converts any image to a packed RGBA buffer.
func FromImage(img image.Image) (*Pixels, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmptyImage
	}

	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != 4*b.Dx() || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}

	return &Pixels{Width: b.Dx(), Height: b.Dy(), Pix: rgba.Pix}, nil
}

// Image wraps the buffer as an *image.RGBA without copying.
func (p *Pixels) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    p.Pix,
		Stride: 4 * p.Width,
		Rect:   image.Rect(0, 0, p.Width, p.Height),
	}
}

// FlipVertical returns a copy with rows in bottom-to-top order, the layout
// OpenGL expects for texture uploads with a lower-left origin.
func (p *Pixels) FlipVertical() *Pixels {
	row := 4 * p.Width
	out := make([]byte, len(p.Pix))
	for y := 0; y < p.Height; y++ {
		src := (p.Height - 1 - y) * row
		copy(out[y*row:(y+1)*row], p.Pix[src:src+row])
	}
	return &Pixels{Width: p.Width, Height: p.Height, Pix: out}
}
