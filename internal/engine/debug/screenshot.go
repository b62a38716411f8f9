// Package debug provides capture utilities for inspecting rendered frames.
package debug

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/kerzenlicht/viewer/internal/engine/texture"
)

// ScreenshotCapture writes framebuffer read-backs to timestamped PNG files.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// NewScreenshotCapture creates a new screenshot capture handler.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// Save writes px as PNG and returns the file name. px is in OpenGL row order
// (bottom to top) and is flipped before encoding.
func (sc *ScreenshotCapture) Save(px *texture.Pixels) (string, error) {
	if px == nil || len(px.Pix) != px.Width*px.Height*4 {
		return "", fmt.Errorf("pixel data size mismatch")
	}

	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sc.GenerateFilename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, px.FlipVertical().Image()); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}

	return filename, nil
}

// GenerateFilename generates a screenshot filename without saving.
func (sc *ScreenshotCapture) GenerateFilename() string {
	timestamp := sc.now().Format("2006-01-02_15-04-05.000")
	filename := fmt.Sprintf("%s_%s.png", sc.prefix, timestamp)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}
