package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kerzenlicht/viewer/internal/engine/texture"
)

func TestGenerateFilename(t *testing.T) {
	sc := NewScreenshotCapture("shots", "frame")
	sc.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 6, 7e6, time.UTC) }

	want := filepath.Join("shots", "frame_2024-03-09_14-05-06.007.png")
	if got := sc.GenerateFilename(); got != want {
		t.Errorf("GenerateFilename() = %q, want %q", got, want)
	}
}

func TestSaveFlipsRows(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	sc := NewScreenshotCapture(dir, "shot")

	// Bottom row red, top row blue in GL order.
	px := &texture.Pixels{Width: 1, Height: 2, Pix: []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}}

	path, err := sc.Save(px)
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open screenshot: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode screenshot: %v", err)
	}

	if r, _, b, _ := img.At(0, 0).RGBA(); r != 0 || b != 0xffff {
		t.Errorf("top pixel = r%d b%d, want blue", r, b)
	}
	if r, _, b, _ := img.At(0, 1).RGBA(); r != 0xffff || b != 0 {
		t.Errorf("bottom pixel = r%d b%d, want red", r, b)
	}
}

func TestSaveRejectsMismatchedSize(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "shot")

	if _, err := sc.Save(&texture.Pixels{Width: 2, Height: 2, Pix: make([]byte, 4)}); err == nil {
		t.Error("expected size mismatch error")
	}
	if _, err := sc.Save(nil); err == nil {
		t.Error("expected error for nil pixels")
	}
}
