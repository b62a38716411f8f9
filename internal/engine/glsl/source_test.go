package glsl

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSource(t *testing.T) {
	src := `#version 410 core
uniform float iTime;

#type vertex
void main() { gl_Position = vec4(0.0); }

#type fragment
out vec4 FragColor;
void main() { FragColor = vec4(iTime); }
`
	s, err := SplitSource(src)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(s.Vertex, "#version 410 core\nuniform float iTime;"))
	assert.Contains(t, s.Vertex, "gl_Position")
	assert.NotContains(t, s.Vertex, "FragColor")

	assert.True(t, strings.HasPrefix(s.Fragment, "#version 410 core\n"))
	assert.Contains(t, s.Fragment, "FragColor = vec4(iTime)")
	assert.NotContains(t, s.Fragment, "gl_Position")
	assert.NotContains(t, s.Fragment, "#type")
}

func TestSplitSourceVersionInsideStage(t *testing.T) {
	src := "// shared\n#type vertex\n#version 330 core\nvoid main() {}\n#type fragment\n#version 330 core\nvoid main() {}\n"

	s, err := SplitSource(src)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(s.Vertex, "#version 330 core\n// shared\n"), "got %q", s.Vertex)
	assert.True(t, strings.HasPrefix(s.Fragment, "#version 330 core\n// shared\n"), "got %q", s.Fragment)
}

func TestSplitSourceErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"missing fragment", "#type vertex\nvoid main() {}\n", "fragment"},
		{"unknown stage", "#type geometry\n", "unknown stage"},
		{"duplicate stage", "#type vertex\n#type vertex\n", "duplicate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SplitSource(tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := SplitSource("void main() {}")
	assert.True(t, errors.Is(err, ErrMissingStage))
}

func TestDefaultDisplaySourceSplits(t *testing.T) {
	s, err := SplitSource(DefaultDisplaySource())
	require.NoError(t, err)
	assert.Contains(t, s.Vertex, "layout (location = 0) in vec2 aPos")
	assert.Contains(t, s.Fragment, "uniform sampler2D uDisplay")
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "display.glsl")
	require.NoError(t, os.WriteFile(path, []byte("#type vertex\n"), 0644))

	w, err := Watch(path)
	require.NoError(t, err)
	defer w.Close()

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.glsl"), []byte("x"), 0644))
	select {
	case got := <-w.Changes():
		t.Fatalf("unexpected change for %s", got)
	case <-time.After(3 * debounce):
	}

	require.NoError(t, os.WriteFile(path, []byte("#type fragment\n"), 0644))
	select {
	case got := <-w.Changes():
		want, _ := filepath.Abs(path)
		assert.Equal(t, want, got)
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification")
	}
}
