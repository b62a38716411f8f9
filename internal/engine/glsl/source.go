// Package glsl parses single-file GLSL programs and watches shader sources
// for changes.
package glsl

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
)

// Stage names accepted after a "#type" directive.
const (
	StageVertex   = "vertex"
	StageFragment = "fragment"
)

// ErrMissingStage is returned when a source file lacks a required stage.
var ErrMissingStage = errors.New("missing shader stage")

//go:embed shaders/display.glsl
var defaultDisplay string

// DefaultDisplaySource returns the embedded display shader.
func DefaultDisplaySource() string {
	return defaultDisplay
}

// Sources holds the per-stage sources of one program.
type Sources struct {
	Vertex   string
	Fragment string
}

// SplitSource splits a single-file program into stages. Each stage starts
// with a line "#type vertex" or "#type fragment"; text before the first
// directive is shared and prepended to every stage.
func SplitSource(src string) (Sources, error) {
	var (
		shared  strings.Builder
		stages  = map[string]*strings.Builder{}
		current *strings.Builder
	)

	for n, line := range strings.SplitAfter(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(trimmed, "#type"); ok {
			name := strings.ToLower(strings.TrimSpace(rest))
			switch name {
			case StageVertex, StageFragment:
			default:
				return Sources{}, fmt.Errorf("line %d: unknown stage %q", n+1, name)
			}
			if _, dup := stages[name]; dup {
				return Sources{}, fmt.Errorf("line %d: duplicate %s stage", n+1, name)
			}
			current = &strings.Builder{}
			stages[name] = current
			continue
		}
		if current == nil {
			shared.WriteString(line)
		} else {
			current.WriteString(line)
		}
	}

	var out Sources
	for name, dst := range map[string]*string{StageVertex: &out.Vertex, StageFragment: &out.Fragment} {
		b, ok := stages[name]
		if !ok {
			return Sources{}, fmt.Errorf("%w: %s", ErrMissingStage, name)
		}
		*dst = withShared(shared.String(), b.String())
	}
	return out, nil
}

// withShared inserts the shared prelude after a leading #version line, which
// GLSL requires to come first.
func withShared(shared, stage string) string {
	if strings.TrimSpace(shared) == "" {
		return stage
	}
	body := strings.TrimLeft(stage, " \t\r\n")
	if strings.HasPrefix(body, "#version") {
		if i := strings.IndexByte(body, '\n'); i >= 0 {
			return body[:i+1] + shared + body[i+1:]
		}
		return body + "\n" + shared
	}
	return shared + stage
}
