package texture

// Source produces the pixel frames shown through the display texture.
// Next returns false when nothing new is pending since the last call.
type Source interface {
	Next() (*Pixels, bool)
}

// Static serves a single frame once.
type Static struct {
	frame *Pixels
	sent  bool
}

// NewStatic creates a source that yields px on the first call to Next.
func NewStatic(px *Pixels) *Static {
	return &Static{frame: px}
}

// Next implements Source.
func (s *Static) Next() (*Pixels, bool) {
	if s.sent || s.frame == nil {
		return nil, false
	}
	s.sent = true
	return s.frame, true
}

// Rewind makes the frame pending again, e.g. after the GL texture was recreated.
func (s *Static) Rewind() {
	s.sent = false
}
