package viewer

// DefaultStatusPeriod is the number of seconds between title updates.
const DefaultStatusPeriod = 0.2

// FrameTimer tracks frame timing against the window clock. All values are
// in seconds.
type FrameTimer struct {
	RunTime     float64 // accumulated time fed to the shader
	LastTime    float64
	CurrentTime float64
	FrameTime   float64 // duration of the last frame, never negative
	WindowTime  float64 // time since the last title update
	Period      float64
}

// NewFrameTimer creates a timer with the given status period.
func NewFrameTimer(period float64) *FrameTimer {
	if period <= 0 {
		period = DefaultStatusPeriod
	}
	return &FrameTimer{Period: period}
}

// Reset starts measuring from now without touching the accumulators.
func (t *FrameTimer) Reset(now float64) {
	t.LastTime = now
	t.CurrentTime = now
	t.FrameTime = 0
}

// Tick samples the clock and accumulates the elapsed time.
func (t *FrameTimer) Tick(now float64) {
	t.CurrentTime = now
	t.FrameTime = now - t.LastTime
	if t.FrameTime < 0 {
		t.FrameTime = 0
	}
	t.LastTime = now
	t.RunTime += t.FrameTime
	t.WindowTime += t.FrameTime
}

// StatusDue reports whether the window time crossed the period. The period is
// subtracted, so the remainder carries into the next window.
func (t *FrameTimer) StatusDue() bool {
	if t.WindowTime <= t.Period {
		return false
	}
	t.WindowTime -= t.Period
	return true
}

// FPS returns the rate implied by the last frame, 0 before any time has passed.
func (t *FrameTimer) FPS() float64 {
	if t.FrameTime <= 0 {
		return 0
	}
	return 1 / t.FrameTime
}
