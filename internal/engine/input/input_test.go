package input

import "testing"

func TestStateApply(t *testing.T) {
	var s State

	s.Apply(Event{Type: EventKey, Key: KeyW, Action: Press})
	if !s.Key(KeyW) {
		t.Fatal("expected W held after press")
	}

	s.Apply(Event{Type: EventKey, Key: KeyW, Action: Repeat})
	if !s.Key(KeyW) {
		t.Error("repeat should not release W")
	}

	s.Apply(Event{Type: EventKey, Key: KeyW, Action: Release})
	if s.Key(KeyW) {
		t.Error("expected W released")
	}

	s.Apply(Event{Type: EventMouseButton, Button: ButtonRight, Action: Press})
	if !s.Button(ButtonRight) {
		t.Error("expected right button held")
	}
	if s.Button(ButtonLeft) {
		t.Error("left button should not be held")
	}
}

func TestStateIgnoresOutOfRange(t *testing.T) {
	var s State

	s.SetKey(KeyUnknown, true)
	s.SetKey(KeyCount, true)
	s.SetKey(Key(-4), true)
	s.SetButton(ButtonCount+3, true)

	if s.Key(KeyUnknown) || s.Key(KeyCount) || s.Key(Key(-4)) {
		t.Error("out-of-range keys must read as released")
	}
	if s.Button(ButtonCount + 3) {
		t.Error("out-of-range buttons must read as released")
	}
	if s != (State{}) {
		t.Error("out-of-range writes must not touch the table")
	}
}

func TestStateAny(t *testing.T) {
	var s State
	if s.Any(KeyE, KeySpace) {
		t.Error("nothing is held yet")
	}
	s.SetKey(KeySpace, true)
	if !s.Any(KeyE, KeySpace) {
		t.Error("space is held")
	}
	s.Clear()
	if s.Any(KeySpace) {
		t.Error("Clear should release everything")
	}
}

func TestQueue(t *testing.T) {
	q := NewQueue()
	q.Push(Event{Type: EventResize, Width: 640, Height: 480})
	q.Push(Event{Type: EventClose})

	if q.Len() != 2 {
		t.Fatalf("expected 2 events, got %d", q.Len())
	}
	if ev := q.Events()[0]; ev.Width != 640 || ev.Height != 480 {
		t.Errorf("unexpected first event %+v", ev)
	}

	q.Reset()
	if q.Len() != 0 {
		t.Errorf("expected empty queue after reset, got %d", q.Len())
	}
}
