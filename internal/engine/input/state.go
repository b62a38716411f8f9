package input

// State is the pressed/released table for keys and pointer buttons.
type State struct {
	keys    [KeyCount]bool
	buttons [ButtonCount]bool
}

// SetKey records the pressed state of k. Out-of-range keys are ignored.
func (s *State) SetKey(k Key, pressed bool) {
	if k <= KeyUnknown || k >= KeyCount {
		return
	}
	s.keys[k] = pressed
}

// SetButton records the pressed state of b. Out-of-range buttons are ignored.
func (s *State) SetButton(b Button, pressed bool) {
	if b <= ButtonUnknown || b >= ButtonCount {
		return
	}
	s.buttons[b] = pressed
}

// Key reports whether k is held.
func (s *State) Key(k Key) bool {
	if k <= KeyUnknown || k >= KeyCount {
		return false
	}
	return s.keys[k]
}

// Button reports whether b is held.
func (s *State) Button(b Button) bool {
	if b <= ButtonUnknown || b >= ButtonCount {
		return false
	}
	return s.buttons[b]
}

// Any reports whether any of ks is held.
func (s *State) Any(ks ...Key) bool {
	for _, k := range ks {
		if s.Key(k) {
			return true
		}
	}
	return false
}

// Apply updates the table from a key or button event. Repeat actions leave
// the table unchanged.
func (s *State) Apply(e Event) {
	if e.Action == Repeat {
		return
	}
	pressed := e.Action == Press
	switch e.Type {
	case EventKey:
		s.SetKey(e.Key, pressed)
	case EventMouseButton:
		s.SetButton(e.Button, pressed)
	}
}

// Clear releases every key and button.
func (s *State) Clear() {
	*s = State{}
}
