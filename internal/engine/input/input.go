// Package input defines backend-independent input events and key state.
//
// Window backends translate native key codes and callbacks into the typed
// values declared here and append them to a Queue. The viewer drains the
// queue once per frame.
package input

// EventType identifies the kind of an Event.
type EventType int

const (
	EventNone EventType = iota
	EventClose
	EventResize
	EventKey
	EventMouseButton
	EventCursor
	EventScroll
)

// Action is the state transition carried by key and button events.
type Action int

const (
	Release Action = iota
	Press
	Repeat
)

// Button identifies a pointer button.
type Button int

const (
	ButtonUnknown Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
	ButtonCount
)

// Key identifies a keyboard key independently of the window backend.
type Key int

const (
	KeyUnknown Key = iota
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySpace
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyRightControl
	KeyLeftAlt
	KeyRightAlt
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyCount
)

// Event is a single translated window-system event. Only the fields
// relevant to Type are set.
type Event struct {
	Type   EventType
	Key    Key
	Button Button
	Action Action

	// Cursor position for EventCursor, scroll offsets for EventScroll.
	X, Y float64

	// Framebuffer size for EventResize.
	Width, Height int
}

// Queue collects events between two drains. It is not safe for concurrent
// use; backends push from callbacks that run on the polling thread.
type Queue struct {
	events []Event
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{events: make([]Event, 0, 32)}
}

// Push appends an event.
func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}

// Reset drops queued events and keeps the backing storage.
func (q *Queue) Reset() {
	q.events = q.events[:0]
}

// Events returns the queued events. The slice is only valid until the
// next Reset.
func (q *Queue) Events() []Event {
	return q.events
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	return len(q.events)
}
