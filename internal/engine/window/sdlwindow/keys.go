package sdlwindow

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/kerzenlicht/viewer/internal/engine/input"
)

var keyMap = map[sdl.Keycode]input.Key{
	sdl.K_a: input.KeyA,
	sdl.K_b: input.KeyB,
	sdl.K_c: input.KeyC,
	sdl.K_d: input.KeyD,
	sdl.K_e: input.KeyE,
	sdl.K_f: input.KeyF,
	sdl.K_g: input.KeyG,
	sdl.K_h: input.KeyH,
	sdl.K_i: input.KeyI,
	sdl.K_j: input.KeyJ,
	sdl.K_k: input.KeyK,
	sdl.K_l: input.KeyL,
	sdl.K_m: input.KeyM,
	sdl.K_n: input.KeyN,
	sdl.K_o: input.KeyO,
	sdl.K_p: input.KeyP,
	sdl.K_q: input.KeyQ,
	sdl.K_r: input.KeyR,
	sdl.K_s: input.KeyS,
	sdl.K_t: input.KeyT,
	sdl.K_u: input.KeyU,
	sdl.K_v: input.KeyV,
	sdl.K_w: input.KeyW,
	sdl.K_x: input.KeyX,
	sdl.K_y: input.KeyY,
	sdl.K_z: input.KeyZ,

	sdl.K_0: input.Key0,
	sdl.K_1: input.Key1,
	sdl.K_2: input.Key2,
	sdl.K_3: input.Key3,
	sdl.K_4: input.Key4,
	sdl.K_5: input.Key5,
	sdl.K_6: input.Key6,
	sdl.K_7: input.Key7,
	sdl.K_8: input.Key8,
	sdl.K_9: input.Key9,

	sdl.K_SPACE:     input.KeySpace,
	sdl.K_ESCAPE:    input.KeyEscape,
	sdl.K_RETURN:    input.KeyEnter,
	sdl.K_TAB:       input.KeyTab,
	sdl.K_BACKSPACE: input.KeyBackspace,
	sdl.K_LSHIFT:    input.KeyLeftShift,
	sdl.K_RSHIFT:    input.KeyRightShift,
	sdl.K_LCTRL:     input.KeyLeftControl,
	sdl.K_RCTRL:     input.KeyRightControl,
	sdl.K_LALT:      input.KeyLeftAlt,
	sdl.K_RALT:      input.KeyRightAlt,
	sdl.K_UP:        input.KeyUp,
	sdl.K_DOWN:      input.KeyDown,
	sdl.K_LEFT:      input.KeyLeft,
	sdl.K_RIGHT:     input.KeyRight,

	sdl.K_F1:  input.KeyF1,
	sdl.K_F2:  input.KeyF2,
	sdl.K_F3:  input.KeyF3,
	sdl.K_F4:  input.KeyF4,
	sdl.K_F5:  input.KeyF5,
	sdl.K_F6:  input.KeyF6,
	sdl.K_F7:  input.KeyF7,
	sdl.K_F8:  input.KeyF8,
	sdl.K_F9:  input.KeyF9,
	sdl.K_F10: input.KeyF10,
	sdl.K_F11: input.KeyF11,
	sdl.K_F12: input.KeyF12,
}

func translateKey(k sdl.Keycode) input.Key {
	if key, ok := keyMap[k]; ok {
		return key
	}
	return input.KeyUnknown
}

func translateButton(b uint8) input.Button {
	switch b {
	case sdl.BUTTON_LEFT:
		return input.ButtonLeft
	case sdl.BUTTON_RIGHT:
		return input.ButtonRight
	case sdl.BUTTON_MIDDLE:
		return input.ButtonMiddle
	default:
		return input.ButtonUnknown
	}
}
