package core

import "sync"

// KeyCode mirrors GLFW key values, which is what the platform layer posts
// in key events.
type KeyCode uint16

const (
	KEY_SPACE  KeyCode = 32
	KEY_ESCAPE KeyCode = 256
	KEY_ENTER  KeyCode = 257
	KEY_TAB    KeyCode = 258
	KEY_RIGHT  KeyCode = 262
	KEY_LEFT   KeyCode = 263
	KEY_DOWN   KeyCode = 264
	KEY_UP     KeyCode = 265

	KEY_MAX_KEYS KeyCode = 512
)

type keyboardState struct {
	keys [KEY_MAX_KEYS]bool
}

type inputState struct {
	mu               sync.RWMutex
	initialized      bool
	keyboardCurrent  keyboardState
	keyboardPrevious keyboardState
}

var input = &inputState{}

// InputInitialize hooks the input state into the event system. Call after
// EventInitialize.
func InputInitialize() {
	input.mu.Lock()
	defer input.mu.Unlock()
	if input.initialized {
		return
	}
	EventRegister(EVENT_CODE_KEY_PRESSED, input, onKeyEvent)
	EventRegister(EVENT_CODE_KEY_RELEASED, input, onKeyEvent)
	input.initialized = true
	LogInfo("Input subsystem initialized.")
}

func InputShutdown() {
	input.mu.Lock()
	defer input.mu.Unlock()
	if !input.initialized {
		return
	}
	EventUnregister(EVENT_CODE_KEY_PRESSED, input)
	EventUnregister(EVENT_CODE_KEY_RELEASED, input)
	input.initialized = false
}

// InputUpdate rolls the current key state into the previous one. Call once
// per frame, after PumpMessages.
func InputUpdate() {
	input.mu.Lock()
	defer input.mu.Unlock()
	input.keyboardPrevious = input.keyboardCurrent
}

func onKeyEvent(code SystemEventCode, sender interface{}, listener interface{}, context EventContext) bool {
	key := KeyCode(context.Data.U16[0])
	if key >= KEY_MAX_KEYS {
		return false
	}
	input.mu.Lock()
	input.keyboardCurrent.keys[key] = code == EVENT_CODE_KEY_PRESSED
	input.mu.Unlock()
	return false
}

// IsKeyDown reports whether the key is held in the current frame.
func IsKeyDown(key KeyCode) bool {
	if key >= KEY_MAX_KEYS {
		return false
	}
	input.mu.RLock()
	defer input.mu.RUnlock()
	return input.keyboardCurrent.keys[key]
}

// WasKeyDown reports whether the key was held in the previous frame.
func WasKeyDown(key KeyCode) bool {
	if key >= KEY_MAX_KEYS {
		return false
	}
	input.mu.RLock()
	defer input.mu.RUnlock()
	return input.keyboardPrevious.keys[key]
}

// IsKeyPressed reports a press edge: down now, up the previous frame.
func IsKeyPressed(key KeyCode) bool {
	return IsKeyDown(key) && !WasKeyDown(key)
}
