package core

import "testing"

func TestInputKeyStateFollowsEvents(t *testing.T) {
	EventInitialize()
	InputInitialize()
	defer InputShutdown()

	var context EventContext
	context.Data.U16[0] = uint16(KEY_ESCAPE)

	EventFire(EVENT_CODE_KEY_PRESSED, nil, context)
	if !IsKeyDown(KEY_ESCAPE) {
		t.Error("escape should be down after a press event")
	}
	if !IsKeyPressed(KEY_ESCAPE) {
		t.Error("escape should register as a fresh press")
	}

	InputUpdate()
	if IsKeyPressed(KEY_ESCAPE) {
		t.Error("held key should not register as a fresh press")
	}
	if !WasKeyDown(KEY_ESCAPE) {
		t.Error("escape should have been down in the previous frame")
	}

	EventFire(EVENT_CODE_KEY_RELEASED, nil, context)
	if IsKeyDown(KEY_ESCAPE) {
		t.Error("escape should be up after a release event")
	}
}

func TestInputRejectsOutOfRangeKeys(t *testing.T) {
	if IsKeyDown(KEY_MAX_KEYS) {
		t.Error("out-of-range key must read as up")
	}
	if WasKeyDown(KEY_MAX_KEYS + 100) {
		t.Error("out-of-range key must read as up")
	}
}
