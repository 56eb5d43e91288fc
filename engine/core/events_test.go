package core

import "testing"

func TestEventRegisterAndFire(t *testing.T) {
	EventInitialize()
	defer EventShutdown()

	got := uint16(0)
	listener := &struct{}{}
	cb := func(code SystemEventCode, sender interface{}, listenerInst interface{}, data EventContext) bool {
		got = data.Data.U16[0]
		return true
	}
	if !EventRegister(EVENT_CODE_KEY_PRESSED, listener, cb) {
		t.Fatal("register failed")
	}
	if EventRegister(EVENT_CODE_KEY_PRESSED, listener, cb) {
		t.Fatal("duplicate register should fail")
	}

	ctx := EventContext{}
	ctx.Data.U16[0] = 42
	if !EventFire(EVENT_CODE_KEY_PRESSED, nil, ctx) {
		t.Fatal("fire should report handled")
	}
	if got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}

	if !EventUnregister(EVENT_CODE_KEY_PRESSED, listener) {
		t.Fatal("unregister failed")
	}
	if EventFire(EVENT_CODE_KEY_PRESSED, nil, ctx) {
		t.Fatal("fire after unregister should not be handled")
	}
}

func TestEventUnregisterIsListenerKeyed(t *testing.T) {
	EventInitialize()
	defer EventShutdown()

	first := &struct{ name string }{"first"}
	second := &struct{ name string }{"second"}
	fired := 0
	cb := func(code SystemEventCode, sender interface{}, listenerInst interface{}, data EventContext) bool {
		fired++
		return false
	}
	EventRegister(EVENT_CODE_RESIZED, first, cb)
	EventRegister(EVENT_CODE_RESIZED, second, cb)

	if EventUnregister(EVENT_CODE_RESIZED, &struct{}{}) {
		t.Fatal("unknown listener must not unregister anything")
	}
	if !EventUnregister(EVENT_CODE_RESIZED, first) {
		t.Fatal("unregister by listener failed")
	}

	EventFire(EVENT_CODE_RESIZED, nil, EventContext{})
	if fired != 1 {
		t.Fatalf("only the remaining listener should fire, got %d calls", fired)
	}
	EventUnregister(EVENT_CODE_RESIZED, second)
}

func TestEventPostPump(t *testing.T) {
	EventInitialize()
	defer EventShutdown()

	var order []uint32
	listener := &struct{}{}
	EventRegister(EVENT_CODE_RESIZED, listener, func(code SystemEventCode, sender interface{}, listenerInst interface{}, data EventContext) bool {
		order = append(order, data.Data.U32[0])
		return true
	})

	for i := uint32(1); i <= 3; i++ {
		ctx := EventContext{}
		ctx.Data.U32[0] = i
		if !EventPost(EVENT_CODE_RESIZED, nil, ctx) {
			t.Fatalf("post %d failed", i)
		}
	}
	if len(order) != 0 {
		t.Fatal("posted events must not fire before pump")
	}
	EventPump()
	if len(order) != 3 || order[0] != 1 || order[2] != 3 {
		t.Fatalf("unexpected delivery order: %v", order)
	}
}
