package core

import (
	"sync"

	"github.com/spaghettifunk/trekanten/engine/containers"
)

type EventContext struct {
	Data struct {
		U32 [4]uint32
		U16 [4]uint16
		F32 [4]float32
	}
}

// System internal event codes.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// Keyboard key pressed.
	/* Context usage:
	 * u16 key_code = data.data.u16[0];
	 */
	EVENT_CODE_KEY_PRESSED SystemEventCode = 0x02

	// Keyboard key released.
	/* Context usage:
	 * u16 key_code = data.data.u16[0];
	 */
	EVENT_CODE_KEY_RELEASED SystemEventCode = 0x03

	// Framebuffer resized/resolution changed from the OS.
	/* Context usage:
	 * u32 width = data.data.u32[0];
	 * u32 height = data.data.u32[1];
	 */
	EVENT_CODE_RESIZED SystemEventCode = 0x04

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

const maxQueuedEvents = 512

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

type eventCodeEntry struct {
	events []*registeredEvent
}

type queuedEvent struct {
	code    SystemEventCode
	sender  interface{}
	context EventContext
}

type eventSystemState struct {
	// Lookup table for event codes.
	registered [MAX_EVENT_CODE + 1]eventCodeEntry
	// Events posted from OS callbacks, drained once per frame.
	pending *containers.RingQueue[queuedEvent]
}

var onceEvent sync.Once
var isInitialized bool = false
var eventState *eventSystemState = nil

// Should return true if handled.
type FnOnEvent func(code SystemEventCode, sender interface{}, listenerInst interface{}, data EventContext) bool

func EventInitialize() bool {
	if isInitialized {
		return false
	}
	onceEvent.Do(func() {
		eventState = &eventSystemState{
			pending: containers.NewRingQueue[queuedEvent](maxQueuedEvents),
		}
	})
	isInitialized = true
	return true
}

func EventShutdown() error {
	for i := range eventState.registered {
		eventState.registered[i].events = nil
	}
	return nil
}

// Register to listen for when events are sent with the provided code. Events with duplicate
// listener/callback combos will not be registered again and will cause this to return false.
func EventRegister(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	if !isInitialized {
		return false
	}
	for _, e := range eventState.registered[code].events {
		if e.listener == listener {
			LogWarn("event listener already registered for code %d", code)
			return false
		}
	}
	event := &registeredEvent{
		listener: listener,
		callback: onEvent,
	}
	eventState.registered[code].events = append(eventState.registered[code].events, event)
	return true
}

// Unregister from listening for when events are sent with the provided code.
// Registrations are keyed by listener, so the callback supplied at
// registration time is dropped with it. If no matching registration is
// found, this function returns false.
func EventUnregister(code SystemEventCode, listener interface{}) bool {
	if !isInitialized {
		return false
	}
	events := eventState.registered[code].events
	for i, e := range events {
		if e.listener == listener {
			eventState.registered[code].events = append(events[:i], events[i+1:]...)
			return true
		}
	}
	return false
}

// Fires an event to listeners of the given code immediately. If an event handler returns
// true, the event is considered handled and is not passed on to any more listeners.
func EventFire(code SystemEventCode, sender interface{}, context EventContext) bool {
	if !isInitialized {
		return false
	}
	for _, e := range eventState.registered[code].events {
		if e.callback(code, sender, e.listener, context) {
			// Message has been handled, do not send to other listeners.
			return true
		}
	}
	return false
}

// EventPost queues an event for delivery on the next EventPump. Safe to call
// from windowing callbacks that must not re-enter the renderer.
func EventPost(code SystemEventCode, sender interface{}, context EventContext) bool {
	if !isInitialized {
		return false
	}
	if err := eventState.pending.Enqueue(queuedEvent{code: code, sender: sender, context: context}); err != nil {
		LogWarn("event queue full, dropping event code %d", code)
		return false
	}
	return true
}

// EventPump drains the queued events, firing each in post order.
func EventPump() {
	if !isInitialized {
		return
	}
	for !eventState.pending.IsEmpty() {
		qe, err := eventState.pending.Dequeue()
		if err != nil {
			return
		}
		EventFire(qe.code, qe.sender, qe.context)
	}
}
