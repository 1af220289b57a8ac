package swarm

import "sync"

// EventType identifies a kind of session event.
type EventType uint8

const (
	EventShapeChanged   EventType = iota // a shape selection replaced the target cloud
	EventPaletteChanged                  // the active palette changed
	EventExplosion                       // an explosion was triggered
	EventGestureChanged                  // the gesture label or detecting flag changed since the last tick
	EventTrackingLost                    // the landmark source failed; tracking is disabled
)

var eventNames = [...]string{"shape_changed", "palette_changed", "explosion", "gesture_changed", "tracking_lost"}

// String returns the event name.
func (e EventType) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}
	return "unknown"
}

// Event carries a session event. Fields not relevant to Type are zero.
type Event struct {
	Type      EventType
	Tick      uint64
	Time      float64
	Shape     Shape
	Palette   Palette
	Gesture   GestureSample
	Explosion float64
	Err       error
}

// EntityStore is the interface for optional ECS integration.
// When set on a Session, every event is forwarded to the store.
type EntityStore interface {
	EmitEvent(event Event)
}

type eventHandler struct {
	id uint32
	fn func(Event)
}

type handlerRegistry struct {
	handlers []eventHandler
	nextID   uint32
}

// CallbackHandle allows removing a registered session callback.
type CallbackHandle struct {
	id   uint32
	reg  *handlerRegistry
	lock sync.Locker
}

// Remove unregisters this callback so it no longer fires. It waits for any
// tick or event delivery in progress.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	if h.lock != nil {
		h.lock.Lock()
		defer h.lock.Unlock()
	}
	s := h.reg.handlers
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			h.reg.handlers = s[:len(s)-1]
			return
		}
	}
}

func (r *handlerRegistry) add(fn func(Event)) CallbackHandle {
	r.nextID++
	r.handlers = append(r.handlers, eventHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r}
}

func (r *handlerRegistry) emit(e Event) {
	for _, h := range r.handlers {
		h.fn(e)
	}
}
