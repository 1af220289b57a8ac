package ecs

import (
	"sync"

	"github.com/phanxgames/swarm"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SessionEventType is the Donburi event type for swarm session events.
// Subscribe to it in ECS systems to react to shape, palette, explosion,
// gesture and tracking changes.
var SessionEventType = events.NewEventType[swarm.Event]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Session events are published to SessionEventType and delivered when the
// world's systems call ProcessEvents.
func NewDonburiStore(world donburi.World) swarm.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event swarm.Event) {
	SessionEventType.Publish(s.world, event)
}

// Queue is an EntityStore that buffers events from any goroutine until
// Flush publishes them into the world. Use it when a landmark feed runs on
// its own goroutine and the world is processed on the tick goroutine.
type Queue struct {
	mu      sync.Mutex
	world   donburi.World
	pending []swarm.Event
	spare   []swarm.Event
}

// NewQueue creates a Queue for world.
func NewQueue(world donburi.World) *Queue {
	return &Queue{world: world}
}

// EmitEvent buffers event. Safe for concurrent use.
func (q *Queue) EmitEvent(event swarm.Event) {
	q.mu.Lock()
	q.pending = append(q.pending, event)
	q.mu.Unlock()
}

// Flush publishes buffered events in arrival order and delivers them to
// SessionEventType subscribers. Call it from the goroutine that owns the
// world. Returns the number of events delivered.
func (q *Queue) Flush() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = q.spare[:0]
	q.mu.Unlock()

	for _, e := range batch {
		SessionEventType.Publish(q.world, e)
	}
	SessionEventType.ProcessEvents(q.world)

	clear(batch)
	q.mu.Lock()
	q.spare = batch[:0]
	q.mu.Unlock()
	return len(batch)
}
