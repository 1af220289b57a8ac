// Package ecs provides ECS adapters for swarm session events.
//
// The primary adapter is [NewDonburiStore], which bridges session events
// (shape and palette changes, explosions, gesture changes, tracking loss)
// into a [Donburi] world as typed events. Subscribe to [SessionEventType]
// in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	sess.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
