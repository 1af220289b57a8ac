// Package swarm is a particle choreography engine: thousands of point
// particles spring toward named parametric shapes, drift through a moving
// color palette and react to live hand gestures.
//
// # Quick start
//
// A [Session] owns the simulation. Drive it with a [Scheduler] (headless) or
// the Ebitengine viewer in swarm/viewer, and read the particle buffers back
// with [Session.Frame] after each tick:
//
//	sess, err := swarm.NewSession(swarm.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	sched := swarm.NewScheduler(sess.Config().TickInterval(), sess.Tick, nil)
//	go sched.Run(ctx)
//
//	var f swarm.Frame
//	sess.Frame(&f) // f.Positions, f.Colors, f.Sizes
//
// # Shapes and palettes
//
// [GenerateShape] samples one of eight clouds (heart, flower, saturn,
// firework, spiral, sphere, star, butterfly). [Session.SetShape] swaps the
// target cloud index-for-index and adds a short explosion so the particles
// fly to their new places. [ColorAt] maps a particle index and time onto a
// palette band that drifts across the population.
//
// # Gestures
//
// Hand trackers deliver 21 normalized landmarks per camera frame through
// [Session.PushLandmarks] or a [LandmarkSource] attached with
// [Session.AttachFeed]. [Classify] turns a hand into open, fist, pinch or
// peace plus a spread factor that scales the cloud; the palm position pulls
// the cloud across the screen. Without a hand the session keeps running on
// the last spread with no offset.
//
// # Simulation
//
// Each [Session.Tick] runs the [Integrator]: explosion impulses, a small
// sinusoidal drift, a spring toward the target, damping, then position,
// size and color updates. The step is fixed (1/60 s by default) and does
// not follow wall-clock frame time.
//
// Events (shape, palette, explosion, gesture, tracking lost) reach
// callbacks registered with [Session.OnEvent] and, optionally, a Donburi
// world through swarm/ecs.
package swarm
