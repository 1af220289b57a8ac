// Package viewer renders a swarm session with Ebitengine.
//
// [Run] opens a window and advances the session one tick per Ebitengine
// update. Particles are projected through a perspective [Camera] that
// orbits the origin, and drawn as additive soft sprites in a single
// DrawTriangles32 call. The scene sway from each frame rotates the cloud.
//
// Controls:
//
//	1-8        select heart, flower, saturn, firework, spiral, sphere, star, butterfly
//	C          cycle palette
//	Space      explode
//	right-drag orbit the camera
//	wheel      zoom
//
// With RunConfig.MouseHand the left button emulates a tracked hand at the
// cursor: plain is open, Shift fist, Ctrl pinch, Alt peace.
package viewer
