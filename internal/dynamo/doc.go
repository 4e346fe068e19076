// Package dynamo holds the domain error vocabulary and run-summary types
// shared by internal/simulator, internal/pm, internal/store and
// cmd/nbodysim, adapted from the teacher project's package of the same
// name (whose flat []float64 State/Control/System interfaces do not survive
// the move to the generic body.Body[T]/vec3.Vec3[T] representation used
// here; see DESIGN.md for the disposition of that code).
package dynamo
