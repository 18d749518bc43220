package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration. The
// collider is an axis-aligned box whose top-left corner sits at the entity
// transform plus the offset.
type PhysicsBody struct {
	Body    *cp.Body
	Shape   *cp.Shape
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64
	Mass    float64
	Static  bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// Velocity is in pixels per second. The physics system pushes it into the
// body before stepping and reads it back afterwards.
type Velocity struct {
	X float64
	Y float64
}

var VelocityComponent = NewComponent[Velocity]()

// Acceleration is added on top of gravity, in pixels per second squared.
type Acceleration struct {
	X float64
	Y float64
}

var AccelerationComponent = NewComponent[Acceleration]()
