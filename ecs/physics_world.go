package ecs

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/cluehunt/ecs/component"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypePlayer
)

// PhysicsWorld owns the Chipmunk space. The simulation is flat: the space's
// X axis is world X and its Y axis is world Z, with no gravity.
type PhysicsWorld struct {
	space         *cp.Space
	roomHalfWidth float64
}

// NewPhysicsWorld creates a space enclosed by a square room of the given
// half width. A non-positive half width leaves the space open.
func NewPhysicsWorld(roomHalfWidth float64) *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})

	pw := &PhysicsWorld{
		space:         space,
		roomHalfWidth: roomHalfWidth,
	}
	pw.buildRoom()
	return pw
}

// EnsureBody creates a body for an entity if needed.
func (pw *PhysicsWorld) EnsureBody(e Entity, t *component.Transform, body *component.PhysicsBody) *component.PhysicsBody {
	if pw == nil || pw.space == nil || t == nil || body == nil {
		return body
	}
	if body.Body != nil {
		return body
	}

	mass := body.Mass
	if mass <= 0 {
		mass = 1
	}
	radius := body.Radius
	if radius <= 0 {
		radius = 0.5
	}

	// Infinite moment: contacts never spin the body, facing comes from the
	// look yaw on the Transform.
	cpBody := cp.NewBody(mass, math.Inf(1))
	cpBody.SetPosition(cp.Vector{X: t.Position.X(), Y: t.Position.Z()})
	shape := cp.NewCircle(cpBody, radius, cp.Vector{})
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypePlayer)

	pw.space.AddBody(cpBody)
	pw.space.AddShape(shape)
	log.Printf("PhysicsWorld: EnsureBody entity %s radius=%.2f mass=%.1f", e, radius, mass)

	body.Body = cpBody
	body.Shape = shape
	body.Radius = radius
	body.Mass = mass
	return body
}

// SetPlanarVelocity drives a body along the XZ components of v.
func (pw *PhysicsWorld) SetPlanarVelocity(body *component.PhysicsBody, v mgl64.Vec3) {
	if body == nil || body.Body == nil {
		return
	}
	body.Body.SetVelocity(v.X(), v.Z())
}

// SyncTransform copies a body's planar position back into t.
func (pw *PhysicsWorld) SyncTransform(body *component.PhysicsBody, t *component.Transform) {
	if body == nil || body.Body == nil || t == nil {
		return
	}
	p := body.Body.Position()
	t.Position = mgl64.Vec3{p.X, t.Position.Y(), p.Y}
}

// Step advances the physics simulation.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil {
		return
	}
	pw.space.Step(dt)
}

func (pw *PhysicsWorld) buildRoom() {
	h := pw.roomHalfWidth
	if h <= 0 {
		return
	}
	corners := []cp.Vector{{X: -h, Y: -h}, {X: h, Y: -h}, {X: h, Y: h}, {X: -h, Y: h}}
	for i := range corners {
		a := corners[i]
		b := corners[(i+1)%len(corners)]
		shape := cp.NewSegment(pw.space.StaticBody, a, b, 0.1)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		pw.space.AddShape(shape)
	}
}
