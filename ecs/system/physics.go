package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/cluehunt/ecs"
	"github.com/milk9111/cluehunt/ecs/component"
)

const physicsStep = 1.0 / 60.0

const defaultWalkSpeed = 3.0

// PhysicsSystem walks bodies along their facing and steps the world's
// chipmunk space, which keeps them inside the room walls.
type PhysicsSystem struct {
	dt float64
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{dt: physicsStep}
}

func (p *PhysicsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, t *component.Transform, body *component.PhysicsBody) {
		pw.EnsureBody(e, t, body)
		var move mgl64.Vec3
		if input, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			move = walkVelocity(*t, input.MoveX, input.MoveZ, body.Speed)
		}
		pw.SetPlanarVelocity(body, move)
	})

	pw.Step(p.dt)

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, t *component.Transform, body *component.PhysicsBody) {
		pw.SyncTransform(body, t)
	})
}

// walkVelocity maps body-space intent to a world velocity on the floor
// plane. Diagonals are not faster than straight lines.
func walkVelocity(t component.Transform, strafe, forward, speed float64) mgl64.Vec3 {
	if speed <= 0 {
		speed = defaultWalkSpeed
	}
	dir := t.Forward().Mul(forward).Add(t.Right().Mul(strafe))
	dir[1] = 0
	l := dir.Len()
	if l < 1e-9 {
		return mgl64.Vec3{}
	}
	if l > 1 {
		dir = dir.Mul(1 / l)
	}
	return dir.Mul(speed)
}
