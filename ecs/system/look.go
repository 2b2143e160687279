package system

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/cluehunt/ecs"
	"github.com/milk9111/cluehunt/ecs/component"
	"github.com/milk9111/cluehunt/inputmode"
	"github.com/milk9111/cluehunt/look"
)

// LookSystem steps every Look integrator with the entity's input and writes
// pitch to the camera transform and yaw to the body transform.
type LookSystem struct {
	gate look.EnableSource
}

// NewLookSystem gates every step on gate. A nil gate never blocks.
func NewLookSystem(gate look.EnableSource) *LookSystem {
	return &LookSystem{gate: gate}
}

func (s *LookSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.InputComponent.Kind(), component.LookComponent.Kind(), func(e ecs.Entity, input *component.Input, lk *component.Look) {
		if lk.Integrator == nil {
			return
		}
		raw := mgl64.Vec2{input.LookX, input.LookY}
		if lk.InvertY {
			raw[1] = -raw[1]
		}
		lk.Output = lk.Integrator.StepFrom(raw, s.gate)
		applyOrientation(w, e, lk)
	})
}

func applyOrientation(w *ecs.World, e ecs.Entity, lk *component.Look) {
	body := e
	if lk.Body != 0 {
		body = ecs.Entity(lk.Body)
	}
	if t, ok := ecs.Get(w, body, component.TransformComponent.Kind()); ok {
		t.Rotation = lk.Output.Yaw
	}
	if lk.Camera == 0 {
		return
	}
	if t, ok := ecs.Get(w, ecs.Entity(lk.Camera), component.TransformComponent.Kind()); ok {
		t.Rotation = lk.Output.Pitch
	}
}

// LookControl lets debug scenarios steer the camera of a world.
type LookControl struct {
	World *ecs.World
	Modes *inputmode.Manager
}

func (c *LookControl) SetCameraLocked(locked bool) {
	c.Modes.SetCameraLocked(locked)
}

// ResetLook recenters every integrator and its transforms.
func (c *LookControl) ResetLook() {
	if c.World == nil {
		return
	}
	ecs.ForEach(c.World, component.LookComponent.Kind(), func(e ecs.Entity, lk *component.Look) {
		if lk.Integrator == nil {
			return
		}
		lk.Integrator.Reset()
		lk.Output = lk.Integrator.Orientation()
		applyOrientation(c.World, e, lk)
	})
}

func (c *LookControl) DescribeLook() string {
	if c.World == nil {
		return "no camera"
	}
	e, ok := c.World.First(component.LookComponent.Kind())
	if !ok {
		return "no camera"
	}
	lk, _ := ecs.Get(c.World, e, component.LookComponent.Kind())
	state := "free"
	if !c.Modes.IsCameraInputEnabled() {
		state = "held"
	}
	return fmt.Sprintf("pitch=%.1f yaw=%.1f %s", lk.Output.PitchDeg, lk.Output.YawDeg, state)
}
