package entity

import (
	"fmt"
	"log"

	"github.com/milk9111/cluehunt/ecs"
	"github.com/milk9111/cluehunt/ecs/component"
	"github.com/milk9111/cluehunt/look"
	"github.com/milk9111/cluehunt/prefabs"
)

// Player is the pair of entities a first-person rig is made of. The body
// yaws and collides, the camera is parented to it and pitches.
type Player struct {
	Body   ecs.Entity
	Camera ecs.Entity
}

func NewPlayer(w *ecs.World) (Player, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return Player{}, fmt.Errorf("player: load spec: %w", err)
	}
	return NewPlayerFromSpec(w, spec)
}

func NewPlayerFromSpec(w *ecs.World, spec *prefabs.PlayerSpec) (Player, error) {
	cfg := LookConfig(spec.Look)
	it, err := look.NewIntegrator(cfg)
	if err != nil {
		return Player{}, fmt.Errorf("player: look config: %w", err)
	}
	if cfg.Overshoots() {
		log.Printf("player: smoothing %.2f < 1 overshoots the raw input", cfg.SmoothingFactor)
	}

	body := ecs.CreateEntity(w)
	if err := ecs.Add(w, body, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return Player{}, fmt.Errorf("player: add player tag: %w", err)
	}

	transform := component.NewTransform(spec.Transform.X, spec.Transform.Y, spec.Transform.Z)
	if err := ecs.Add(w, body, component.TransformComponent.Kind(), &transform); err != nil {
		return Player{}, fmt.Errorf("player: add transform: %w", err)
	}
	if err := ecs.Add(w, body, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return Player{}, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, body, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Radius: spec.Body.Radius,
		Mass:   spec.Body.Mass,
		Speed:  spec.Body.Speed,
	}); err != nil {
		return Player{}, fmt.Errorf("player: add physics body: %w", err)
	}

	camera, err := NewEyeCamera(w, body, spec.EyeHeight)
	if err != nil {
		return Player{}, err
	}

	if err := ecs.Add(w, body, component.LookComponent.Kind(), &component.Look{
		Integrator: it,
		Camera:     uint64(camera),
		Body:       uint64(body),
		InvertY:    spec.Look.InvertY,
		Output:     it.Orientation(),
	}); err != nil {
		return Player{}, fmt.Errorf("player: add look: %w", err)
	}

	log.Printf("player: spawned body %s camera %s sensitivity=%.2f smoothing=%.2f", body, camera, cfg.Sensitivity, cfg.SmoothingFactor)
	return Player{Body: body, Camera: camera}, nil
}

// LookConfig fills omitted look tunables with look.DefaultConfig. Values
// that are present are kept as is, even when invalid.
func LookConfig(spec prefabs.LookSpec) look.Config {
	cfg := look.DefaultConfig()
	if spec.Sensitivity != nil {
		cfg.Sensitivity = *spec.Sensitivity
	}
	if spec.Smoothing != nil {
		cfg.SmoothingFactor = *spec.Smoothing
	}
	return cfg
}
