package entity

import (
	"fmt"

	"github.com/milk9111/cluehunt/ecs"
	"github.com/milk9111/cluehunt/ecs/component"
)

const defaultEyeHeight = 1.6

// NewEyeCamera creates a camera parented to body at eyeHeight.
func NewEyeCamera(w *ecs.World, body ecs.Entity, eyeHeight float64) (ecs.Entity, error) {
	if eyeHeight == 0 {
		eyeHeight = defaultEyeHeight
	}

	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{EyeHeight: eyeHeight}); err != nil {
		return 0, fmt.Errorf("camera: add camera: %w", err)
	}

	transform := component.NewTransform(0, eyeHeight, 0)
	transform.Parent = uint64(body)
	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), &transform); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}
	return camera, nil
}
