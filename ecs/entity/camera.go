package entity

import (
	"fmt"

	"github.com/milk9111/atlasmap/ecs"
	"github.com/milk9111/atlasmap/ecs/component"
)

// NewCamera spawns the 2D camera centred on the world origin.
func NewCamera(w *ecs.World, scale float64) (ecs.Entity, error) {
	if scale <= 0 {
		scale = 1
	}

	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraTagComponent, &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}
	if err := ecs.Add(w, camera, component.TransformComponent, &component.Transform{ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}
	if err := ecs.Add(w, camera, component.CameraComponent, &component.Camera{Scale: scale}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	return camera, nil
}
