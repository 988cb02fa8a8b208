package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/atlasmap/ecs"
	"github.com/milk9111/atlasmap/ecs/component"
)

const (
	defaultCameraSpeed    = 500.0
	defaultCameraZoomStep = 0.1
	defaultCameraMinScale = 0.5
)

// KeyInput reports whether a key is held this frame.
type KeyInput interface {
	Pressed(key ebiten.Key) bool
}

type keyboard struct{}

func (keyboard) Pressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

// CameraSystem pans the camera with WASD or the arrow keys and zooms with Z
// (out) and X (in).
type CameraSystem struct {
	camEntity ecs.Entity
	input     KeyInput
	dt        float64
}

func NewCameraSystem() *CameraSystem {
	return NewCameraSystemWithInput(keyboard{}, 1/float64(ebiten.TPS()))
}

// NewCameraSystemWithInput uses input for key state and advances dt seconds
// per update.
func NewCameraSystemWithInput(input KeyInput, dt float64) *CameraSystem {
	return &CameraSystem{input: input, dt: dt}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if !ecs.IsAlive(w, cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent)
	if !ok {
		return
	}
	transform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent)
	if !ok {
		return
	}

	dx, dy := 0.0, 0.0
	if cs.anyPressed(ebiten.KeyA, ebiten.KeyLeft) {
		dx--
	}
	if cs.anyPressed(ebiten.KeyD, ebiten.KeyRight) {
		dx++
	}
	if cs.anyPressed(ebiten.KeyW, ebiten.KeyUp) {
		dy--
	}
	if cs.anyPressed(ebiten.KeyS, ebiten.KeyDown) {
		dy++
	}

	step := cam.ZoomStep
	if step == 0 {
		step = defaultCameraZoomStep
	}
	if cs.input.Pressed(ebiten.KeyZ) {
		cam.Scale += step
	}
	if cs.input.Pressed(ebiten.KeyX) {
		cam.Scale -= step
	}
	minScale := cam.MinScale
	if minScale == 0 {
		minScale = defaultCameraMinScale
	}
	if cam.Scale < minScale {
		cam.Scale = minScale
	}

	speed := cam.Speed
	if speed == 0 {
		speed = defaultCameraSpeed
	}
	transform.X += dx * speed * cs.dt
	transform.Y += dy * speed * cs.dt
}

func (cs *CameraSystem) anyPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if cs.input.Pressed(k) {
			return true
		}
	}
	return false
}
