package component

// Camera is an orthographic view centred on the entity's transform. Scale is
// world units per screen pixel, so larger values zoom out.
type Camera struct {
	Scale    float64
	MinScale float64
	Speed    float64
	ZoomStep float64
}

var CameraComponent = NewComponent[Camera]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()
