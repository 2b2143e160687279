package component

import "github.com/milk9111/cluehunt/look"

// Look drives a camera entity's pitch and a body entity's yaw from the
// input on the same entity.
type Look struct {
	Integrator *look.Integrator
	Camera     uint64
	Body       uint64
	InvertY    bool

	// Last output, kept for overlays and reports.
	Output look.Orientation
}

var LookComponent = NewComponent[Look]()

type Camera struct {
	EyeHeight float64
}

var CameraComponent = NewComponent[Camera]()
