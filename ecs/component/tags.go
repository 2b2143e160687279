package component

// PlayerTag marks the body entity of the first-person rig.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// CameraTag marks the eye entity that receives pitch.
type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()
