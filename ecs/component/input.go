package component

// Input stores per-frame input state for an entity.
type Input struct {
	// Raw pointer motion this frame, y positive when moving up.
	LookX float64
	LookY float64

	// Walk intent in body space: +X strafes right, +Z walks forward.
	MoveX float64
	MoveZ float64
}

var InputComponent = NewComponent[Input]()
