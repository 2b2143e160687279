package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data. The body lives in the XZ
// plane: cp X is world X and cp Y is world Z.
type PhysicsBody struct {
	Body   *cp.Body
	Shape  *cp.Shape
	Radius float64
	Mass   float64
	// Walk speed in world units per second.
	Speed float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
