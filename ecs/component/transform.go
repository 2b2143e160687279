package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is a local pose. Parent is zero for root entities.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Parent   uint64
}

func NewTransform(x, y, z float64) Transform {
	return Transform{Position: mgl64.Vec3{x, y, z}, Rotation: mgl64.QuatIdent()}
}

// Forward is the local +Z axis after rotation.
func (t Transform) Forward() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{0, 0, 1})
}

// Right is the local +X axis after rotation. A positive yaw turns Forward
// towards Right.
func (t Transform) Right() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{1, 0, 0})
}

var TransformComponent = NewComponent[Transform]()
