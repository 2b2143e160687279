// Package look turns raw pointer motion into a smoothed first-person
// orientation: pitch for the camera node and yaw for the body node.
package look

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/cluehunt/common"
)

const (
	MinPitch = -90.0
	MaxPitch = 90.0
)

var (
	RightAxis = mgl64.Vec3{1, 0, 0}
	UpAxis    = mgl64.Vec3{0, 1, 0}
)

// EnableSource reports whether camera rotation is currently permitted.
type EnableSource interface {
	IsCameraInputEnabled() bool
}

// Orientation is the output of one step.
type Orientation struct {
	// Degrees about RightAxis, already negated from the accumulated y.
	PitchDeg float64
	// Degrees about UpAxis.
	YawDeg float64

	Pitch mgl64.Quat
	Yaw   mgl64.Quat
}

func identityOrientation() Orientation {
	return Orientation{Pitch: mgl64.QuatIdent(), Yaw: mgl64.QuatIdent()}
}

func orientationFor(accumulated mgl64.Vec2) Orientation {
	pitch := -accumulated.Y()
	yaw := accumulated.X()
	return Orientation{
		PitchDeg: pitch,
		YawDeg:   yaw,
		Pitch:    mgl64.QuatRotate(mgl64.DegToRad(pitch), RightAxis),
		Yaw:      mgl64.QuatRotate(mgl64.DegToRad(yaw), UpAxis),
	}
}

// Combined is the camera's world rotation: body yaw followed by camera pitch.
func (o Orientation) Combined() mgl64.Quat {
	return o.Yaw.Mul(o.Pitch)
}

// Integrator is driven once per tick by a single caller. It is not safe for
// concurrent use.
type Integrator struct {
	cfg Config

	frameVelocity       mgl64.Vec2
	accumulatedVelocity mgl64.Vec2
	last                Orientation
}

func NewIntegrator(cfg Config) (*Integrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Integrator{cfg: cfg, last: identityOrientation()}, nil
}

// Configure swaps the tunables and keeps the current velocity state.
func (it *Integrator) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	it.cfg = cfg
	return nil
}

func (it *Integrator) Config() Config {
	return it.cfg
}

// Step integrates one raw delta. With enabled false nothing changes and the
// previous output is returned.
func (it *Integrator) Step(rawDelta mgl64.Vec2, enabled bool) Orientation {
	if !enabled {
		return it.last
	}

	scaled := rawDelta.Mul(it.cfg.Sensitivity)
	weight := it.cfg.BlendWeight()
	it.frameVelocity = mgl64.Vec2{
		common.Lerp(it.frameVelocity.X(), scaled.X(), weight),
		common.Lerp(it.frameVelocity.Y(), scaled.Y(), weight),
	}

	it.accumulatedVelocity = it.accumulatedVelocity.Add(it.frameVelocity)
	it.accumulatedVelocity[1] = common.Clamp(it.accumulatedVelocity[1], MinPitch, MaxPitch)

	it.last = orientationFor(it.accumulatedVelocity)
	return it.last
}

// StepFrom gates the step on src. A nil source counts as enabled.
func (it *Integrator) StepFrom(rawDelta mgl64.Vec2, src EnableSource) Orientation {
	enabled := src == nil || src.IsCameraInputEnabled()
	return it.Step(rawDelta, enabled)
}

func (it *Integrator) FrameVelocity() mgl64.Vec2 {
	return it.frameVelocity
}

func (it *Integrator) AccumulatedVelocity() mgl64.Vec2 {
	return it.accumulatedVelocity
}

// Orientation returns the output of the last enabled step.
func (it *Integrator) Orientation() Orientation {
	return it.last
}

// Reset returns the integrator to its creation state.
func (it *Integrator) Reset() {
	it.frameVelocity = mgl64.Vec2{}
	it.accumulatedVelocity = mgl64.Vec2{}
	it.last = identityOrientation()
}
