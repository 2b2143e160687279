package look

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const eps = 1e-9

func mustIntegrator(t *testing.T, sensitivity, smoothing float64) *Integrator {
	t.Helper()
	it, err := NewIntegrator(Config{Sensitivity: sensitivity, SmoothingFactor: smoothing})
	if err != nil {
		t.Fatalf("NewIntegrator: %v", err)
	}
	return it
}

type gate bool

func (g gate) IsCameraInputEnabled() bool { return bool(g) }

func TestNewIntegratorRejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want error
	}{
		{"zero_sensitivity", Config{Sensitivity: 0, SmoothingFactor: 1}, ErrInvalidSensitivity},
		{"negative_sensitivity", Config{Sensitivity: -1, SmoothingFactor: 1}, ErrInvalidSensitivity},
		{"nan_sensitivity", Config{Sensitivity: math.NaN(), SmoothingFactor: 1}, ErrInvalidSensitivity},
		{"zero_smoothing", Config{Sensitivity: 1, SmoothingFactor: 0}, ErrInvalidSmoothing},
		{"negative_smoothing", Config{Sensitivity: 1, SmoothingFactor: -2}, ErrInvalidSmoothing},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			it, err := NewIntegrator(c.cfg)
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
			if it != nil {
				t.Fatalf("expected nil integrator on error")
			}
		})
	}
}

func TestStepFirstScenario(t *testing.T) {
	it := mustIntegrator(t, 2, 1.5)

	out := it.Step(mgl64.Vec2{10, 0}, true)

	want := 20.0 * 2.0 / 3.0
	if math.Abs(it.FrameVelocity().X()-want) > eps || it.FrameVelocity().Y() != 0 {
		t.Fatalf("frame velocity = %v, want (%v, 0)", it.FrameVelocity(), want)
	}
	if math.Abs(it.AccumulatedVelocity().X()-want) > eps || it.AccumulatedVelocity().Y() != 0 {
		t.Fatalf("accumulated = %v, want (%v, 0)", it.AccumulatedVelocity(), want)
	}
	if math.Abs(out.YawDeg-want) > eps {
		t.Fatalf("yaw = %v, want %v", out.YawDeg, want)
	}
	if out.PitchDeg != 0 {
		t.Fatalf("pitch = %v, want 0", out.PitchDeg)
	}

	expected := mgl64.QuatRotate(mgl64.DegToRad(want), UpAxis)
	if !quatNear(out.Yaw, expected) {
		t.Fatalf("yaw quat = %v, want %v", out.Yaw, expected)
	}
	if !quatNear(out.Pitch, mgl64.QuatIdent()) {
		t.Fatalf("pitch quat = %v, want identity", out.Pitch)
	}
}

func TestStepClampsPitch(t *testing.T) {
	cases := []struct {
		name      string
		delta     mgl64.Vec2
		wantAccY  float64
		wantPitch float64
	}{
		{"up", mgl64.Vec2{0, 1000}, 90, -90},
		{"down", mgl64.Vec2{0, -1000}, -90, 90},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			it := mustIntegrator(t, 1, 1)
			var out Orientation
			for i := 0; i < 20; i++ {
				out = it.Step(c.delta, true)
			}
			if it.AccumulatedVelocity().Y() != c.wantAccY {
				t.Fatalf("accumulated.y = %v, want %v", it.AccumulatedVelocity().Y(), c.wantAccY)
			}
			if out.PitchDeg != c.wantPitch {
				t.Fatalf("pitch = %v, want %v", out.PitchDeg, c.wantPitch)
			}
			expected := mgl64.QuatRotate(mgl64.DegToRad(c.wantPitch), RightAxis)
			if !quatNear(out.Pitch, expected) {
				t.Fatalf("pitch quat = %v, want %v", out.Pitch, expected)
			}
		})
	}
}

func TestPitchStaysInRange(t *testing.T) {
	configs := []Config{
		{Sensitivity: 1, SmoothingFactor: 1},
		{Sensitivity: 5, SmoothingFactor: 0.5},
		{Sensitivity: 0.3, SmoothingFactor: 8},
	}
	deltas := []mgl64.Vec2{{3, 40}, {-7, 120}, {0, -300}, {12, 5}, {-1, -90}, {0, 0}, {4, 250}}

	for _, cfg := range configs {
		it, err := NewIntegrator(cfg)
		if err != nil {
			t.Fatalf("NewIntegrator: %v", err)
		}
		for i := 0; i < 200; i++ {
			it.Step(deltas[i%len(deltas)], true)
			y := it.AccumulatedVelocity().Y()
			if y < MinPitch || y > MaxPitch {
				t.Fatalf("cfg %+v step %d: accumulated.y = %v out of range", cfg, i, y)
			}
		}
	}
}

func TestDisabledStepsNeverChangeOutput(t *testing.T) {
	it := mustIntegrator(t, 2, 1.5)

	initial := it.Orientation()
	for i := 0; i < 50; i++ {
		out := it.Step(mgl64.Vec2{float64(i), float64(-i)}, false)
		if out != initial {
			t.Fatalf("step %d: output changed while disabled: %+v", i, out)
		}
	}
	if it.FrameVelocity() != (mgl64.Vec2{}) || it.AccumulatedVelocity() != (mgl64.Vec2{}) {
		t.Fatalf("state changed while disabled")
	}
}

func TestDisabledIsIdempotent(t *testing.T) {
	it := mustIntegrator(t, 1, 2)
	it.Step(mgl64.Vec2{4, 2}, true)
	it.Step(mgl64.Vec2{1, -3}, true)

	once := it.Step(mgl64.Vec2{100, 100}, false)
	frame := it.FrameVelocity()
	acc := it.AccumulatedVelocity()
	for i := 0; i < 10; i++ {
		if out := it.Step(mgl64.Vec2{-50, 9}, false); out != once {
			t.Fatalf("repeated disabled step %d = %+v, want %+v", i, out, once)
		}
	}
	if it.FrameVelocity() != frame || it.AccumulatedVelocity() != acc {
		t.Fatalf("disabled steps mutated state")
	}
}

func TestZeroInputFixedPoint(t *testing.T) {
	it := mustIntegrator(t, 4, 3)
	for i := 0; i < 100; i++ {
		it.Step(mgl64.Vec2{}, true)
		if it.FrameVelocity() != (mgl64.Vec2{}) || it.AccumulatedVelocity() != (mgl64.Vec2{}) {
			t.Fatalf("step %d: state drifted from zero: frame=%v acc=%v", i, it.FrameVelocity(), it.AccumulatedVelocity())
		}
	}
}

func TestYawMonotonicUnderConstantInput(t *testing.T) {
	it := mustIntegrator(t, 0.5, 4)

	prev := it.AccumulatedVelocity().X()
	for i := 0; i < 100; i++ {
		it.Step(mgl64.Vec2{2, 0}, true)
		x := it.AccumulatedVelocity().X()
		if x < prev {
			t.Fatalf("step %d: yaw decreased from %v to %v", i, prev, x)
		}
		if it.FrameVelocity().X() > 0 && !(x > prev) {
			t.Fatalf("step %d: yaw did not strictly increase with positive frame velocity", i)
		}
		prev = x
	}
	// Free yaw rotation: never clamped.
	if prev <= MaxPitch {
		t.Fatalf("expected yaw past 90 after 100 steps, got %v", prev)
	}
}

func TestSmoothingBelowOneOvershoots(t *testing.T) {
	it := mustIntegrator(t, 1, 0.5)
	if !it.Config().Overshoots() {
		t.Fatalf("expected Overshoots for smoothing 0.5")
	}

	it.Step(mgl64.Vec2{10, 0}, true)
	// weight 2: lerp(0, 10, 2) = 20
	if it.FrameVelocity().X() != 20 {
		t.Fatalf("frame velocity = %v, want 20", it.FrameVelocity().X())
	}
}

func TestStepFromGate(t *testing.T) {
	it := mustIntegrator(t, 1, 1)

	it.StepFrom(mgl64.Vec2{5, 0}, gate(false))
	if it.AccumulatedVelocity() != (mgl64.Vec2{}) {
		t.Fatalf("closed gate should skip integration")
	}
	it.StepFrom(mgl64.Vec2{5, 0}, gate(true))
	if it.AccumulatedVelocity().X() != 5 {
		t.Fatalf("open gate: accumulated.x = %v, want 5", it.AccumulatedVelocity().X())
	}
	it.StepFrom(mgl64.Vec2{5, 0}, nil)
	if it.AccumulatedVelocity().X() != 10 {
		t.Fatalf("nil gate: accumulated.x = %v, want 10", it.AccumulatedVelocity().X())
	}
}

func TestConfigureKeepsState(t *testing.T) {
	it := mustIntegrator(t, 1, 1)
	it.Step(mgl64.Vec2{3, 4}, true)

	if err := it.Configure(Config{Sensitivity: 2, SmoothingFactor: 2}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if it.AccumulatedVelocity() != (mgl64.Vec2{3, 4}) {
		t.Fatalf("Configure reset state: %v", it.AccumulatedVelocity())
	}
	if err := it.Configure(Config{Sensitivity: 1, SmoothingFactor: 0}); !errors.Is(err, ErrInvalidSmoothing) {
		t.Fatalf("expected ErrInvalidSmoothing, got %v", err)
	}
	if it.Config().SmoothingFactor != 2 {
		t.Fatalf("invalid Configure should keep previous config")
	}

	it.Reset()
	if it.AccumulatedVelocity() != (mgl64.Vec2{}) || it.FrameVelocity() != (mgl64.Vec2{}) {
		t.Fatalf("Reset did not zero state")
	}
	if it.Orientation() != identityOrientation() {
		t.Fatalf("Reset did not restore identity output")
	}
}

func TestCombinedAppliesYawThenPitch(t *testing.T) {
	it := mustIntegrator(t, 1, 1)
	out := it.Step(mgl64.Vec2{90, 0}, true)

	forward := out.Combined().Rotate(mgl64.Vec3{0, 0, 1})
	if want := (mgl64.Vec3{1, 0, 0}); !vecNear(forward, want) {
		t.Fatalf("forward after 90 yaw = %v, want %v", forward, want)
	}
}

// mgl64's ApproxEqual helpers compare against zero with eps squared, which
// is tighter than the rounding left by a rotation.
func vecNear(a, b mgl64.Vec3) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func quatNear(a, b mgl64.Quat) bool {
	return math.Abs(a.W-b.W) <= eps && vecNear(a.V, b.V)
}
