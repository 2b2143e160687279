package look

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSensitivity = errors.New("look: sensitivity must be positive")
	ErrInvalidSmoothing   = errors.New("look: smoothing factor must be positive")
)

// Config holds the tunables of an Integrator.
type Config struct {
	Sensitivity     float64 `yaml:"sensitivity"`
	SmoothingFactor float64 `yaml:"smoothing"`
}

func DefaultConfig() Config {
	return Config{Sensitivity: 3, SmoothingFactor: 1.5}
}

func (c Config) Validate() error {
	if !(c.Sensitivity > 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidSensitivity, c.Sensitivity)
	}
	if !(c.SmoothingFactor > 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidSmoothing, c.SmoothingFactor)
	}
	return nil
}

// Overshoots reports whether the blend weight 1/SmoothingFactor exceeds 1,
// in which case the smoothed velocity overshoots the scaled input.
func (c Config) Overshoots() bool {
	return c.SmoothingFactor > 0 && c.SmoothingFactor < 1
}

// BlendWeight is the interpolation factor applied each step.
func (c Config) BlendWeight() float64 {
	return 1 / c.SmoothingFactor
}
