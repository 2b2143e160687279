package system

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/cluehunt/ecs"
	"github.com/milk9111/cluehunt/inputmode"
)

// CursorSystem captures the cursor during gameplay and frees it while a UI
// owns focus.
type CursorSystem struct {
	modes   *inputmode.Manager
	capture bool
	set     func(ebiten.CursorModeType)

	applied bool
	current ebiten.CursorModeType

	// OnModeChange runs after the cursor mode actually changes.
	OnModeChange func(ebiten.CursorModeType)
}

// NewCursorSystem never captures when capture is false.
func NewCursorSystem(modes *inputmode.Manager, capture bool) *CursorSystem {
	return NewCursorSystemWithSetter(modes, capture, ebiten.SetCursorMode)
}

func NewCursorSystemWithSetter(modes *inputmode.Manager, capture bool, set func(ebiten.CursorModeType)) *CursorSystem {
	return &CursorSystem{modes: modes, capture: capture, set: set}
}

func (c *CursorSystem) Update(w *ecs.World) {
	want := ebiten.CursorModeVisible
	if c.capture && c.modes.Mode() == inputmode.Gameplay {
		want = ebiten.CursorModeCaptured
	}
	if c.applied && want == c.current {
		return
	}

	if c.set != nil {
		c.set(want)
	}
	c.applied = true
	c.current = want
	log.Printf("CursorSystem: cursor mode %s", cursorModeName(want))
	if c.OnModeChange != nil {
		c.OnModeChange(want)
	}
}

func cursorModeName(m ebiten.CursorModeType) string {
	switch m {
	case ebiten.CursorModeCaptured:
		return "captured"
	case ebiten.CursorModeHidden:
		return "hidden"
	default:
		return "visible"
	}
}
