package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/cluehunt/ecs"
	"github.com/milk9111/cluehunt/ecs/component"
)

// CursorSource reports the cursor position in screen pixels.
type CursorSource func() (x, y int)

// KeySource reports whether a key is held.
type KeySource func(ebiten.Key) bool

type InputSystem struct {
	cursor CursorSource
	keys   KeySource

	// Walking is ignored while Enabled returns false.
	Enabled func() bool

	primed       bool
	lastX, lastY int
}

func NewInputSystem() *InputSystem {
	return NewInputSystemWithSource(ebiten.CursorPosition, ebiten.IsKeyPressed)
}

func NewInputSystemWithSource(cursor CursorSource, keys KeySource) *InputSystem {
	return &InputSystem{cursor: cursor, keys: keys}
}

// Reprime drops the next delta. Call it whenever the cursor mode changes,
// since captured and visible cursors report unrelated positions.
func (i *InputSystem) Reprime() {
	i.primed = false
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dx, dy := 0.0, 0.0
	if i.cursor != nil {
		x, y := i.cursor()
		if i.primed {
			dx = float64(x - i.lastX)
			// screen y grows downwards, look y grows upwards
			dy = float64(i.lastY - y)
		}
		i.lastX, i.lastY = x, y
		i.primed = true
	}

	moveX, moveZ := 0.0, 0.0
	if i.keys != nil && (i.Enabled == nil || i.Enabled()) {
		if i.keys(ebiten.KeyW) || i.keys(ebiten.KeyArrowUp) {
			moveZ += 1
		}
		if i.keys(ebiten.KeyS) || i.keys(ebiten.KeyArrowDown) {
			moveZ -= 1
		}
		if i.keys(ebiten.KeyD) || i.keys(ebiten.KeyArrowRight) {
			moveX += 1
		}
		if i.keys(ebiten.KeyA) || i.keys(ebiten.KeyArrowLeft) {
			moveX -= 1
		}
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		input.LookX = dx
		input.LookY = dy
		input.MoveX = moveX
		input.MoveZ = moveZ
	})
}
