package system

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/cluehunt/ecs"
	"github.com/milk9111/cluehunt/harness"
)

type boundKey struct {
	key      ebiten.Key
	scenario string
}

// DebugKeySystem runs harness scenarios on their bound keys.
type DebugKeySystem struct {
	harness *harness.Harness
	pressed func(ebiten.Key) bool
	keys    []boundKey
}

func NewDebugKeySystem(h *harness.Harness) *DebugKeySystem {
	return NewDebugKeySystemWithInput(h, inpututil.IsKeyJustPressed)
}

func NewDebugKeySystemWithInput(h *harness.Harness, pressed func(ebiten.Key) bool) *DebugKeySystem {
	s := &DebugKeySystem{pressed: pressed}
	s.SetHarness(h)
	return s
}

// SetHarness swaps the harness, e.g. after harness.yaml is reloaded.
func (s *DebugKeySystem) SetHarness(h *harness.Harness) {
	s.harness = h
	s.keys = s.keys[:0]
	if h == nil {
		return
	}
	for _, b := range h.Bindings() {
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(b.Key)); err != nil {
			log.Printf("DebugKeySystem: skip binding %s -> %s: %v", b.Key, b.Scenario, err)
			continue
		}
		s.keys = append(s.keys, boundKey{key: k, scenario: b.Scenario})
	}
}

func (s *DebugKeySystem) Update(w *ecs.World) {
	if s.harness == nil || s.pressed == nil {
		return
	}
	for _, b := range s.keys {
		if !s.pressed(b.key) {
			continue
		}
		res, _ := s.harness.Run(b.scenario)
		if w != nil {
			w.Events().Push(ecs.Event{Type: ecs.EventScenarioRun, Data: res})
		}
	}
}
