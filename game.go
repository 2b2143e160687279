package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/cluehunt/clue"
	"github.com/milk9111/cluehunt/common"
	"github.com/milk9111/cluehunt/ecs"
	"github.com/milk9111/cluehunt/ecs/component"
	"github.com/milk9111/cluehunt/ecs/entity"
	"github.com/milk9111/cluehunt/ecs/system"
	"github.com/milk9111/cluehunt/harness"
	"github.com/milk9111/cluehunt/inputmode"
	"github.com/milk9111/cluehunt/prefabs"
	"golang.org/x/image/colornames"
)

const (
	clueFocus     = "clues"
	roomHalfWidth = 8.0
	// Horizon pixels per degree of pitch.
	pixelsPerDegree = 6.0
)

type Options struct {
	Debug     bool
	Watch     bool
	Store     *clue.Store
	Clipboard func(string) error
}

type Game struct {
	frames int
	debug  bool

	world     *ecs.World
	scheduler *ecs.Scheduler
	modes     *inputmode.Manager
	player    entity.Player

	progress *clue.Progress
	store    *clue.Store
	env      *harness.Env
	harness  *harness.Harness
	control  *system.LookControl

	input     *system.InputSystem
	debugKeys *system.DebugKeySystem
	notices   *system.NoticeSystem

	watcher *prefabs.Watcher

	clueUI    *ebitenui.UI
	clueDirty bool
}

func NewGame(opts Options) (*Game, error) {
	book, err := clue.LoadBook()
	if err != nil {
		return nil, err
	}
	progress := clue.NewProgress(book)

	store := opts.Store
	if store == nil {
		store = clue.NewStore(nil)
	}
	if err := store.Load(progress); err != nil {
		log.Printf("game: load progress: %v", err)
	}
	store.AutoSave(progress)

	world := ecs.NewWorld()
	world.SetPhysicsWorld(ecs.NewPhysicsWorld(roomHalfWidth))

	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, fmt.Errorf("game: load player: %w", err)
	}
	player, err := entity.NewPlayerFromSpec(world, spec)
	if err != nil {
		return nil, err
	}

	modes := inputmode.NewManager()
	control := &system.LookControl{World: world, Modes: modes}
	env := &harness.Env{Clues: progress, Camera: control, Clipboard: opts.Clipboard}
	h, err := harness.Load(env)
	if err != nil {
		return nil, err
	}

	g := &Game{
		debug:     opts.Debug,
		world:     world,
		modes:     modes,
		player:    player,
		progress:  progress,
		store:     store,
		env:       env,
		harness:   h,
		control:   control,
		input:     system.NewInputSystem(),
		debugKeys: system.NewDebugKeySystem(h),
		notices:   system.NewNoticeSystem(),
		clueDirty: true,
	}
	g.input.Enabled = func() bool { return modes.Mode() == inputmode.Gameplay }
	g.notices.OnEvent = func(evt ecs.Event) {
		switch evt.Type {
		case ecs.EventClueSolved, ecs.EventCluesDone, ecs.EventCluesReset, ecs.EventPrefabReload:
			g.clueDirty = true
		}
	}

	cursor := system.NewCursorSystem(modes, spec.CursorLocked)
	cursor.OnModeChange = func(ebiten.CursorModeType) { g.input.Reprime() }

	g.scheduler = ecs.NewScheduler(
		g.input,
		g.debugKeys,
		system.NewLookSystem(modes),
		system.NewPhysicsSystem(),
		cursor,
		g.notices,
	)

	progress.OnSolved(func(c clue.Clue) {
		world.Events().Push(ecs.Event{Type: ecs.EventClueSolved, Data: c.ID})
	})
	progress.OnReset(func() {
		world.Events().Push(ecs.Event{Type: ecs.EventCluesReset})
	})
	progress.OnComplete(func() {
		log.Printf("game: all clues solved")
		world.Events().Push(ecs.Event{Type: ecs.EventCluesDone})
	})
	modes.OnChange(func(m inputmode.Mode) {
		log.Printf("game: input mode %s", m)
		world.Events().Push(ecs.Event{Type: ecs.EventModeChanged, Data: m})
	})

	if opts.Watch {
		w, err := prefabs.NewWatcher()
		if err != nil {
			log.Printf("game: prefab hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if err := g.store.Save(g.progress); err != nil {
		log.Printf("game: save progress: %v", err)
	}
}

func (g *Game) Update() error {
	g.frames++

	g.applyPrefabChanges()

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.modes.ToggleFocus(clueFocus)
		if g.modes.HasFocus(clueFocus) {
			g.clueDirty = true
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.modes.PopFocus(clueFocus)
	}

	if g.modes.HasFocus(clueFocus) {
		if g.clueDirty || g.clueUI == nil {
			g.clueUI = NewClueUI(g)
			g.clueDirty = false
		}
		g.clueUI.Update()
	}

	g.scheduler.Update(g.world)
	return nil
}

// applyPrefabChanges reloads whatever the watcher saw change on disk.
func (g *Game) applyPrefabChanges() {
	for _, c := range g.watcher.Poll() {
		var err error
		switch {
		case c.Kind == prefabs.ScriptChanged:
			g.harness.InvalidateScript(c.Name)
		case c.Name == "player.yaml":
			err = g.reloadLook()
		case c.Name == "clues.yaml":
			err = g.reloadClues()
		case c.Name == "harness.yaml":
			err = g.reloadHarness()
		default:
			continue
		}
		if err != nil {
			log.Printf("game: reload %s: %v", c.Name, err)
			continue
		}
		log.Printf("game: reloaded %s", c.Name)
		g.world.Events().Push(ecs.Event{Type: ecs.EventPrefabReload, Data: c.Name})
	}
}

func (g *Game) reloadLook() error {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return err
	}
	lk, ok := ecs.Get(g.world, g.player.Body, component.LookComponent.Kind())
	if !ok || lk.Integrator == nil {
		return nil
	}
	cfg := entity.LookConfig(spec.Look)
	if err := lk.Integrator.Configure(cfg); err != nil {
		return err
	}
	if cfg.Overshoots() {
		log.Printf("game: smoothing %.2f < 1 overshoots the raw input", cfg.SmoothingFactor)
	}
	lk.InvertY = spec.Look.InvertY
	return nil
}

func (g *Game) reloadClues() error {
	book, err := clue.LoadBook()
	if err != nil {
		return err
	}
	g.progress.Rebind(book)
	return nil
}

func (g *Game) reloadHarness() error {
	h, err := harness.Load(g.env)
	if err != nil {
		return err
	}
	g.harness = h
	g.debugKeys.SetHarness(h)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	lk, _ := ecs.Get(g.world, g.player.Body, component.LookComponent.Kind())
	if lk != nil {
		drawHorizon(screen, lk.Output.PitchDeg, lk.Output.YawDeg)
	}

	solved, required := g.progress.Counts()
	lines := []string{
		fmt.Sprintf("FPS: %.1f  mode: %s", ebiten.ActualFPS(), g.modes.Mode()),
		g.control.DescribeLook(),
		fmt.Sprintf("clues: %d/%d  (Tab: clue panel)", solved, required),
	}
	if bt, ok := ecs.Get(g.world, g.player.Body, component.TransformComponent.Kind()); ok {
		lines = append(lines, fmt.Sprintf("pos: %.1f %.1f  (WASD: walk)", bt.Position.X(), bt.Position.Z()))
	}
	lines = append(lines, g.notices.Notices()...)
	if g.debug {
		for _, b := range g.harness.Bindings() {
			lines = append(lines, fmt.Sprintf("  %s: %s", b.Key, b.Scenario))
		}
		hist := g.harness.History()
		if len(hist) > 3 {
			hist = hist[len(hist)-3:]
		}
		for _, r := range hist {
			lines = append(lines, "  ran "+r.String())
		}
	}
	ebitenutil.DebugPrint(screen, strings.Join(lines, "\n"))

	if g.modes.HasFocus(clueFocus) && g.clueUI != nil {
		g.clueUI.Draw(screen)
	}
}

// drawHorizon draws the horizon line, heading ticks and a crosshair for the
// current orientation.
func drawHorizon(screen *ebiten.Image, pitchDeg, yawDeg float64) {
	cx := float32(common.BaseWidth / 2)
	cy := float32(common.BaseHeight / 2)

	// Looking up (negative pitch) moves the horizon down.
	horizon := cy - float32(pitchDeg*pixelsPerDegree)
	vector.FillRect(screen, 0, horizon, common.BaseWidth, common.BaseHeight-horizon, colornames.Darkolivegreen, false)
	vector.StrokeLine(screen, 0, horizon, common.BaseWidth, horizon, 2, colornames.Khaki, false)

	headings := []struct {
		deg   float64
		label string
	}{{0, "N"}, {90, "E"}, {180, "S"}, {270, "W"}}
	for _, h := range headings {
		off := math.Remainder(h.deg-yawDeg, 360)
		x := cx + float32(off*pixelsPerDegree)
		if x < 0 || x > common.BaseWidth {
			continue
		}
		vector.StrokeLine(screen, x, horizon-12, x, horizon+12, 2, colornames.Khaki, false)
		ebitenutil.DebugPrintAt(screen, h.label, int(x)-3, int(horizon)-28)
	}

	cross := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xc0}
	vector.StrokeLine(screen, cx-8, cy, cx+8, cy, 1, cross, false)
	vector.StrokeLine(screen, cx, cy-8, cx, cy+8, 1, cross, false)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
