package harness

import (
	"fmt"
	"strings"

	"github.com/milk9111/cluehunt/prefabs"
)

type actionBuildFn func(spec prefabs.ScenarioSpec, h *Harness) (Action, error)

var actionRegistry = map[string]actionBuildFn{
	"solve":         buildSolve,
	"check_all":     func(prefabs.ScenarioSpec, *Harness) (Action, error) { return CheckAll(), nil },
	"report":        func(prefabs.ScenarioSpec, *Harness) (Action, error) { return Report(), nil },
	"reset":         func(prefabs.ScenarioSpec, *Harness) (Action, error) { return ResetClues(), nil },
	"lock_camera":   func(prefabs.ScenarioSpec, *Harness) (Action, error) { return LockCamera(true), nil },
	"unlock_camera": func(prefabs.ScenarioSpec, *Harness) (Action, error) { return LockCamera(false), nil },
	"reset_look":    func(prefabs.ScenarioSpec, *Harness) (Action, error) { return ResetLook(), nil },
	"script":        buildScript,
}

func buildSolve(spec prefabs.ScenarioSpec, _ *Harness) (Action, error) {
	if spec.Clue == "" {
		return nil, fmt.Errorf("%w: %s needs a clue", ErrMissingParameter, spec.Name)
	}
	return Solve(spec.Clue, spec.Code), nil
}

func buildScript(spec prefabs.ScenarioSpec, h *Harness) (Action, error) {
	if spec.Script == "" {
		return nil, fmt.Errorf("%w: %s needs a script", ErrMissingParameter, spec.Name)
	}
	return h.Script(spec.Script), nil
}

// Solve attempts a clue with a code.
func Solve(id, code string) Action {
	return func(env *Env) (string, error) {
		if env.Clues == nil {
			return "", ErrNoClues
		}
		if err := env.Clues.SolveClue(id, code); err != nil {
			return "", err
		}
		solved, required := env.Clues.Counts()
		return fmt.Sprintf("solved %s (%d/%d)", id, solved, required), nil
	}
}

func CheckAll() Action {
	return func(env *Env) (string, error) {
		if env.Clues == nil {
			return "", ErrNoClues
		}
		solved, required := env.Clues.Counts()
		if env.Clues.AllCluesSolved() {
			return fmt.Sprintf("all clues solved (%d/%d)", solved, required), nil
		}
		return fmt.Sprintf("not all clues solved (%d/%d)", solved, required), nil
	}
}

func ResetClues() Action {
	return func(env *Env) (string, error) {
		if env.Clues == nil {
			return "", ErrNoClues
		}
		env.Clues.Reset()
		return "progress reset", nil
	}
}

func LockCamera(locked bool) Action {
	return func(env *Env) (string, error) {
		if env.Camera == nil {
			return "", ErrNoCamera
		}
		env.Camera.SetCameraLocked(locked)
		if locked {
			return "camera locked", nil
		}
		return "camera unlocked", nil
	}
}

func ResetLook() Action {
	return func(env *Env) (string, error) {
		if env.Camera == nil {
			return "", ErrNoCamera
		}
		env.Camera.ResetLook()
		return "look reset", nil
	}
}

// Report summarises clue progress and camera state, copying it to the
// clipboard when one is wired.
func Report() Action {
	return func(env *Env) (string, error) {
		var parts []string
		if env.Clues != nil {
			solved, required := env.Clues.Counts()
			parts = append(parts, fmt.Sprintf("clues %d/%d [%s]", solved, required, strings.Join(env.Clues.Solved(), ",")))
		}
		if env.Camera != nil {
			parts = append(parts, env.Camera.DescribeLook())
		}
		report := strings.Join(parts, " | ")
		if report == "" {
			report = "nothing to report"
		}
		if env.Clipboard != nil {
			if err := env.Clipboard(report); err != nil {
				return report, fmt.Errorf("harness: copy report: %w", err)
			}
		}
		return report, nil
	}
}

// FromSpec builds a harness from a harness prefab.
func FromSpec(spec *prefabs.HarnessSpec, env *Env) (*Harness, error) {
	h := New(env)
	if spec == nil {
		return h, nil
	}
	h.SetHistoryLimit(spec.History)

	for _, s := range spec.Scenarios {
		build, ok := actionRegistry[s.Action]
		if !ok {
			return nil, fmt.Errorf("%w: %q in scenario %s", ErrUnknownAction, s.Action, s.Name)
		}
		action, err := build(s, h)
		if err != nil {
			return nil, err
		}
		if err := h.Register(Scenario{Name: s.Name, Description: s.Description, Action: action}); err != nil {
			return nil, err
		}
	}

	for _, b := range spec.Bindings {
		if err := h.Bind(b.Key, b.Scenario); err != nil {
			return nil, fmt.Errorf("harness: bind %s: %w", b.Key, err)
		}
	}
	return h, nil
}

// Load builds a harness from harness.yaml.
func Load(env *Env) (*Harness, error) {
	spec, err := prefabs.LoadHarnessSpec()
	if err != nil {
		return nil, err
	}
	return FromSpec(spec, env)
}
