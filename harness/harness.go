// Package harness runs named debug scenarios against the clue progress and
// the camera. Scenarios are looked up by name, so any input source (key
// bindings, a console, tests) can trigger them.
package harness

import (
	"errors"
	"fmt"
	"log"
	"strings"
)

var (
	ErrUnknownScenario  = errors.New("harness: unknown scenario")
	ErrUnknownAction    = errors.New("harness: unknown action")
	ErrDuplicateName    = errors.New("harness: duplicate scenario")
	ErrMissingParameter = errors.New("harness: missing parameter")
	ErrNoClues          = errors.New("harness: no clue tracker")
	ErrNoCamera         = errors.New("harness: no camera control")
)

const defaultHistory = 32

// ClueTracker is the clue progress surface scenarios drive.
type ClueTracker interface {
	SolveClue(id, code string) error
	AllCluesSolved() bool
	Solved() []string
	Counts() (solved, required int)
	Reset()
}

// CameraControl is the camera surface scenarios drive.
type CameraControl interface {
	SetCameraLocked(locked bool)
	ResetLook()
	DescribeLook() string
}

// Env is what actions operate on. Any field may be nil.
type Env struct {
	Clues     ClueTracker
	Camera    CameraControl
	Clipboard func(text string) error
}

// Action performs a scenario and returns a short human readable message.
type Action func(env *Env) (string, error)

type Scenario struct {
	Name        string
	Description string
	Action      Action
}

type Result struct {
	Scenario string
	Message  string
	Err      error
}

func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: error: %v", r.Scenario, r.Err)
	}
	return fmt.Sprintf("%s: %s", r.Scenario, r.Message)
}

type Binding struct {
	Key      string
	Scenario string
}

type Harness struct {
	env        *Env
	scenarios  map[string]Scenario
	order      []string
	bindings   []Binding
	history    []Result
	maxHistory int
	scripts    *scriptCache
}

func New(env *Env) *Harness {
	if env == nil {
		env = &Env{}
	}
	return &Harness{
		env:        env,
		scenarios:  make(map[string]Scenario),
		maxHistory: defaultHistory,
		scripts:    newScriptCache(),
	}
}

func (h *Harness) SetHistoryLimit(n int) {
	if n <= 0 {
		n = defaultHistory
	}
	h.maxHistory = n
	h.trimHistory()
}

func (h *Harness) Register(s Scenario) error {
	name := strings.TrimSpace(s.Name)
	if name == "" || s.Action == nil {
		return fmt.Errorf("%w: scenario needs a name and an action", ErrMissingParameter)
	}
	if _, ok := h.scenarios[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	s.Name = name
	h.scenarios[name] = s
	h.order = append(h.order, name)
	return nil
}

// Bind maps a key name to a registered scenario. Key names are opaque here.
func (h *Harness) Bind(key, scenario string) error {
	if _, ok := h.scenarios[scenario]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownScenario, scenario)
	}
	h.bindings = append(h.bindings, Binding{Key: key, Scenario: scenario})
	return nil
}

func (h *Harness) Bindings() []Binding {
	return append([]Binding(nil), h.bindings...)
}

// Names returns scenario names in registration order.
func (h *Harness) Names() []string {
	return append([]string(nil), h.order...)
}

// Run executes a scenario, logs the outcome and records it in the history.
// The returned error is the scenario's own error.
func (h *Harness) Run(name string) (Result, error) {
	s, ok := h.scenarios[name]
	if !ok {
		err := fmt.Errorf("%w: %s", ErrUnknownScenario, name)
		log.Printf("harness: %v", err)
		return Result{Scenario: name, Err: err}, err
	}

	msg, err := s.Action(h.env)
	res := Result{Scenario: name, Message: msg, Err: err}
	log.Printf("harness: %s", res)

	h.history = append(h.history, res)
	h.trimHistory()
	return res, err
}

// History returns the most recent results, oldest first.
func (h *Harness) History() []Result {
	return append([]Result(nil), h.history...)
}

// InvalidateScript drops a cached compiled script so the next run reloads it.
func (h *Harness) InvalidateScript(name string) {
	h.scripts.invalidate(name)
}

func (h *Harness) trimHistory() {
	if over := len(h.history) - h.maxHistory; over > 0 {
		h.history = append([]Result(nil), h.history[over:]...)
	}
}
