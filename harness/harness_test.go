package harness

import (
	"errors"
	"strings"
	"testing"

	"github.com/milk9111/cluehunt/clue"
	"github.com/milk9111/cluehunt/prefabs"
)

type fakeCamera struct {
	locked bool
	resets int
}

func (c *fakeCamera) SetCameraLocked(locked bool) { c.locked = locked }
func (c *fakeCamera) ResetLook()                  { c.resets++ }
func (c *fakeCamera) DescribeLook() string        { return "pitch=0.0 yaw=0.0" }

func newProgress(t *testing.T) *clue.Progress {
	t.Helper()
	book, err := clue.NewBook([]clue.Clue{
		{ID: "a", Code: "1"},
		{ID: "b", Code: "two"},
		{ID: "fake", Decoy: true},
	})
	if err != nil {
		t.Fatalf("NewBook: %v", err)
	}
	return clue.NewProgress(book)
}

func TestRunBuiltinActions(t *testing.T) {
	progress := newProgress(t)
	cam := &fakeCamera{}
	h := New(&Env{Clues: progress, Camera: cam})

	scenarios := []Scenario{
		{Name: "solve_a", Action: Solve("a", "1")},
		{Name: "solve_b_wrong", Action: Solve("b", "nope")},
		{Name: "solve_b", Action: Solve("b", "TWO")},
		{Name: "check", Action: CheckAll()},
		{Name: "lock", Action: LockCamera(true)},
		{Name: "recenter", Action: ResetLook()},
		{Name: "reset", Action: ResetClues()},
	}
	for _, s := range scenarios {
		if err := h.Register(s); err != nil {
			t.Fatalf("Register %s: %v", s.Name, err)
		}
	}

	tests := []struct {
		scenario string
		wantErr  error
		wantMsg  string
	}{
		{"check", nil, "not all clues solved (0/2)"},
		{"solve_a", nil, "solved a (1/2)"},
		{"solve_b_wrong", clue.ErrWrongCode, ""},
		{"solve_b", nil, "solved b (2/2)"},
		{"check", nil, "all clues solved (2/2)"},
		{"lock", nil, "camera locked"},
		{"recenter", nil, "look reset"},
		{"reset", nil, "progress reset"},
		{"check", nil, "not all clues solved (0/2)"},
	}

	for _, tc := range tests {
		t.Run(tc.scenario, func(t *testing.T) {
			res, err := h.Run(tc.scenario)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) || !errors.Is(res.Err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Message != tc.wantMsg {
				t.Fatalf("message = %q, want %q", res.Message, tc.wantMsg)
			}
		})
	}

	if !cam.locked || cam.resets != 1 {
		t.Fatalf("camera not driven: %+v", cam)
	}
	if got := len(h.History()); got != len(tests) {
		t.Fatalf("history length = %d, want %d", got, len(tests))
	}
}

func TestRunUnknownScenario(t *testing.T) {
	h := New(nil)
	res, err := h.Run("missing")
	if !errors.Is(err, ErrUnknownScenario) {
		t.Fatalf("expected ErrUnknownScenario, got %v", err)
	}
	if res.Scenario != "missing" {
		t.Fatalf("result scenario = %q", res.Scenario)
	}
	if len(h.History()) != 0 {
		t.Fatalf("unknown scenarios should not be recorded")
	}
}

func TestActionsWithoutCollaborators(t *testing.T) {
	env := &Env{}
	if _, err := Solve("a", "1")(env); !errors.Is(err, ErrNoClues) {
		t.Fatalf("expected ErrNoClues, got %v", err)
	}
	if _, err := LockCamera(true)(env); !errors.Is(err, ErrNoCamera) {
		t.Fatalf("expected ErrNoCamera, got %v", err)
	}
	msg, err := Report()(env)
	if err != nil || msg != "nothing to report" {
		t.Fatalf("report = %q, %v", msg, err)
	}
}

func TestRegisterValidation(t *testing.T) {
	h := New(nil)
	if err := h.Register(Scenario{Name: "", Action: CheckAll()}); !errors.Is(err, ErrMissingParameter) {
		t.Fatalf("expected ErrMissingParameter, got %v", err)
	}
	if err := h.Register(Scenario{Name: "x", Action: CheckAll()}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := h.Register(Scenario{Name: "x", Action: CheckAll()}); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
	if err := h.Bind("T", "nope"); !errors.Is(err, ErrUnknownScenario) {
		t.Fatalf("expected ErrUnknownScenario, got %v", err)
	}
}

func TestHistoryIsBounded(t *testing.T) {
	h := New(&Env{Clues: newProgress(t)})
	h.SetHistoryLimit(3)
	if err := h.Register(Scenario{Name: "check", Action: CheckAll()}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		if _, err := h.Run("check"); err != nil {
			t.Fatal(err)
		}
	}
	if got := len(h.History()); got != 3 {
		t.Fatalf("history length = %d, want 3", got)
	}
}

func TestReportCopiesToClipboard(t *testing.T) {
	progress := newProgress(t)
	if err := progress.SolveClue("a", "1"); err != nil {
		t.Fatal(err)
	}
	var copied string
	env := &Env{
		Clues:     progress,
		Camera:    &fakeCamera{},
		Clipboard: func(text string) error { copied = text; return nil },
	}

	msg, err := Report()(env)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if msg != "clues 1/2 [a] | pitch=0.0 yaw=0.0" {
		t.Fatalf("report = %q", msg)
	}
	if copied != msg {
		t.Fatalf("clipboard = %q, want %q", copied, msg)
	}
}

func TestFromSpec(t *testing.T) {
	spec := &prefabs.HarnessSpec{
		History: 4,
		Scenarios: []prefabs.ScenarioSpec{
			{Name: "solve_a", Action: "solve", Clue: "a", Code: "1"},
			{Name: "check", Action: "check_all"},
		},
		Bindings: []prefabs.BindingSpec{
			{Key: "Digit1", Scenario: "solve_a"},
			{Key: "T", Scenario: "check"},
		},
	}

	h, err := FromSpec(spec, &Env{Clues: newProgress(t)})
	if err != nil {
		t.Fatalf("FromSpec: %v", err)
	}
	if got := strings.Join(h.Names(), ","); got != "solve_a,check" {
		t.Fatalf("names = %s", got)
	}
	if len(h.Bindings()) != 2 || h.Bindings()[0].Key != "Digit1" {
		t.Fatalf("bindings = %+v", h.Bindings())
	}
	if _, err := h.Run("solve_a"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	t.Run("unknown_action", func(t *testing.T) {
		bad := &prefabs.HarnessSpec{Scenarios: []prefabs.ScenarioSpec{{Name: "x", Action: "explode"}}}
		if _, err := FromSpec(bad, nil); !errors.Is(err, ErrUnknownAction) {
			t.Fatalf("expected ErrUnknownAction, got %v", err)
		}
	})

	t.Run("solve_without_clue", func(t *testing.T) {
		bad := &prefabs.HarnessSpec{Scenarios: []prefabs.ScenarioSpec{{Name: "x", Action: "solve"}}}
		if _, err := FromSpec(bad, nil); !errors.Is(err, ErrMissingParameter) {
			t.Fatalf("expected ErrMissingParameter, got %v", err)
		}
	})

	t.Run("binding_to_missing_scenario", func(t *testing.T) {
		bad := &prefabs.HarnessSpec{Bindings: []prefabs.BindingSpec{{Key: "T", Scenario: "ghost"}}}
		if _, err := FromSpec(bad, nil); !errors.Is(err, ErrUnknownScenario) {
			t.Fatalf("expected ErrUnknownScenario, got %v", err)
		}
	})
}

func TestEmbeddedHarnessSpecLoads(t *testing.T) {
	book, err := clue.LoadBook()
	if err != nil {
		t.Fatalf("LoadBook: %v", err)
	}
	progress := clue.NewProgress(book)

	h, err := Load(&Env{Clues: progress, Camera: &fakeCamera{}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	names := map[string]bool{}
	for _, n := range h.Names() {
		names[n] = true
	}
	for _, b := range h.Bindings() {
		if !names[b.Scenario] {
			t.Fatalf("binding %s points at missing scenario %s", b.Key, b.Scenario)
		}
	}

	res, err := h.Run("solve_all")
	if err != nil {
		t.Fatalf("solve_all: %v", err)
	}
	if res.Message != "all clues solved" {
		t.Fatalf("solve_all message = %q", res.Message)
	}
	if !progress.AllCluesSolved() {
		t.Fatalf("script did not solve every clue")
	}
}

func TestRunSource(t *testing.T) {
	progress := newProgress(t)
	h := New(&Env{Clues: progress, Camera: &fakeCamera{}})

	msg, err := h.RunSource(`
ok := solve("a", "1")
bad := solve("b", "x")
result = ok && !bad && len(solved()) == 1 ? "ok" : "unexpected"
`)
	if err != nil {
		t.Fatalf("RunSource: %v", err)
	}
	if msg != "ok" {
		t.Fatalf("result = %q", msg)
	}
	if !progress.IsSolved("a") || progress.IsSolved("b") {
		t.Fatalf("unexpected progress: %v", progress.Solved())
	}
}

func TestRunSourceResultDefaults(t *testing.T) {
	h := New(&Env{})

	tests := []struct {
		name    string
		src     string
		want    string
		wantErr bool
	}{
		{"unset", `x := 1`, "", false},
		{"overwritten", `result = "done"`, "done", false},
		{"syntax_error", `result = `, "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			msg, err := h.RunSource(tc.src)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if msg != tc.want {
				t.Fatalf("result = %q, want %q", msg, tc.want)
			}
		})
	}
}
