package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedSpecsLoad(t *testing.T) {
	player, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("LoadPlayerSpec: %v", err)
	}
	if player.Look.Sensitivity == nil || *player.Look.Sensitivity <= 0 ||
		player.Look.Smoothing == nil || *player.Look.Smoothing <= 0 {
		t.Fatalf("embedded look config is invalid: %+v", player.Look)
	}

	clues, err := LoadSpec[CluesSpec]("clues.yaml")
	if err != nil {
		t.Fatalf("LoadSpec clues: %v", err)
	}
	if len(clues.Clues) == 0 {
		t.Fatalf("no clues in embedded clues.yaml")
	}

	harness, err := LoadHarnessSpec()
	if err != nil {
		t.Fatalf("LoadHarnessSpec: %v", err)
	}
	if len(harness.Scenarios) == 0 || len(harness.Bindings) == 0 {
		t.Fatalf("embedded harness.yaml is empty")
	}

	if _, err := LoadScript("solve_all.tengo"); err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
}

func TestDiskOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	prev := SetDiskDir(dir)
	defer SetDiskDir(prev)

	data := []byte("look:\n  sensitivity: 9\n  smoothing: 2\n")
	if err := os.WriteFile(filepath.Join(dir, "player.yaml"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	spec, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("LoadPlayerSpec: %v", err)
	}
	if spec.Look.Sensitivity == nil || *spec.Look.Sensitivity != 9 ||
		spec.Look.Smoothing == nil || *spec.Look.Smoothing != 2 {
		t.Fatalf("disk override ignored: %+v", spec.Look)
	}
	if _, ok := ModTime("prefabs/player.yaml"); !ok {
		t.Fatalf("ModTime should find the disk file")
	}
}

func TestLookSpecTellsZeroFromAbsent(t *testing.T) {
	dir := t.TempDir()
	prev := SetDiskDir(dir)
	defer SetDiskDir(prev)

	data := []byte("look:\n  sensitivity: 0\n")
	if err := os.WriteFile(filepath.Join(dir, "player.yaml"), data, 0o644); err != nil {
		t.Fatal(err)
	}
	spec, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("LoadPlayerSpec: %v", err)
	}
	if spec.Look.Sensitivity == nil || *spec.Look.Sensitivity != 0 {
		t.Fatalf("explicit zero sensitivity lost: %v", spec.Look.Sensitivity)
	}
	if spec.Look.Smoothing != nil {
		t.Fatalf("omitted smoothing should stay nil, got %v", *spec.Look.Smoothing)
	}
}

func TestLoadSpecErrors(t *testing.T) {
	dir := t.TempDir()
	prev := SetDiskDir(dir)
	defer SetDiskDir(prev)

	if _, err := LoadSpec[CluesSpec]("missing.yaml"); err == nil {
		t.Fatalf("expected error for missing spec")
	}

	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("clues: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSpec[CluesSpec]("broken.yaml"); err == nil {
		t.Fatalf("expected error for malformed yaml")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path   string
		want   Change
		wantOK bool
	}{
		{"prefabs/clues.yaml", Change{Name: "clues.yaml", Kind: SpecChanged}, true},
		{"/tmp/x/player.YML", Change{Name: "player.YML", Kind: SpecChanged}, true},
		{"prefabs/scripts/solve_all.tengo", Change{Name: "scripts/solve_all.tengo", Kind: ScriptChanged}, true},
		{"prefabs/notes.txt", Change{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			got, ok := classify(tc.path)
			if ok != tc.wantOK || got != tc.want {
				t.Fatalf("classify(%q) = %+v, %v; want %+v, %v", tc.path, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestWatcherReportsSpecWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "clues.yaml"), []byte("clues: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(3 * time.Second)
	for {
		select {
		case c := <-w.Events:
			if c.Name == "clues.yaml" && c.Kind == SpecChanged {
				return
			}
		case <-deadline:
			t.Fatalf("no change event for clues.yaml")
		}
	}
}

func TestWatcherWaitsForQuiet(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "clues.yaml")
	final := []byte("clues:\n  - id: a\n    code: \"1\"\n")
	writes := [][]byte{{}, []byte("clues:\n  - id: a\n"), final}
	for _, data := range writes {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(debounce / 4)
	}

	select {
	case c := <-w.Events:
		if c.Name != "clues.yaml" {
			t.Fatalf("unexpected change %+v", c)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("no change event for clues.yaml")
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(final) {
		t.Fatalf("change delivered before the last write landed: %q", got)
	}

	select {
	case c := <-w.Events:
		t.Fatalf("burst of writes produced a second change %+v", c)
	case <-time.After(3 * debounce):
	}
}
