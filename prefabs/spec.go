package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type TransformSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// LookSpec leaves a tunable nil when player.yaml omits it, so an explicit
// zero still reaches validation.
type LookSpec struct {
	Sensitivity *float64 `yaml:"sensitivity"`
	Smoothing   *float64 `yaml:"smoothing"`
	InvertY     bool     `yaml:"invert_y"`
}

type BodySpec struct {
	Radius float64 `yaml:"radius"`
	Mass   float64 `yaml:"mass"`
	Speed  float64 `yaml:"speed"`
}

type PlayerSpec struct {
	Name         string        `yaml:"name"`
	Transform    TransformSpec `yaml:"transform"`
	EyeHeight    float64       `yaml:"eye_height"`
	Look         LookSpec      `yaml:"look"`
	Body         BodySpec      `yaml:"body"`
	CursorLocked bool          `yaml:"cursor_locked"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type ClueSpec struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Code  string `yaml:"code"`
	Decoy bool   `yaml:"decoy"`
}

type CluesSpec struct {
	Clues []ClueSpec `yaml:"clues"`
}

type ScenarioSpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Action      string `yaml:"action"`
	Clue        string `yaml:"clue"`
	Code        string `yaml:"code"`
	Script      string `yaml:"script"`
}

type BindingSpec struct {
	Key      string `yaml:"key"`
	Scenario string `yaml:"scenario"`
}

type HarnessSpec struct {
	History   int            `yaml:"history"`
	Scenarios []ScenarioSpec `yaml:"scenarios"`
	Bindings  []BindingSpec  `yaml:"bindings"`
}

func LoadHarnessSpec() (*HarnessSpec, error) {
	spec, err := LoadSpec[HarnessSpec]("harness.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
