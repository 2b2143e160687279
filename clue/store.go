package clue

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	progressObject   = "clues"
	progressProperty = "progress"
)

type savedProgress struct {
	Solved []string `yaml:"solved"`
}

// Store persists solved clue ids. A nil gdata manager keeps everything in
// memory only.
type Store struct {
	gdataManager *gdata.Manager
}

func NewStore(m *gdata.Manager) *Store {
	return &Store{gdataManager: m}
}

func (s *Store) Persistent() bool {
	return s != nil && s.gdataManager != nil
}

// Load restores saved ids into p. Missing saves are not an error.
func (s *Store) Load(p *Progress) error {
	if !s.Persistent() || p == nil {
		return nil
	}
	if !s.gdataManager.ObjectPropExists(progressObject, progressProperty) {
		return nil
	}

	data, err := s.gdataManager.LoadObjectProp(progressObject, progressProperty)
	if err != nil {
		return fmt.Errorf("clue: load progress: %w", err)
	}

	var saved savedProgress
	if err := yaml.Unmarshal(data, &saved); err != nil {
		return fmt.Errorf("clue: unmarshal progress: %w", err)
	}

	p.Restore(saved.Solved)
	log.Printf("clue: restored %d solved clues", len(p.Solved()))
	return nil
}

func (s *Store) Save(p *Progress) error {
	if !s.Persistent() || p == nil {
		return nil
	}

	data, err := yaml.Marshal(savedProgress{Solved: p.Solved()})
	if err != nil {
		return fmt.Errorf("clue: marshal progress: %w", err)
	}
	if err := s.gdataManager.SaveObjectProp(progressObject, progressProperty, data); err != nil {
		return fmt.Errorf("clue: save progress: %w", err)
	}
	return nil
}

// AutoSave saves p after every solve and every reset, and logs failures.
func (s *Store) AutoSave(p *Progress) {
	if !s.Persistent() || p == nil {
		return
	}
	save := func() {
		if err := s.Save(p); err != nil {
			log.Printf("clue: autosave: %v", err)
		}
	}
	p.OnSolved(func(Clue) { save() })
	p.OnReset(save)
}
