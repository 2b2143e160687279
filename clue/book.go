package clue

import (
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/cluehunt/prefabs"
)

var (
	ErrUnknownClue   = errors.New("clue: unknown clue")
	ErrWrongCode     = errors.New("clue: wrong code")
	ErrDecoyClue     = errors.New("clue: decoy clue cannot be solved")
	ErrEmptyID       = errors.New("clue: empty id")
	ErrDuplicateID   = errors.New("clue: duplicate id")
	ErrEmptyCode     = errors.New("clue: empty code")
	ErrBookNotLoaded = errors.New("clue: no book loaded")
)

// Clue is one entry of the book. Decoy clues never count towards completion.
type Clue struct {
	ID    string
	Name  string
	Code  string
	Decoy bool
}

// Matches compares codes ignoring surrounding space and case.
func (c Clue) Matches(code string) bool {
	return strings.EqualFold(strings.TrimSpace(c.Code), strings.TrimSpace(code))
}

// Book is an immutable, ordered set of clues.
type Book struct {
	clues []Clue
	index map[string]int
}

func NewBook(clues []Clue) (*Book, error) {
	b := &Book{
		clues: make([]Clue, 0, len(clues)),
		index: make(map[string]int, len(clues)),
	}
	for i, c := range clues {
		c.ID = strings.TrimSpace(c.ID)
		if c.ID == "" {
			return nil, fmt.Errorf("%w at index %d", ErrEmptyID, i)
		}
		if _, ok := b.index[c.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
		}
		if strings.TrimSpace(c.Code) == "" && !c.Decoy {
			return nil, fmt.Errorf("%w: %s", ErrEmptyCode, c.ID)
		}
		if c.Name == "" {
			c.Name = c.ID
		}
		b.index[c.ID] = len(b.clues)
		b.clues = append(b.clues, c)
	}
	return b, nil
}

// BookFromSpec converts a clues prefab into a Book.
func BookFromSpec(spec prefabs.CluesSpec) (*Book, error) {
	clues := make([]Clue, 0, len(spec.Clues))
	for _, c := range spec.Clues {
		clues = append(clues, Clue{ID: c.ID, Name: c.Name, Code: c.Code, Decoy: c.Decoy})
	}
	return NewBook(clues)
}

// LoadBook reads clues.yaml from the prefabs directory or the embedded copy.
func LoadBook() (*Book, error) {
	spec, err := prefabs.LoadSpec[prefabs.CluesSpec]("clues.yaml")
	if err != nil {
		return nil, err
	}
	book, err := BookFromSpec(spec)
	if err != nil {
		return nil, fmt.Errorf("clue: build book: %w", err)
	}
	return book, nil
}

func (b *Book) Lookup(id string) (Clue, bool) {
	if b == nil {
		return Clue{}, false
	}
	i, ok := b.index[id]
	if !ok {
		return Clue{}, false
	}
	return b.clues[i], true
}

func (b *Book) Clues() []Clue {
	if b == nil {
		return nil
	}
	return append([]Clue(nil), b.clues...)
}

func (b *Book) Len() int {
	if b == nil {
		return 0
	}
	return len(b.clues)
}

// Required counts the non-decoy clues.
func (b *Book) Required() int {
	n := 0
	for _, c := range b.Clues() {
		if !c.Decoy {
			n++
		}
	}
	return n
}
