package clue

import (
	"fmt"
	"log"
	"sort"
)

// Progress tracks which clues of a book have been solved.
type Progress struct {
	book     *Book
	solved   map[string]bool
	complete bool

	solvedListeners   []func(Clue)
	completeListeners []func()
	resetListeners    []func()
}

func NewProgress(book *Book) *Progress {
	return &Progress{book: book, solved: make(map[string]bool)}
}

func (p *Progress) Book() *Book {
	if p == nil {
		return nil
	}
	return p.book
}

// SolveClue marks id solved when code matches. Solving an already solved
// clue again is a no-op.
func (p *Progress) SolveClue(id, code string) error {
	if p == nil || p.book == nil {
		return ErrBookNotLoaded
	}
	c, ok := p.book.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownClue, id)
	}
	if c.Decoy {
		return fmt.Errorf("%w: %s", ErrDecoyClue, id)
	}
	if !c.Matches(code) {
		return fmt.Errorf("%w: %s", ErrWrongCode, id)
	}
	if p.solved[id] {
		return nil
	}

	p.solved[id] = true
	log.Printf("clue: solved %s (%d/%d)", id, p.solvedRequired(), p.book.Required())
	for _, fn := range p.solvedListeners {
		fn(c)
	}
	p.checkComplete()
	return nil
}

// AllCluesSolved reports whether every non-decoy clue is solved. A book with
// no required clues is never complete.
func (p *Progress) AllCluesSolved() bool {
	if p == nil || p.book == nil {
		return false
	}
	required := p.book.Required()
	return required > 0 && p.solvedRequired() == required
}

func (p *Progress) IsSolved(id string) bool {
	return p != nil && p.solved[id]
}

// Solved returns the solved ids in sorted order.
func (p *Progress) Solved() []string {
	if p == nil {
		return nil
	}
	ids := make([]string, 0, len(p.solved))
	for id := range p.solved {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (p *Progress) Counts() (solved, required int) {
	if p == nil || p.book == nil {
		return 0, 0
	}
	return p.solvedRequired(), p.book.Required()
}

func (p *Progress) Reset() {
	if p == nil {
		return
	}
	p.solved = make(map[string]bool)
	p.complete = false
	log.Printf("clue: progress reset")
	for _, fn := range p.resetListeners {
		fn()
	}
}

// Restore marks ids solved without checking codes or firing solve events.
// Unknown and decoy ids are skipped.
func (p *Progress) Restore(ids []string) {
	if p == nil || p.book == nil {
		return
	}
	for _, id := range ids {
		c, ok := p.book.Lookup(id)
		if !ok || c.Decoy {
			continue
		}
		p.solved[id] = true
	}
	p.complete = p.AllCluesSolved()
}

// Rebind switches to a new book and keeps solved ids that still exist.
func (p *Progress) Rebind(book *Book) {
	if p == nil {
		return
	}
	prev := p.Solved()
	p.book = book
	p.solved = make(map[string]bool, len(prev))
	p.Restore(prev)
}

func (p *Progress) OnSolved(fn func(Clue)) {
	if p == nil || fn == nil {
		return
	}
	p.solvedListeners = append(p.solvedListeners, fn)
}

// OnComplete runs fn once each time the book becomes fully solved.
func (p *Progress) OnComplete(fn func()) {
	if p == nil || fn == nil {
		return
	}
	p.completeListeners = append(p.completeListeners, fn)
}

// OnReset runs fn after every Reset.
func (p *Progress) OnReset(fn func()) {
	if p == nil || fn == nil {
		return
	}
	p.resetListeners = append(p.resetListeners, fn)
}

func (p *Progress) checkComplete() {
	if p.complete || !p.AllCluesSolved() {
		return
	}
	p.complete = true
	log.Printf("clue: all clues solved")
	for _, fn := range p.completeListeners {
		fn()
	}
}

func (p *Progress) solvedRequired() int {
	n := 0
	for id := range p.solved {
		if c, ok := p.book.Lookup(id); ok && !c.Decoy {
			n++
		}
	}
	return n
}
