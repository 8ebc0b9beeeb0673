package goaltrack

import (
	"fmt"
	"maps"
	"slices"
)

// Book holds the only persistent state of the tracker: the ordered goal
// collection and the assignment map from holding symbol to goal ID. A
// symbol absent from the map is unassigned and implicitly counts toward
// the general bucket.
//
// Book is purely in-memory; durable mutations go through a Tracker.
type Book struct {
	goals       []Goal
	assignments map[string]string // holding symbol -> goal ID
	personality string
}

// NewBook creates an empty book.
func NewBook() *Book {
	return &Book{
		goals:       make([]Goal, 0),
		assignments: make(map[string]string),
	}
}

// Goals returns the goals in creation order. The returned slice is a copy.
func (b *Book) Goals() []Goal {
	return slices.Clone(b.goals)
}

// Goal returns the goal with the given ID.
func (b *Book) Goal(id string) (Goal, bool) {
	for _, g := range b.goals {
		if g.ID == id {
			return g, true
		}
	}
	return Goal{}, false
}

// GoalByName returns the first goal with this exact display name.
func (b *Book) GoalByName(name string) (Goal, bool) {
	for _, g := range b.goals {
		if g.Name == name {
			return g, true
		}
	}
	return Goal{}, false
}

// AddGoal appends a goal to the book. The goal ID must be unique.
func (b *Book) AddGoal(g Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if _, exists := b.Goal(g.ID); exists {
		return fmt.Errorf("%w: duplicate goal id %q", ErrValidation, g.ID)
	}
	b.goals = append(b.goals, g)
	return nil
}

// DeleteGoal removes the goal and cascade-deletes every assignment
// pointing to it, so the book never holds a dangling reference. It
// reports whether the goal existed.
func (b *Book) DeleteGoal(id string) bool {
	n := len(b.goals)
	b.goals = slices.DeleteFunc(b.goals, func(g Goal) bool { return g.ID == id })
	if len(b.goals) == n {
		return false
	}
	for symbol, goalID := range b.assignments {
		if goalID == id {
			delete(b.assignments, symbol)
		}
	}
	return true
}

// Assign routes a holding symbol to a goal, overwriting any prior
// assignment for that symbol (last-write-wins). The goal must exist.
func (b *Book) Assign(symbol, goalID string) error {
	if symbol == "" {
		return fmt.Errorf("%w: symbol is required", ErrValidation)
	}
	if _, ok := b.Goal(goalID); !ok {
		return fmt.Errorf("%w: unknown goal %q", ErrValidation, goalID)
	}
	b.assignments[symbol] = goalID
	return nil
}

// Unassign removes the assignment for a symbol. Removing an absent symbol
// is a no-op.
func (b *Book) Unassign(symbol string) {
	delete(b.assignments, symbol)
}

// Assignment returns the goal ID a symbol is assigned to, if any.
func (b *Book) Assignment(symbol string) (string, bool) {
	id, ok := b.assignments[symbol]
	return id, ok
}

// Assignments returns a copy of the assignment map.
func (b *Book) Assignments() map[string]string {
	return maps.Clone(b.assignments)
}

// AssignedTo returns the symbols currently routed to a goal, sorted.
func (b *Book) AssignedTo(goalID string) []string {
	var symbols []string
	for symbol, id := range b.assignments {
		if id == goalID {
			symbols = append(symbols, symbol)
		}
	}
	slices.Sort(symbols)
	return symbols
}

// Personality returns the last advisor summary of the user's investment
// style, or "".
func (b *Book) Personality() string { return b.personality }

// SetPersonality stores the advisor summary.
func (b *Book) SetPersonality(text string) { b.personality = text }

// Clone returns a deep copy of the book.
func (b *Book) Clone() *Book {
	return &Book{
		goals:       slices.Clone(b.goals),
		assignments: maps.Clone(b.assignments),
		personality: b.personality,
	}
}
