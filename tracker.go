package goaltrack

import "fmt"

// Tracker pairs a book with its store and guarantees read-modify-write-
// through atomicity per operation: every mutation is applied to a copy,
// written through the store, and only then made visible. When the write
// fails the in-memory book is left exactly as it was.
//
// There is a single logical session per user, so the tracker needs no
// locking discipline beyond this commit protocol.
type Tracker struct {
	book  *Book
	store Store
}

// NewTracker wraps an existing book.
func NewTracker(book *Book, store Store) *Tracker {
	return &Tracker{book: book, store: store}
}

// OpenTracker loads the persisted book from the store.
func OpenTracker(store Store) (*Tracker, error) {
	book, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Tracker{book: book, store: store}, nil
}

// Book returns the current committed book for reading.
func (t *Tracker) Book() *Book { return t.book }

// Goal looks up a goal in the current committed book.
func (t *Tracker) Goal(id string) (Goal, bool) { return t.book.Goal(id) }

// GoalByName looks up a goal by display name in the current committed book.
func (t *Tracker) GoalByName(name string) (Goal, bool) { return t.book.GoalByName(name) }

// commit applies the mutation to a clone, persists it, and swaps it in.
func (t *Tracker) commit(mutate func(*Book) error) error {
	next := t.book.Clone()
	if err := mutate(next); err != nil {
		return err
	}
	if err := t.store.Save(next); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	t.book = next
	return nil
}

// AddGoal commits a new goal.
func (t *Tracker) AddGoal(g Goal) error {
	return t.commit(func(b *Book) error { return b.AddGoal(g) })
}

// DeleteGoal commits the removal of a goal and, atomically from the
// caller's perspective, of every assignment pointing to it.
func (t *Tracker) DeleteGoal(id string) error {
	return t.commit(func(b *Book) error {
		if !b.DeleteGoal(id) {
			return fmt.Errorf("%w: unknown goal %q", ErrValidation, id)
		}
		return nil
	})
}

// Assign commits the routing of a symbol to a goal.
func (t *Tracker) Assign(symbol, goalID string) error {
	return t.commit(func(b *Book) error { return b.Assign(symbol, goalID) })
}

// Unassign commits the removal of a symbol's assignment.
func (t *Tracker) Unassign(symbol string) error {
	return t.commit(func(b *Book) error { b.Unassign(symbol); return nil })
}

// SetPersonality commits the advisor's personality summary.
func (t *Tracker) SetPersonality(text string) error {
	return t.commit(func(b *Book) error { b.SetPersonality(text); return nil })
}

// Replace commits a whole new book, used by import.
func (t *Tracker) Replace(book *Book) error {
	return t.commit(func(b *Book) error {
		*b = *book.Clone()
		return nil
	})
}
