package advisor

import (
	"github.com/etnz/goaltrack"
)

// GoalDirectory resolves goal references against the current book.
// *goaltrack.Book implements it.
type GoalDirectory interface {
	Goal(id string) (goaltrack.Goal, bool)
	GoalByName(name string) (goaltrack.Goal, bool)
}

// Assigner commits an assignment. *goaltrack.Tracker implements it with
// write-through persistence.
type Assigner interface {
	Assign(symbol, goalID string) error
}

type state int

const (
	proposed state = iota
	accepted
	skipped
)

type pendingSuggestion struct {
	Suggestion
	state state
}

// Reconciler validates suggestions against the current goals and turns
// the accepted ones into committed assignments. Each suggestion moves
// from proposed to accepted or skipped, terminal either way.
type Reconciler struct {
	dir      GoalDirectory
	assigner Assigner
	pending  []*pendingSuggestion

	// ReportDropped makes unresolvable suggestions observable through
	// Dropped() instead of silently vanishing from the actionable list.
	ReportDropped bool
}

// NewReconciler builds a reconciler over the given suggestions. The
// suggestions keep their order; resolution happens lazily, at read and
// acceptance time, because the goal store may change underneath.
func NewReconciler(dir GoalDirectory, assigner Assigner, suggestions []Suggestion) *Reconciler {
	r := &Reconciler{dir: dir, assigner: assigner}
	for _, s := range suggestions {
		r.pending = append(r.pending, &pendingSuggestion{Suggestion: s})
	}
	return r
}

// Resolve maps a suggestion's goal reference to a concrete existing goal:
// ID match first, then exact name match. The second return is false when
// neither resolves.
func (r *Reconciler) Resolve(s Suggestion) (goaltrack.Goal, bool) {
	if s.GoalID != "" {
		if g, ok := r.dir.Goal(s.GoalID); ok {
			return g, true
		}
		// Models sometimes put the display name in the ID field.
		if g, ok := r.dir.GoalByName(s.GoalID); ok {
			return g, true
		}
	}
	if s.GoalName != "" {
		if g, ok := r.dir.GoalByName(s.GoalName); ok {
			return g, true
		}
	}
	return goaltrack.Goal{}, false
}

// Pending returns the actionable list: suggestions still proposed whose
// goal reference currently resolves. Unresolvable ones are simply absent.
func (r *Reconciler) Pending() []Suggestion {
	var out []Suggestion
	for _, p := range r.pending {
		if p.state != proposed {
			continue
		}
		if _, ok := r.Resolve(p.Suggestion); !ok {
			continue
		}
		out = append(out, p.Suggestion)
	}
	return out
}

// Dropped returns the proposed suggestions whose goal reference does not
// resolve, when ReportDropped is set. It exists so a caller can surface
// the model inventing goal names instead of hiding it.
func (r *Reconciler) Dropped() []Suggestion {
	if !r.ReportDropped {
		return nil
	}
	var out []Suggestion
	for _, p := range r.pending {
		if p.state != proposed {
			continue
		}
		if _, ok := r.Resolve(p.Suggestion); !ok {
			out = append(out, p.Suggestion)
		}
	}
	return out
}

// find locates the entry for a suggestion by value. The model may emit
// several suggestions for the same stock, so the stock symbol alone does
// not identify an entry. Among equal entries a still-proposed one wins,
// which keeps Accept idempotent without stranding duplicates.
func (r *Reconciler) find(s Suggestion) *pendingSuggestion {
	var terminal *pendingSuggestion
	for _, p := range r.pending {
		if p.Suggestion != s {
			continue
		}
		if p.state == proposed {
			return p
		}
		if terminal == nil {
			terminal = p
		}
	}
	return terminal
}

// Accept resolves the suggestion's goal reference and commits the
// assignment through the assigner. It is idempotent: accepting a
// suggestion that already reached a terminal state changes nothing. An
// unresolvable suggestion is dropped, not an error. Only a failed commit
// is an error, and it leaves the suggestion proposed so it can be
// retried.
func (r *Reconciler) Accept(s Suggestion) error {
	p := r.find(s)
	if p == nil || p.state != proposed {
		return nil
	}
	goal, ok := r.Resolve(p.Suggestion)
	if !ok {
		p.state = skipped
		return nil
	}
	if err := r.assigner.Assign(p.Stock, goal.ID); err != nil {
		return err
	}
	p.state = accepted
	return nil
}

// Skip removes the suggestion from the pending set without touching the
// assignment map.
func (r *Reconciler) Skip(s Suggestion) {
	if p := r.find(s); p != nil && p.state == proposed {
		p.state = skipped
	}
}

// AcceptAll applies Accept to every still-resolvable pending suggestion,
// independently: one failure does not block the others. It returns the
// number of commits and the suggestions that failed.
func (r *Reconciler) AcceptAll() (accepted int, failed []Suggestion) {
	for _, s := range r.Pending() {
		if err := r.Accept(s); err != nil {
			failed = append(failed, s)
			continue
		}
		accepted++
	}
	return accepted, failed
}
