package goaltrack

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultColor is the accent color assigned to goals created without one.
const DefaultColor = "#388bfd"

// deadlineLayout is the wire format for goal deadlines.
const deadlineLayout = "2006-01-02"

// Goal is a user-defined savings target. A goal is immutable once created,
// except for full deletion through the book.
type Goal struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	TargetAmount Money     `json:"targetAmount"`
	Deadline     string    `json:"deadline,omitempty"` // YYYY-MM-DD, optional
	Color        string    `json:"color"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewGoal creates a goal with a fresh unique ID. Name and a positive
// target amount are required; deadline, when given, must be YYYY-MM-DD.
func NewGoal(name string, target Money, deadline, color string) (Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Goal{}, fmt.Errorf("%w: goal name is required", ErrValidation)
	}
	if !target.IsPositive() {
		return Goal{}, fmt.Errorf("%w: goal target amount must be positive", ErrValidation)
	}
	if deadline != "" {
		if _, err := time.Parse(deadlineLayout, deadline); err != nil {
			return Goal{}, fmt.Errorf("%w: invalid deadline %q, expected YYYY-MM-DD", ErrValidation, deadline)
		}
	}
	if color == "" {
		color = DefaultColor
	}
	return Goal{
		ID:           uuid.NewString(),
		Name:         name,
		TargetAmount: target,
		Deadline:     deadline,
		Color:        color,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// Validate checks the invariants of a goal decoded from an external
// document, where the ID was not generated locally.
func (g Goal) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("%w: goal has no id", ErrValidation)
	}
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("%w: goal %q has no name", ErrValidation, g.ID)
	}
	if !g.TargetAmount.IsPositive() {
		return fmt.Errorf("%w: goal %q target amount must be positive", ErrValidation, g.Name)
	}
	return nil
}

// Horizon is the investment horizon class of a goal, derived from its
// deadline. It drives the diversification rules sent to the advisor.
type Horizon int

const (
	// ShortTerm is a goal due in less than two years.
	ShortTerm Horizon = iota
	// MediumTerm is a goal due in two to five years.
	MediumTerm
	// LongTerm is a goal due in more than five years, or with no deadline.
	LongTerm
)

func (h Horizon) String() string {
	switch h {
	case ShortTerm:
		return "short"
	case MediumTerm:
		return "medium"
	case LongTerm:
		return "long"
	default:
		return "unknown"
	}
}

// Horizon classifies the goal's deadline relative to now.
func (g Goal) Horizon() Horizon { return g.HorizonAt(time.Now()) }

// HorizonAt classifies the goal's deadline relative to the given instant.
// A missing or unparseable deadline is treated as long term.
func (g Goal) HorizonAt(now time.Time) Horizon {
	if g.Deadline == "" {
		return LongTerm
	}
	due, err := time.Parse(deadlineLayout, g.Deadline)
	if err != nil {
		return LongTerm
	}
	years := due.Sub(now).Hours() / (24 * 365.25)
	switch {
	case years < 2:
		return ShortTerm
	case years <= 5:
		return MediumTerm
	default:
		return LongTerm
	}
}
