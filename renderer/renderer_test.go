package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/goaltrack"
	"github.com/etnz/goaltrack/advisor"
	"github.com/shopspring/decimal"
)

func TestGoalsMarkdown(t *testing.T) {
	goal := goaltrack.Goal{ID: "g1", Name: "Dream Home", TargetAmount: goaltrack.M(100000, "INR"), Deadline: "2030-12-31"}
	progress := []goaltrack.GoalProgress{{
		Goal:         goal,
		CurrentValue: goaltrack.M(50000, "INR"),
		Percent:      50,
	}}

	got := GoalsMarkdown(progress)
	for _, want := range []string{"# Goals", "Dream Home", "50.0%", "2030-12-31"} {
		if !strings.Contains(got, want) {
			t.Errorf("GoalsMarkdown() misses %q:\n%s", want, got)
		}
	}
}

func TestGoalsMarkdownEmpty(t *testing.T) {
	got := GoalsMarkdown(nil)
	if !strings.Contains(got, "No goals yet") {
		t.Errorf("GoalsMarkdown(nil):\n%s", got)
	}
}

func TestHoldingsMarkdownShowsAssignment(t *testing.T) {
	book := goaltrack.NewBook()
	goal := goaltrack.Goal{ID: "g1", Name: "Dream Home", TargetAmount: goaltrack.M(100000, "INR")}
	if err := book.AddGoal(goal); err != nil {
		t.Fatalf("AddGoal() = %v", err)
	}
	if err := book.Assign("INFY", "g1"); err != nil {
		t.Fatalf("Assign() = %v", err)
	}
	holdings := []goaltrack.Holding{
		{Symbol: "INFY", Quantity: decimal.NewFromInt(10), LastPrice: goaltrack.M(1500, "INR")},
		{Symbol: "TCS", Quantity: decimal.NewFromInt(2), LastPrice: goaltrack.M(4000, "INR")},
	}

	got := HoldingsMarkdown(holdings, book)
	if !strings.Contains(got, "| INFY | 10 |") || !strings.Contains(got, "Dream Home") {
		t.Errorf("assigned holding not rendered:\n%s", got)
	}
	if !strings.Contains(got, "| TCS | 2 |") || !strings.Contains(got, "| - |") {
		t.Errorf("unassigned holding not rendered with -:\n%s", got)
	}
}

func TestSuggestionsMarkdown(t *testing.T) {
	book := goaltrack.NewBook()
	goal := goaltrack.Goal{ID: "g1", Name: "Dream Home", TargetAmount: goaltrack.M(100000, "INR")}
	if err := book.AddGoal(goal); err != nil {
		t.Fatalf("AddGoal() = %v", err)
	}
	resp := &advisor.Response{
		Suggestions: []advisor.Suggestion{
			{Stock: "INFY", GoalID: "g1", Reason: "stable", Confidence: advisor.High},
			{Stock: "TCS", GoalName: "Yacht", Reason: "ghost", Confidence: advisor.Low},
		},
		Summary: "steady hand",
		Model:   "test-model",
		Usage:   advisor.Usage{PromptTokens: 10, ResponseTokens: 5, TotalTokens: 15},
	}
	rec := advisor.NewReconciler(book, nil, resp.Suggestions)
	rec.ReportDropped = true

	got := SuggestionsMarkdown(resp, rec)
	for _, want := range []string{"test-model", "steady hand", "| INFY | Dream Home | high |", "Ignored 1", `TCS -> "Yacht"`, "10 prompt + 5 response = 15"} {
		if !strings.Contains(got, want) {
			t.Errorf("SuggestionsMarkdown() misses %q:\n%s", want, got)
		}
	}
}
