// Package renderer turns tracker state into markdown reports for the
// terminal commands.
package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/goaltrack"
	"github.com/etnz/goaltrack/advisor"
)

// GoalsMarkdown renders the goal progress report.
func GoalsMarkdown(progress []goaltrack.GoalProgress) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Goals\n\n")
	if len(progress) == 0 {
		fmt.Fprintln(&b, "No goals yet. Create one with `gt add-goal`.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Goal | Target | Current | Progress | Deadline |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|:---|")
	for _, p := range progress {
		deadline := p.Goal.Deadline
		if deadline == "" {
			deadline = "-"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			p.Goal.Name,
			p.Goal.TargetAmount,
			p.CurrentValue,
			p.Percent,
			deadline,
		)
	}
	return b.String()
}

// HoldingsMarkdown renders the holdings with their current assignment.
// Unassigned holdings show a "-" in the goal column.
func HoldingsMarkdown(holdings []goaltrack.Holding, book *goaltrack.Book) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Holdings\n\n")
	if len(holdings) == 0 {
		fmt.Fprintln(&b, "No holdings in the linked account.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Symbol | Qty | Last Price | Value | Goal |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|:---|")
	total := goaltrack.M(0, "")
	for _, h := range holdings {
		value := h.MarketValue()
		total = total.Add(value)
		goalName := "-"
		if id, ok := book.Assignment(h.Symbol); ok {
			if g, found := book.Goal(id); found {
				goalName = g.Name
			}
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			h.Symbol,
			h.Quantity,
			h.LastPrice,
			value,
			goalName,
		)
	}
	fmt.Fprintf(&b, "\nTotal value: %s\n", total)
	return b.String()
}

// SuggestionsMarkdown renders an advisor response as an actionable report.
func SuggestionsMarkdown(resp *advisor.Response, r *advisor.Reconciler) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Suggestions (%s)\n\n", resp.Model)
	if resp.Summary != "" {
		fmt.Fprintf(&b, "> %s\n\n", resp.Summary)
	}

	pending := r.Pending()
	if len(pending) == 0 {
		fmt.Fprintln(&b, "No actionable suggestions.")
	} else {
		fmt.Fprintln(&b, "| Stock | Goal | Confidence | Reason |")
		fmt.Fprintln(&b, "|:---|:---|:---:|:---|")
		for _, s := range pending {
			goal, _ := r.Resolve(s)
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", s.Stock, goal.Name, s.Confidence, s.Reason)
		}
	}

	if dropped := r.Dropped(); len(dropped) > 0 {
		fmt.Fprintf(&b, "\nIgnored %d suggestion(s) referencing unknown goals:\n\n", len(dropped))
		for _, s := range dropped {
			ref := s.GoalName
			if ref == "" {
				ref = s.GoalID
			}
			fmt.Fprintf(&b, "- %s -> %q\n", s.Stock, ref)
		}
	}

	if u := resp.Usage; u.TotalTokens > 0 {
		fmt.Fprintf(&b, "\nTokens: %d prompt + %d response = %d\n",
			u.PromptTokens, u.ResponseTokens, u.TotalTokens)
	}
	return b.String()
}
