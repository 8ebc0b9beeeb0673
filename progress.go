package goaltrack

// GoalProgress is the derived funding state of a single goal.
type GoalProgress struct {
	Goal         Goal
	CurrentValue Money
	Percent      Percent
}

// ComputeProgress derives the funded value and percent-complete of every
// goal from the holdings and the assignment map. The result preserves the
// order of goals. It is a pure function: goals with no assigned holdings
// simply report a zero value.
func ComputeProgress(goals []Goal, assignments map[string]string, holdings []Holding) []GoalProgress {
	// Sum the market value of the holdings routed to each goal.
	values := make(map[string]Money, len(goals))
	for _, h := range holdings {
		goalID, ok := assignments[h.Symbol]
		if !ok {
			continue // unassigned, general bucket
		}
		values[goalID] = values[goalID].Add(h.MarketValue())
	}

	report := make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		value := values[g.ID]
		report = append(report, GoalProgress{
			Goal:         g,
			CurrentValue: value,
			Percent:      value.PercentOf(g.TargetAmount),
		})
	}
	return report
}
