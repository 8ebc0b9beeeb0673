package advisor

import (
	"encoding/json"
	"fmt"

	"github.com/etnz/goaltrack"
)

// promptTemplate instructs the model to diversify assignments by goal
// horizon and to answer with strictly one JSON object. Holdings and goals
// are serialized verbatim.
const promptTemplate = `
You are a financial advisor. Analyze stock holdings and suggest goal assignments.

HOLDINGS: %s
GOALS: %s

Rules:
- Short-term goals (<2 years): stable stocks, ETFs
- Medium-term (2-5 years): mix of growth and stable
- Long-term (5+ years): high-growth stocks
- Diversify across goals

Return ONLY a valid JSON object with the following structure:
{
  "suggestions": [
    {"stock": "SYMBOL", "goalId": "goal_id", "reason": "explanation", "confidence": "high/medium/low"}
  ],
  "personality_summary": "A 1-sentence motivating insight about the user's investment style/goals."
}

Note: Use the "id" of the goal in "goalId".
`

// BuildPrompt renders the advisor prompt for the given portfolio state.
func BuildPrompt(holdings []goaltrack.Holding, goals []goaltrack.Goal) (string, error) {
	jHoldings, err := json.Marshal(holdings)
	if err != nil {
		return "", fmt.Errorf("cannot serialize holdings for the prompt: %w", err)
	}
	jGoals, err := json.Marshal(goals)
	if err != nil {
		return "", fmt.Errorf("cannot serialize goals for the prompt: %w", err)
	}
	return fmt.Sprintf(promptTemplate, jHoldings, jGoals), nil
}
