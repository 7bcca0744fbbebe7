package rules

import "fmt"

// ScoreBandExpressions builds the three rule expressions partitioning the
// model score range into high, medium and low risk bands. The bands are
// mutually exclusive and jointly exhaustive over the score range [0, 1000].
// The expressions are opaque to this client; the service parses and
// evaluates them at prediction time in its own rule language.
func ScoreBandExpressions(scoreVariable string, high, low int) ([3]string, error) {
	var expressions [3]string

	if scoreVariable == "" {
		return expressions, fmt.Errorf("score variable name cannot be empty")
	}
	if high <= low {
		return expressions, fmt.Errorf("high threshold %d must exceed low threshold %d", high, low)
	}

	expressions[0] = fmt.Sprintf("%s > %d", scoreVariable, high)
	expressions[1] = fmt.Sprintf("%s <= %d and %s > %d", scoreVariable, high, scoreVariable, low)
	expressions[2] = fmt.Sprintf("%s <= %d", scoreVariable, low)

	return expressions, nil
}
