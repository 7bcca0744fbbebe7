package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreBandExpressions(t *testing.T) {
	expressions, err := ScoreBandExpressions("$transaction_model_insightscore", 800, 500)

	assert.NoError(t, err)
	assert.Equal(t, "$transaction_model_insightscore > 800", expressions[0])
	assert.Equal(t, "$transaction_model_insightscore <= 800 and $transaction_model_insightscore > 500", expressions[1])
	assert.Equal(t, "$transaction_model_insightscore <= 500", expressions[2])
}

func TestScoreBandExpressionsAreDeterministic(t *testing.T) {
	first, err := ScoreBandExpressions("$score", 800, 500)
	assert.NoError(t, err)

	second, err := ScoreBandExpressions("$score", 800, 500)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScoreBandExpressionsRejectsEmptyVariable(t *testing.T) {
	_, err := ScoreBandExpressions("", 800, 500)

	assert.Error(t, err)
}

func TestScoreBandExpressionsRejectsInvertedThresholds(t *testing.T) {
	_, err := ScoreBandExpressions("$score", 500, 800)
	assert.Error(t, err)

	_, err = ScoreBandExpressions("$score", 500, 500)
	assert.Error(t, err)
}

// The three bands must partition the score range: every score matches
// exactly one expression when evaluated with detectorpl comparison
// semantics.
func TestScoreBandsPartitionScoreRange(t *testing.T) {
	high, low := 800, 500

	for score := 0; score <= 1000; score++ {
		matches := 0
		if score > high {
			matches++
		}
		if score <= high && score > low {
			matches++
		}
		if score <= low {
			matches++
		}
		assert.Equal(t, 1, matches, "score %d must match exactly one band", score)
	}
}
