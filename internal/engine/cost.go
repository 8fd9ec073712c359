package engine

import "strings"

// Per-token USD rates for a model family. Matched by name substring so new
// dated snapshots of a family pick up the right tier without a table change.
type modelRates struct {
	match      string
	inputRate  float64
	outputRate float64
}

// haiku is the low-cost tier ($3/M in, $15/M out); everything else bills at
// the sonnet/opus tier ($15/M in, $75/M out).
var rateTable = []modelRates{
	{match: "haiku", inputRate: 0.000003, outputRate: 0.000015},
}

var defaultRates = modelRates{inputRate: 0.000015, outputRate: 0.000075}

// EstimateCost computes the USD cost of one summarization call from its
// token usage and model identifier.
func EstimateCost(usage TokenUsage, model string) float64 {
	rates := lookupRates(model)
	return float64(usage.InputTokens)*rates.inputRate + float64(usage.OutputTokens)*rates.outputRate
}

func lookupRates(model string) modelRates {
	name := strings.ToLower(model)
	for _, r := range rateTable {
		if strings.Contains(name, r.match) {
			return r
		}
	}
	return defaultRates
}
