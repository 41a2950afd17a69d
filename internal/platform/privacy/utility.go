package privacy

import (
	"bytes"
	"encoding/json"
)

// Weights of the two utility-score penalty terms.
const (
	recordLossWeight      = 30.0
	informationLossWeight = 70.0
)

// UtilityScore estimates, on a 0-100 scale, how much analytical value
// survived anonymization. It penalizes record-count loss and per-field
// information loss.
//
// Information loss is computed from the first record pair only: a field
// present in both first records counts as lost when its JSON-serialized
// value differs. This is a cheap single-record heuristic, not a
// population-level statistic; it is kept as documented contract behavior
// (see DESIGN.md) rather than generalized to the whole batch.
func UtilityScore(original, anonymized []Record) float64 {
	score := 100.0

	var recordLoss float64
	if len(original) > 0 {
		recordLoss = float64(len(original)-len(anonymized)) / float64(len(original))
	}
	score -= recordLossWeight * recordLoss

	score -= informationLossWeight * informationLoss(original, anonymized)

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func informationLoss(original, anonymized []Record) float64 {
	if len(original) == 0 || len(anonymized) == 0 {
		return 1.0
	}

	first, firstAnon := original[0], anonymized[0]
	var compared, lost int
	for field, origVal := range first {
		anonVal, ok := firstAnon[field]
		if !ok {
			continue
		}
		compared++
		if !jsonEqual(origVal, anonVal) {
			lost++
		}
	}
	if compared == 0 {
		return 0
	}
	return float64(lost) / float64(compared)
}

func jsonEqual(a, b interface{}) bool {
	ab, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ab, bb)
}
