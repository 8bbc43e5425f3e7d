package supervisor

import "strings"

// weightedPattern is one scored phrase within an intent's pattern list.
type weightedPattern struct {
	phrase string
	weight int
}

// intentPatterns is the data-driven classification table.
var intentPatterns = map[Intent][]weightedPattern{
	IntentCounting: {
		{"how many", 3}, {"count", 3}, {"number of", 2},
	},
	IntentServices: {
		{"offer", 2}, {"provide", 2}, {"that do", 1},
	},
	IntentRegion: {
		{"region", 2}, {"in the region", 2}, {"by region", 3},
	},
	IntentNearby: {
		{"near", 3}, {"nearest", 3}, {"closest", 3}, {"within", 2}, {"close to", 2},
	},
	IntentCoverageGap: {
		{"coverage gap", 4}, {"coverage", 2}, {"underserved", 2},
	},
	IntentEquipmentVerification: {
		{"actually have", 3}, {"verify", 3}, {"equipment", 2}, {"claims to have", 2},
		{"claim", 2}, {"scanner", 2},
	},
	IntentSuspiciousClaims: {
		{"suspicious", 4}, {"red flag", 4}, {"implausible", 3}, {"fraud", 3},
	},
	IntentCorrelation: {
		{"correlat", 3}, {"relationship between", 3}, {"compare", 1},
	},
	IntentWorkforce: {
		{"doctors", 2}, {"staff", 2}, {"workforce", 3}, {"rotation", 2},
	},
	IntentResourceDistribution: {
		{"distribution", 3}, {"allocate", 2}, {"capacity planning", 4}, {"beds per", 2},
		{"specialist rotation", 5}, {"deploy", 2}, {"where to build", 3},
	},
	IntentDesertDetection: {
		{"medical desert", 4}, {"desert", 3}, {"no facility within", 3},
	},
	IntentNGO: {
		{"ngo", 4}, {"non-governmental", 3}, {"charity", 2},
	},
	IntentGeneralSearch: {
		{"tell me about", 1}, {"find", 1}, {"search", 1},
	},
}

// Classify scores utterance against every intent's pattern list and returns
// the highest-scoring intent, breaking ties by enum order. If nothing
// scores above zero, ok is false.
func Classify(utterance string) (intent Intent, ok bool) {
	lower := strings.ToLower(utterance)

	bestScore := 0
	var best Intent
	found := false
	for _, candidate := range orderedIntents {
		score := 0
		for _, p := range intentPatterns[candidate] {
			if strings.Contains(lower, p.phrase) {
				score += p.weight
			}
		}
		if score > bestScore {
			bestScore = score
			best = candidate
			found = true
		}
	}
	return best, found
}
