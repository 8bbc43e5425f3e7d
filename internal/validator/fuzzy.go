package validator

import "strings"

// FuzzyContains reports whether lexeme appears in text either as an exact
// substring or via a sliding-window token-set similarity of at least 75.
func FuzzyContains(text, lexeme string) bool {
	lowerText := strings.ToLower(text)
	lowerLexeme := strings.ToLower(lexeme)
	if lowerLexeme == "" {
		return false
	}
	if strings.Contains(lowerText, lowerLexeme) {
		return true
	}
	return slidingWindowTokenSetSimilarity(lowerText, lowerLexeme) >= 75
}

// slidingWindowTokenSetSimilarity slides a window the width of lexeme's
// token count across text's tokens and returns the best token-set
// similarity (0-100) seen across all windows.
func slidingWindowTokenSetSimilarity(text, lexeme string) float64 {
	textTokens := tokenize(text)
	lexTokens := tokenize(lexeme)
	if len(lexTokens) == 0 || len(textTokens) == 0 {
		return 0
	}

	windowSize := len(lexTokens)
	if windowSize > len(textTokens) {
		windowSize = len(textTokens)
	}

	lexSet := toSet(lexTokens)
	best := 0.0
	for start := 0; start+windowSize <= len(textTokens); start++ {
		window := textTokens[start : start+windowSize]
		sim := tokenSetSimilarity(toSet(window), lexSet)
		if sim > best {
			best = sim
		}
	}
	return best
}

// tokenSetSimilarity is a Dice-coefficient-style token-set ratio: twice
// the intersection size over the sum of set sizes, scaled to 0-100.
func tokenSetSimilarity(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 100
	}
	common := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			common++
		}
	}
	return 100 * 2 * float64(common) / float64(len(a)+len(b))
}

func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
