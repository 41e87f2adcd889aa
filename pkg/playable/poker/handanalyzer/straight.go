package handanalyzer

import "holdem-server/pkg/deck"

// straightHigh returns the high card of a five-card straight.
// ranks must be five distinct ranks sorted descending. The wheel (A-5-4-3-2)
// is ranked by its five.
func straightHigh(ranks []int) (int, bool) {
	if len(ranks) != 5 {
		return 0, false
	}

	if ranks[0] == deck.Ace && ranks[1] == 5 && ranks[2] == 4 && ranks[3] == 3 && ranks[4] == 2 {
		return 5, true
	}

	for i := 1; i < len(ranks); i++ {
		if ranks[i-1]-ranks[i] != 1 {
			return 0, false
		}
	}

	return ranks[0], true
}
