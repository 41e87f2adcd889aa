package handanalyzer

import (
	"fmt"
	"sort"

	"holdem-server/pkg/deck"
)

// rankBits is the width of each packed tiebreak rank
const rankBits = 4

// categoryShift positions the hand category above the five packed ranks
const categoryShift = 5 * rankBits

// Score is the structured strength of a five-card hand.
// Ranks holds the tiebreak ranks, most significant first.
type Score struct {
	Hand  Hand  `json:"hand"`
	Ranks []int `json:"ranks"`
}

// Value flattens the score into a single integer.
// Higher is strictly better and equal values tie.
func (s Score) Value() int {
	v := int(s.Hand) << categoryShift
	for i := 0; i < 5 && i < len(s.Ranks); i++ {
		v |= s.Ranks[i] << ((4 - i) * rankBits)
	}

	return v
}

// Compare returns 1 if s beats o, -1 if o beats s, and 0 on a tie
func (s Score) Compare(o Score) int {
	if s.Hand != o.Hand {
		if s.Hand > o.Hand {
			return 1
		}

		return -1
	}

	for i := 0; i < len(s.Ranks) && i < len(o.Ranks); i++ {
		if s.Ranks[i] != o.Ranks[i] {
			if s.Ranks[i] > o.Ranks[i] {
				return 1
			}

			return -1
		}
	}

	return 0
}

func (s Score) String() string {
	return fmt.Sprintf("%s %v", s.Hand, s.Ranks)
}

// rankGroup is a set of cards sharing the same rank
type rankGroup struct {
	rank  int
	count int
}

// Evaluate5 scores exactly five cards
func Evaluate5(cards [5]deck.Card) Score {
	counts := make(map[int]int, 5)
	flush := true
	for i, card := range cards {
		counts[card.Rank()]++
		if i > 0 && card.Suit() != cards[0].Suit() {
			flush = false
		}
	}

	groups := make([]rankGroup, 0, len(counts))
	for rank, count := range counts {
		groups = append(groups, rankGroup{rank: rank, count: count})
	}

	// larger groups first, then higher ranks
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}

		return groups[i].rank > groups[j].rank
	})

	ranks := make([]int, len(groups))
	for i, g := range groups {
		ranks[i] = g.rank
	}

	if len(groups) == 5 {
		if high, ok := straightHigh(ranks); ok {
			if flush {
				return Score{Hand: StraightFlush, Ranks: []int{high}}
			}

			return Score{Hand: Straight, Ranks: []int{high}}
		}

		if flush {
			return Score{Hand: Flush, Ranks: ranks}
		}

		return Score{Hand: HighCard, Ranks: ranks}
	}

	switch {
	case groups[0].count == 4:
		return Score{Hand: FourOfAKind, Ranks: ranks}
	case groups[0].count == 3 && groups[1].count == 2:
		return Score{Hand: FullHouse, Ranks: ranks}
	case groups[0].count == 3:
		return Score{Hand: ThreeOfAKind, Ranks: ranks}
	case groups[1].count == 2:
		return Score{Hand: TwoPair, Ranks: ranks}
	default:
		return Score{Hand: OnePair, Ranks: ranks}
	}
}

// Evaluate7 returns the best score of the 21 five-card subsets of seven cards
func Evaluate7(cards [7]deck.Card) Score {
	return New(cards[:]).GetScore()
}

// HandAnalyzer finds the best five-card hand within five to seven cards
type HandAnalyzer struct {
	cards    deck.Hand
	bestFive deck.Hand
	score    Score
}

// New will return a new HandAnalyzer instance
// Panics if fewer than five cards are given.
func New(cards []deck.Card) *HandAnalyzer {
	if len(cards) < 5 {
		panic(fmt.Sprintf("hand analyzer requires at least five cards, got %d", len(cards)))
	}

	// clone to prevent modifying original
	sortedCards := deck.Hand(cards).Clone()
	sort.Sort(sort.Reverse(sortedCards))

	h := &HandAnalyzer{cards: sortedCards}
	h.analyzeHand()

	return h
}

// analyzeHand scores every five-card subset and keeps the strongest.
// Cards are sorted high to low, so the first subset found for a given
// score is the one reported by GetBestFive.
func (h *HandAnalyzer) analyzeHand() {
	n := len(h.cards)
	var five [5]deck.Card
	found := false

	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						five[0], five[1], five[2], five[3], five[4] = h.cards[a], h.cards[b], h.cards[c], h.cards[d], h.cards[e]
						score := Evaluate5(five)
						if !found || score.Compare(h.score) > 0 {
							found = true
							h.score = score
							h.bestFive = deck.Hand(five[:]).Clone()
						}
					}
				}
			}
		}
	}
}

// GetHand will return the best possible hand the cards can make
func (h *HandAnalyzer) GetHand() Hand {
	return h.score.Hand
}

// GetScore returns the structured score of the best hand
func (h *HandAnalyzer) GetScore() Score {
	return h.score
}

// GetStrength returns the strength of the hand
func (h *HandAnalyzer) GetStrength() int {
	return h.score.Value()
}

// GetBestFive returns the cards that make up the best hand
func (h *HandAnalyzer) GetBestFive() deck.Hand {
	return h.bestFive.Clone()
}
