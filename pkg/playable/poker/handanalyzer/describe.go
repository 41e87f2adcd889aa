package handanalyzer

import (
	"fmt"

	"github.com/paulhankin/poker"

	"holdem-server/pkg/deck"
)

// Describe returns a human readable description of the best hand within the cards
// e.g., "straight, queen high"
func Describe(cards []deck.Card) (string, error) {
	converted, err := convertCards(cards)
	if err != nil {
		return "", err
	}

	return poker.Describe(converted)
}

func convertCards(cards []deck.Card) ([]poker.Card, error) {
	converted := make([]poker.Card, len(cards))
	for i, card := range cards {
		c, err := convertCard(card)
		if err != nil {
			return nil, err
		}

		converted[i] = c
	}

	return converted, nil
}

func convertCard(card deck.Card) (poker.Card, error) {
	if !card.IsValid() {
		return 0, fmt.Errorf("cannot convert card %d", card)
	}

	var suit poker.Suit
	switch card.Suit() {
	case deck.Clubs:
		suit = poker.Club
	case deck.Diamonds:
		suit = poker.Diamond
	case deck.Hearts:
		suit = poker.Heart
	case deck.Spades:
		suit = poker.Spade
	}

	// aces are low in the library
	rank := card.Rank()
	if rank == deck.Ace {
		rank = 1
	}

	return poker.MakeCard(suit, poker.Rank(rank))
}
