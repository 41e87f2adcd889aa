package deck

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Suit represents a card suit
type Suit int

// suit constants
const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Card is an individual playing card.
// The value packs the rank and suit as (rank-2)<<2 | suit, so the 52 cards are 0..51.
type Card uint8

// NoCard marks an empty card slot
const NoCard Card = 0xFF

// face cards
const (
	Jack    = 11
	Queen   = 12
	King    = 13
	Ace     = 14
	HighAce = Ace
	LowAce  = 1
)

const suitBits = 2

// NewCard returns the card with the given rank (2-14) and suit
func NewCard(rank int, suit Suit) Card {
	if rank < 2 || rank > Ace || suit < Clubs || suit > Spades {
		panic(fmt.Sprintf("invalid card: rank=%d suit=%d", rank, suit))
	}

	return Card((rank-2)<<suitBits | int(suit))
}

// RankOf returns the rank of the card (2-14)
func RankOf(c Card) int {
	return int(c>>suitBits) + 2
}

// SuitOf returns the suit of the card (0-3)
func SuitOf(c Card) Suit {
	return Suit(c & 3)
}

// Rank returns the rank of the card
func (c Card) Rank() int {
	return RankOf(c)
}

// Suit returns the suit of the card
func (c Card) Suit() Suit {
	return SuitOf(c)
}

// IsValid returns true if the card is one of the 52 cards in a deck
func (c Card) IsValid() bool {
	return c < 52
}

func (c Card) String() string {
	if !c.IsValid() {
		return "--"
	}

	var rank string
	switch c.Rank() {
	case Jack:
		rank = "J"
	case Queen:
		rank = "Q"
	case King:
		rank = "K"
	case Ace:
		rank = "A"
	default:
		rank = strconv.Itoa(c.Rank())
	}

	var suit string
	switch c.Suit() {
	case Clubs:
		suit = "♣"
	case Diamonds:
		suit = "♢"
	case Hearts:
		suit = "♡"
	case Spades:
		suit = "♠"
	}

	return fmt.Sprintf("%s%s", rank, suit)
}

// MarshalJSON encodes the card value, or -1 for an empty slot
func (c Card) MarshalJSON() ([]byte, error) {
	if !c.IsValid() {
		return []byte("-1"), nil
	}

	return json.Marshal(int(c))
}

// UnmarshalJSON decodes a card value, any negative number is an empty slot
func (c *Card) UnmarshalJSON(b []byte) error {
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	if v < 0 {
		*c = NoCard
		return nil
	}

	if v >= 52 {
		return fmt.Errorf("invalid card value: %d", v)
	}

	*c = Card(v)
	return nil
}

var cardRx = regexp.MustCompile(`(?i)^([2-9]|1[0-4])([cdhs])\z`)

// CardFromString returns a Card from the string.
// The string must be in the format of <rank><suit> where rank >= 2 and <= 14 and suit in [cdhs]
func CardFromString(s string) Card {
	if s == "" {
		return NoCard
	}

	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	rank, err := strconv.Atoi(match[1])
	if err != nil {
		panic(fmt.Sprintf("could not parse card `%s`: %v", s, err))
	}

	var suit Suit
	switch strings.ToLower(match[2]) {
	case "c":
		suit = Clubs
	case "d":
		suit = Diamonds
	case "h":
		suit = Hearts
	case "s":
		suit = Spades
	default:
		// should never be hit due to the regexp
		panic("unknown suit")
	}

	return NewCard(rank, suit)
}

// CardsFromString will returns a slice of cards
func CardsFromString(s string) []Card {
	if s == "" {
		return []Card{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make([]Card, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(card)
	}

	return cards
}

// CardToString converts a card (Ace of Clubs) to a string (14c)
func CardToString(card Card) string {
	if !card.IsValid() {
		return ""
	}

	var suit string
	switch card.Suit() {
	case Clubs:
		suit = "c"
	case Hearts:
		suit = "h"
	case Diamonds:
		suit = "d"
	case Spades:
		suit = "s"
	}

	return fmt.Sprintf("%d%s", card.Rank(), suit)
}

// CardsToString will convert a slice of cards to a string in the format of 2c,3h,4s,...
func CardsToString(cards []Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}
