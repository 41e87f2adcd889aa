package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"

	"holdem-server/internal/rng"
)

// Size is the number of cards in a deck
const Size = 52

// ErrEndOfDeck is an error when Draw() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// Deck represents a playing deck.
// Cards are never removed; a cursor tracks the next card to deal.
type Deck struct {
	Cards [Size]Card `json:"cards"`
	next  int
	seed  int64
	rng   rng.Generator
}

// New returns a new, ordered deck of cards seeded with seed.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New(seed int64) *Deck {
	d := &Deck{}
	d.Init(seed)
	return d
}

// Init rebuilds the deck in order and reseeds the shuffle generator
func (d *Deck) Init(seed int64) {
	d.seed = seed
	d.rng = rng.NewSeeded(seed)
	d.buildDeck()
}

// SetGenerator replaces the shuffle generator without touching the card order
func (d *Deck) SetGenerator(g rng.Generator) {
	d.rng = g
}

func (d *Deck) buildDeck() {
	i := 0
	for rank := 2; rank <= Ace; rank++ {
		for suit := Clubs; suit <= Spades; suit++ {
			d.Cards[i] = NewCard(rank, suit)
			i++
		}
	}

	d.next = 0
}

// Shuffle permutes the current order in place and rewinds the cursor.
// The permutation only depends on the generator's prior output, so the
// generator is never reseeded here.
func (d *Deck) Shuffle() {
	for j := len(d.Cards) - 1; j > 0; j-- {
		i := d.rng.Intn(j + 1)

		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}

	d.next = 0
}

// Reset rewinds the cursor to the top of the deck
func (d *Deck) Reset() {
	d.next = 0
}

// GetSeed returns the seed used to initialize the deck
func (d *Deck) GetSeed() int64 {
	return d.seed
}

// HashCode returns a SHA1 hash code of the deck.
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.Cards {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil)[:])
}

// Draw will draw the next card
// If there are no more cards, an ErrEndOfDeck is returned along with NoCard.
func (d *Deck) Draw() (Card, error) {
	if d.next >= len(d.Cards) {
		return NoCard, ErrEndOfDeck
	}

	card := d.Cards[d.next]
	d.next++

	return card, nil
}

// CanDraw returns true if there are {want} cards left in the deck
func (d *Deck) CanDraw(want int) bool {
	return d.CardsLeft() >= want
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards) - d.next
}

// NextCard returns the cursor position
func (d *Deck) NextCard() int {
	return d.next
}
