package handanalyzer

import (
	"math/rand"
	"testing"

	"github.com/paulhankin/poker"
	"github.com/stretchr/testify/assert"

	"holdem-server/pkg/deck"
)

func TestHandAnalyzer_GetHand(t *testing.T) {
	tests := []struct {
		cards string
		hand  Hand
		ranks []int
	}{
		{"14c,13c,12c,11c,10c,2d,3d", StraightFlush, []int{14}},
		{"9h,8h,7h,6h,5h,14h,13h", StraightFlush, []int{9}},
		{"3c,3d,3h,3s,5c,14d,2d", FourOfAKind, []int{3, 14}},
		{"14c,2c,14d,5c,14h,2d,5h", FullHouse, []int{14, 5}},
		{"3c,3d,3h,4c,4d,4h,5c", FullHouse, []int{4, 3}},
		{"2c,7c,9c,11c,4c,13c,14d", Flush, []int{13, 11, 9, 7, 4}},
		{"10c,9d,8h,7s,6c,6d,2h", Straight, []int{10}},
		{"7c,7d,7h,2c,9d,11h,13s", ThreeOfAKind, []int{7, 13, 11}},
		{"2c,2d,5h,5c,6d,6h,14s", TwoPair, []int{6, 5, 14}},
		{"11c,11d,3h,5c,8d,10h,14s", OnePair, []int{11, 14, 10, 8}},
		{"14c,2c,5d,8d,3h,10s,12c", HighCard, []int{14, 12, 10, 8, 5}},
	}

	for _, test := range tests {
		h := New(deck.CardsFromString(test.cards))
		assert.Equal(t, test.hand, h.GetHand(), test.cards)
		assert.Equal(t, test.ranks, h.GetScore().Ranks, test.cards)
		assert.Equal(t, 5, len(h.GetBestFive()), test.cards)
	}
}

func TestHandAnalyzer_Wheel(t *testing.T) {
	a := assert.New(t)

	h := New(deck.CardsFromString("14c,2d,3h,4s,5c"))
	a.Equal(Straight, h.GetHand())
	a.Equal([]int{5}, h.GetScore().Ranks)
	a.Equal(5<<20|5<<16, h.GetStrength())

	// the wheel loses to a six high straight
	six := New(deck.CardsFromString("2d,3h,4s,5c,6d"))
	a.Greater(six.GetStrength(), h.GetStrength())

	sf := New(deck.CardsFromString("14d,2d,3d,4d,5d,13c,13h"))
	a.Equal(StraightFlush, sf.GetHand())
	a.Equal([]int{5}, sf.GetScore().Ranks)

	// A-K-Q-J-10 is a straight, K-A-2-3-4 is not
	a.Equal(Straight, New(deck.CardsFromString("14c,13d,12h,11s,10c")).GetHand())
	a.Equal(HighCard, New(deck.CardsFromString("13c,14d,2h,3s,4c")).GetHand())
}

func TestHandAnalyzer_Kickers(t *testing.T) {
	a := assert.New(t)

	board := "11c,11d,3h,5c,8d"
	aceKicker := New(deck.CardsFromString(board + ",14s,2h"))
	kingKicker := New(deck.CardsFromString(board + ",13s,2d"))
	a.Greater(aceKicker.GetStrength(), kingKicker.GetStrength())

	// board plays for both
	board = "10c,10d,9h,9c,14d"
	h1 := New(deck.CardsFromString(board + ",2s,3s"))
	h2 := New(deck.CardsFromString(board + ",4s,5h"))
	a.Equal(h1.GetStrength(), h2.GetStrength())
	a.Equal(0, h1.GetScore().Compare(h2.GetScore()))

	// higher second pair wins
	low := New(deck.CardsFromString("13c,13d,4h,4c,2d"))
	high := New(deck.CardsFromString("13h,13s,5h,5c,2h"))
	a.Equal(1, high.GetScore().Compare(low.GetScore()))
	a.Equal(-1, low.GetScore().Compare(high.GetScore()))
}

func TestScore_CategoryOrderingIsTotal(t *testing.T) {
	// strongest hand of each category next to the weakest of the category above it
	tests := []struct {
		strongest string
		weakest   string
	}{
		// high card < pair
		{"14c,13d,12h,11s,9c", "2c,2d,3h,4s,5c"},
		// pair < two pair
		{"14c,14d,13h,12s,11c", "3c,3d,2h,2s,4c"},
		// two pair < trips
		{"14c,14d,13h,13s,12c", "2c,2d,2h,3s,4c"},
		// trips < wheel
		{"14c,14d,14h,13s,12c", "14c,2d,3h,4s,5c"},
		// straight < flush
		{"14c,13d,12h,11s,10c", "2c,3c,4c,5c,7c"},
		// flush < full house
		{"14c,13c,12c,11c,9c", "2c,2d,2h,3s,3c"},
		// full house < quads
		{"14c,14d,14h,13s,13c", "2c,2d,2h,2s,3c"},
		// quads < steel wheel
		{"14c,14d,14h,14s,13c", "14c,2c,3c,4c,5c"},
	}

	for _, test := range tests {
		lower := New(deck.CardsFromString(test.strongest))
		upper := New(deck.CardsFromString(test.weakest))
		assert.Equal(t, lower.GetHand()+1, upper.GetHand(), test.weakest)
		assert.Greater(t, upper.GetStrength(), lower.GetStrength(), test.weakest)
	}
}

func TestScore_CategoryOrderingRandomHands(t *testing.T) {
	minByHand := make(map[Hand]int)
	maxByHand := make(map[Hand]int)

	d := deck.New(42)
	for i := 0; i < 2000; i++ {
		d.Shuffle()
		var five [5]deck.Card
		copy(five[:], d.Cards[:5])
		score := Evaluate5(five)

		v := score.Value()
		if cur, ok := minByHand[score.Hand]; !ok || v < cur {
			minByHand[score.Hand] = v
		}

		if cur, ok := maxByHand[score.Hand]; !ok || v > cur {
			maxByHand[score.Hand] = v
		}
	}

	for hand := OnePair; hand <= StraightFlush; hand++ {
		lo, ok := minByHand[hand]
		if !ok {
			continue
		}

		for below := HighCard; below < hand; below++ {
			if hi, ok := maxByHand[below]; ok {
				assert.Greater(t, lo, hi, "%s vs %s", hand, below)
			}
		}
	}
}

func TestEvaluate7_OrderIndependent(t *testing.T) {
	r := rand.New(rand.NewSource(7)) // nolint:gosec
	d := deck.New(7)

	for i := 0; i < 200; i++ {
		d.Shuffle()
		var seven [7]deck.Card
		copy(seven[:], d.Cards[:7])
		want := Evaluate7(seven)

		r.Shuffle(len(seven), func(i, j int) {
			seven[i], seven[j] = seven[j], seven[i]
		})

		assert.Equal(t, want.Value(), Evaluate7(seven).Value())
	}
}

func toOracle(t *testing.T, cards []deck.Card) *[7]poker.Card {
	t.Helper()

	var out [7]poker.Card
	converted, err := convertCards(cards)
	assert.NoError(t, err)
	copy(out[:], converted)

	return &out
}

func sign(i int) int {
	switch {
	case i > 0:
		return 1
	case i < 0:
		return -1
	}

	return 0
}

func TestEvaluate7_MatchesIndependentEvaluator(t *testing.T) {
	d := deck.New(2024)

	for i := 0; i < 500; i++ {
		d.Shuffle()

		// two seats sharing a board
		var seat0, seat1 [7]deck.Card
		copy(seat0[:2], d.Cards[0:2])
		copy(seat1[:2], d.Cards[2:4])
		copy(seat0[2:], d.Cards[4:9])
		copy(seat1[2:], d.Cards[4:9])

		ours := sign(Evaluate7(seat0).Value() - Evaluate7(seat1).Value())
		theirs := sign(int(poker.Eval7(toOracle(t, seat0[:]))) - int(poker.Eval7(toOracle(t, seat1[:]))))

		assert.Equal(t, theirs, ours, "%s vs %s", deck.Hand(seat0[:]), deck.Hand(seat1[:]))
	}
}

func TestNew_PanicsOnShortHand(t *testing.T) {
	assert.Panics(t, func() {
		New(deck.CardsFromString("2c,3c,4c,5c"))
	})
}

func TestDescribe(t *testing.T) {
	a := assert.New(t)

	desc, err := Describe(deck.CardsFromString("2c,7c,9c,11c,4c,13c,14d"))
	a.NoError(err)
	a.NotEmpty(desc)

	_, err = Describe([]deck.Card{deck.NoCard})
	a.Error(err)
}

func TestHand_String(t *testing.T) {
	a := assert.New(t)
	a.Equal("High card", HighCard.String())
	a.Equal("Straight flush", StraightFlush.String())
	a.Panics(func() { _ = Hand(0).String() })

	b, err := FullHouse.MarshalJSON()
	a.NoError(err)
	a.Equal(`"Full house"`, string(b))
}
