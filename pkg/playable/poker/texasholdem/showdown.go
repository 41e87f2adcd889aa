package texasholdem

import (
	"fmt"

	"holdem-server/pkg/deck"
	"holdem-server/pkg/playable"
	"holdem-server/pkg/playable/poker/handanalyzer"
)

// Result is the outcome of a hand
type Result struct {
	// Winners are the seats that share the pot, clockwise from the dealer's left
	Winners []int `json:"winners"`
	// Awards is the amount each seat won
	Awards [MaxPlayers]int `json:"awards"`
	Pot    int             `json:"pot"`
	// ByFold is true when every other seat folded and no hands were compared
	ByFold bool                       `json:"byFold"`
	Scores map[int]handanalyzer.Score `json:"scores,omitempty"`
}

// Winner returns the first winning seat
func (r Result) Winner() int {
	if len(r.Winners) == 0 {
		return -1
	}

	return r.Winners[0]
}

// FindWinners returns the seats with the best score, clockwise starting left of the dealer
func FindWinners(scores map[int]handanalyzer.Score, dealer int) []int {
	var best *handanalyzer.Score
	for _, score := range scores {
		score := score
		if best == nil || score.Compare(*best) > 0 {
			best = &score
		}
	}

	if best == nil {
		return nil
	}

	winners := make([]int, 0, 1)
	for i := 1; i <= MaxPlayers; i++ {
		id := (dealer + i) % MaxPlayers
		if score, ok := scores[id]; ok && score.Compare(*best) == 0 {
			winners = append(winners, id)
		}
	}

	return winners
}

// scoreSeat evaluates the seat's hole cards with the community cards
func (t *Table) scoreSeat(s *Seat) handanalyzer.Score {
	var cards [7]deck.Card
	copy(cards[:2], s.Cards[:])
	copy(cards[2:], t.community[:])

	return handanalyzer.Evaluate7(cards)
}

// Settle awards the pot and moves the table to END.
// A lone seat left in the hand takes the pot without its cards being evaluated.
// Otherwise the pot is split equally among the best hands and odd chips are
// handed out one at a time starting left of the dealer.
func (t *Table) Settle() Result {
	if t.countLive() >= 2 {
		t.stage = StageShowdown
	}

	result := Result{Pot: t.pot}

	live := make([]*Seat, 0, MaxPlayers)
	for i := 1; i <= MaxPlayers; i++ {
		s := t.seats[(t.dealer+i)%MaxPlayers]
		if s.Status.IsLive() {
			live = append(live, s)
		}
	}

	switch len(live) {
	case 0:
		// nobody left to pay, only possible if every seat left mid-hand
	case 1:
		result.ByFold = true
		result.Winners = []int{live[0].ID}
	default:
		result.Scores = make(map[int]handanalyzer.Score, len(live))
		for _, s := range live {
			result.Scores[s.ID] = t.scoreSeat(s)
		}

		result.Winners = FindWinners(result.Scores, t.dealer)
	}

	if n := len(result.Winners); n > 0 {
		share := t.pot / n
		odd := t.pot % n
		for i, id := range result.Winners {
			award := share
			if i < odd {
				award++
			}

			result.Awards[id] = award
			t.seats[id].Stack += award
		}
	}

	t.stage = StageEnd
	t.logResult(result)

	return result
}

func (t *Table) logResult(result Result) {
	msgs := make([]*playable.LogMessage, 0, len(result.Winners))
	for _, id := range result.Winners {
		if result.ByFold {
			msgs = append(msgs, playable.SimpleLogMessage(id, "{} won ${%d}", result.Awards[id]))
			continue
		}

		score := result.Scores[id]
		cards := append(t.seats[id].Hand(), deck.Hand(t.community[:]).Dealt()...)
		desc := score.Hand.String()
		if d, err := handanalyzer.Describe(cards); err == nil {
			desc = d
		}

		msgs = append(msgs, playable.CardsLogMessage(id, t.seats[id].Hand(), "{} won ${%d} with %s", result.Awards[id], desc))
	}

	if len(msgs) > 0 {
		t.sendLogMessages(msgs...)
	}
}

func (r Result) String() string {
	if r.ByFold {
		return fmt.Sprintf("seat %d wins %d uncontested", r.Winner(), r.Pot)
	}

	return fmt.Sprintf("seats %v split %d", r.Winners, r.Pot)
}
