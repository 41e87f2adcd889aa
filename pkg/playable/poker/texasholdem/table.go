package texasholdem

import (
	"errors"
	"fmt"

	"holdem-server/pkg/deck"
	"holdem-server/pkg/playable"
)

// MaxPlayers is the number of seats at a table
const MaxPlayers = 6

// Options configures the table
type Options struct {
	// Seats is the number of seats that can be joined (2–6)
	Seats         int
	StartingStack int
	Seed          int64
}

// DefaultOptions returns the default options for a table
func DefaultOptions() Options {
	return Options{
		Seats:         MaxPlayers,
		StartingStack: 100,
		Seed:          0,
	}
}

func validateOptions(opts Options) error {
	if opts.Seats < 2 || opts.Seats > MaxPlayers {
		return SeatCountError(opts.Seats)
	}

	if opts.StartingStack <= 0 {
		return errors.New("starting stack must be > 0")
	}

	return nil
}

// Table is the authoritative state of a game of No-Limit Texas Hold'em
// A Table is not safe for concurrent use. It must be owned by a single goroutine.
type Table struct {
	options    Options
	deck       *deck.Deck
	seats      [MaxPlayers]*Seat
	community  [5]deck.Card
	pot        int
	highestBet int
	dealer     int
	turn       int
	stage      Stage
	logChan    chan []*playable.LogMessage
}

// NewTable returns a new table waiting for seats to join
func NewTable(opts Options) (*Table, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	t := &Table{
		options: opts,
		deck:    deck.New(opts.Seed),
		stage:   StageJoin,
		logChan: make(chan []*playable.LogMessage, 256),
	}

	for i := range t.seats {
		t.seats[i] = newSeat(i)
	}

	t.clearCommunity()
	t.deck.Shuffle()

	return t, nil
}

// LogChan returns the channel the table sends hand log messages to
func (t *Table) LogChan() <-chan []*playable.LogMessage {
	return t.logChan
}

func (t *Table) sendLogMessages(msgs ...*playable.LogMessage) {
	select {
	case t.logChan <- msgs:
	default:
		// nobody is draining the log
	}
}

// Options returns the options the table was created with
func (t *Table) Options() Options {
	return t.options
}

// Stage returns the current stage
func (t *Table) Stage() Stage {
	return t.stage
}

// Turn returns the seat on turn
func (t *Table) Turn() int {
	return t.turn
}

// Dealer returns the dealer seat
func (t *Table) Dealer() int {
	return t.dealer
}

// Pot returns the size of the pot
func (t *Table) Pot() int {
	return t.pot
}

// HighestBet returns the highest bet of the current betting round
func (t *Table) HighestBet() int {
	return t.highestBet
}

// Seat returns a copy of the seat
func (t *Table) Seat(id int) (Seat, error) {
	if id < 0 || id >= MaxPlayers {
		return Seat{}, ErrInvalidSeat
	}

	return *t.seats[id], nil
}

// Community returns the community card slots
func (t *Table) Community() [5]deck.Card {
	return t.community
}

// DeckHash returns the hash of the current deck order
func (t *Table) DeckHash() string {
	return t.deck.HashCode()
}

// Join takes a seat. A joined seat sits out until it is ready.
func (t *Table) Join(id int) error {
	if id < 0 || id >= t.options.Seats {
		return ErrInvalidSeat
	}

	if t.stage != StageJoin {
		return ErrWrongStage
	}

	s := t.seats[id]
	if s.Joined {
		return ErrSeatTaken
	}

	s.Joined = true
	s.Stack = t.options.StartingStack
	s.Status = StatusFolded

	t.sendLogMessages(playable.SimpleLogMessage(id, "{} joined the table"))
	return nil
}

// JoinedCount returns the number of seats that have joined
func (t *Table) JoinedCount() int {
	n := 0
	for _, s := range t.seats {
		if s.Joined {
			n++
		}
	}

	return n
}

// BeginIntake moves the table to INIT. Every seat still at the table sits
// out until it confirms it is ready for the next hand.
func (t *Table) BeginIntake() {
	t.stage = StageInit
	for _, s := range t.seats {
		if s.Status != StatusLeft {
			s.Status = StatusFolded
		}
	}
}

// SeatsAtTable returns the ids of every seat that has not left, in seat order
func (t *Table) SeatsAtTable() []int {
	ids := make([]int, 0, MaxPlayers)
	for _, s := range t.seats {
		if s.Status != StatusLeft {
			ids = append(ids, s.ID)
		}
	}

	return ids
}

// CountStatus returns the number of seats with any of the given statuses
func (t *Table) CountStatus(statuses ...SeatStatus) int {
	n := 0
	for _, s := range t.seats {
		for _, status := range statuses {
			if s.Status == status {
				n++
				break
			}
		}
	}

	return n
}

// countLive returns the number of seats still contesting the pot
func (t *Table) countLive() int {
	return t.CountStatus(StatusActive, StatusAllIn)
}

// NextActiveSeat returns the first active seat clockwise after the given seat.
// The given seat is considered last. Returns -1 if no seat is active.
func (t *Table) NextActiveSeat(after int) int {
	for i := 1; i <= MaxPlayers; i++ {
		id := (after + i) % MaxPlayers
		if t.seats[id].Status == StatusActive {
			return id
		}
	}

	return -1
}

// StartHand moves the button and resets the table for a new hand.
// It returns ErrNotEnoughPlayers if fewer than two seats are active.
func (t *Table) StartHand() error {
	if t.stage != StageInit {
		return ErrWrongStage
	}

	if n := t.CountStatus(StatusActive); n < 2 {
		return fmt.Errorf("%w: %d active", ErrNotEnoughPlayers, n)
	}

	t.dealer = t.NextActiveSeat(t.dealer)
	t.resetHand()

	t.sendLogMessages(playable.SimpleLogMessage(t.dealer, "{} has the button"))
	return nil
}

// resetHand clears all hand-local state. Stacks and statuses carry over.
func (t *Table) resetHand() {
	t.deck.Shuffle()
	t.clearCommunity()
	t.pot = 0
	t.highestBet = 0
	for _, s := range t.seats {
		s.newHand()
	}

	t.turn = t.NextActiveSeat(t.dealer)
}

func (t *Table) clearCommunity() {
	for i := range t.community {
		t.community[i] = deck.NoCard
	}
}

// draw deals the next card. Running out of cards is a programming error.
func (t *Table) draw() deck.Card {
	card, err := t.deck.Draw()
	if err != nil {
		panic(fmt.Sprintf("cannot deal: %v", err))
	}

	return card
}

// DealStage enters a betting stage and deals its cards.
// Pre-flop deals two hole cards to every active seat, the other stages
// reveal their community cards.
func (t *Table) DealStage(stage Stage) {
	if !stage.IsBetting() {
		panic(fmt.Sprintf("cannot deal stage %s", stage))
	}

	t.stage = stage
	if stage == StagePreFlop {
		for i := 0; i < 2; i++ {
			for _, s := range t.seats {
				if s.Status == StatusActive {
					s.Cards[i] = t.draw()
				}
			}
		}

		return
	}

	revealed := 0
	for _, c := range t.community {
		if c.IsValid() {
			revealed++
		}
	}

	n := stage.communityCards()
	for i := revealed; i < revealed+n; i++ {
		t.community[i] = t.draw()
	}

	t.sendLogMessages(playable.CardsLogMessage(playable.NoSeat, deck.Hand(t.community[:]), "dealt the %s", stage))
}

// State returns a copy of the table state
func (t *Table) State() State {
	st := State{
		Stage:      t.stage,
		Pot:        t.pot,
		HighestBet: t.highestBet,
		Dealer:     t.dealer,
		Turn:       t.turn,
		Community:  t.community,
	}

	for i, s := range t.seats {
		st.Seats[i] = *s
	}

	return st
}

// State is an immutable copy of the table
type State struct {
	Stage      Stage            `json:"stage"`
	Pot        int              `json:"pot"`
	HighestBet int              `json:"highestBet"`
	Dealer     int              `json:"dealer"`
	Turn       int              `json:"turn"`
	Community  [5]deck.Card     `json:"community"`
	Seats      [MaxPlayers]Seat `json:"seats"`
}
