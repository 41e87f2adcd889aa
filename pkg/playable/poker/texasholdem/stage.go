package texasholdem

import (
	"encoding/json"
)

// Stage represents the stage of a hand
type Stage int

// constants for Stage
const (
	StageJoin Stage = iota
	StageInit
	StagePreFlop
	StageFlop
	StageTurn
	StageRiver
	StageShowdown
	StageEnd
)

// BettingStages are the stages with a betting round, in order
var BettingStages = []Stage{StagePreFlop, StageFlop, StageTurn, StageRiver}

// IsBetting returns true if the stage has a betting round
func (s Stage) IsBetting() bool {
	return s >= StagePreFlop && s <= StageRiver
}

// communityCards returns the number of community cards revealed when entering the stage
func (s Stage) communityCards() int {
	switch s {
	case StageFlop:
		return 3
	case StageTurn, StageRiver:
		return 1
	}

	return 0
}

func (s Stage) String() string {
	switch s {
	case StageJoin:
		return "join"
	case StageInit:
		return "init"
	case StagePreFlop:
		return "pre-flop"
	case StageFlop:
		return "flop"
	case StageTurn:
		return "turn"
	case StageRiver:
		return "river"
	case StageShowdown:
		return "showdown"
	case StageEnd:
		return "end"
	}

	return ""
}

// MarshalJSON encodes JSON
func (s Stage) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(s),
		Name: s.String(),
	})
}
