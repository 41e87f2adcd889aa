package action

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Action represents an action a seat can take
// The numeric values are the wire values of the action.
type Action uint8

// action constants
const (
	Join Action = iota
	Ready
	Leave
	Raise
	Call
	Check
	Fold
)

var identifiers = map[Action]string{
	Join:  "join",
	Ready: "ready",
	Leave: "leave",
	Raise: "raise",
	Call:  "call",
	Check: "check",
	Fold:  "fold",
}

// FromString returns an action for the given string
// Both the identifier ("raise") and the wire value ("3") are accepted.
func FromString(s string) (Action, error) {
	for a, id := range identifiers {
		if id == s {
			return a, nil
		}
	}

	if i, err := strconv.Atoi(s); err == nil && i >= 0 && Action(i).IsValid() {
		return Action(i), nil
	}

	return 0, fmt.Errorf("unknown action for identifier: %s", s)
}

// ID returns the identifier of the action
func (a Action) ID() string {
	if id, ok := identifiers[a]; ok {
		return id
	}

	return strconv.Itoa(int(a))
}

func (a Action) String() string {
	switch a {
	case Join:
		return "Join"
	case Ready:
		return "Ready"
	case Leave:
		return "Leave"
	case Raise:
		return "Raise"
	case Call:
		return "Call"
	case Check:
		return "Check"
	case Fold:
		return "Fold"
	}

	return fmt.Sprintf("Action(%d)", uint8(a))
}

// MarshalJSON encodes the action as its identifier
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.ID())
}

// UnmarshalJSON decodes either an identifier or a wire value
// Unknown wire values are kept so the table can reject them.
func (a *Action) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		if n < 0 || n > 255 {
			return fmt.Errorf("action out of range: %d", n)
		}

		*a = Action(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	parsed, err := FromString(s)
	if err != nil {
		return err
	}

	*a = parsed
	return nil
}

// IsValid returns true if the action is one of the known actions
func (a Action) IsValid() bool {
	_, ok := identifiers[a]
	return ok
}

// IsBet returns true if the action is only permitted during a betting round
func (a Action) IsBet() bool {
	switch a {
	case Raise, Call, Check, Fold:
		return true
	}

	return false
}

// LogMessage returns a message formatted for the log
func (a Action) LogMessage(amount int) string {
	switch a {
	case Join:
		return "joined the table"
	case Ready:
		return "is ready"
	case Leave:
		return "left the table"
	case Fold:
		return "folded"
	case Check:
		return "checked"
	case Call:
		return fmt.Sprintf("called ${%d}", amount)
	case Raise:
		return fmt.Sprintf("raised ${%d}", amount)
	}

	return ""
}
