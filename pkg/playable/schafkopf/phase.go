package schafkopf

import (
	"encoding/json"
	"fmt"
)

// Phase is where the hand currently stands
type Phase int

// phase constants
const (
	PhaseDealing Phase = iota
	PhaseDoubling
	PhaseBidding
	PhasePlaying
	PhaseTrickSettled
	PhaseHandSettled
)

func (p Phase) String() string {
	switch p {
	case PhaseDealing:
		return "dealing"
	case PhaseDoubling:
		return "doubling"
	case PhaseBidding:
		return "bidding"
	case PhasePlaying:
		return "playing"
	case PhaseTrickSettled:
		return "trick-settled"
	case PhaseHandSettled:
		return "hand-settled"
	default:
		panic(fmt.Sprintf("unknown phase: %d", int(p)))
	}
}

// MarshalJSON encodes the phase as its name
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}
