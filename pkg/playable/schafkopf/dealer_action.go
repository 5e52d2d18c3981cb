package schafkopf

import "time"

// dealerAction is an action the "dealer" takes on its own, such as clearing
// a finished trick off the table
type dealerAction int

const (
	dealerActionAdvanceTrick dealerAction = iota
	dealerActionSettleHand
	dealerActionClearGame
)

type pendingDealerAction struct {
	Action       dealerAction
	ExecuteAfter time.Time
}
