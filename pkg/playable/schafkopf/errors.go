package schafkopf

import (
	"errors"
	"fmt"
)

// ErrWrongPhase is an error when an action is attempted in the wrong phase
var ErrWrongPhase = errors.New("action is not valid in the current phase")

// ErrNotPlayersTurn is returned when it's not the player's turn
var ErrNotPlayersTurn = errors.New("not player's turn")

// ErrIllegalCard happens when the player tries to play a card outside the legal-move set
var ErrIllegalCard = errors.New("card is not a legal play")

// ErrCardNotInPlayersHand happens when the player tries to play a card they don't have
var ErrCardNotInPlayersHand = errors.New("card is not in player's hand")

// ErrAlreadyDecided happens when a player tries to decide on doubling twice
var ErrAlreadyDecided = errors.New("player already decided on doubling")

// ErrAlreadyDeclared happens when contra or retour is declared twice
var ErrAlreadyDeclared = errors.New("already declared")

// ErrNotAllowed happens when an ineligible player declares contra, retour, or an early win
var ErrNotAllowed = errors.New("player may not do that")

// ErrInvalidTrick happens when a malformed trick is passed to the resolver
var ErrInvalidTrick = errors.New("a trick requires exactly four distinct cards")

// ErrInvalidBid happens when a bid does not form a valid game announcement
var ErrInvalidBid = errors.New("bid is not valid")

// PlayerCountError is an error on the number of players in the game
type PlayerCountError int

func (p PlayerCountError) Error() string {
	return fmt.Sprintf("schafkopf requires exactly %d players, got %d", numPlayers, int(p))
}
