package schafkopf

import (
	"schafkopf-server/pkg/deck"
)

// Player is a seat at the schafkopf table
type Player struct {
	PlayerID int64

	hand deck.Hand

	// startingHand is the dealt hand, kept for the laufende count
	startingHand deck.Hand

	tricksWon [][]*deck.Card
	balance   int

	// laid is true if the player doubled the stake before the bidding
	laid   bool
	hasBid bool
	bid    *Bid
}

// NewPlayer returns a new player
func NewPlayer(pid int64) *Player {
	return &Player{
		PlayerID: pid,
		hand:     make(deck.Hand, 0, handSize),
	}
}

// Hand returns a shallow clone of the player's hand
func (p *Player) Hand() deck.Hand {
	return p.hand.Clone()
}

// Balance returns the player's running balance
func (p *Player) Balance() int {
	return p.balance
}

func (p *Player) addCard(card *deck.Card) {
	p.hand.AddCard(card)
}

// playCard removes the card from the player's hand
func (p *Player) playCard(card *deck.Card) error {
	if !p.hand.Discard(card) {
		return ErrCardNotInPlayersHand
	}

	return nil
}

func (p *Player) wonTrick(cards []*deck.Card) {
	p.tricksWon = append(p.tricksWon, cards)
}

func (p *Player) trickCount() int {
	return len(p.tricksWon)
}

func (p *Player) points() int {
	points := 0
	for _, cards := range p.tricksWon {
		for _, c := range cards {
			points += cardPoints(c)
		}
	}

	return points
}

// newHand resets the per-hand state, keeping identity and balance
func (p *Player) newHand() {
	p.hand = make(deck.Hand, 0, handSize)
	p.startingHand = nil
	p.tricksWon = nil
	p.laid = false
	p.hasBid = false
	p.bid = nil
}
