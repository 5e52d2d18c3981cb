package schafkopf

import (
	"schafkopf-server/pkg/deck"
	"schafkopf-server/pkg/playable"
)

// CanDeclareEarlyWin reports whether the player can claim the remaining
// tricks outright ("Aus is!"). The claim holds when the player is about to
// lead, their whole hand is trump, and no trump still held by another player
// can beat their weakest one.
func (g *Game) CanDeclareEarlyWin(playerID int64) bool {
	if g.phase != PhasePlaying || len(g.currentTrick.plays) > 0 {
		return false
	}

	p, ok := g.idToPlayer[playerID]
	if !ok || g.players[g.currentSeat] != p || len(p.hand) == 0 {
		return false
	}

	v := g.accepted.Variant

	minOwn := 0
	for _, c := range p.hand {
		strength, isTrump := TrumpStrength(c, v)
		if !isTrump {
			return false
		}

		if minOwn == 0 || strength < minOwn {
			minOwn = strength
		}
	}

	played := make(map[deck.Card]bool)
	for _, player := range g.players {
		for _, cards := range player.tricksWon {
			for _, c := range cards {
				played[*c] = true
			}
		}
	}

	for _, c := range TrumpOrder(v) {
		strength, _ := TrumpStrength(c, v)
		if strength < minOwn {
			continue
		}

		if p.hand.HasCard(c) || played[*c] {
			continue
		}

		// an opponent still holds a trump at least as strong
		return false
	}

	return true
}

// DeclareEarlyWin ends the hand for a player whose remaining trumps cannot
// be beaten. The remaining tricks go to the claimant without playing them
// out: every other player gives up their cards in hand order. This does not
// simulate forced discards, which cannot change who wins the tricks.
func (g *Game) DeclareEarlyWin(playerID int64) error {
	if g.phase != PhasePlaying {
		return ErrWrongPhase
	}

	p, err := g.player(playerID)
	if err != nil {
		return err
	}

	if g.players[g.currentSeat] != p {
		return ErrNotPlayersTurn
	}

	if !g.CanDeclareEarlyWin(playerID) {
		return ErrNotAllowed
	}

	seat := g.seatOf(p)
	for g.trickNo < tricksPerHand {
		cards := make([]*deck.Card, 0, numPlayers)
		for i := 0; i < numPlayers; i++ {
			player := g.players[(seat+i)%numPlayers]
			card := player.hand.FirstCard()
			if card == nil {
				panic("hands ran out before the last trick")
			}

			if err := player.playCard(card); err != nil {
				panic(err)
			}

			cards = append(cards, card)
		}

		p.wonTrick(cards)
		g.trickNo++
	}

	g.currentTrick = newTrick()
	g.phase = PhaseHandSettled

	g.sendLogMessages(playable.SimpleLogMessage(playerID, "{} declares the rest of the hand won"))

	return nil
}
