package bots

import (
	"schafkopf-server/internal/rng"
	"schafkopf-server/pkg/deck"
	"schafkopf-server/pkg/playable/schafkopf"
)

// Bot plays one seat of a schafkopf hand with simple rules. It has no
// memory of past tricks; it only looks at the current game state.
type Bot struct {
	playerID int64
	rng      rng.Generator
}

// New returns a bot for the player
func New(playerID int64, generator rng.Generator) *Bot {
	return &Bot{
		playerID: playerID,
		rng:      generator,
	}
}

// Act performs at most one pending action for the bot's seat and reports
// whether it did anything
func (b *Bot) Act(g *schafkopf.Game) (bool, error) {
	switch g.Phase() {
	case schafkopf.PhaseDoubling:
		return b.decideDouble(g)
	case schafkopf.PhaseBidding:
		return b.placeBid(g)
	case schafkopf.PhasePlaying:
		return b.playCard(g)
	}

	return false, nil
}

func (b *Bot) decideDouble(g *schafkopf.Game) (bool, error) {
	for _, p := range g.GameState().Players {
		if p.PlayerID == b.playerID && p.DecidedDouble {
			return false, nil
		}
	}

	return true, g.DecideDouble(b.playerID, b.rng.Intn(8) == 0)
}

func (b *Bot) placeBid(g *schafkopf.Game) (bool, error) {
	turn, ok := g.CurrentTurn()
	if !ok || turn != b.playerID {
		return false, nil
	}

	return true, g.PlaceBid(b.playerID, b.chooseBid(g))
}

// chooseBid picks an announcement for the bot's hand, or nil to pass. The
// last bidder announces a wenz rather than let the hand be thrown in, so a
// simulation always gets to play cards.
func (b *Bot) chooseBid(g *schafkopf.Game) *schafkopf.Bid {
	state := g.GameState()

	if state.Variant == nil && b.rng.Intn(3) == 0 {
		if bid := b.chooseSauspiel(g); bid != nil {
			return bid
		}
	}

	if state.Variant == nil {
		bidsPlaced := 0
		for _, p := range state.Players {
			if p.HasBid {
				bidsPlaced++
			}
		}

		if bidsPlaced == len(state.Players)-1 {
			return &schafkopf.Bid{Variant: schafkopf.Variant{Type: schafkopf.Wenz}}
		}
	}

	return nil
}

// chooseSauspiel finds a suit the bot may search, if any
func (b *Bot) chooseSauspiel(g *schafkopf.Game) *schafkopf.Bid {
	hand := b.hand(g)

	for _, suit := range []deck.Suit{deck.Acorns, deck.Leaves, deck.Bells} {
		v := schafkopf.Variant{Type: schafkopf.Sauspiel, Suit: suit}

		hasSuit, hasAce := false, false
		for _, c := range hand {
			if schafkopf.IsTrump(c, v) || c.Suit != suit {
				continue
			}

			if c.Rank == deck.Ace {
				hasAce = true
			} else {
				hasSuit = true
			}
		}

		if hasSuit && !hasAce {
			return &schafkopf.Bid{Variant: v}
		}
	}

	return nil
}

func (b *Bot) playCard(g *schafkopf.Game) (bool, error) {
	if g.CanDeclareEarlyWin(b.playerID) {
		return true, g.DeclareEarlyWin(b.playerID)
	}

	if b.maybeContra(g) {
		return true, nil
	}

	legal := g.PlayerLegalMoves(b.playerID)
	if len(legal) == 0 {
		return false, nil
	}

	return true, g.PlayCard(b.playerID, legal[b.rng.Intn(len(legal))])
}

// maybeContra occasionally doubles the declarer during the first trick
func (b *Bot) maybeContra(g *schafkopf.Game) bool {
	state := g.GameState()
	if state.Contra || state.TrickNo > 0 || state.DeclarerID == b.playerID || state.PartnerID == b.playerID {
		return false
	}

	if b.rng.Intn(20) != 0 {
		return false
	}

	// the unrevealed sauspiel partner only finds out here that they cannot
	if err := g.DeclareContra(b.playerID); err != nil {
		return false
	}

	return true
}

func (b *Bot) hand(g *schafkopf.Game) deck.Hand {
	state, err := g.GetPlayerState(b.playerID)
	if err != nil {
		return nil
	}

	data, ok := state.Data.(*schafkopf.Response)
	if !ok {
		return nil
	}

	return data.Hand
}
