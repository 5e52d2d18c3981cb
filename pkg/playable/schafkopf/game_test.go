package schafkopf

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"schafkopf-server/pkg/deck"
)

func testGame(t *testing.T) *Game {
	t.Helper()

	opts := DefaultOptions()
	opts.Seed = 1

	g, err := NewGame(logrus.StandardLogger(), []int64{1, 2, 3, 4}, 0, opts)
	assert.NoError(t, err)

	return g
}

// setHands replaces the dealt hands, seat by seat
func setHands(g *Game, hands ...string) {
	for i, h := range hands {
		g.players[i].hand = deck.CardsFromString(h)
		g.players[i].startingHand = g.players[i].hand.Clone()
	}
}

func skipDoubling(t *testing.T, g *Game) {
	t.Helper()

	for _, id := range []int64{1, 2, 3, 4} {
		assert.NoError(t, g.DecideDouble(id, false))
	}
}

func card(s string) *deck.Card {
	return deck.CardFromString(s)
}

func TestNewGame(t *testing.T) {
	g, err := NewGame(logrus.StandardLogger(), []int64{1, 2, 3}, 0, DefaultOptions())
	assert.Nil(t, g)
	assert.EqualError(t, err, "schafkopf requires exactly 4 players, got 3")

	g, err = NewGame(logrus.StandardLogger(), []int64{1, 2, 3, 4}, 4, DefaultOptions())
	assert.Nil(t, g)
	assert.EqualError(t, err, "dealer seat out of range")

	g = testGame(t)
	assert.Equal(t, PhaseDoubling, g.Phase())
	assert.Equal(t, 0, g.DealerSeat())

	// the deal partitions the full deck into four hands of six
	seen := make(map[deck.Card]bool)
	for _, p := range g.players {
		assert.Equal(t, handSize, len(p.hand))
		assert.Equal(t, p.hand.String(), p.startingHand.String())
		for _, c := range p.hand {
			seen[*c] = true
		}
	}
	assert.Equal(t, deck.Size, len(seen))
}

func TestGame_DecideDouble(t *testing.T) {
	g := testGame(t)

	assert.Equal(t, ErrWrongPhase, g.PlaceBid(2, nil))

	assert.EqualError(t, g.DecideDouble(99, true), "player not found with that ID")

	assert.NoError(t, g.DecideDouble(1, true))
	assert.Equal(t, ErrAlreadyDecided, g.DecideDouble(1, false))
	assert.True(t, g.players[0].laid)

	assert.NoError(t, g.DecideDouble(2, false))
	assert.NoError(t, g.DecideDouble(3, false))
	assert.Equal(t, PhaseDoubling, g.Phase())

	assert.NoError(t, g.DecideDouble(4, false))
	assert.Equal(t, PhaseBidding, g.Phase())

	// bidding starts left of the dealer
	turn, ok := g.CurrentTurn()
	assert.True(t, ok)
	assert.Equal(t, int64(2), turn)

	assert.Equal(t, ErrWrongPhase, g.DecideDouble(1, false))
}

func TestGame_PlaceBid_validation(t *testing.T) {
	g := testGame(t)
	setHands(g,
		"14a,10a,9a,11a,14h,10h",
		"13a,12a,14l,13l,11l,9h",
		"14b,13b,10b,9b,12l,11h",
		"10l,9l,12h,12b,11b,13h",
	)
	skipDoubling(t, g)

	// seat 1 bids first
	assert.Equal(t, ErrNotPlayersTurn, g.PlaceBid(1, nil))

	// a sauspiel cannot search hearts, and cannot be a tout
	assert.Equal(t, ErrInvalidBid, g.PlaceBid(2, &Bid{Variant: Variant{Type: Sauspiel, Suit: deck.Hearts}}))
	assert.Equal(t, ErrInvalidBid, g.PlaceBid(2, &Bid{Variant: Variant{Type: Sauspiel, Suit: deck.Bells, Tout: true}}))

	// seat 1 holds no bells, so it cannot search the bell sow
	assert.Equal(t, ErrInvalidBid, g.PlaceBid(2, &Bid{Variant: Variant{Type: Sauspiel, Suit: deck.Bells}}))

	// a wenz never announces a suit
	assert.Equal(t, ErrInvalidBid, g.PlaceBid(2, &Bid{Variant: Variant{Type: Wenz, Suit: deck.Acorns}}))

	// a suit solo requires one, and an invented suit is no suit
	assert.Equal(t, ErrInvalidBid, g.PlaceBid(2, &Bid{Variant: Variant{Type: SuitSolo}}))
	assert.Equal(t, ErrInvalidBid, g.PlaceBid(2, &Bid{Variant: Variant{Type: SuitSolo, Suit: deck.Suit("purple")}}))

	// a hochzeit needs a partner at the table
	assert.Equal(t, ErrInvalidBid, g.PlaceBid(2, &Bid{Variant: Variant{Type: Hochzeit}, PartnerID: 2}))
	assert.Equal(t, ErrInvalidBid, g.PlaceBid(2, &Bid{Variant: Variant{Type: Hochzeit}, PartnerID: 99}))

	// the bidder cannot search their own ace
	g2 := testGame(t)
	setHands(g2,
		"13a,12a,14l,13l,11l,9h",
		"14a,10a,9a,11a,14h,10h",
		"14b,13b,10b,9b,12l,11h",
		"10l,9l,12h,12b,11b,13h",
	)
	skipDoubling(t, g2)
	assert.Equal(t, ErrInvalidBid, g2.PlaceBid(2, &Bid{Variant: Variant{Type: Sauspiel, Suit: deck.Acorns}}))
}

func TestGame_PlaceBid_override(t *testing.T) {
	g := testGame(t)
	skipDoubling(t, g)

	assert.NoError(t, g.PlaceBid(2, &Bid{Variant: Variant{Type: Hochzeit}, PartnerID: 4}))
	assert.Equal(t, Hochzeit, g.accepted.Variant.Type)

	// a wenz outranks the hochzeit
	assert.NoError(t, g.PlaceBid(3, &Bid{Variant: Variant{Type: Wenz}}))
	assert.Equal(t, Wenz, g.accepted.Variant.Type)
	assert.Equal(t, int64(3), g.declarer.PlayerID)

	// a suit solo outranks the wenz
	assert.NoError(t, g.PlaceBid(4, &Bid{Variant: Variant{Type: SuitSolo, Suit: deck.Bells}}))
	assert.Equal(t, SuitSolo, g.accepted.Variant.Type)

	// an equal-value bid does not take the game away
	assert.NoError(t, g.PlaceBid(1, &Bid{Variant: Variant{Type: SuitSolo, Suit: deck.Leaves}}))
	assert.Equal(t, deck.Bells, g.accepted.Variant.Suit)
	assert.Equal(t, int64(4), g.declarer.PlayerID)

	// the declarer leads the first trick
	assert.Equal(t, PhasePlaying, g.Phase())
	turn, ok := g.CurrentTurn()
	assert.True(t, ok)
	assert.Equal(t, int64(4), turn)
}

func TestGame_PlaceBid_allPass(t *testing.T) {
	g := testGame(t)
	assert.NoError(t, g.DecideDouble(1, true))
	assert.NoError(t, g.DecideDouble(2, false))
	assert.NoError(t, g.DecideDouble(3, false))
	assert.NoError(t, g.DecideDouble(4, false))

	for _, id := range []int64{2, 3, 4, 1} {
		assert.NoError(t, g.PlaceBid(id, nil))
	}

	// thrown together: a brand-new hand with the button advanced
	assert.Equal(t, PhaseDoubling, g.Phase())
	assert.Equal(t, 1, g.DealerSeat())
	assert.Nil(t, g.accepted)
	assert.Equal(t, 0, g.bidCount)
	assert.Equal(t, 0, len(g.doubleDecisions))

	seen := make(map[deck.Card]bool)
	for _, p := range g.players {
		assert.Equal(t, handSize, len(p.hand))
		assert.False(t, p.laid)
		assert.False(t, p.hasBid)
		for _, c := range p.hand {
			seen[*c] = true
		}
	}
	assert.Equal(t, deck.Size, len(seen))
}

// drainMessages empties the game's log channel and returns the message texts
func drainMessages(g *Game) []string {
	var messages []string
	for {
		select {
		case msgs := <-g.LogChan():
			for _, m := range msgs {
				messages = append(messages, m.Message)
			}
		default:
			return messages
		}
	}
}

func TestGame_redealAnnouncesTheNewDeal(t *testing.T) {
	g := testGame(t)
	skipDoubling(t, g)
	drainMessages(g)

	for _, id := range []int64{2, 3, 4, 1} {
		assert.NoError(t, g.PlaceBid(id, nil))
	}

	// the announcement must land on the channel that survives the redeal
	messages := drainMessages(g)
	assert.Contains(t, messages, "All four players passed; the cards are thrown together")
	assert.Contains(t, messages, "A new hand of Schafkopf has been dealt")
}

// a complete sauspiel, scripted card by card
func TestGame_fullHand(t *testing.T) {
	g := testGame(t)
	setHands(g,
		"14a,10a,9a,11a,14h,10h", // seat 0 holds the searched sow
		"13a,12a,14l,13l,11l,9h", // seat 1 declares
		"14b,13b,10b,9b,12l,11h",
		"10l,9l,12h,12b,11b,13h",
	)

	assert.NoError(t, g.DecideDouble(1, true))
	assert.NoError(t, g.DecideDouble(2, false))
	assert.NoError(t, g.DecideDouble(3, false))
	assert.NoError(t, g.DecideDouble(4, false))

	assert.NoError(t, g.PlaceBid(2, &Bid{Variant: Variant{Type: Sauspiel, Suit: deck.Acorns}}))
	assert.NoError(t, g.PlaceBid(3, nil))
	assert.NoError(t, g.PlaceBid(4, nil))
	assert.NoError(t, g.PlaceBid(1, nil))

	assert.Equal(t, PhasePlaying, g.Phase())
	turn, _ := g.CurrentTurn()
	assert.Equal(t, int64(2), turn)

	// trick 1: the declarer pulls trump
	assert.Equal(t, ErrWrongPhase, g.AdvanceTrick())
	assert.Equal(t, ErrNotPlayersTurn, g.PlayCard(3, card("12l")))
	assert.NoError(t, g.PlayCard(2, card("12a")))
	assert.Equal(t, ErrCardNotInPlayersHand, g.PlayCard(3, card("9h")))
	assert.Equal(t, ErrIllegalCard, g.PlayCard(3, card("14b"))) // must follow trump

	assert.NoError(t, g.DeclareContra(3))
	assert.Equal(t, ErrAlreadyDeclared, g.DeclareContra(4))
	assert.Equal(t, ErrNotAllowed, g.DeclareRetour(4)) // defense cannot retour
	assert.NoError(t, g.DeclareRetour(2))
	assert.Equal(t, ErrAlreadyDeclared, g.DeclareRetour(1))

	assert.NoError(t, g.PlayCard(3, card("12l")))
	assert.NoError(t, g.PlayCard(4, card("12h")))
	assert.NoError(t, g.PlayCard(1, card("10h")))

	assert.Equal(t, PhaseTrickSettled, g.Phase())
	assert.Equal(t, 1, g.trickNo)
	assert.Equal(t, int64(2), g.lastTrick.winner.PlayerID)
	assert.Equal(t, ErrWrongPhase, g.PlayCard(2, card("14l")))
	assert.Equal(t, ErrWrongPhase, g.Settle())
	assert.NoError(t, g.AdvanceTrick())

	// trick 2: leaves hold
	assert.NoError(t, g.PlayCard(2, card("14l")))
	assert.NoError(t, g.PlayCard(3, card("9b")))
	assert.NoError(t, g.PlayCard(4, card("10l")))
	assert.NoError(t, g.PlayCard(1, card("9a")))
	assert.NoError(t, g.AdvanceTrick())

	// trick 3: the declarer's side crosses 61 points
	assert.NoError(t, g.PlayCard(2, card("13l")))
	assert.NoError(t, g.PlayCard(3, card("10b")))
	assert.NoError(t, g.PlayCard(4, card("9l")))
	assert.NoError(t, g.PlayCard(1, card("10a")))
	assert.NoError(t, g.AdvanceTrick())

	// trick 4: the searched suit comes out, the sow is forced
	assert.Nil(t, g.partner)
	assert.NoError(t, g.PlayCard(2, card("13a")))
	assert.NoError(t, g.PlayCard(3, card("11h")))
	assert.NoError(t, g.PlayCard(4, card("11b")))
	assert.Equal(t, ErrIllegalCard, g.PlayCard(1, card("11a"))) // the sow must be played
	assert.NoError(t, g.PlayCard(1, card("14a")))

	// playing the sow reveals the partner
	assert.NotNil(t, g.partner)
	assert.Equal(t, int64(1), g.partner.PlayerID)

	assert.Equal(t, int64(3), g.lastTrick.winner.PlayerID)
	assert.NoError(t, g.AdvanceTrick())

	// trick 5
	assert.NoError(t, g.PlayCard(3, card("14b")))
	assert.NoError(t, g.PlayCard(4, card("12b")))
	assert.NoError(t, g.PlayCard(1, card("11a")))
	assert.NoError(t, g.PlayCard(2, card("9h")))
	assert.Equal(t, int64(4), g.lastTrick.winner.PlayerID)
	assert.NoError(t, g.AdvanceTrick())

	// trick 6
	assert.NoError(t, g.PlayCard(4, card("13h")))
	assert.NoError(t, g.PlayCard(1, card("14h")))
	assert.NoError(t, g.PlayCard(2, card("11l")))
	assert.NoError(t, g.PlayCard(3, card("13b")))

	assert.Equal(t, PhaseHandSettled, g.Phase())
	assert.Equal(t, tricksPerHand, g.trickNo)

	assert.NoError(t, g.Settle())
	assert.Equal(t, ErrWrongPhase, g.Settle())

	result := g.Result()
	assert.True(t, result.DeclarerWon)
	assert.Equal(t, 85, result.PointsDeclarer)
	assert.Equal(t, 35, result.PointsDefense)
	assert.False(t, result.Schneider)
	assert.False(t, result.Schwarz)
	assert.Equal(t, 0, result.Laufende)
	assert.Equal(t, int64(2), result.DeclarerID)
	assert.Equal(t, int64(1), result.PartnerID)
	assert.Equal(t, 4, result.ContraFactor)
	assert.Equal(t, 1, result.LayCount)

	// 20 base × 4 contra/retour × 2 for the lay
	assert.Equal(t, 160, result.Value)

	sum := 0
	for _, payout := range result.Payouts {
		sum += payout
	}
	assert.Equal(t, 0, sum)

	assert.Equal(t, 160, g.players[0].Balance())
	assert.Equal(t, 160, g.players[1].Balance())
	assert.Equal(t, -160, g.players[2].Balance())
	assert.Equal(t, -160, g.players[3].Balance())
}

func TestGame_toutShortCircuit(t *testing.T) {
	g := testGame(t)

	g.accepted = &Bid{Variant: Variant{Type: Wenz, Tout: true}}
	g.declarer = g.players[0]
	g.phase = PhasePlaying
	g.currentSeat = 0
	g.currentTrick = newTrick()
	g.trickNo = 4
	setHands(g, "11a,9h", "14h,13h", "10h,9b", "12h,9a")

	assert.NoError(t, g.PlayCard(1, card("9h")))
	assert.NoError(t, g.PlayCard(2, card("14h")))
	assert.NoError(t, g.PlayCard(3, card("10h")))
	assert.NoError(t, g.PlayCard(4, card("12h")))

	// a defender took a trick: the tout fails on the spot
	assert.Equal(t, PhaseHandSettled, g.Phase())
	assert.Equal(t, 5, g.trickNo)

	assert.NoError(t, g.Settle())

	result := g.Result()
	assert.False(t, result.DeclarerWon)
	assert.False(t, result.ToutWon)
	assert.True(t, result.Schneider)
	assert.True(t, result.Schwarz)

	// 50 base × 2 tout × 2 schneider × 2 schwarz
	assert.Equal(t, 100, result.BaseValue)
	assert.Equal(t, 400, result.Value)

	// the soloist pays all three
	assert.Equal(t, -1200, result.Payouts[1])
	assert.Equal(t, 400, result.Payouts[2])
	assert.Equal(t, 400, result.Payouts[3])
	assert.Equal(t, 400, result.Payouts[4])
}

func TestGame_contraWindow(t *testing.T) {
	g := testGame(t)
	assert.Equal(t, ErrWrongPhase, g.DeclareContra(2))

	g.accepted = &Bid{Variant: Variant{Type: Sauspiel, Suit: deck.Acorns}}
	g.declarer = g.players[0]
	g.phase = PhasePlaying
	g.currentSeat = 0
	g.currentTrick = newTrick()
	setHands(g, "12a,12l", "14a,9b", "14l,9l", "14h,9h")

	// seat 1 holds the searched sow: the unrevealed partner cannot contra
	g.trickNo = 1
	assert.Equal(t, ErrNotAllowed, g.DeclareContra(2))
	assert.NoError(t, g.DeclareContra(3))

	// the window shuts once the second trick is underway
	g.contra = false
	g.trickNo = 2
	assert.Equal(t, ErrNotAllowed, g.DeclareContra(3))

	g.trickNo = 1
	g.currentTrick.plays = append(g.currentTrick.plays, &playedCard{card: card("12a"), player: g.players[0]})
	assert.Equal(t, ErrNotAllowed, g.DeclareContra(3))
}
