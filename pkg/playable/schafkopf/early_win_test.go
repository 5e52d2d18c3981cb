package schafkopf

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"schafkopf-server/pkg/deck"
)

// earlyWinGame puts a sauspiel into the playing phase with four tricks done
// and seat 0 on lead
func earlyWinGame(t *testing.T, hands ...string) *Game {
	t.Helper()

	g := testGame(t)
	g.accepted = &Bid{Variant: Variant{Type: Sauspiel, Suit: deck.Acorns}}
	g.declarer = g.players[0]
	g.phase = PhasePlaying
	g.currentSeat = 0
	g.currentTrick = newTrick()
	g.trickNo = 4
	setHands(g, hands...)

	return g
}

func TestGame_CanDeclareEarlyWin(t *testing.T) {
	t.Run("top trumps held", func(t *testing.T) {
		g := earlyWinGame(t, "12a,12l", "14a,9b", "14l,9l", "14h,9h")
		assert.True(t, g.CanDeclareEarlyWin(1))
	})

	t.Run("a higher trump is still out", func(t *testing.T) {
		g := earlyWinGame(t, "12l,12h", "12a,9b", "14l,9l", "14h,9h")
		assert.False(t, g.CanDeclareEarlyWin(1))

		// once the ober of acorns has fallen, the claim holds
		g.players[2].tricksWon = [][]*deck.Card{deck.CardsFromString("12a,9a,10a,13a")}
		g.players[1].hand = deck.CardsFromString("14a,9b")
		assert.True(t, g.CanDeclareEarlyWin(1))
	})

	t.Run("a plain card in hand", func(t *testing.T) {
		g := earlyWinGame(t, "12a,14b", "14a,9b", "14l,9l", "14h,9h")
		assert.False(t, g.CanDeclareEarlyWin(1))
	})

	t.Run("not on lead", func(t *testing.T) {
		g := earlyWinGame(t, "12a,12l", "14a,9b", "14l,9l", "14h,9h")
		assert.False(t, g.CanDeclareEarlyWin(2))

		g.currentTrick.plays = append(g.currentTrick.plays, &playedCard{card: card("12a"), player: g.players[0]})
		assert.False(t, g.CanDeclareEarlyWin(1))
	})

	t.Run("wrong phase", func(t *testing.T) {
		g := earlyWinGame(t, "12a,12l", "14a,9b", "14l,9l", "14h,9h")
		g.phase = PhaseTrickSettled
		assert.False(t, g.CanDeclareEarlyWin(1))
	})
}

func TestGame_DeclareEarlyWin(t *testing.T) {
	g := earlyWinGame(t, "12a,12l", "14a,9b", "14l,9l", "14h,9h")

	assert.Equal(t, ErrNotPlayersTurn, g.DeclareEarlyWin(2))
	assert.NoError(t, g.DeclareEarlyWin(1))

	// the claimant took the remaining two tricks and the hand is over
	assert.Equal(t, PhaseHandSettled, g.Phase())
	assert.Equal(t, tricksPerHand, g.trickNo)
	assert.Equal(t, 2, g.players[0].trickCount())
	assert.Equal(t, 0, len(g.players[0].hand))
	assert.Equal(t, 0, len(g.players[3].hand))

	// both aces went to the claimant
	assert.Equal(t, 3+3+11+11+11, g.players[0].points())

	assert.Equal(t, ErrWrongPhase, g.DeclareEarlyWin(1))
}

func TestGame_DeclareEarlyWin_notAllowed(t *testing.T) {
	g := earlyWinGame(t, "12l,12h", "12a,9b", "14l,9l", "14h,9h")
	assert.Equal(t, ErrNotAllowed, g.DeclareEarlyWin(1))
	assert.Equal(t, PhasePlaying, g.Phase())
	assert.Equal(t, 2, len(g.players[0].hand))
}
