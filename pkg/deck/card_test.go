package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCard_String(t *testing.T) {
	assert.Equal(t, "A♣", (&Card{Rank: Ace, Suit: Acorns}).String())
	assert.Equal(t, "O♠", (&Card{Rank: Queen, Suit: Leaves}).String())
	assert.Equal(t, "U♡", (&Card{Rank: Jack, Suit: Hearts}).String())
	assert.Equal(t, "K♢", (&Card{Rank: King, Suit: Bells}).String())
	assert.Equal(t, "10♡", (&Card{Rank: Ten, Suit: Hearts}).String())
	assert.Equal(t, "9♢", (&Card{Rank: Nine, Suit: Bells}).String())
}

func TestCardFromString(t *testing.T) {
	assert.Nil(t, CardFromString(""))
	assert.Equal(t, &Card{Rank: Ace, Suit: Acorns}, CardFromString("14a"))
	assert.Equal(t, &Card{Rank: Queen, Suit: Leaves}, CardFromString("12l"))
	assert.Equal(t, &Card{Rank: Nine, Suit: Hearts}, CardFromString("9h"))
	assert.Equal(t, &Card{Rank: Ten, Suit: Bells}, CardFromString("10B"))

	assert.Panics(t, func() {
		// sevens do not exist in the short deck
		CardFromString("7a")
	})

	assert.Panics(t, func() {
		CardFromString("14c")
	})
}

func TestCardsFromString(t *testing.T) {
	assert.Equal(t, []*Card{}, CardsFromString(""))

	cards := CardsFromString("14h,12a,9b")
	assert.Equal(t, 3, len(cards))
	assert.Equal(t, &Card{Rank: Ace, Suit: Hearts}, cards[0])
	assert.Equal(t, &Card{Rank: Queen, Suit: Acorns}, cards[1])
	assert.Equal(t, &Card{Rank: Nine, Suit: Bells}, cards[2])

	assert.Equal(t, "14h,12a,9b", CardsToString(cards))
}

func TestCard_Equal(t *testing.T) {
	a := &Card{Rank: Ace, Suit: Hearts}
	b := &Card{Rank: Ace, Suit: Hearts}
	c := &Card{Rank: Ace, Suit: Bells}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))

	clone := a.Clone()
	assert.True(t, a.Equal(clone))
	assert.False(t, a == clone)
}

func TestSuit_Priority(t *testing.T) {
	assert.Greater(t, Acorns.Priority(), Leaves.Priority())
	assert.Greater(t, Leaves.Priority(), Hearts.Priority())
	assert.Greater(t, Hearts.Priority(), Bells.Priority())

	assert.Panics(t, func() {
		Suit("spades").Priority()
	})
}
