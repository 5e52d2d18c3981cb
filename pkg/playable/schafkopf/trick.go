package schafkopf

import (
	"schafkopf-server/pkg/deck"
)

type playedCard struct {
	card   *deck.Card
	player *Player
}

// trick is one round of four played cards
type trick struct {
	plays  []*playedCard
	winner *Player
}

func newTrick() *trick {
	return &trick{
		plays: make([]*playedCard, 0, numPlayers),
	}
}

func (t *trick) cards() []*deck.Card {
	cards := make([]*deck.Card, len(t.plays))
	for i, pc := range t.plays {
		cards[i] = pc.card
	}

	return cards
}

func (t *trick) isComplete() bool {
	return len(t.plays) == numPlayers
}

// ResolveTrick returns the index (0–3) of the winning play. The first card
// determines the led suit, or that trump was led. Any trump beats any
// non-trump; among trumps the highest strength wins; otherwise the highest
// card of the led suit wins. Ties cannot happen in a 24-card deck.
func ResolveTrick(plays []*deck.Card, v Variant) (int, error) {
	if len(plays) != numPlayers {
		return 0, ErrInvalidTrick
	}

	for i, a := range plays {
		for _, b := range plays[i+1:] {
			if a.Equal(b) {
				return 0, ErrInvalidTrick
			}
		}
	}

	winner := 0
	for i := 1; i < len(plays); i++ {
		if beats(plays[i], plays[winner], plays[0], v) {
			winner = i
		}
	}

	return winner, nil
}

// beats reports whether the card c wins over the current best card,
// given the card that led the trick
func beats(c, best, led *deck.Card, v Variant) bool {
	cs, cTrump := TrumpStrength(c, v)
	bs, bTrump := TrumpStrength(best, v)

	if cTrump && bTrump {
		return cs > bs
	}

	if cTrump != bTrump {
		return cTrump
	}

	// neither is trump: only cards of the led suit can win
	if c.Suit != led.Suit {
		return false
	}

	if best.Suit != led.Suit {
		return true
	}

	return SuitStrength(c) > SuitStrength(best)
}
