package schafkopf

import (
	"sort"

	"schafkopf-server/pkg/deck"
)

// IsTrump returns true if the card is trump under the variant.
// A tout never changes the trump set.
func IsTrump(card *deck.Card, v Variant) bool {
	switch v.Type {
	case Wenz:
		return card.Rank == deck.Jack
	case Geier:
		return card.Rank == deck.Queen
	default:
		if card.Rank == deck.Queen || card.Rank == deck.Jack {
			return true
		}

		trump, _ := v.TrumpSuit()
		return card.Suit == trump
	}
}

// TrumpStrength returns the ordinal strength of a trump card, strictly
// increasing with stronger cards. Non-trump cards return false.
func TrumpStrength(card *deck.Card, v Variant) (int, bool) {
	if !IsTrump(card, v) {
		return 0, false
	}

	switch v.Type {
	case Wenz, Geier:
		return card.Suit.Priority(), true
	default:
		switch card.Rank {
		case deck.Queen:
			return 10 + card.Suit.Priority(), true
		case deck.Jack:
			return 6 + card.Suit.Priority(), true
		case deck.Ace:
			return 4, true
		case deck.King:
			return 3, true
		case deck.Ten:
			return 2, true
		default: // nine
			return 1, true
		}
	}
}

// SuitStrength ranks a non-trump card within its suit: A > K > 10 > O/U > 9.
// Obers and Unters only rank here in a Geier or Wenz, where one of the two
// stays a plain suit card.
func SuitStrength(card *deck.Card) int {
	switch card.Rank {
	case deck.Ace:
		return 6
	case deck.King:
		return 5
	case deck.Ten:
		return 4
	case deck.Queen:
		return 3
	case deck.Jack:
		return 2
	default: // nine
		return 1
	}
}

// TrumpOrder returns the variant's full trump set from strongest to weakest
func TrumpOrder(v Variant) []*deck.Card {
	switch v.Type {
	case Wenz:
		return rankAcrossSuits(deck.Jack)
	case Geier:
		return rankAcrossSuits(deck.Queen)
	default:
		trump, _ := v.TrumpSuit()
		order := make([]*deck.Card, 0, 12)
		order = append(order, rankAcrossSuits(deck.Queen)...)
		order = append(order, rankAcrossSuits(deck.Jack)...)
		for _, rank := range []int{deck.Ace, deck.King, deck.Ten, deck.Nine} {
			order = append(order, &deck.Card{Rank: rank, Suit: trump})
		}

		return order
	}
}

func rankAcrossSuits(rank int) []*deck.Card {
	cards := make([]*deck.Card, 0, 4)
	for _, suit := range deck.Suits() {
		cards = append(cards, &deck.Card{Rank: rank, Suit: suit})
	}

	return cards
}

// SortHand orders a hand for play: trumps first by descending strength,
// then the plain suits grouped in priority order, strongest card first
func SortHand(hand deck.Hand, v Variant) {
	sort.SliceStable(hand, func(i, j int) bool {
		a, b := hand[i], hand[j]

		as, aTrump := TrumpStrength(a, v)
		bs, bTrump := TrumpStrength(b, v)

		if aTrump != bTrump {
			return aTrump
		}

		if aTrump {
			return as > bs
		}

		if a.Suit != b.Suit {
			return a.Suit.Priority() > b.Suit.Priority()
		}

		return SuitStrength(a) > SuitStrength(b)
	})
}
