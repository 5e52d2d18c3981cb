package schafkopf

import (
	"schafkopf-server/pkg/deck"
)

// LegalMoves returns the cards in hand that may be played onto the trick.
// The trick holds the cards played so far, led card first; an empty trick
// means the player is leading. The returned slice preserves hand order and
// is never empty for a non-empty hand.
func LegalMoves(hand deck.Hand, trick []*deck.Card, v Variant) deck.Hand {
	// forced play
	if len(hand) <= 1 {
		return hand.Clone()
	}

	searchedAce := v.SearchedAce()
	holdsAce := searchedAce != nil && hand.HasCard(searchedAce)

	if len(trick) == 0 {
		return legalLeads(hand, v, searchedAce, holdsAce)
	}

	led := trick[0]

	if IsTrump(led, v) {
		trumps := filter(hand, func(c *deck.Card) bool {
			return IsTrump(c, v)
		})

		if len(trumps) > 0 {
			return trumps
		}

		// void in trump: anything goes, the searched ace included
		return hand.Clone()
	}

	follow := filter(hand, func(c *deck.Card) bool {
		return !IsTrump(c, v) && c.Suit == led.Suit
	})

	if len(follow) > 0 {
		// the searched suit forces the ace out ("bring the sow")
		if holdsAce && led.Suit == searchedAce.Suit {
			return filter(hand, func(c *deck.Card) bool {
				return c.Equal(searchedAce)
			})
		}

		return follow
	}

	// void in the led suit: discard anything, except the searched ace
	// stays in hand while any other card remains
	if holdsAce {
		return filter(hand, func(c *deck.Card) bool {
			return !c.Equal(searchedAce)
		})
	}

	return hand.Clone()
}

// legalLeads restricts the lead for the searched-ace holder: other cards of
// the searched suit stay locked unless the player holds enough of the suit
// to run away. Leading the ace itself or a different suit is always allowed.
func legalLeads(hand deck.Hand, v Variant, searchedAce *deck.Card, holdsAce bool) deck.Hand {
	if !holdsAce {
		return hand.Clone()
	}

	searchedCount := 0
	for _, c := range hand {
		if !IsTrump(c, v) && c.Suit == searchedAce.Suit {
			searchedCount++
		}
	}

	// the ace plus three or more others
	if searchedCount >= 4 {
		return hand.Clone()
	}

	return filter(hand, func(c *deck.Card) bool {
		if IsTrump(c, v) || c.Suit != searchedAce.Suit {
			return true
		}

		return c.Equal(searchedAce)
	})
}

func filter(hand deck.Hand, keep func(*deck.Card) bool) deck.Hand {
	cards := make(deck.Hand, 0, len(hand))
	for _, c := range hand {
		if keep(c) {
			cards.AddCard(c)
		}
	}

	return cards
}
