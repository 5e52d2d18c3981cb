package schafkopf

import (
	"fmt"

	"schafkopf-server/pkg/deck"
)

// VariantType is the kind of game being played for the hand
type VariantType int

// variant constants
const (
	// Sauspiel is the partnership game: the holder of the searched ace is the declarer's partner
	Sauspiel VariantType = iota

	// Hochzeit is the marriage variant, played with an agreed partner
	Hochzeit

	// Wenz is a solo where only the four Unters are trump
	Wenz

	// Geier is a solo where only the four Obers are trump
	Geier

	// SuitSolo is a solo with Obers, Unters, and the announced suit as trump
	SuitSolo
)

func (t VariantType) String() string {
	switch t {
	case Sauspiel:
		return "sauspiel"
	case Hochzeit:
		return "hochzeit"
	case Wenz:
		return "wenz"
	case Geier:
		return "geier"
	case SuitSolo:
		return "solo"
	default:
		panic(fmt.Sprintf("unknown variant type: %d", int(t)))
	}
}

// VariantTypeFromString parses a client-provided variant name
func VariantTypeFromString(s string) (VariantType, bool) {
	switch s {
	case "sauspiel":
		return Sauspiel, true
	case "hochzeit":
		return Hochzeit, true
	case "wenz":
		return Wenz, true
	case "geier":
		return Geier, true
	case "solo":
		return SuitSolo, true
	}

	return 0, false
}

// Variant is an announced game
type Variant struct {
	Type VariantType `json:"type"`

	// Suit is the searched suit for a Sauspiel and the trump suit for a suit solo.
	// It is empty for every other variant.
	Suit deck.Suit `json:"suit,omitempty"`

	// Tout commits a soloist to winning all six tricks
	Tout bool `json:"tout"`
}

func (v Variant) String() string {
	s := v.Type.String()
	if v.Suit != "" {
		s = fmt.Sprintf("%s (%s)", s, v.Suit)
	}

	if v.Tout {
		s += " tout"
	}

	return s
}

// Value orders variants for the bidding: a later bid only overrides an
// earlier one with a strictly greater value.
func (v Variant) Value() int {
	switch v.Type {
	case Sauspiel, Hochzeit:
		return 1
	case Wenz, Geier:
		if v.Tout {
			return 4
		}
		return 2
	case SuitSolo:
		if v.Tout {
			return 5
		}
		return 3
	default:
		panic(fmt.Sprintf("unknown variant type: %d", int(v.Type)))
	}
}

// IsPartnership returns true for the two-versus-two variants
func (v Variant) IsPartnership() bool {
	return v.Type == Sauspiel || v.Type == Hochzeit
}

// IsSolo returns true for the one-versus-three variants
func (v Variant) IsSolo() bool {
	return !v.IsPartnership()
}

// TrumpSuit returns the trump suit for the variant. Wenz and Geier have no
// trump suit and return false.
func (v Variant) TrumpSuit() (deck.Suit, bool) {
	switch v.Type {
	case Sauspiel, Hochzeit:
		return deck.Hearts, true
	case SuitSolo:
		return v.Suit, true
	default:
		return "", false
	}
}

// SearchedAce returns the ace the partner is searched by, or nil for
// anything other than a Sauspiel
func (v Variant) SearchedAce() *deck.Card {
	if v.Type != Sauspiel {
		return nil
	}

	return &deck.Card{Rank: deck.Ace, Suit: v.Suit}
}

// BaseValue returns the tariff for the variant. A tout doubles it.
func (v Variant) BaseValue(opts Options) int {
	var base int
	if v.IsPartnership() {
		base = opts.SauspielValue
	} else {
		base = opts.SoloValue
	}

	if v.Tout {
		base *= 2
	}

	return base
}

// Validate checks the announcement on its own terms (hand-dependent checks
// happen at bid time)
func (v Variant) Validate() error {
	switch v.Type {
	case Sauspiel:
		if v.Tout {
			return ErrInvalidBid
		}

		// hearts are trump, so the heart ace cannot be searched
		if !validSuit(v.Suit) || v.Suit == deck.Hearts {
			return ErrInvalidBid
		}
	case Hochzeit:
		if v.Tout || v.Suit != "" {
			return ErrInvalidBid
		}
	case Wenz, Geier:
		if v.Suit != "" {
			return ErrInvalidBid
		}
	case SuitSolo:
		if !validSuit(v.Suit) {
			return ErrInvalidBid
		}
	default:
		return ErrInvalidBid
	}

	return nil
}

// validSuit guards against suits a client payload may invent
func validSuit(suit deck.Suit) bool {
	for _, s := range deck.Suits() {
		if suit == s {
			return true
		}
	}

	return false
}

// Bid is a player's announcement during the bidding phase. A nil *Bid is a pass.
type Bid struct {
	Variant Variant `json:"variant"`

	// PartnerID is the agreed partner for a Hochzeit and ignored otherwise
	PartnerID int64 `json:"partnerId,omitempty"`
}
