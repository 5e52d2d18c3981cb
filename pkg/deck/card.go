package deck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Suit represents a card suit in a Bavarian deck
type Suit string

// suit constants
const (
	Acorns Suit = "acorns" // Eichel
	Leaves Suit = "leaves" // Gras
	Hearts Suit = "hearts" // Herz
	Bells  Suit = "bells"  // Schellen
)

// Suits returns the four suits in descending priority order (Acorns first)
func Suits() []Suit {
	return []Suit{Acorns, Leaves, Hearts, Bells}
}

// Priority returns the suit priority used to order Obers and Unters among
// themselves. Higher is stronger: Acorns > Leaves > Hearts > Bells.
func (s Suit) Priority() int {
	switch s {
	case Acorns:
		return 4
	case Leaves:
		return 3
	case Hearts:
		return 2
	case Bells:
		return 1
	default:
		panic(fmt.Sprintf("unknown suit: %s", s))
	}
}

// Card is an individual playing card
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

// ranks of the short deck. Jack is the Unter and Queen is the Ober.
const (
	Nine  = 9
	Ten   = 10
	Jack  = 11
	Queen = 12
	King  = 13
	Ace   = 14
)

// Ranks returns the six ranks of the short deck in ascending numeric order
func Ranks() []int {
	return []int{Nine, Ten, Jack, Queen, King, Ace}
}

func (c *Card) String() string {
	var rank string
	switch c.Rank {
	case Jack:
		rank = "U"
	case Queen:
		rank = "O"
	case King:
		rank = "K"
	case Ace:
		rank = "A"
	default:
		rank = strconv.Itoa(c.Rank)
	}

	var suit string
	switch c.Suit {
	case Acorns:
		suit = "♣"
	case Leaves:
		suit = "♠"
	case Hearts:
		suit = "♡"
	case Bells:
		suit = "♢"
	default:
		panic("unknown suit")
	}

	return fmt.Sprintf("%s%s", rank, suit)
}

// Equal returns true if the cards are equal (matches suit and rank)
func (c *Card) Equal(card *Card) bool {
	return c.Suit == card.Suit && c.Rank == card.Rank
}

// Clone returns a clone of the card
func (c *Card) Clone() *Card {
	cp := *c
	return &cp
}

var cardRx = regexp.MustCompile(`(?i)^(9|1[0-4])([albh])\z`)

// CardFromString returns a Card from the string.
// The string must be in the format of <rank><suit> where rank >= 9 and <= 14
// and suit in [albh] (acorns, leaves, bells, hearts)
func CardFromString(s string) *Card {
	if s == "" {
		return nil
	}

	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	rank, err := strconv.Atoi(match[1])
	if err != nil {
		panic(fmt.Sprintf("could not parse card `%s`: %v", s, err))
	}

	var suit Suit
	switch strings.ToLower(match[2]) {
	case "a":
		suit = Acorns
	case "l":
		suit = Leaves
	case "b":
		suit = Bells
	case "h":
		suit = Hearts
	default:
		// should never be hit due to the regexp
		panic("unknown suit")
	}

	return &Card{
		Rank: rank,
		Suit: suit,
	}
}

// CardsFromString will returns a slice of cards
func CardsFromString(s string) []*Card {
	if s == "" {
		return []*Card{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make([]*Card, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(card)
	}

	return cards
}

// CardToString converts a card (Ace of Acorns) to a string (14a)
func CardToString(card *Card) string {
	if card == nil {
		return ""
	}

	var suit string
	switch card.Suit {
	case Acorns:
		suit = "a"
	case Leaves:
		suit = "l"
	case Hearts:
		suit = "h"
	case Bells:
		suit = "b"
	}

	return fmt.Sprintf("%d%s", card.Rank, suit)
}

// CardsToString will convert a slice of cards to a string in the format of 14a,10h,9b,...
func CardsToString(cards []*Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}
