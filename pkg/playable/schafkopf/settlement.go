package schafkopf

import (
	"fmt"
	"strings"

	"schafkopf-server/pkg/deck"
)

// cardPoints returns the point value of a card toward the 120 in the deck
func cardPoints(c *deck.Card) int {
	switch c.Rank {
	case deck.Ace:
		return 11
	case deck.Ten:
		return 10
	case deck.King:
		return 4
	case deck.Queen:
		return 3
	case deck.Jack:
		return 2
	default: // nine
		return 0
	}
}

// Result contains the settlement of a completed hand
type Result struct {
	Variant    Variant `json:"variant"`
	DeclarerID int64   `json:"declarerId"`

	// PartnerID is 0 for solo variants
	PartnerID int64 `json:"partnerId,omitempty"`

	DeclarerWon    bool `json:"declarerWon"`
	PointsDeclarer int  `json:"pointsDeclarer"`
	PointsDefense  int  `json:"pointsDefense"`

	Schneider bool `json:"schneider"`
	Schwarz   bool `json:"schwarz"`

	// ToutWon is only meaningful when the variant is a tout
	ToutWon bool `json:"toutWon"`

	// Laufende is the paid run of top trumps; runs under three count as zero
	Laufende int `json:"laufende"`

	BaseValue    int `json:"baseValue"`
	ContraFactor int `json:"contraFactor"`

	// LayCount is the number of players who laid; each doubles the value
	LayCount int `json:"layCount"`

	// Value is what a single defender pays or receives
	Value int `json:"value"`

	// Payouts are the signed balance changes per player; they sum to zero
	Payouts map[int64]int `json:"payouts"`
}

// calculateResult runs the settlement for a hand in the HandSettled phase
func (g *Game) calculateResult() *Result {
	v := g.accepted.Variant

	var partner *Player
	if v.IsPartnership() {
		partner = g.sidePartner()
	}

	onSide := func(p *Player) bool {
		return p == g.declarer || (partner != nil && p == partner)
	}

	pointsDeclarer, pointsDefense := 0, 0
	tricksDeclarer, tricksDefense := 0, 0
	for _, p := range g.players {
		if onSide(p) {
			pointsDeclarer += p.points()
			tricksDeclarer += p.trickCount()
		} else {
			pointsDefense += p.points()
			tricksDefense += p.trickCount()
		}
	}

	var won bool
	if v.Tout {
		won = tricksDeclarer == tricksPerHand
	} else {
		won = pointsDeclarer >= pointsToWin
	}

	var schneider, schwarz bool
	if won {
		schneider = pointsDefense < schneiderThreshold
		schwarz = tricksDefense == 0
	} else {
		schneider = pointsDeclarer < schneiderThreshold
		schwarz = tricksDeclarer == 0
	}

	laufende := g.countLaufende(onSide)
	if laufende < laufendeMin {
		laufende = 0
	}

	value := v.BaseValue(g.options)
	if schneider {
		value *= 2
	}
	if schwarz {
		value *= 2
	}
	if laufende > 0 {
		value += laufende * g.options.LaufendeValue
	}

	contraFactor := 1
	if g.contra {
		contraFactor = 2
	}
	if g.retour {
		contraFactor = 4
	}
	value *= contraFactor

	layCount := 0
	for _, p := range g.players {
		if p.laid {
			layCount++
		}
	}
	value <<= layCount

	payouts := make(map[int64]int)
	for _, p := range g.players {
		amount := value
		if p == g.declarer && v.IsSolo() {
			amount = 3 * value
		}

		if onSide(p) != won {
			amount = -amount
		}

		payouts[p.PlayerID] = amount
	}

	var partnerID int64
	if partner != nil {
		partnerID = partner.PlayerID
	}

	return &Result{
		Variant:        v,
		DeclarerID:     g.declarer.PlayerID,
		PartnerID:      partnerID,
		DeclarerWon:    won,
		PointsDeclarer: pointsDeclarer,
		PointsDefense:  pointsDefense,
		Schneider:      schneider,
		Schwarz:        schwarz,
		ToutWon:        v.Tout && won,
		Laufende:       laufende,
		BaseValue:      v.BaseValue(g.options),
		ContraFactor:   contraFactor,
		LayCount:       layCount,
		Value:          value,
		Payouts:        payouts,
	}
}

// sidePartner resolves the declarer's partner for the settlement. For a
// Sauspiel the dealt searched ace decides, whether or not it was ever
// revealed during play.
func (g *Game) sidePartner() *Player {
	if g.partner != nil {
		return g.partner
	}

	ace := g.accepted.Variant.SearchedAce()
	if ace == nil {
		return nil
	}

	for _, p := range g.players {
		if p != g.declarer && p.startingHand.HasCard(ace) {
			return p
		}
	}

	return nil
}

// countLaufende walks the trump order from the top and counts how long the
// declarer's side uniformly held, or uniformly lacked, each successive trump
// in their dealt hands
func (g *Game) countLaufende(onSide func(*Player) bool) int {
	order := TrumpOrder(g.accepted.Variant)

	holds := func(card *deck.Card) bool {
		for _, p := range g.players {
			if onSide(p) && p.startingHand.HasCard(card) {
				return true
			}
		}

		return false
	}

	withTop := holds(order[0])
	run := 0
	for _, card := range order {
		if holds(card) != withTop {
			break
		}

		run++
	}

	return run
}

func (r *Result) winnerIDs() []int64 {
	ids := make([]int64, 0, numPlayers)
	for id, payout := range r.Payouts {
		if payout > 0 {
			ids = append(ids, id)
		}
	}

	return ids
}

// Summary is a one-line human-readable description of the settlement
func (r *Result) Summary() string {
	var sb strings.Builder

	outcome := "wins"
	if !r.DeclarerWon {
		outcome = "loses"
	}

	fmt.Fprintf(&sb, "The %s %s %d:%d", r.Variant, outcome, r.PointsDeclarer, r.PointsDefense)

	if r.Schwarz {
		sb.WriteString(" schwarz")
	} else if r.Schneider {
		sb.WriteString(" schneider")
	}

	if r.Laufende > 0 {
		fmt.Fprintf(&sb, " with %d laufende", r.Laufende)
	}

	fmt.Fprintf(&sb, " for %d", r.Value)

	return sb.String()
}
