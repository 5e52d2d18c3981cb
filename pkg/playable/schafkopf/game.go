package schafkopf

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"schafkopf-server/pkg/deck"
	"schafkopf-server/pkg/playable"
)

// Game is a single hand of schafkopf. It is created freshly dealt and is
// discarded once the hand has been settled.
type Game struct {
	options Options
	logger  logrus.FieldLogger
	logChan chan []*playable.LogMessage

	players    []*Player // seat order
	idToPlayer map[int64]*Player

	phase      Phase
	dealerSeat int

	// doubleDecisions tracks who has decided on laying, by player ID
	doubleDecisions map[int64]bool

	bidTurn  int // seat of the next bidder
	bidCount int
	accepted *Bid
	declarer *Player

	// partner is the revealed partner in a partnership game
	partner *Player

	contra bool
	retour bool

	currentTrick *trick
	lastTrick    *trick
	trickNo      int
	currentSeat  int

	result *Result

	pendingDealerAction *pendingDealerAction
	sendUpdate          bool
	done                bool
}

// NewGame deals a new hand of schafkopf.
// playerIDs must be in seat order; dealerSeat is an index into them.
func NewGame(logger logrus.FieldLogger, playerIDs []int64, dealerSeat int, opts Options) (*Game, error) {
	if len(playerIDs) != numPlayers {
		return nil, PlayerCountError(len(playerIDs))
	}

	idToPlayer := make(map[int64]*Player)
	players := make([]*Player, len(playerIDs))
	for i, pid := range playerIDs {
		players[i] = NewPlayer(pid)
		idToPlayer[pid] = players[i]
	}

	g, err := newGame(logger, players, dealerSeat, opts)
	if err != nil {
		return nil, err
	}

	g.idToPlayer = idToPlayer
	g.sendLogMessages(playable.SimpleLogMessage(0, "A new hand of Schafkopf has been dealt"))

	return g, nil
}

func newGame(logger logrus.FieldLogger, players []*Player, dealerSeat int, opts Options) (*Game, error) {
	if len(players) != numPlayers {
		return nil, PlayerCountError(len(players))
	}

	if dealerSeat < 0 || dealerSeat >= numPlayers {
		return nil, errors.New("dealer seat out of range")
	}

	g := &Game{
		options:         opts,
		logger:          logger,
		logChan:         make(chan []*playable.LogMessage, 256),
		players:         players,
		phase:           PhaseDealing,
		dealerSeat:      dealerSeat,
		doubleDecisions: make(map[int64]bool),
	}

	g.deal()

	return g, nil
}

// deal gives every player six cards and snapshots the starting hands
func (g *Game) deal() {
	d := deck.New()
	d.Shuffle(g.options.Seed)

	for i := 0; i < handSize; i++ {
		for _, p := range g.players {
			card, err := d.Draw()
			if err != nil {
				// 24 cards always cover four hands of six
				panic(err)
			}

			p.addCard(card)
		}
	}

	for _, p := range g.players {
		p.startingHand = p.hand.Clone()
	}

	g.phase = PhaseDoubling
}

// DecideDouble records a player's decision on laying. Once all four players
// have decided, the bidding starts at the seat left of the dealer.
func (g *Game) DecideDouble(playerID int64, willDouble bool) error {
	if g.phase != PhaseDoubling {
		return ErrWrongPhase
	}

	p, err := g.player(playerID)
	if err != nil {
		return err
	}

	if _, ok := g.doubleDecisions[playerID]; ok {
		return ErrAlreadyDecided
	}

	g.doubleDecisions[playerID] = willDouble
	if willDouble {
		p.laid = true
		g.sendLogMessages(playable.SimpleLogMessage(playerID, "{} lays to double the stake"))
	}

	if len(g.doubleDecisions) == numPlayers {
		g.phase = PhaseBidding
		g.bidTurn = (g.dealerSeat + 1) % numPlayers
	}

	return nil
}

// PlaceBid records a bid for the player whose turn it is. A nil bid is a
// pass. A bid only takes the game if its value strictly exceeds the
// currently accepted one. When all four players have bid and nobody
// announced a game, the hand is thrown in and re-dealt with the dealer
// button advanced; the Game value is replaced in place.
func (g *Game) PlaceBid(playerID int64, bid *Bid) error {
	if g.phase != PhaseBidding {
		return ErrWrongPhase
	}

	p, err := g.player(playerID)
	if err != nil {
		return err
	}

	if g.players[g.bidTurn] != p {
		return ErrNotPlayersTurn
	}

	if bid != nil {
		if err := g.validateBid(p, bid); err != nil {
			return err
		}
	}

	p.hasBid = true
	p.bid = bid

	if bid == nil {
		g.sendLogMessages(playable.SimpleLogMessage(playerID, "{} passes"))
	} else if g.accepted == nil || bid.Variant.Value() > g.accepted.Variant.Value() {
		g.accepted = bid
		g.declarer = p
		g.sendLogMessages(playable.SimpleLogMessage(playerID, "{} announces a %s", bid.Variant))
	}

	g.bidTurn = (g.bidTurn + 1) % numPlayers
	g.bidCount++

	if g.bidCount == numPlayers {
		if g.accepted == nil {
			return g.redeal()
		}

		g.startPlaying()
	}

	return nil
}

// validateBid checks the announcement against the bidder's hand
func (g *Game) validateBid(p *Player, bid *Bid) error {
	if err := bid.Variant.Validate(); err != nil {
		return err
	}

	switch bid.Variant.Type {
	case Sauspiel:
		ace := bid.Variant.SearchedAce()
		if p.hand.HasCard(ace) {
			// you cannot search for your own ace
			return ErrInvalidBid
		}

		hasSuit := false
		for _, c := range p.hand {
			if !IsTrump(c, bid.Variant) && c.Suit == bid.Variant.Suit {
				hasSuit = true
				break
			}
		}

		if !hasSuit {
			return ErrInvalidBid
		}
	case Hochzeit:
		partner, ok := g.idToPlayer[bid.PartnerID]
		if !ok || partner == p {
			return ErrInvalidBid
		}
	}

	return nil
}

func (g *Game) startPlaying() {
	v := g.accepted.Variant

	for _, p := range g.players {
		SortHand(p.hand, v)
	}

	if v.Type == Hochzeit {
		g.partner = g.idToPlayer[g.accepted.PartnerID]
	}

	g.currentSeat = g.seatOf(g.declarer)
	g.currentTrick = newTrick()
	g.trickNo = 0
	g.phase = PhasePlaying

	g.logger.WithFields(logrus.Fields{
		"declarer": g.declarer.PlayerID,
		"variant":  v.String(),
	}).Debug("bidding complete")
}

// redeal throws the hand in after four passes and replaces the game with a
// freshly dealt one, dealer advanced by a seat
func (g *Game) redeal() error {
	g.sendLogMessages(playable.SimpleLogMessage(0, "All four players passed; the cards are thrown together"))

	for _, p := range g.players {
		p.newHand()
	}

	opts := g.options
	if opts.Seed != 0 {
		// a fixed seed must still not repeat the thrown-in deal
		opts.Seed++
	}

	ng, err := newGame(g.logger, g.players, (g.dealerSeat+1)%numPlayers, opts)
	if err != nil {
		return err
	}

	ng.idToPlayer = g.idToPlayer
	ng.logChan = g.logChan

	*g = *ng
	g.sendUpdate = true
	g.sendLogMessages(playable.SimpleLogMessage(0, "A new hand of Schafkopf has been dealt"))

	return nil
}

// PlayCard plays the card for the player onto the current trick
func (g *Game) PlayCard(playerID int64, card *deck.Card) error {
	if g.phase != PhasePlaying {
		return ErrWrongPhase
	}

	p, err := g.player(playerID)
	if err != nil {
		return err
	}

	if g.players[g.currentSeat] != p {
		return ErrNotPlayersTurn
	}

	if !p.hand.HasCard(card) {
		return ErrCardNotInPlayersHand
	}

	v := g.accepted.Variant
	if !LegalMoves(p.hand, g.currentTrick.cards(), v).HasCard(card) {
		return ErrIllegalCard
	}

	if err := p.playCard(card); err != nil {
		// already checked above
		panic(err)
	}

	g.currentTrick.plays = append(g.currentTrick.plays, &playedCard{card: card, player: p})

	if ace := v.SearchedAce(); ace != nil && g.partner == nil && card.Equal(ace) {
		g.partner = p
		g.sendLogMessages(playable.SimpleLogMessage(playerID, "{} shows the searched sow and plays with %d", g.declarer.PlayerID))
	}

	if !g.currentTrick.isComplete() {
		g.currentSeat = (g.currentSeat + 1) % numPlayers
		return nil
	}

	index, err := ResolveTrick(g.currentTrick.cards(), v)
	if err != nil {
		// the state machine only builds well-formed tricks
		panic(err)
	}

	winner := g.currentTrick.plays[index].player
	g.currentTrick.winner = winner
	winner.wonTrick(g.currentTrick.cards())
	g.lastTrick = g.currentTrick
	g.trickNo++

	g.sendLogMessages(playable.SimpleLogMessage(winner.PlayerID, "{} takes trick %d", g.trickNo))

	switch {
	case v.Tout && !g.onDeclarerSide(winner):
		// the tout has failed; the hand ends on the spot
		g.phase = PhaseHandSettled
	case g.trickNo == tricksPerHand:
		g.phase = PhaseHandSettled
	default:
		g.currentSeat = g.seatOf(winner)
		g.phase = PhaseTrickSettled
	}

	return nil
}

// AdvanceTrick clears the settled trick off the table and resumes play
func (g *Game) AdvanceTrick() error {
	if g.phase != PhaseTrickSettled {
		return ErrWrongPhase
	}

	g.currentTrick = newTrick()
	g.phase = PhasePlaying

	return nil
}

// DeclareContra doubles the game for the defending side. It is only
// available until the first card of the second trick hits the table.
func (g *Game) DeclareContra(playerID int64) error {
	p, err := g.player(playerID)
	if err != nil {
		return err
	}

	if g.phase != PhasePlaying && g.phase != PhaseTrickSettled {
		return ErrWrongPhase
	}

	if g.contra {
		return ErrAlreadyDeclared
	}

	if !g.contraWindowOpen() || g.onDeclarerSide(p) {
		return ErrNotAllowed
	}

	g.contra = true
	g.sendLogMessages(playable.SimpleLogMessage(playerID, "{} declares contra"))

	return nil
}

// DeclareRetour doubles the game again for the declarer's side after a contra
func (g *Game) DeclareRetour(playerID int64) error {
	p, err := g.player(playerID)
	if err != nil {
		return err
	}

	if g.phase != PhasePlaying && g.phase != PhaseTrickSettled {
		return ErrWrongPhase
	}

	if g.retour {
		return ErrAlreadyDeclared
	}

	if !g.contra || !g.contraWindowOpen() || !g.onDeclarerSide(p) {
		return ErrNotAllowed
	}

	g.retour = true
	g.sendLogMessages(playable.SimpleLogMessage(playerID, "{} declares retour"))

	return nil
}

// contraWindowOpen is true until the first card of the second trick is played
func (g *Game) contraWindowOpen() bool {
	if g.trickNo == 0 {
		return true
	}

	return g.trickNo == 1 && (g.phase == PhaseTrickSettled || len(g.currentTrick.plays) == 0)
}

// Settle computes the result of a finished hand and applies the payouts
func (g *Game) Settle() error {
	if g.phase != PhaseHandSettled || g.result != nil {
		return ErrWrongPhase
	}

	result := g.calculateResult()
	for id, payout := range result.Payouts {
		g.idToPlayer[id].balance += payout
	}

	g.result = result

	winners := result.winnerIDs()
	g.sendLogMessages(
		playable.SimpleLogMessage(0, "%s", result.Summary()),
		&playable.LogMessage{
			UUID:      uuid.New().String(),
			PlayerIDs: winners,
			Message:   "{} won the hand",
			Time:      time.Now(),
		},
	)

	return nil
}

// onDeclarerSide reports whether the player plays with the declarer. In a
// Sauspiel the unrevealed partner already counts, determined by the dealt
// searched ace.
func (g *Game) onDeclarerSide(p *Player) bool {
	if p == g.declarer {
		return true
	}

	if g.partner != nil && p == g.partner {
		return true
	}

	if ace := g.accepted.Variant.SearchedAce(); ace != nil {
		return p.startingHand.HasCard(ace)
	}

	return false
}

func (g *Game) seatOf(p *Player) int {
	for i, player := range g.players {
		if player == p {
			return i
		}
	}

	panic("player has no seat")
}

func (g *Game) player(playerID int64) (*Player, error) {
	p, ok := g.idToPlayer[playerID]
	if !ok {
		return nil, errors.New("player not found with that ID")
	}

	return p, nil
}

// Phase returns the current phase
func (g *Game) Phase() Phase {
	return g.phase
}

// DealerSeat returns the seat holding the dealer button
func (g *Game) DealerSeat() int {
	return g.dealerSeat
}

// Result returns the settled result, or nil while the hand is in progress
func (g *Game) Result() *Result {
	return g.result
}

// CurrentTurn returns the ID of the player expected to act, if any single
// player is on turn (the doubling phase has no turn order)
func (g *Game) CurrentTurn() (int64, bool) {
	switch g.phase {
	case PhaseBidding:
		return g.players[g.bidTurn].PlayerID, true
	case PhasePlaying:
		return g.players[g.currentSeat].PlayerID, true
	default:
		return 0, false
	}
}

// PlayerLegalMoves returns the cards the player may play right now, or an
// empty hand when it is not their turn to play a card
func (g *Game) PlayerLegalMoves(playerID int64) deck.Hand {
	if g.phase != PhasePlaying {
		return deck.Hand{}
	}

	p, ok := g.idToPlayer[playerID]
	if !ok || g.players[g.currentSeat] != p {
		return deck.Hand{}
	}

	return LegalMoves(p.hand, g.currentTrick.cards(), g.accepted.Variant)
}

func (g *Game) sendLogMessages(msg ...*playable.LogMessage) {
	if g.logChan != nil {
		g.logChan <- msg
	}
}
