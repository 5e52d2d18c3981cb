package schafkopf

import (
	"errors"
	"fmt"
	"time"

	"schafkopf-server/pkg/deck"
	"schafkopf-server/pkg/playable"
)

// TrickCard is a card on the table and who played it
type TrickCard struct {
	PlayerID int64      `json:"playerId"`
	Card     *deck.Card `json:"card"`
}

// TrickState is a trick as shown to the players
type TrickState struct {
	Cards    []*TrickCard `json:"cards"`
	WinnerID int64        `json:"winnerId,omitempty"`
}

// GameStatePlayer is the public state of an individual player
type GameStatePlayer struct {
	PlayerID      int64 `json:"playerId"`
	Seat          int   `json:"seat"`
	Balance       int   `json:"balance"`
	CardsInHand   int   `json:"cardsInHand"`
	TricksWon     int   `json:"tricksWon"`
	DecidedDouble bool  `json:"decidedDouble"`
	Laid          bool  `json:"laid"`
	HasBid        bool  `json:"hasBid"`
}

// GameState is the overall game state
// This is safe for all players to see
type GameState struct {
	Phase       Phase              `json:"phase"`
	DealerSeat  int                `json:"dealerSeat"`
	CurrentTurn int64              `json:"currentTurn"`
	Variant     *Variant           `json:"variant"`
	DeclarerID  int64              `json:"declarerId"`
	PartnerID   int64              `json:"partnerId"`
	Contra      bool               `json:"contra"`
	Retour      bool               `json:"retour"`
	TrickNo     int                `json:"trickNo"`
	Trick       *TrickState        `json:"trick"`
	LastTrick   *TrickState        `json:"lastTrick"`
	Players     []*GameStatePlayer `json:"players"`
	Result      *Result            `json:"result"`
}

// Response is the response format for this game
type Response struct {
	GameState *GameState `json:"gameState"`
	// Data below is player specific, and must only be shown to the intended player
	Balance            int       `json:"balance"`
	Hand               deck.Hand `json:"hand"`
	LegalMoves         deck.Hand `json:"legalMoves"`
	CanDeclareEarlyWin bool      `json:"canDeclareEarlyWin"`
}

func trickState(t *trick) *TrickState {
	if t == nil {
		return nil
	}

	cards := make([]*TrickCard, len(t.plays))
	for i, pc := range t.plays {
		cards[i] = &TrickCard{
			PlayerID: pc.player.PlayerID,
			Card:     pc.card,
		}
	}

	state := &TrickState{Cards: cards}
	if t.winner != nil {
		state.WinnerID = t.winner.PlayerID
	}

	return state
}

// GameState returns the state all players may see
func (g *Game) GameState() *GameState {
	players := make([]*GameStatePlayer, len(g.players))
	for i, p := range g.players {
		_, decided := g.doubleDecisions[p.PlayerID]
		players[i] = &GameStatePlayer{
			PlayerID:      p.PlayerID,
			Seat:          i,
			Balance:       p.balance,
			CardsInHand:   len(p.hand),
			TricksWon:     p.trickCount(),
			DecidedDouble: decided,
			Laid:          p.laid,
			HasBid:        p.hasBid,
		}
	}

	var currentTurn int64
	if id, ok := g.CurrentTurn(); ok {
		currentTurn = id
	}

	var variant *Variant
	var declarerID, partnerID int64
	if g.accepted != nil {
		v := g.accepted.Variant
		variant = &v
		declarerID = g.declarer.PlayerID
		if g.partner != nil {
			partnerID = g.partner.PlayerID
		}
	}

	return &GameState{
		Phase:       g.phase,
		DealerSeat:  g.dealerSeat,
		CurrentTurn: currentTurn,
		Variant:     variant,
		DeclarerID:  declarerID,
		PartnerID:   partnerID,
		Contra:      g.contra,
		Retour:      g.retour,
		TrickNo:     g.trickNo,
		Trick:       trickState(g.currentTrick),
		LastTrick:   trickState(g.lastTrick),
		Players:     players,
		Result:      g.result,
	}
}

// GetPlayerState returns the state for the given player
func (g *Game) GetPlayerState(playerID int64) (*playable.Response, error) {
	p, ok := g.idToPlayer[playerID]
	if !ok {
		p = NewPlayer(playerID)
	}

	return &playable.Response{
		Key:   "game",
		Value: "schafkopf",
		Data: &Response{
			GameState:          g.GameState(),
			Balance:            p.balance,
			Hand:               p.Hand(),
			LegalMoves:         g.PlayerLegalMoves(playerID),
			CanDeclareEarlyWin: g.CanDeclareEarlyWin(playerID),
		},
	}, nil
}

// Action performs an action
func (g *Game) Action(playerID int64, message *playable.PayloadIn) (playerResponse *playable.Response, updateState bool, err error) {
	if _, ok := g.idToPlayer[playerID]; !ok {
		return nil, false, errors.New("player not found with that ID")
	}

	log := g.logger.WithField("playerID", playerID)

	switch message.Action {
	case "double":
		willDouble, ok := message.AdditionalData.GetBool("willDouble")
		if !ok {
			return nil, false, errors.New("missing willDouble")
		}

		log.WithField("willDouble", willDouble).Debug("player decides on doubling")
		if err := g.DecideDouble(playerID, willDouble); err != nil {
			return nil, false, err
		}
	case "bid":
		bid, err := bidFromPayload(message)
		if err != nil {
			return nil, false, err
		}

		log.WithField("bid", fmt.Sprintf("%v", bid)).Debug("player bids")
		if err := g.PlaceBid(playerID, bid); err != nil {
			return nil, false, err
		}
	case "playCard":
		if len(message.Cards) != 1 {
			return nil, false, fmt.Errorf("expected to get 1 card, got %d", len(message.Cards))
		}

		log.WithField("card", message.Cards[0]).Debug("play card")
		if err := g.PlayCard(playerID, message.Cards[0]); err != nil {
			return nil, false, err
		}
	case "advanceTrick":
		if err := g.AdvanceTrick(); err != nil {
			return nil, false, err
		}
	case "contra":
		if err := g.DeclareContra(playerID); err != nil {
			return nil, false, err
		}
	case "retour":
		if err := g.DeclareRetour(playerID); err != nil {
			return nil, false, err
		}
	case "declareEarlyWin":
		if err := g.DeclareEarlyWin(playerID); err != nil {
			return nil, false, err
		}
	default:
		return nil, false, fmt.Errorf("unknown action: %s", message.Action)
	}

	return playable.OK(message.Context), true, nil
}

// bidFromPayload builds a bid from the client payload. A missing variant or
// an explicit "pass" is a pass.
func bidFromPayload(message *playable.PayloadIn) (*Bid, error) {
	name, ok := message.AdditionalData.GetString("variant")
	if !ok || name == "pass" {
		return nil, nil
	}

	variantType, ok := VariantTypeFromString(name)
	if !ok {
		return nil, fmt.Errorf("unknown variant: %s", name)
	}

	bid := &Bid{Variant: Variant{Type: variantType}}

	if suit, ok := message.AdditionalData.GetString("suit"); ok {
		bid.Variant.Suit = deck.Suit(suit)
	}

	if tout, ok := message.AdditionalData.GetBool("tout"); ok {
		bid.Variant.Tout = tout
	}

	if partner, ok := message.AdditionalData.GetInt64("partner"); ok {
		bid.PartnerID = partner
	}

	return bid, nil
}

// GetEndOfGameDetails returns details at the end of the game
func (g *Game) GetEndOfGameDetails() (gameOverDetails *playable.GameOverDetails, isGameOver bool) {
	if !g.done || g.result == nil {
		return nil, false
	}

	adjustments := make(map[int64]int)
	for _, p := range g.players {
		adjustments[p.PlayerID] = p.balance
	}

	return &playable.GameOverDetails{
		BalanceAdjustments: adjustments,
		Log:                g.result,
	}, true
}

// Name returns "schafkopf"
func (g *Game) Name() string {
	return "schafkopf"
}

// NameFromOptions returns the name of the game based on the options
func NameFromOptions(_ Options) string {
	return "Schafkopf"
}

// LogChan returns a channel for sending log messages
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// Delay determines how often Tick() should be called
func (g *Game) Delay() time.Duration {
	return time.Second
}

// Tick will check the state of the game and possibly move the state along
func (g *Game) Tick() (bool, error) {
	if g.sendUpdate {
		g.sendUpdate = false
		return true, nil
	}

	if g.done {
		return false, nil
	}

	if g.pendingDealerAction != nil {
		if !time.Now().After(g.pendingDealerAction.ExecuteAfter) {
			return false, nil
		}

		action := g.pendingDealerAction.Action
		g.pendingDealerAction = nil

		switch action {
		case dealerActionAdvanceTrick:
			if err := g.AdvanceTrick(); err != nil {
				g.logger.WithError(err).Error("could not advance the trick")
			}
		case dealerActionSettleHand:
			if err := g.Settle(); err != nil {
				g.logger.WithError(err).Error("could not settle the hand")
			}
		case dealerActionClearGame:
			g.done = true
		default:
			panic(fmt.Sprintf("unknown dealer action: %d", action))
		}

		return true, nil
	}

	switch {
	case g.phase == PhaseTrickSettled:
		g.schedule(dealerActionAdvanceTrick)
	case g.phase == PhaseHandSettled && g.result == nil:
		g.schedule(dealerActionSettleHand)
	case g.result != nil:
		g.schedule(dealerActionClearGame)
	}

	return false, nil
}

func (g *Game) schedule(action dealerAction) {
	g.pendingDealerAction = &pendingDealerAction{
		Action:       action,
		ExecuteAfter: time.Now().Add(g.Delay()),
	}
}
