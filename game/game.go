package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/minaorangina/durak/deck"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

const (
	handSize = 6
	// Until the first discard, an exchange ends after this many cards
	firstExchangeLimit = 10
)

// Game is the Durak rule engine for two players.
// It is not safe for concurrent use: one driver calls the operation
// matching the current State, one at a time.
type Game struct {
	hands      map[Player]*deck.Hand
	deck       deck.Deck
	trump      deck.Card
	table      *Table
	discarded  []deck.Card
	toMove     Player
	winner     Player
	state      State
	noResponse bool

	firstDiscardCompleted bool

	rng    *rand.Rand
	logger *zap.Logger
}

// GameOpts configures a Game. The zero value gives an idle game with a
// time-seeded shuffle and no logging. Setting State builds a game already in
// progress, which is how tests and replays seed particular positions.
type GameOpts struct {
	Rand   *rand.Rand
	Logger *zap.Logger

	State                 State
	Deck                  deck.Deck
	Trump                 deck.Card
	Player1Cards          []deck.Card
	Player2Cards          []deck.Card
	Table                 []deck.Card
	GivenMore             []deck.Card
	Discarded             []deck.Card
	ToMove                Player
	Winner                Player
	NoResponse            bool
	FirstDiscardCompleted bool
}

// NewGame constructs a Game
func NewGame(opts GameOpts) *Game {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &Game{
		hands: map[Player]*deck.Hand{
			Player1: deck.NewHand(opts.Trump.Suit()),
			Player2: deck.NewHand(opts.Trump.Suit()),
		},
		deck:      deck.Deck{},
		table:     NewTable(),
		discarded: []deck.Card{},
		winner:    opts.Winner,
		rng:       rng,
		logger:    logger,
	}

	if opts.State == Idle {
		return g
	}

	// existing game
	g.state = opts.State
	g.trump = opts.Trump
	g.hands[Player1].Add(opts.Player1Cards...)
	g.hands[Player2].Add(opts.Player2Cards...)
	g.deck = append(g.deck, opts.Deck...)
	g.table = NewTable(opts.Table...)
	g.table.GiveMore(opts.GivenMore...)
	g.discarded = append(g.discarded, opts.Discarded...)
	g.toMove = opts.ToMove
	if g.toMove == NoPlayer {
		g.toMove = Player1
	}
	g.noResponse = opts.NoResponse
	g.firstDiscardCompleted = opts.FirstDiscardCompleted

	return g
}

// NewGameData is what StartNewGame hands to the collaborators
type NewGameData struct {
	Player1Cards []deck.Card
	Player2Cards []deck.Card
	Trump        deck.Card
}

// DealData carries both hands after a deal
type DealData struct {
	Player1Cards []deck.Card
	Player2Cards []deck.Card
}

// StartNewGame shuffles, deals and picks the first attacker. If
// winnerAttacksFirst is set and the previous game had a winner, that player
// attacks first; otherwise the lowest trump decides.
func (g *Game) StartNewGame(winnerAttacksFirst bool) NewGameData {
	g.deck = deck.New()
	g.deck.Shuffle(g.rng)
	g.trump, _ = g.deck.Bottom()

	g.hands[Player1] = deck.NewHand(g.trump.Suit(), g.deck.Deal(handSize)...)
	g.hands[Player2] = deck.NewHand(g.trump.Suit(), g.deck.Deal(handSize)...)

	g.firstDiscardCompleted = false

	if winnerAttacksFirst && g.winner != NoPlayer {
		g.toMove = g.winner
	} else {
		g.toMove = g.firstToMoveByTrump()
	}

	g.winner = NoPlayer
	g.discarded = []deck.Card{}
	g.table = NewTable()
	g.state = Moving
	g.noResponse = false

	g.logger.Debug("new game",
		zap.Stringer("trump", g.trump),
		zap.Stringer("to_move", g.toMove),
	)

	return NewGameData{
		Player1Cards: g.hands[Player1].Cards(),
		Player2Cards: g.hands[Player2].Cards(),
		Trump:        g.trump,
	}
}

func (g *Game) firstToMoveByTrump() Player {
	lowest1, ok1 := g.hands[Player1].LowestTrump()
	lowest2, ok2 := g.hands[Player2].LowestTrump()

	switch {
	case ok1 && ok2:
		if lowest1.Less(lowest2) {
			return Player1
		}
		return Player2
	case ok1:
		return Player1
	case ok2:
		return Player2
	}

	if g.rng.Intn(2) == 0 {
		return Player1
	}
	return Player2
}

func (g *Game) toRespond() Player {
	return g.toMove.Opponent()
}

func (g *Game) moverHand() *deck.Hand {
	return g.hands[g.toMove]
}

func (g *Game) responderHand() *deck.Hand {
	return g.hands[g.toRespond()]
}

func (g *Game) expect(state State) error {
	if g.state != state {
		return &InvalidActionError{Expected: state, Got: g.state}
	}
	return nil
}

// RegisterMove plays the attacker's card. A nil card passes, ending the
// exchange, which is only allowed once something is on the table.
func (g *Game) RegisterMove(card *deck.Card) error {
	if err := g.expect(Moving); err != nil {
		return g.reject(err)
	}

	if card == nil {
		if g.table.IsEmpty() {
			return g.reject(ErrCardIsExpected)
		}
		g.state = Dealing
		g.logger.Debug("move: pass", zap.Stringers("table", g.table.Cards()))
		return nil
	}

	c := *card
	hand := g.moverHand()
	if !hand.Has(c) {
		return g.reject(&PlayerDoesNotHaveCardError{Cards: []deck.Card{c}})
	}
	if !slices.Contains(hand.CanBeAddedTo(g.table.Cards(), true), c) {
		return g.reject(invalidCardf("can not move with card %s (on table: %s)", c, g.table.Cards()))
	}

	hand.Remove(c)
	g.table.Append(c)
	g.state = Responding
	g.logger.Debug("move", zap.Stringer("card", c), zap.Stringers("table", g.table.Cards()))

	g.checkForGameOver()
	return nil
}

// RegisterResponse plays the defender's card. A nil card declines to
// respond: the defender will pick up the table.
func (g *Game) RegisterResponse(card *deck.Card) error {
	if err := g.expect(Responding); err != nil {
		return g.reject(err)
	}

	if card == nil {
		g.noResponse = true
		if !g.moverHand().IsEmpty() {
			g.state = GivingMore
		} else {
			g.state = Dealing
		}
		g.logger.Debug("response: none", zap.Stringer("state", g.state))
		return nil
	}

	c := *card
	cardToBeat, _ := g.table.Last()
	hand := g.responderHand()
	if !hand.Has(c) {
		return g.reject(&PlayerDoesNotHaveCardError{Cards: []deck.Card{c}})
	}
	if !slices.Contains(hand.CanBeat(cardToBeat, true), c) {
		return g.reject(invalidCardf("card %s can not beat card %s (trump is %s)", c, cardToBeat, g.trump))
	}

	hand.Remove(c)
	g.table.Append(c)

	switch {
	case hand.IsEmpty() || g.moverHand().IsEmpty():
		g.state = Dealing
	case !g.firstDiscardCompleted && g.table.Len() >= firstExchangeLimit:
		g.state = Dealing
	default:
		g.state = Moving
	}
	g.logger.Debug("response",
		zap.Stringer("card", c),
		zap.Stringer("state", g.state),
		zap.Stringers("table", g.table.Cards()),
	)

	g.checkForGameOver()
	return nil
}

// RegisterGiveMore adds the attacker's extra cards before the defender picks
// up. No cards ends the giving phase.
func (g *Game) RegisterGiveMore(cards []deck.Card) error {
	if err := g.expect(GivingMore); err != nil {
		return g.reject(err)
	}

	if len(cards) == 0 {
		g.state = Dealing
		return nil
	}

	hand := g.moverHand()
	if missing := hand.Missing(cards...); len(missing) > 0 {
		return g.reject(&PlayerDoesNotHaveCardError{Cards: missing})
	}

	allowed := hand.CanBeAddedTo(g.table.Cards(), true)
	invalid := []deck.Card{}
	for _, c := range cards {
		if !slices.Contains(allowed, c) && !slices.Contains(invalid, c) {
			invalid = append(invalid, c)
		}
	}
	if len(invalid) > 0 {
		return g.reject(invalidCardf("can not give more cards %s (on table: %s)", invalid, g.table.Cards()))
	}

	hand.Remove(cards...)
	g.table.GiveMore(cards...)
	g.state = Dealing
	g.logger.Debug("give more", zap.Stringers("cards", cards))

	g.checkForGameOver()
	return nil
}

// Deal ends the exchange. After a declined defence the defender picks up
// every card on the table; otherwise the table is discarded and the defender
// becomes the attacker. Both players then draw up to six cards, the defender
// first.
func (g *Game) Deal() (DealData, error) {
	if err := g.expect(Dealing); err != nil {
		return DealData{}, g.reject(err)
	}

	if g.noResponse {
		g.responderHand().Add(g.table.All()...)
		g.noResponse = false
	} else {
		g.toMove = g.toRespond()
		g.discarded = append(g.discarded, g.table.Cards()...)
		g.firstDiscardCompleted = true
	}

	g.table.Clear()
	g.state = Moving

	for _, p := range []Player{g.toRespond(), g.toMove} {
		if len(g.deck) == 0 {
			break
		}
		hand := g.hands[p]
		if needed := handSize - hand.Len(); needed > 0 {
			hand.Add(g.deck.Deal(needed)...)
		}
	}

	g.logger.Debug("deal",
		zap.Stringer("to_move", g.toMove),
		zap.Int("deck_count", len(g.deck)),
	)

	g.checkForGameOver()

	return DealData{
		Player1Cards: g.hands[Player1].Cards(),
		Player2Cards: g.hands[Player2].Cards(),
	}, nil
}

// Concede ends a game in progress, p's opponent winning it
func (g *Game) Concede(p Player) error {
	if g.state == Idle || g.state == Over {
		return g.reject(&InvalidActionError{Expected: Moving, Got: g.state})
	}
	if p != Player1 && p != Player2 {
		return g.reject(fmt.Errorf("%w: no such player %d", ErrInvalidAction, p))
	}

	g.winner = p.Opponent()
	g.state = Over
	g.logger.Debug("conceded", zap.Stringer("player", p))
	return nil
}

func (g *Game) checkForGameOver() {
	if len(g.deck) > 0 {
		return
	}

	hand1, hand2 := g.hands[Player1], g.hands[Player2]
	if !hand1.IsEmpty() && !hand2.IsEmpty() {
		return
	}

	// the defender may still beat the last card with their last card
	if g.state == Responding && g.moverHand().IsEmpty() && g.responderHand().Len() == 1 {
		last, _ := g.table.Last()
		if len(g.responderHand().CanBeat(last, true)) > 0 {
			return
		}
	}

	switch {
	case hand1.IsEmpty() && hand2.IsEmpty():
		g.winner = NoPlayer
	case hand1.IsEmpty():
		g.winner = Player1
	default:
		g.winner = Player2
	}

	g.state = Over
	g.logger.Debug("game over", zap.Stringer("winner", g.winner))
}

func (g *Game) reject(err error) error {
	g.logger.Debug("rejected", zap.Stringer("state", g.state), zap.Error(err))
	return err
}
