package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/minaorangina/durak/deck"
	"github.com/minaorangina/durak/game"
	"github.com/minaorangina/durak/players"
	uuid "github.com/satori/go.uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const defaultMaxRetries = 3

var ErrWrongNumberOfPlayers = errors.New("exactly 2 players required")

// MatchOpts configures a Match
type MatchOpts struct {
	// Players holds the first and the second seat, in that order
	Players players.Players
	// Game is created when nil
	Game *game.Game
	// Rand seeds the created Game
	Rand *rand.Rand
	// WinnerAttacksFirst gives the first attack of a game to the winner of
	// the previous one
	WinnerAttacksFirst bool
	// MaxRetries is how many rejected choices a player may make in a row
	// before forfeiting
	MaxRetries int
	Logger     *zap.Logger
}

// Match plays consecutive games between two players
type Match struct {
	seats              map[game.Player]players.Player
	game               *game.Game
	winnerAttacksFirst bool
	maxRetries         int
	logger             *zap.Logger
}

// Result describes a finished game
type Result struct {
	GameID string
	// Winner is nil on a draw
	Winner  players.Player
	Draw    bool
	Forfeit bool
}

// playerError marks errors that come from a player rather than the rules
type playerError struct {
	player players.Player
	err    error
}

func (e *playerError) Error() string {
	return fmt.Sprintf("player %s: %s", e.player.Name(), e.err)
}

func (e *playerError) Unwrap() error {
	return e.err
}

// NewMatch constructs a Match
func NewMatch(opts MatchOpts) (*Match, error) {
	if len(opts.Players) != 2 {
		return nil, ErrWrongNumberOfPlayers
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	g := opts.Game
	if g == nil {
		g = game.NewGame(game.GameOpts{Rand: opts.Rand, Logger: logger})
	}

	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	return &Match{
		seats: map[game.Player]players.Player{
			game.Player1: opts.Players[0],
			game.Player2: opts.Players[1],
		},
		game:               g,
		winnerAttacksFirst: opts.WinnerAttacksFirst,
		maxRetries:         maxRetries,
		logger:             logger,
	}, nil
}

// Game returns the game being played
func (m *Match) Game() *game.Game {
	return m.game
}

// Play plays one game to the end. Cancelling ctx stops the game, including a
// player waiting for input.
func (m *Match) Play(ctx context.Context) (Result, error) {
	result := Result{GameID: uuid.NewV4().String()}
	logger := m.logger.With(zap.String("game_id", result.GameID))

	data := m.game.StartNewGame(m.winnerAttacksFirst)
	logger.Info("game started",
		zap.Stringer("trump", data.Trump),
		zap.String("first_attacker", m.seats[m.game.ToMove()].Name()),
	)

	for _, seat := range []game.Player{game.Player1, game.Player2} {
		if err := m.seats[seat].Init(ctx, data.Trump); err != nil {
			return result, &playerError{m.seats[seat], err}
		}
	}
	if err := m.deal(ctx, data.Player1Cards, data.Player2Cards); err != nil {
		return result, err
	}

	for !m.game.IsGameOver() {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		forfeit, err := m.step(ctx)
		if err != nil {
			return result, err
		}
		if forfeit {
			result.Forfeit = true
		}
	}

	switch winner := m.game.Winner(); winner {
	case game.NoPlayer:
		result.Draw = true
	default:
		result.Winner = m.seats[winner]
	}

	logger.Info("game over",
		zap.Bool("draw", result.Draw),
		zap.Bool("forfeit", result.Forfeit),
		zap.String("winner", winnerName(result.Winner)),
	)

	var err error
	for _, seat := range []game.Player{game.Player1, game.Player2} {
		if endErr := m.seats[seat].GameEnd(ctx); endErr != nil {
			err = multierr.Append(err, &playerError{m.seats[seat], endErr})
		}
	}
	return result, err
}

// step asks the player whose turn it is for a choice and registers it. A
// player who runs out of retries concedes the game.
func (m *Match) step(ctx context.Context) (bool, error) {
	g := m.game
	mover, responder := m.seats[g.ToMove()], m.seats[g.ToRespond()]

	switch g.State() {
	case game.Moving:
		return m.attempt(g.ToMove(), func() error {
			c, err := mover.Move(ctx, g.OnTable(), g.GameDataFor(game.Mover))
			if err != nil {
				return &playerError{mover, err}
			}
			return g.RegisterMove(c)
		})

	case game.Responding:
		return m.attempt(g.ToRespond(), func() error {
			c, err := responder.Respond(ctx, g.OnTable(), g.GameDataFor(game.Responder))
			if err != nil {
				return &playerError{responder, err}
			}
			return g.RegisterResponse(c)
		})

	case game.GivingMore:
		return m.attempt(g.ToMove(), func() error {
			cards, err := mover.GiveMore(ctx, g.OnTable(), g.GameDataFor(game.Mover))
			if err != nil {
				return &playerError{mover, err}
			}
			return g.RegisterGiveMore(cards)
		})

	case game.Dealing:
		data, err := g.Deal()
		if err != nil {
			return false, err
		}
		return false, m.deal(ctx, data.Player1Cards, data.Player2Cards)
	}

	return false, fmt.Errorf("%w: nothing to do in state %q", game.ErrInvalidAction, g.State())
}

func (m *Match) attempt(seat game.Player, choose func() error) (bool, error) {
	p := m.seats[seat]

	for i := 0; i < m.maxRetries; i++ {
		err := choose()
		switch {
		case err == nil:
			return false, nil
		case errors.Is(err, players.ErrMaxRetries):
			return true, m.game.Concede(seat)
		case isRuleViolation(err):
			m.logger.Debug("choice rejected", zap.String("player", p.Name()), zap.Error(err))
			p.Reject(err)
		default:
			return false, err
		}
	}

	m.logger.Info("out of retries", zap.String("player", p.Name()))
	return true, m.game.Concede(seat)
}

func (m *Match) deal(ctx context.Context, player1Cards, player2Cards []deck.Card) error {
	hands := map[game.Player][]deck.Card{
		game.Player1: player1Cards,
		game.Player2: player2Cards,
	}
	roles := map[game.Player]game.Role{
		game.Player1: game.AsPlayer1,
		game.Player2: game.AsPlayer2,
	}

	for _, seat := range []game.Player{game.Player1, game.Player2} {
		if err := m.seats[seat].Deal(ctx, hands[seat], m.game.GameDataFor(roles[seat])); err != nil {
			return &playerError{m.seats[seat], err}
		}
	}
	return nil
}

func isRuleViolation(err error) bool {
	var perr *playerError
	if errors.As(err, &perr) {
		return false
	}
	return errors.Is(err, game.ErrCardIsExpected) ||
		errors.Is(err, game.ErrPlayerDoesNotHaveCard) ||
		errors.Is(err, game.ErrInvalidCard)
}

func winnerName(p players.Player) string {
	if p == nil {
		return "none"
	}
	return p.Name()
}
