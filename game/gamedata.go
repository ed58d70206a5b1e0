package game

import (
	"github.com/minaorangina/durak/deck"
	"github.com/minaorangina/durak/protocol"
	"golang.org/x/exp/slices"
)

func (g *Game) State() State {
	return g.state
}

func (g *Game) IsGameOver() bool {
	return g.state == Over
}

// Winner returns the winner of a finished game. NoPlayer means a draw, or
// that the game is not over.
func (g *Game) Winner() Player {
	return g.winner
}

// ToMove returns the attacker
func (g *Game) ToMove() Player {
	return g.toMove
}

// ToRespond returns the defender
func (g *Game) ToRespond() Player {
	return g.toRespond()
}

func (g *Game) IsPlayer1ToMove() bool {
	return g.toMove == Player1
}

func (g *Game) Trump() deck.Card {
	return g.trump
}

func (g *Game) DeckCount() int {
	return len(g.deck)
}

// OnTable returns the ordered attack/defence sequence
func (g *Game) OnTable() []deck.Card {
	return g.table.Cards()
}

func (g *Game) GivenMore() []deck.Card {
	return g.table.GivenMore()
}

func (g *Game) Discarded() []deck.Card {
	return slices.Clone(g.discarded)
}

// Hand returns a sorted snapshot of a player's hand
func (g *Game) Hand(p Player) []deck.Card {
	hand, ok := g.hands[p]
	if !ok {
		return []deck.Card{}
	}
	return hand.Cards()
}

// HandSize returns the number of cards a player holds
func (g *Game) HandSize(p Player) int {
	hand, ok := g.hands[p]
	if !ok {
		return 0
	}
	return hand.Len()
}

func (g *Game) playerFor(role Role) Player {
	switch role {
	case Mover:
		return g.toMove
	case Responder:
		return g.toRespond()
	case AsPlayer1:
		return Player1
	case AsPlayer2:
		return Player2
	}
	return NoPlayer
}

// GameDataFor describes the game from the point of view of role
func (g *Game) GameDataFor(role Role) protocol.GameData {
	p := g.playerFor(role)
	return protocol.GameData{
		Trump:      g.trump,
		DeckCount:  len(g.deck),
		EnemyCount: g.HandSize(p.Opponent()),
		OnTable:    g.table.Cards(),
		Discarded:  g.Discarded(),
	}
}
