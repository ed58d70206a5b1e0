package players

import (
	"context"

	"github.com/minaorangina/durak/deck"
	"github.com/minaorangina/durak/protocol"
	uuid "github.com/satori/go.uuid"
)

// NewID constructs a player ID
func NewID() string {
	return uuid.NewV4().String()
}

// Player is an actor outside the rule engine: a person at a terminal, or a
// program speaking the line protocol. The engine only validates what a
// Player chooses. Calls waiting on the player return when ctx is done.
type Player interface {
	ID() string
	Name() string
	// Init announces the trump card of a new game
	Init(ctx context.Context, trump deck.Card) error
	// Deal sends the player's whole hand after a deal
	Deal(ctx context.Context, hand []deck.Card, data protocol.GameData) error
	// Move returns the attacker's card, or nil to pass
	Move(ctx context.Context, onTable []deck.Card, data protocol.GameData) (*deck.Card, error)
	// Respond returns the defender's card, or nil to pick up
	Respond(ctx context.Context, onTable []deck.Card, data protocol.GameData) (*deck.Card, error)
	// GiveMore returns extra cards for the defender to pick up
	GiveMore(ctx context.Context, onTable []deck.Card, data protocol.GameData) ([]deck.Card, error)
	// Reject tells the player their last choice was not accepted
	Reject(err error)
	GameEnd(ctx context.Context) error
}

// Players represents all players in the game
type Players []Player

// NewPlayers returns a set of Players
func NewPlayers(p ...Player) Players {
	return Players(p)
}

// Find finds a player by id
func (ps Players) Find(id string) (Player, bool) {
	for _, p := range ps {
		if got := p.ID(); got == id {
			return p, true
		}
	}
	return nil, false
}

func singleCard(cards []deck.Card) *deck.Card {
	if len(cards) == 0 {
		return nil
	}
	c := cards[0]
	return &c
}
