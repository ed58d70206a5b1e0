package protocol

import (
	"github.com/minaorangina/durak/deck"
)

// Cmd represents a command sent to a player
type Cmd int

const (
	Null Cmd = iota
	Init     // announces the trump card
	Deal     // sends the player's full hand after a deal
	Move     // asks the attacker for a card, or a pass
	Respond  // asks the defender for a card, or no response
	GiveMore // asks the attacker for extra cards before a pickup
	GameEnd  // no response expected
)

var CmdNames = map[Cmd]string{
	Null:     "null",
	Init:     "init",
	Deal:     "deal",
	Move:     "move",
	Respond:  "respond",
	GiveMore: "give_more",
	GameEnd:  "game_end",
}

var NameToCmd = map[string]Cmd{
	"init":      Init,
	"deal":      Deal,
	"move":      Move,
	"respond":   Respond,
	"give_more": GiveMore,
	"game_end":  GameEnd,
}

func (c Cmd) String() string {
	return CmdNames[c]
}

// ExpectsReply reports whether the player answers this command with a line
func (c Cmd) ExpectsReply() bool {
	return c != GameEnd && c != Null
}

// GameData is what a player may know about the game at a point in time
type GameData struct {
	Trump      deck.Card   `json:"trump"`
	DeckCount  int         `json:"deck_count"`
	EnemyCount int         `json:"enemy_count"`
	OnTable    []deck.Card `json:"on_table"`
	Discarded  []deck.Card `json:"discarded"`
}
