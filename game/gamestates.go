package game

// State represents the stage of the current attack/defence exchange
type State int

const (
	// Idle: no game has been started
	Idle State = iota
	// Moving: the attacker plays a card or passes
	Moving
	// Responding: the defender beats the last card or declines
	Responding
	// GivingMore: after a decline, the attacker may add cards before the pickup
	GivingMore
	// Dealing: waiting for the table to be cleared and hands replenished
	Dealing
	// Over: a winner (or a draw) has been determined
	Over
)

var stateNames = map[State]string{
	Idle:       "idle",
	Moving:     "moving",
	Responding: "responding",
	GivingMore: "giving_more",
	Dealing:    "dealing",
	Over:       "over",
}

func (s State) String() string {
	return stateNames[s]
}

// Player identifies one of the two seats
type Player int

const (
	NoPlayer Player = iota
	Player1
	Player2
)

var playerNames = map[Player]string{
	NoPlayer: "none",
	Player1:  "player1",
	Player2:  "player2",
}

func (p Player) String() string {
	return playerNames[p]
}

// Opponent returns the other seat
func (p Player) Opponent() Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return NoPlayer
}

// Role selects whose point of view GameDataFor describes
type Role int

const (
	Mover Role = iota
	Responder
	AsPlayer1
	AsPlayer2
)
