package players

import (
	"fmt"
	"io"
	"strings"

	"github.com/minaorangina/durak/deck"
	"github.com/minaorangina/durak/protocol"
	"github.com/pterm/pterm"
)

const (
	dealtText          = "\n%s, here are your cards:\n"
	trumpText          = "\nThe trump card is %s\n"
	movePromptText     = "%s, your move. Enter a card (e.g. 7H), or press enter to end the attack: "
	respondPromptText  = "%s, beat %s. Enter a card, or press enter to pick up: "
	giveMorePromptText = "%s, give more? Enter cards (e.g. 7C 7S), or press enter to give nothing: "
	retryCardText      = "Invalid entry (%s). Cards are written rank then suit, e.g. 6C, TD, QH, AS\n"
	rejectedText       = "That is not allowed: %s\n"
	gameEndText        = "\nThe game is over, %s.\n"
)

var suitSymbols = map[deck.Suit]string{
	deck.Clubs:    "♣",
	deck.Diamonds: "♦",
	deck.Hearts:   "♥",
	deck.Spades:   "♠",
}

func SendText(w io.Writer, text string, a ...interface{}) {
	fmt.Fprintf(w, text, a...)
}

// displayCard renders a card with its suit symbol; red suits are coloured
func displayCard(c deck.Card) string {
	rank := string(c.Rank().Letter())
	if c.Rank() == deck.Ten {
		rank = "10"
	}

	symbol := suitSymbols[c.Suit()]
	if c.Suit() == deck.Diamonds || c.Suit() == deck.Hearts {
		symbol = pterm.LightRed(symbol)
	}
	return rank + symbol
}

func displayCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return "-"
	}
	shown := make([]string, 0, len(cards))
	for _, c := range cards {
		shown = append(shown, displayCard(c))
	}
	return strings.Join(shown, " ")
}

// displayTable pairs each attack with its defence
func displayTable(onTable []deck.Card) string {
	if len(onTable) == 0 {
		return "(empty)"
	}
	pairs := []string{}
	for i := 0; i < len(onTable); i += 2 {
		if i+1 < len(onTable) {
			pairs = append(pairs, displayCard(onTable[i])+"/"+displayCard(onTable[i+1]))
		} else {
			pairs = append(pairs, displayCard(onTable[i])+"/?")
		}
	}
	return strings.Join(pairs, "  ")
}

func buildStatusText(hand, onTable []deck.Card, data protocol.GameData) string {
	return fmt.Sprintf(
		"\nTrump: %s   Deck: %d   Opponent holds: %d   Discarded: %d\nTable: %s\nHand:  %s\n",
		displayCard(data.Trump),
		data.DeckCount,
		data.EnemyCount,
		len(data.Discarded),
		displayTable(onTable),
		displayCards(hand),
	)
}
