package game

import (
	"github.com/minaorangina/durak/deck"
	"golang.org/x/exp/slices"
)

// Table holds the cards of the current exchange.
// Even positions are attacks, odd positions are defences.
// Cards given more after a declined defence are kept apart.
type Table struct {
	cards     []deck.Card
	givenMore map[deck.Card]struct{}
}

func NewTable(cards ...deck.Card) *Table {
	t := &Table{
		cards:     []deck.Card{},
		givenMore: map[deck.Card]struct{}{},
	}
	for _, c := range cards {
		t.Append(c)
	}
	return t
}

func (t *Table) Append(c deck.Card) {
	t.cards = append(t.cards, c)
}

// GiveMore adds cards to the side collection without touching the sequence
func (t *Table) GiveMore(cards ...deck.Card) {
	for _, c := range cards {
		t.givenMore[c] = struct{}{}
	}
}

// Clear empties the sequence and the given more cards
func (t *Table) Clear() {
	t.cards = []deck.Card{}
	t.givenMore = map[deck.Card]struct{}{}
}

// Cards returns a copy of the ordered sequence
func (t *Table) Cards() []deck.Card {
	return slices.Clone(t.cards)
}

// GivenMore returns the given more cards in ascending order
func (t *Table) GivenMore() []deck.Card {
	cards := make([]deck.Card, 0, len(t.givenMore))
	for c := range t.givenMore {
		cards = append(cards, c)
	}
	slices.SortFunc(cards, deck.Compare)
	return cards
}

func (t *Table) Len() int {
	return len(t.cards)
}

func (t *Table) IsEmpty() bool {
	return len(t.cards) == 0
}

// Last returns the most recently played card
func (t *Table) Last() (deck.Card, bool) {
	if len(t.cards) == 0 {
		return deck.Card{}, false
	}
	return t.cards[len(t.cards)-1], true
}

// DefencePending reports whether the last card on the table is an unanswered attack
func (t *Table) DefencePending() bool {
	return len(t.cards)%2 == 1
}

// All returns the sequence followed by the given more cards
func (t *Table) All() []deck.Card {
	return append(t.Cards(), t.GivenMore()...)
}
