package deck

import (
	"math/rand"
)

// Deck represents the draw pile. The top of the deck is index 0.
type Deck []Card

// New creates a full, ordered 36-card deck
func New() Deck {
	return Deck(All())
}

// Shuffle shuffles the deck of cards
func (d Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Deal deals up to n cards from the top of the deck, until it is empty
func (d *Deck) Deal(n int) []Card {
	if n <= 0 {
		return []Card{}
	}
	if n > len(*d) {
		n = len(*d)
	}
	dealt := make([]Card, n)
	copy(dealt, (*d)[:n])
	*d = (*d)[n:]
	return dealt
}

// Bottom returns the last card of the deck, which is drawn last
func (d Deck) Bottom() (Card, bool) {
	if len(d) == 0 {
		return Card{}, false
	}
	return d[len(d)-1], true
}
