package deck

import (
	"golang.org/x/exp/slices"
)

// Hand is a set of unique cards held by a player, in the context of the game's trump suit.
type Hand struct {
	cards map[Card]struct{}
	trump Suit
}

// NewHand constructs a Hand. Duplicate cards are collapsed.
func NewHand(trump Suit, cards ...Card) *Hand {
	h := &Hand{
		cards: map[Card]struct{}{},
		trump: trump,
	}
	h.Add(cards...)
	return h
}

// Trump returns the trump suit the hand was created with
func (h *Hand) Trump() Suit {
	return h.trump
}

func (h *Hand) Add(cards ...Card) {
	for _, c := range cards {
		h.cards[c] = struct{}{}
	}
}

func (h *Hand) Remove(cards ...Card) {
	for _, c := range cards {
		delete(h.cards, c)
	}
}

func (h *Hand) Has(c Card) bool {
	_, ok := h.cards[c]
	return ok
}

// Missing returns the cards from the given list which are not in the hand
func (h *Hand) Missing(cards ...Card) []Card {
	missing := []Card{}
	for _, c := range cards {
		if !h.Has(c) && !slices.Contains(missing, c) {
			missing = append(missing, c)
		}
	}
	return missing
}

func (h *Hand) Len() int {
	return len(h.cards)
}

func (h *Hand) IsEmpty() bool {
	return len(h.cards) == 0
}

func (h *Hand) IsTrump(c Card) bool {
	return c.IsTrump(h.trump)
}

// Trumps returns the trump cards in ascending order
func (h *Hand) Trumps() []Card {
	return h.filter(func(c Card) bool { return h.IsTrump(c) })
}

// NotTrumps returns the non-trump cards in ascending order
func (h *Hand) NotTrumps() []Card {
	return h.filter(func(c Card) bool { return !h.IsTrump(c) })
}

// Cards returns every card in the hand: non-trumps ascending, then trumps ascending.
func (h *Hand) Cards() []Card {
	return append(h.NotTrumps(), h.Trumps()...)
}

// LowestTrump returns the lowest trump card, if there is one
func (h *Hand) LowestTrump() (Card, bool) {
	trumps := h.Trumps()
	if len(trumps) == 0 {
		return Card{}, false
	}
	return trumps[0], true
}

// CanBeat returns, in ascending order, the cards that can beat target.
// Higher cards of the same suit come first; if includingTrumps is set and
// target is not a trump, every trump follows.
func (h *Hand) CanBeat(target Card, includingTrumps bool) []Card {
	targetIsTrump := h.IsTrump(target)
	if targetIsTrump && !includingTrumps {
		return []Card{}
	}

	results := h.filter(func(c Card) bool {
		return c.suit == target.suit && c.rank > target.rank
	})
	if !targetIsTrump && includingTrumps {
		results = append(results, h.Trumps()...)
	}

	return results
}

// CanBeAddedTo returns the cards that may be added to the table.
// On an empty table every card may be played. Otherwise the rank must match
// a card already on the table.
func (h *Hand) CanBeAddedTo(table []Card, includingTrumps bool) []Card {
	if len(table) == 0 {
		return h.Cards()
	}

	ranks := map[Rank]struct{}{}
	for _, c := range table {
		ranks[c.rank] = struct{}{}
	}

	results := []Card{}
	for _, c := range h.Cards() {
		if _, ok := ranks[c.rank]; !ok {
			continue
		}
		if !includingTrumps && h.IsTrump(c) {
			continue
		}
		results = append(results, c)
	}

	return results
}

// Groups partitions the hand by rank, returning only groups of two or more.
// Groups are ordered by rank.
func (h *Hand) Groups(includingTrumps bool) [][]Card {
	cards := h.Cards()
	if !includingTrumps {
		cards = h.NotTrumps()
	}
	slices.SortFunc(cards, Compare)

	groups := [][]Card{}
	for i := 0; i < len(cards); {
		j := i + 1
		for j < len(cards) && cards[j].rank == cards[i].rank {
			j++
		}
		if j-i > 1 {
			group := make([]Card, j-i)
			copy(group, cards[i:j])
			groups = append(groups, group)
		}
		i = j
	}

	return groups
}

// Copy returns an independent copy of the hand
func (h *Hand) Copy() *Hand {
	return NewHand(h.trump, h.Cards()...)
}

func (h *Hand) filter(keep func(Card) bool) []Card {
	results := []Card{}
	for c := range h.cards {
		if keep(c) {
			results = append(results, c)
		}
	}
	slices.SortFunc(results, Compare)
	return results
}

// SortCards sorts cards in place: non-trumps ascending, then trumps ascending.
func SortCards(cards []Card, trump Suit) {
	slices.SortFunc(cards, func(a, b Card) int {
		return CompareTrump(a, b, trump)
	})
}
