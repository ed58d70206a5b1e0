package deck

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCardString = errors.New("card string should be 2 characters long")
	ErrInvalidRank       = errors.New("invalid rank")
	ErrInvalidSuit       = errors.New("invalid suit")
)

// Rank represents a rank in a 36-card deck
type Rank int

const (
	Six Rank = iota
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var (
	rankNames   = []string{"Six", "Seven", "Eight", "Nine", "Ten", "Jack", "Queen", "King", "Ace"}
	rankLetters = "6789TJQKA"
)

func (r Rank) valid() bool {
	return r >= Six && r <= Ace
}

func (r Rank) String() string {
	if !r.valid() {
		return fmt.Sprintf("Rank(%d)", int(r))
	}
	return rankNames[r]
}

// Letter returns the single character used for the rank in card tokens
func (r Rank) Letter() byte {
	if !r.valid() {
		return '?'
	}
	return rankLetters[r]
}

// Suit represents a suit in a deck of cards
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

var (
	suitNames   = []string{"Clubs", "Diamonds", "Hearts", "Spades"}
	suitLetters = "CDHS"
)

func (s Suit) valid() bool {
	return s >= Clubs && s <= Spades
}

func (s Suit) String() string {
	if !s.valid() {
		return fmt.Sprintf("Suit(%d)", int(s))
	}
	return suitNames[s]
}

// Letter returns the single character used for the suit in card tokens
func (s Suit) Letter() byte {
	if !s.valid() {
		return '?'
	}
	return suitLetters[s]
}

// Card is one of the 36 playing cards. The zero value is the Six of Clubs.
type Card struct {
	rank Rank
	suit Suit
}

// NewCard constructs a card. It panics if rank or suit is out of range.
func NewCard(rank Rank, suit Suit) Card {
	if !rank.valid() || !suit.valid() {
		panic(fmt.Sprintf("card out of range: rank %d, suit %d", rank, suit))
	}
	return Card{rank: rank, suit: suit}
}

// ParseCard parses a two character token such as "7H" or "TD".
func ParseCard(s string) (Card, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCardString, s)
	}

	rank := strings.IndexByte(rankLetters, s[0])
	if rank < 0 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidRank, s[0])
	}
	suit := strings.IndexByte(suitLetters, s[1])
	if suit < 0 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidSuit, s[1])
	}

	return Card{rank: Rank(rank), suit: Suit(suit)}, nil
}

// ParseCards parses a list of card tokens, stopping at the first bad one.
func ParseCards(tokens []string) ([]Card, error) {
	cards := make([]Card, 0, len(tokens))
	for _, t := range tokens {
		c, err := ParseCard(t)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards parses a space separated list of tokens and panics on error.
// Intended for tests and fixtures.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(strings.Fields(s))
	if err != nil {
		panic(err)
	}
	return cards
}

// Rank returns a card's rank
func (c Card) Rank() Rank {
	return c.rank
}

// Suit returns a card's suit
func (c Card) Suit() Suit {
	return c.suit
}

// String returns the card token, e.g. "QS"
func (c Card) String() string {
	return string([]byte{c.rank.Letter(), c.suit.Letter()})
}

// Name returns the long form, e.g. "Queen of Spades"
func (c Card) Name() string {
	return fmt.Sprintf("%s of %s", c.rank, c.suit)
}

func (c Card) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// IsTrump reports whether the card belongs to the trump suit
func (c Card) IsTrump(trump Suit) bool {
	return c.suit == trump
}

// Compare orders cards by rank, then by suit.
// It returns -1, 0 or 1.
func Compare(a, b Card) int {
	switch {
	case a.rank < b.rank:
		return -1
	case a.rank > b.rank:
		return 1
	case a.suit < b.suit:
		return -1
	case a.suit > b.suit:
		return 1
	}
	return 0
}

// CompareTrump is Compare with a trump suit: any trump outranks any non-trump.
func CompareTrump(a, b Card, trump Suit) int {
	aTrump, bTrump := a.IsTrump(trump), b.IsTrump(trump)
	if aTrump && !bTrump {
		return 1
	}
	if !aTrump && bTrump {
		return -1
	}
	return Compare(a, b)
}

// Less reports whether c sorts before other, ignoring trumps
func (c Card) Less(other Card) bool {
	return Compare(c, other) < 0
}

// All returns the 36 cards in ascending order
func All() []Card {
	cards := make([]Card, 0, len(rankNames)*len(suitNames))
	for rank := range rankNames {
		for suit := range suitNames {
			cards = append(cards, Card{rank: Rank(rank), suit: Suit(suit)})
		}
	}
	return cards
}
