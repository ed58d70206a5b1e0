package deck

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCard(t *testing.T) {
	cases := []struct {
		name     string
		card     Card
		token    string
		longName string
	}{
		{"Lowest value card", NewCard(Six, Clubs), "6C", "Six of Clubs"},
		{"Specific card", NewCard(Queen, Hearts), "QH", "Queen of Hearts"},
		{"Ten uses a letter", NewCard(Ten, Diamonds), "TD", "Ten of Diamonds"},
		{"Highest value card", NewCard(Ace, Spades), "AS", "Ace of Spades"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.token, c.card.String())
			assert.Equal(t, c.longName, c.card.Name())
		})
	}

	t.Run("Out of range (should panic)", func(t *testing.T) {
		assert.Panics(t, func() { NewCard(Ace+1, Clubs) })
		assert.Panics(t, func() { NewCard(Six, Spades+1) })
		assert.Panics(t, func() { NewCard(-1, Hearts) })
	})

	t.Run("Out of range ranks and suits print as unknown", func(t *testing.T) {
		assert.Equal(t, byte('?'), Rank(12).Letter())
		assert.Equal(t, byte('?'), Rank(-1).Letter())
		assert.Equal(t, byte('?'), Suit(4).Letter())
		assert.Equal(t, "Rank(12)", Rank(12).String())
		assert.Equal(t, byte('Q'), Queen.Letter())
		assert.Equal(t, byte('H'), Hearts.Letter())
	})
}

func TestParseCard(t *testing.T) {
	t.Run("valid tokens", func(t *testing.T) {
		for _, c := range All() {
			got, err := ParseCard(c.String())
			require.NoError(t, err)
			assert.Equal(t, c, got)
		}
	})

	t.Run("lower case and surrounding space are accepted", func(t *testing.T) {
		got, err := ParseCard(" qs\n")
		require.NoError(t, err)
		assert.Equal(t, NewCard(Queen, Spades), got)
	})

	t.Run("invalid tokens", func(t *testing.T) {
		cases := []struct {
			input string
			want  error
		}{
			{"", ErrInvalidCardString},
			{"A", ErrInvalidCardString},
			{"10H", ErrInvalidCardString},
			{"5H", ErrInvalidRank},
			{"2C", ErrInvalidRank},
			{"AX", ErrInvalidSuit},
			{"HA", ErrInvalidRank},
		}
		for _, c := range cases {
			_, err := ParseCard(c.input)
			assert.ErrorIs(t, err, c.want, c.input)
		}
	})

	t.Run("ParseCards stops on the first bad token", func(t *testing.T) {
		_, err := ParseCards([]string{"AH", "ZZ", "6C"})
		assert.ErrorIs(t, err, ErrInvalidRank)

		cards, err := ParseCards([]string{"AH", "6C"})
		require.NoError(t, err)
		assert.Equal(t, []Card{NewCard(Ace, Hearts), NewCard(Six, Clubs)}, cards)
	})
}

func TestCardJSON(t *testing.T) {
	payload := struct {
		Trump Card   `json:"trump"`
		Table []Card `json:"table"`
	}{
		Trump: NewCard(Seven, Hearts),
		Table: MustParseCards("AD TS"),
	}

	b, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"trump":"7H","table":["AD","TS"]}`, string(b))

	var decoded struct {
		Trump Card   `json:"trump"`
		Table []Card `json:"table"`
	}
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, payload.Trump, decoded.Trump)
	assert.Equal(t, payload.Table, decoded.Table)

	assert.Error(t, json.Unmarshal([]byte(`{"trump":"1H"}`), &decoded))
}

func TestCompare(t *testing.T) {
	t.Run("a card is equal to itself, with or without trumps", func(t *testing.T) {
		for _, c := range All() {
			assert.Equal(t, 0, Compare(c, c))
			for suit := Clubs; suit <= Spades; suit++ {
				assert.Equal(t, 0, CompareTrump(c, c, suit))
			}
		}
	})

	t.Run("rank first, then suit", func(t *testing.T) {
		assert.Equal(t, -1, Compare(NewCard(Six, Spades), NewCard(Seven, Clubs)))
		assert.Equal(t, 1, Compare(NewCard(Ace, Clubs), NewCard(King, Spades)))
		assert.Equal(t, -1, Compare(NewCard(Nine, Clubs), NewCard(Nine, Diamonds)))
		assert.True(t, NewCard(Nine, Hearts).Less(NewCard(Nine, Spades)))
	})

	t.Run("any trump beats any non-trump", func(t *testing.T) {
		assert.Equal(t, 1, CompareTrump(NewCard(Six, Hearts), NewCard(Ace, Spades), Hearts))
		assert.Equal(t, -1, CompareTrump(NewCard(Ace, Spades), NewCard(Six, Hearts), Hearts))
		assert.Equal(t, -1, CompareTrump(NewCard(Six, Hearts), NewCard(Seven, Hearts), Hearts))
		assert.Equal(t, 1, CompareTrump(NewCard(King, Clubs), NewCard(Queen, Diamonds), Hearts))
	})

	t.Run("strict total order", func(t *testing.T) {
		all := All()
		for _, trump := range []Suit{Clubs, Diamonds, Hearts, Spades} {
			for _, a := range all {
				for _, b := range all {
					ab, ba := CompareTrump(a, b, trump), CompareTrump(b, a, trump)
					if ab != -ba {
						t.Fatalf("asymmetric comparison for %s and %s (trump %s)", a, b, trump)
					}
					if (ab == 0) != (a == b) {
						t.Fatalf("%s and %s compare equal but differ", a, b)
					}
					for _, c := range []Card{NewCard(Ten, Hearts), NewCard(Six, Clubs), NewCard(Ace, Spades)} {
						if ab < 0 && CompareTrump(b, c, trump) < 0 && CompareTrump(a, c, trump) >= 0 {
							t.Fatalf("intransitive: %s < %s < %s", a, b, c)
						}
					}
				}
			}
		}
	})
}

func TestAll(t *testing.T) {
	all := All()
	assert.Equal(t, 36, len(all))

	seen := map[Card]struct{}{}
	for _, c := range all {
		seen[c] = struct{}{}
	}
	assert.Equal(t, 36, len(seen))
	assert.Equal(t, NewCard(Six, Clubs), all[0])
	assert.Equal(t, NewCard(Ace, Spades), all[35])
}
