package players

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/minaorangina/durak/deck"
	"github.com/minaorangina/durak/protocol"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	pterm.DisableColor()
	os.Exit(m.Run())
}

var ctx = context.Background()

func someGameData() protocol.GameData {
	return protocol.GameData{
		Trump:      deck.NewCard(deck.Six, deck.Hearts),
		DeckCount:  12,
		EnemyCount: 5,
		OnTable:    deck.MustParseCards("7C"),
		Discarded:  []deck.Card{},
	}
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestPlayersFind(t *testing.T) {
	harry := NewCLIPlayer("h", "Harry", NewInput(strings.NewReader("")), &bytes.Buffer{})
	sally := NewLinePlayer("s", "Sally", strings.NewReader(""), &bytes.Buffer{}, nil)
	ps := NewPlayers(harry, sally)

	p, ok := ps.Find("s")
	require.True(t, ok)
	assert.Equal(t, "Sally", p.Name())

	_, ok = ps.Find("nobody")
	assert.False(t, ok)
}

func TestSendText(t *testing.T) {
	t.Run("send simple text", func(t *testing.T) {
		buffer := &bytes.Buffer{}
		SendText(buffer, "Hello")
		assert.Equal(t, "Hello", buffer.String())
	})

	t.Run("send formatted text", func(t *testing.T) {
		buffer := &bytes.Buffer{}
		SendText(buffer, "Hello, %s", "human")
		assert.Equal(t, "Hello, human", buffer.String())
	})
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "10♦", displayCard(deck.NewCard(deck.Ten, deck.Diamonds)))
	assert.Equal(t, "Q♠", displayCard(deck.NewCard(deck.Queen, deck.Spades)))
	assert.Equal(t, "6♣ A♥", displayCards(deck.MustParseCards("6C AH")))
	assert.Equal(t, "-", displayCards(nil))
	assert.Equal(t, "(empty)", displayTable(nil))
	assert.Equal(t, "7♣/9♣  8♣/?", displayTable(deck.MustParseCards("7C 9C 8C")))
}

func TestLinePlayer(t *testing.T) {
	t.Run("init and deal expect ok", func(t *testing.T) {
		out := &bytes.Buffer{}
		p := NewLinePlayer("id", "bot", strings.NewReader("ok\nok\n"), out, nil)

		require.NoError(t, p.Init(ctx, deck.NewCard(deck.Six, deck.Hearts)))
		require.NoError(t, p.Deal(ctx, deck.MustParseCards("7C 8C"), someGameData()))

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "init 6H", lines[0])
		assert.True(t, strings.HasPrefix(lines[1], "deal 7C 8C ## {"))
	})

	t.Run("anything but ok is an error", func(t *testing.T) {
		p := NewLinePlayer("id", "bot", strings.NewReader("yes\n"), &bytes.Buffer{}, nil)
		err := p.Init(ctx, deck.NewCard(deck.Six, deck.Hearts))
		assert.ErrorIs(t, err, protocol.ErrUnexpectedResponse)
	})

	t.Run("move returns a card or nil", func(t *testing.T) {
		p := NewLinePlayer("id", "bot", strings.NewReader("7c\n\n"), &bytes.Buffer{}, nil)

		c, err := p.Move(ctx, nil, someGameData())
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, deck.NewCard(deck.Seven, deck.Clubs), *c)

		c, err = p.Move(ctx, nil, someGameData())
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("respond rejects more than one card", func(t *testing.T) {
		p := NewLinePlayer("id", "bot", strings.NewReader("8C 9C\n"), &bytes.Buffer{}, nil)
		_, err := p.Respond(ctx, deck.MustParseCards("7C"), someGameData())
		assert.ErrorIs(t, err, protocol.ErrUnexpectedResponse)
	})

	t.Run("give more accepts a final line without newline", func(t *testing.T) {
		p := NewLinePlayer("id", "bot", strings.NewReader("7D 7S"), &bytes.Buffer{}, nil)
		cards, err := p.GiveMore(ctx, deck.MustParseCards("7C 9C"), someGameData())
		require.NoError(t, err)
		assert.Equal(t, deck.MustParseCards("7D 7S"), cards)
	})

	t.Run("closed input is an error", func(t *testing.T) {
		p := NewLinePlayer("id", "bot", strings.NewReader(""), &bytes.Buffer{}, nil)
		_, err := p.Move(ctx, nil, someGameData())
		assert.Error(t, err)
	})

	t.Run("game end does not wait for a reply", func(t *testing.T) {
		out := &bytes.Buffer{}
		p := NewLinePlayer("id", "bot", strings.NewReader(""), out, nil)
		require.NoError(t, p.GameEnd(ctx))
		assert.Equal(t, "game_end\n", out.String())
	})
}

func TestCLIPlayer(t *testing.T) {
	newPlayer := func(input string) (*CLIPlayer, *bytes.Buffer) {
		out := &bytes.Buffer{}
		return NewCLIPlayer("id", "Harry", NewInput(strings.NewReader(input)), out), out
	}

	t.Run("shows the dealt hand", func(t *testing.T) {
		p, out := newPlayer("")
		require.NoError(t, p.Deal(ctx, deck.MustParseCards("6C TD"), someGameData()))
		assert.Contains(t, out.String(), "Harry, here are your cards")
		assert.Contains(t, out.String(), "6♣ 10♦")
	})

	t.Run("move reads a card and removes it from the hand", func(t *testing.T) {
		p, out := newPlayer("6c\n")
		require.NoError(t, p.Deal(ctx, deck.MustParseCards("6C TD"), someGameData()))

		c, err := p.Move(ctx, nil, someGameData())
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, deck.NewCard(deck.Six, deck.Clubs), *c)
		assert.Equal(t, deck.MustParseCards("TD"), p.hand)
		assert.Contains(t, out.String(), "Harry, your move")
	})

	t.Run("empty entry passes", func(t *testing.T) {
		p, _ := newPlayer("\n")
		c, err := p.Respond(ctx, deck.MustParseCards("7C"), someGameData())
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("bad entries are retried", func(t *testing.T) {
		p, out := newPlayer("ZZ\n7C 8C\n8C\n")
		c, err := p.Respond(ctx, deck.MustParseCards("7C"), someGameData())
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, deck.NewCard(deck.Eight, deck.Clubs), *c)
		assert.Equal(t, 2, strings.Count(out.String(), "Invalid entry"))
	})

	t.Run("gives up after too many bad entries", func(t *testing.T) {
		p, _ := newPlayer("x\ny\nz\n8C\n")
		_, err := p.Move(ctx, nil, someGameData())
		assert.ErrorIs(t, err, ErrMaxRetries)
	})

	t.Run("give more reads several cards", func(t *testing.T) {
		p, _ := newPlayer("7D 7S\n")
		require.NoError(t, p.Deal(ctx, deck.MustParseCards("7D 7S 9H"), someGameData()))

		cards, err := p.GiveMore(ctx, deck.MustParseCards("7C 9C"), someGameData())
		require.NoError(t, err)
		assert.Equal(t, deck.MustParseCards("7D 7S"), cards)
		assert.Equal(t, deck.MustParseCards("9H"), p.hand)
	})

	t.Run("reject restores the hand", func(t *testing.T) {
		p, out := newPlayer("9H\n")
		require.NoError(t, p.Deal(ctx, deck.MustParseCards("7D 9H"), someGameData()))

		_, err := p.Move(ctx, nil, someGameData())
		require.NoError(t, err)
		assert.Equal(t, deck.MustParseCards("7D"), p.hand)

		p.Reject(assert.AnError)
		assert.Equal(t, deck.MustParseCards("7D 9H"), p.hand)
		assert.Contains(t, out.String(), "That is not allowed")
	})

	t.Run("two players can share a terminal", func(t *testing.T) {
		in := NewInput(strings.NewReader("6C\n7C\n"))
		out := &bytes.Buffer{}
		harry := NewCLIPlayer("h", "Harry", in, out)
		sally := NewCLIPlayer("s", "Sally", in, out)

		c, err := harry.Move(ctx, nil, someGameData())
		require.NoError(t, err)
		assert.Equal(t, deck.NewCard(deck.Six, deck.Clubs), *c)

		c, err = sally.Respond(ctx, deck.MustParseCards("6C"), someGameData())
		require.NoError(t, err)
		assert.Equal(t, deck.NewCard(deck.Seven, deck.Clubs), *c)
	})
}

func TestInput(t *testing.T) {
	t.Run("reads lines in order", func(t *testing.T) {
		in := NewInput(strings.NewReader("one\ntwo"))

		got, err := in.ReadLine(ctx)
		require.NoError(t, err)
		assert.Equal(t, "one\n", got)

		got, err = in.ReadLine(ctx)
		require.NoError(t, err)
		assert.Equal(t, "two", got)

		_, err = in.ReadLine(ctx)
		assert.True(t, errors.Is(err, io.EOF))
		_, err = in.ReadLine(ctx)
		assert.True(t, errors.Is(err, io.EOF))
	})

	t.Run("gives up when cancelled", func(t *testing.T) {
		t.Log("Given input that is still being typed")
		r, w := io.Pipe()
		defer w.Close()
		in := NewInput(r)

		t.Log("When the reader is cancelled")
		cctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		_, err := in.ReadLine(cctx)

		t.Log("Then it stops waiting, and the line goes to the next read")
		assert.True(t, errors.Is(err, context.DeadlineExceeded))

		go w.Write([]byte("6C\n"))
		got, err := in.ReadLine(ctx)
		require.NoError(t, err)
		assert.Equal(t, "6C\n", got)
	})
}

func TestCLIPlayerCancel(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	p := NewCLIPlayer("id", "Harry", NewInput(r), &bytes.Buffer{})

	cctx, cancel := context.WithCancel(ctx)
	time.AfterFunc(20*time.Millisecond, cancel)

	done := make(chan error)
	go func() {
		_, err := p.Move(cctx, nil, someGameData())
		done <- err
	}()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(time.Second):
		t.Fatal("still waiting for input after cancel")
	}
}

func TestCLIPlayerNameWithPercent(t *testing.T) {
	out := &bytes.Buffer{}
	p := NewCLIPlayer("id", "100% Harry", NewInput(strings.NewReader("\n")), out)

	_, err := p.Move(ctx, nil, someGameData())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "100% Harry, your move")
	assert.NotContains(t, out.String(), "%!")
}
