package players

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minaorangina/durak/deck"
	"github.com/minaorangina/durak/protocol"
	"golang.org/x/exp/slices"
)

var (
	retries = 3

	ErrMaxRetries = errors.New("max retries exceeded")
)

type conn struct {
	In  *Input
	Out io.Writer
}

// CLIPlayer is a person at a terminal. Players sharing a terminal must
// share the same Input.
type CLIPlayer struct {
	id      string
	name    string
	hand    []deck.Card
	pending []deck.Card
	Conn    *conn
}

// NewCLIPlayer constructs a CLIPlayer
func NewCLIPlayer(id, name string, in *Input, out io.Writer) *CLIPlayer {
	return &CLIPlayer{
		id:   id,
		name: name,
		hand: []deck.Card{},
		Conn: &conn{In: in, Out: out},
	}
}

func (p *CLIPlayer) ID() string {
	return p.id
}

func (p *CLIPlayer) Name() string {
	return p.name
}

func (p *CLIPlayer) Init(ctx context.Context, trump deck.Card) error {
	SendText(p.Conn.Out, trumpText, displayCard(trump))
	return nil
}

func (p *CLIPlayer) Deal(ctx context.Context, hand []deck.Card, data protocol.GameData) error {
	p.hand = slices.Clone(hand)
	SendText(p.Conn.Out, dealtText, p.name)
	SendText(p.Conn.Out, "%s\n", displayCards(p.hand))
	return nil
}

func (p *CLIPlayer) Move(ctx context.Context, onTable []deck.Card, data protocol.GameData) (*deck.Card, error) {
	SendText(p.Conn.Out, "%s", buildStatusText(p.hand, onTable, data))
	cards, err := p.askForCards(ctx, fmt.Sprintf(movePromptText, p.name), 1)
	if err != nil {
		return nil, err
	}
	return p.play(singleCard(cards)), nil
}

func (p *CLIPlayer) Respond(ctx context.Context, onTable []deck.Card, data protocol.GameData) (*deck.Card, error) {
	SendText(p.Conn.Out, "%s", buildStatusText(p.hand, onTable, data))

	toBeat := "nothing"
	if len(onTable) > 0 {
		toBeat = displayCard(onTable[len(onTable)-1])
	}
	cards, err := p.askForCards(ctx, fmt.Sprintf(respondPromptText, p.name, toBeat), 1)
	if err != nil {
		return nil, err
	}
	return p.play(singleCard(cards)), nil
}

func (p *CLIPlayer) GiveMore(ctx context.Context, onTable []deck.Card, data protocol.GameData) ([]deck.Card, error) {
	SendText(p.Conn.Out, "%s", buildStatusText(p.hand, onTable, data))
	cards, err := p.askForCards(ctx, fmt.Sprintf(giveMorePromptText, p.name), len(p.hand))
	if err != nil {
		return nil, err
	}
	for _, c := range cards {
		p.play(&c)
	}
	return cards, nil
}

// Reject puts the refused cards back in the displayed hand; the next Deal
// replaces the hand anyway.
func (p *CLIPlayer) Reject(err error) {
	SendText(p.Conn.Out, rejectedText, err.Error())
	if p.pending != nil {
		p.hand = p.pending
		p.pending = nil
	}
}

func (p *CLIPlayer) GameEnd(ctx context.Context) error {
	SendText(p.Conn.Out, gameEndText, p.name)
	return nil
}

// play removes a card from the displayed hand, remembering the hand as it
// was in case the move is rejected.
func (p *CLIPlayer) play(c *deck.Card) *deck.Card {
	if c == nil {
		return nil
	}
	if p.pending == nil {
		p.pending = slices.Clone(p.hand)
	}
	if idx := slices.Index(p.hand, *c); idx >= 0 {
		p.hand = slices.Delete(p.hand, idx, idx+1)
	}
	return c
}

// askForCards prompts until the entry parses as at most max cards.
// An empty entry returns no cards.
func (p *CLIPlayer) askForCards(ctx context.Context, prompt string, max int) ([]deck.Card, error) {
	p.pending = nil

	for retriesLeft := retries; retriesLeft > 0; retriesLeft-- {
		SendText(p.Conn.Out, "%s", prompt)

		entry, err := p.Conn.In.ReadLine(ctx)
		if err != nil {
			return nil, err
		}

		cards, err := deck.ParseCards(strings.Fields(entry))
		if err != nil {
			SendText(p.Conn.Out, retryCardText, err.Error())
			continue
		}
		if len(cards) > max {
			SendText(p.Conn.Out, retryCardText, fmt.Sprintf("at most %d card(s)", max))
			continue
		}
		return cards, nil
	}

	return nil, ErrMaxRetries
}
