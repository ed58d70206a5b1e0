package players

import (
	"context"
	"fmt"
	"io"

	"github.com/minaorangina/durak/deck"
	"github.com/minaorangina/durak/protocol"
	"go.uber.org/zap"
)

// LinePlayer talks to a program using the line protocol: one request line
// out, one response line back. The caller owns the streams.
type LinePlayer struct {
	id     string
	name   string
	in     *Input
	out    io.Writer
	logger *zap.Logger
}

// NewLinePlayer constructs a LinePlayer
func NewLinePlayer(id, name string, in io.Reader, out io.Writer, logger *zap.Logger) *LinePlayer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LinePlayer{
		id:     id,
		name:   name,
		in:     NewInput(in),
		out:    out,
		logger: logger.With(zap.String("player", name)),
	}
}

func (p *LinePlayer) ID() string {
	return p.id
}

func (p *LinePlayer) Name() string {
	return p.name
}

func (p *LinePlayer) Init(ctx context.Context, trump deck.Card) error {
	_, err := p.send(ctx, protocol.Request{Cmd: protocol.Init, Cards: []deck.Card{trump}})
	return err
}

func (p *LinePlayer) Deal(ctx context.Context, hand []deck.Card, data protocol.GameData) error {
	_, err := p.send(ctx, protocol.Request{Cmd: protocol.Deal, Cards: hand, GameData: &data})
	return err
}

func (p *LinePlayer) Move(ctx context.Context, onTable []deck.Card, data protocol.GameData) (*deck.Card, error) {
	cards, err := p.send(ctx, protocol.Request{Cmd: protocol.Move, Cards: onTable, GameData: &data})
	if err != nil {
		return nil, err
	}
	return singleCard(cards), nil
}

func (p *LinePlayer) Respond(ctx context.Context, onTable []deck.Card, data protocol.GameData) (*deck.Card, error) {
	cards, err := p.send(ctx, protocol.Request{Cmd: protocol.Respond, Cards: onTable, GameData: &data})
	if err != nil {
		return nil, err
	}
	return singleCard(cards), nil
}

func (p *LinePlayer) GiveMore(ctx context.Context, onTable []deck.Card, data protocol.GameData) ([]deck.Card, error) {
	return p.send(ctx, protocol.Request{Cmd: protocol.GiveMore, Cards: onTable, GameData: &data})
}

// Reject is logged only: the line protocol has no rejection message.
func (p *LinePlayer) Reject(err error) {
	p.logger.Info("choice rejected", zap.Error(err))
}

func (p *LinePlayer) GameEnd(ctx context.Context) error {
	_, err := p.send(ctx, protocol.Request{Cmd: protocol.GameEnd})
	return err
}

func (p *LinePlayer) send(ctx context.Context, req protocol.Request) ([]deck.Card, error) {
	line, err := req.Encode()
	if err != nil {
		return nil, err
	}

	p.logger.Debug("sending", zap.String("line", line))
	if _, err := fmt.Fprintln(p.out, line); err != nil {
		return nil, err
	}

	if !req.Cmd.ExpectsReply() {
		return nil, nil
	}

	response, err := p.in.ReadLine(ctx)
	if err != nil {
		return nil, fmt.Errorf("no response to %s: %w", req.Cmd, err)
	}
	p.logger.Debug("receiving", zap.String("line", response))

	return protocol.DecodeResponse(req.Cmd, response)
}
