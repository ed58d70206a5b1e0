package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/minaorangina/durak/deck"
)

const (
	gameDataSeparator = "##"
	okResponse        = "ok"
)

var (
	ErrEmptyLine          = errors.New("empty line")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrUnexpectedResponse = errors.New("unexpected response")
)

// Request is one line sent to a player:
// <command> <space-separated card tokens> [## <JSON object>]
type Request struct {
	Cmd      Cmd
	Cards    []deck.Card
	GameData *GameData
}

// Encode renders the request as a single line, without the trailing newline
func (r Request) Encode() (string, error) {
	parts := []string{r.Cmd.String()}
	for _, c := range r.Cards {
		parts = append(parts, c.String())
	}

	if r.GameData != nil {
		b, err := json.Marshal(r.GameData)
		if err != nil {
			return "", err
		}
		parts = append(parts, gameDataSeparator, string(b))
	}

	return strings.Join(parts, " "), nil
}

// DecodeRequest parses a request line
func DecodeRequest(line string) (Request, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Request{}, ErrEmptyLine
	}

	var req Request
	command := line
	if idx := strings.Index(line, gameDataSeparator); idx >= 0 {
		command = line[:idx]
		var data GameData
		if err := json.Unmarshal([]byte(line[idx+len(gameDataSeparator):]), &data); err != nil {
			return Request{}, fmt.Errorf("could not decode game data: %w", err)
		}
		req.GameData = &data
	}

	fields := strings.Fields(command)
	if len(fields) == 0 {
		return Request{}, ErrEmptyLine
	}

	cmd, ok := NameToCmd[fields[0]]
	if !ok {
		return Request{}, fmt.Errorf("%w %q", ErrUnknownCommand, fields[0])
	}
	req.Cmd = cmd

	cards, err := deck.ParseCards(fields[1:])
	if err != nil {
		return Request{}, err
	}
	req.Cards = cards

	return req, nil
}

// EncodeResponse renders a player's answer to cmd
func EncodeResponse(cmd Cmd, cards []deck.Card) string {
	switch cmd {
	case Init, Deal:
		return okResponse
	}

	tokens := make([]string, 0, len(cards))
	for _, c := range cards {
		tokens = append(tokens, c.String())
	}
	return strings.Join(tokens, " ")
}

// DecodeResponse parses a player's answer to cmd.
// An empty answer to Move, Respond or GiveMore means no card.
func DecodeResponse(cmd Cmd, line string) ([]deck.Card, error) {
	line = strings.TrimSpace(line)

	switch cmd {
	case Init, Deal:
		if line != okResponse {
			return nil, fmt.Errorf("%w: %s should return %q, got %q instead", ErrUnexpectedResponse, cmd, okResponse, line)
		}
		return nil, nil

	case Move, Respond:
		fields := strings.Fields(line)
		if len(fields) > 1 {
			return nil, fmt.Errorf("%w: %s expects one card, got %q", ErrUnexpectedResponse, cmd, line)
		}
		return deck.ParseCards(fields)

	case GiveMore:
		return deck.ParseCards(strings.Fields(line))
	}

	return nil, fmt.Errorf("%w: %s has no response", ErrUnexpectedResponse, cmd)
}
