package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/minaorangina/durak/deck"
)

var (
	ErrInvalidAction         = errors.New("invalid action")
	ErrCardIsExpected        = errors.New("card is expected: can not pass on an empty table")
	ErrPlayerDoesNotHaveCard = errors.New("player does not have card")
	ErrInvalidCard           = errors.New("invalid card")
)

// InvalidActionError is returned when an operation is called in the wrong state
type InvalidActionError struct {
	Expected State
	Got      State
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("%s: %q expected, got %q instead", ErrInvalidAction, e.Expected, e.Got)
}

func (e *InvalidActionError) Unwrap() error {
	return ErrInvalidAction
}

// PlayerDoesNotHaveCardError names the cards missing from the acting player's hand
type PlayerDoesNotHaveCardError struct {
	Cards []deck.Card
}

func (e *PlayerDoesNotHaveCardError) Error() string {
	tokens := make([]string, 0, len(e.Cards))
	for _, c := range e.Cards {
		tokens = append(tokens, c.String())
	}
	return fmt.Sprintf("%s: %s", ErrPlayerDoesNotHaveCard, strings.Join(tokens, " "))
}

func (e *PlayerDoesNotHaveCardError) Unwrap() error {
	return ErrPlayerDoesNotHaveCard
}

func invalidCardf(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidCard, fmt.Sprintf(format, a...))
}
