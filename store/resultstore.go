package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/minaorangina/durak/engine"
)

var (
	ErrUnknownGameID   = errors.New("unknown game ID")
	ErrDuplicateGameID = errors.New("game ID already recorded")
	ErrFnMissingGameID = func(r engine.Result) error {
		return fmt.Errorf("result has no game ID (draw %t, forfeit %t)", r.Draw, r.Forfeit)
	}
)

type ResultStore interface {
	AddResult(result engine.Result) error
	FindResult(gameID string) (engine.Result, error)
	Tally() Tally
}

// Tally counts wins per player ID
type Tally struct {
	Wins     map[string]int
	Draws    int
	Forfeits int
	Games    int
}

// InMemoryResultStore maps game id to result
type InMemoryResultStore struct {
	mu      sync.RWMutex
	Results map[string]engine.Result
	order   []string
}

// NewInMemoryResultStore constructs an InMemoryResultStore
func NewInMemoryResultStore() *InMemoryResultStore {
	return &InMemoryResultStore{
		Results: map[string]engine.Result{},
	}
}

func (s *InMemoryResultStore) AddResult(result engine.Result) error {
	if result.GameID == "" {
		return ErrFnMissingGameID(result)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.Results[result.GameID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateGameID, result.GameID)
	}

	s.Results[result.GameID] = result
	s.order = append(s.order, result.GameID)
	return nil
}

func (s *InMemoryResultStore) FindResult(gameID string) (engine.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.Results[gameID]
	if !ok {
		return engine.Result{}, fmt.Errorf("%w: %s", ErrUnknownGameID, gameID)
	}
	return result, nil
}

// GameIDs lists the recorded games, oldest first
func (s *InMemoryResultStore) GameIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]string{}, s.order...)
}

func (s *InMemoryResultStore) Tally() Tally {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tally := Tally{Wins: map[string]int{}}
	for _, result := range s.Results {
		tally.Games++
		if result.Forfeit {
			tally.Forfeits++
		}
		if result.Draw || result.Winner == nil {
			tally.Draws++
			continue
		}
		tally.Wins[result.Winner.ID()]++
	}
	return tally
}
