// Package memory keeps polls for the lifetime of the process only.
package memory

import (
	"context"
	"fmt"
	"github.com/14kear/pollstore/internal/domain/models"
	"github.com/14kear/pollstore/internal/storage"
	"strconv"
	"sync"
)

type Storage struct {
	mu      sync.Mutex
	polls   map[string]models.Poll
	order   []string
	counter uint64
	writes  int
}

func New() *Storage {
	return &Storage{polls: make(map[string]models.Poll)}
}

func (s *Storage) Load(_ context.Context) (models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := models.Snapshot{Counter: s.counter, Polls: make([]models.Poll, 0, len(s.order))}
	for _, id := range s.order {
		snap.Polls = append(snap.Polls, s.polls[id].Clone())
	}
	return snap, nil
}

func (s *Storage) SavePoll(_ context.Context, poll models.Poll, counter uint64) error {
	const op = "storage.memory.SavePoll"

	if n, err := strconv.ParseUint(poll.ID, 10, 64); err == nil && n > counter {
		return fmt.Errorf("%s: %w", op, storage.ErrCounterBehind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.polls[poll.ID]; !ok {
		s.order = append(s.order, poll.ID)
	}
	s.polls[poll.ID] = poll.Clone()
	s.counter = counter
	s.writes++
	return nil
}

// Writes reports how many SavePoll calls succeeded.
func (s *Storage) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *Storage) Close() error { return nil }
