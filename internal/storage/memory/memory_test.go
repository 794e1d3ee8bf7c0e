package memory

import (
	"context"
	"github.com/14kear/pollstore/internal/domain/models"
	"github.com/14kear/pollstore/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestStorage_SaveAndLoad(t *testing.T) {
	s := New()
	ctx := context.Background()

	p1 := models.Poll{ID: "1", Question: "Q1", Options: []string{"A"}, Votes: map[string]int{"A": 0}}
	p2 := models.Poll{ID: "2", Question: "Q2", Options: []string{"B"}, Votes: map[string]int{"B": 0}}

	require.NoError(t, s.SavePoll(ctx, p1, 1))
	require.NoError(t, s.SavePoll(ctx, p2, 2))

	p1.Votes["A"] = 5
	require.NoError(t, s.SavePoll(ctx, p1, 2))

	snap, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), snap.Counter)
	require.Len(t, snap.Polls, 2)
	assert.Equal(t, "1", snap.Polls[0].ID)
	assert.Equal(t, 5, snap.Polls[0].Votes["A"])
	assert.Equal(t, "2", snap.Polls[1].ID)
	assert.Equal(t, 3, s.Writes())
}

func TestStorage_SavePoll_CopiesInput(t *testing.T) {
	s := New()
	ctx := context.Background()

	p := models.Poll{ID: "1", Options: []string{"A"}, Votes: map[string]int{"A": 0}}
	require.NoError(t, s.SavePoll(ctx, p, 1))
	p.Votes["A"] = 10

	snap, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Zero(t, snap.Polls[0].Votes["A"])
}

func TestStorage_SavePoll_CounterBehind(t *testing.T) {
	s := New()

	err := s.SavePoll(context.Background(), models.Poll{ID: "3"}, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrCounterBehind)
	assert.Zero(t, s.Writes())
}
