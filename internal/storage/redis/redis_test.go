package redis

import (
	"context"
	"github.com/14kear/pollstore/internal/domain/models"
	"github.com/14kear/pollstore/internal/storage"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"testing"
	"time"
)

// Нужен запущенный redis: TEST_REDIS_ADDR=localhost:6379 go test ./...
func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR is not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	ctx := context.Background()
	require.NoError(t, client.FlushDB(ctx).Err())

	s := NewWithClient(client)
	t.Cleanup(func() {
		client.FlushDB(context.Background())
		s.Close()
	})
	return s
}

func TestStorage_SaveAndLoad(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	snap, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Polls)
	assert.Zero(t, snap.Counter)

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for _, id := range []string{"1", "2", "10"} {
		require.NoError(t, s.SavePoll(ctx, models.Poll{
			ID:        id,
			Question:  "Q" + id,
			Options:   []string{"A", "B"},
			Votes:     map[string]int{"A": 0, "B": 0},
			CreatedBy: "user:1",
			CreatedAt: created,
		}, 10))
	}
	require.NoError(t, s.SavePoll(ctx, models.Poll{
		ID:        "2",
		Question:  "Q2",
		Options:   []string{"A", "B"},
		Votes:     map[string]int{"A": 0, "B": 4},
		CreatedBy: "user:1",
		CreatedAt: created,
	}, 10))

	snap, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), snap.Counter)
	require.Len(t, snap.Polls, 3)
	assert.Equal(t, []string{"1", "2", "10"}, []string{snap.Polls[0].ID, snap.Polls[1].ID, snap.Polls[2].ID})
	assert.Equal(t, 4, snap.Polls[1].Votes["B"])
	assert.True(t, created.Equal(snap.Polls[1].CreatedAt))
}

func TestStorage_CounterNeverMovesBack(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	p := models.Poll{ID: "2", Options: []string{"A"}, Votes: map[string]int{"A": 0}}
	require.NoError(t, s.SavePoll(ctx, p, 5))

	// запись с устаревшим счётчиком не должна откатить его назад
	p.Votes["A"] = 1
	require.NoError(t, s.SavePoll(ctx, p, 3))

	err := s.SavePoll(ctx, models.Poll{ID: "9", Options: []string{"A"}, Votes: map[string]int{"A": 0}}, 5)
	assert.ErrorIs(t, err, storage.ErrCounterBehind)

	snap, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), snap.Counter)
	require.Len(t, snap.Polls, 1)
	assert.Equal(t, 1, snap.Polls[0].Votes["A"])
}
