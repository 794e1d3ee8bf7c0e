package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/14kear/pollstore/internal/domain/models"
	"github.com/14kear/pollstore/internal/storage"
	"github.com/go-redis/redis/v8"
	"strconv"
)

const (
	pollsKey   = "polls"
	orderKey   = "polls:order"
	counterKey = "polls:counter"
)

// advanceCounter поднимает счётчик до ARGV[1], но никогда не опускает его.
const advanceCounter = `
local cur = tonumber(redis.call('GET', KEYS[1]) or '0')
local next = tonumber(ARGV[1])
if next > cur then
	redis.call('SET', KEYS[1], ARGV[1])
end
return 0`

// Storage keeps each poll as JSON in a hash, creation order in a sorted set
// scored by the numeric id, and the counter in a plain key.
type Storage struct {
	client *redis.Client
}

// New connects to addr and checks the connection with PING.
func New(ctx context.Context, addr string, db int) (*Storage, error) {
	const op = "storage.redis.New"

	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{client: client}, nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client) *Storage {
	return &Storage{client: client}
}

func (s *Storage) Close() error { return s.client.Close() }

func (s *Storage) Load(ctx context.Context) (models.Snapshot, error) {
	const op = "storage.redis.Load"

	ids, err := s.client.ZRange(ctx, orderKey, 0, -1).Result()
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("%s: order: %w", op, err)
	}

	var snap models.Snapshot
	if len(ids) > 0 {
		raw, err := s.client.HMGet(ctx, pollsKey, ids...).Result()
		if err != nil {
			return models.Snapshot{}, fmt.Errorf("%s: polls: %w", op, err)
		}
		snap.Polls = make([]models.Poll, 0, len(ids))
		for i, v := range raw {
			str, ok := v.(string)
			if !ok {
				return models.Snapshot{}, fmt.Errorf("%s: poll %s missing: %w", op, ids[i], storage.ErrCorruptPoll)
			}
			var poll models.Poll
			if err := json.Unmarshal([]byte(str), &poll); err != nil {
				return models.Snapshot{}, fmt.Errorf("%s: poll %s: %w", op, ids[i], storage.ErrCorruptPoll)
			}
			snap.Polls = append(snap.Polls, poll)
		}
	}

	counter, err := s.client.Get(ctx, counterKey).Uint64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return models.Snapshot{}, fmt.Errorf("%s: counter: %w", op, err)
	}
	snap.Counter = counter

	return snap, nil
}

// SavePoll writes the poll, its order entry and the counter in MULTI/EXEC.
// The counter only moves forward.
func (s *Storage) SavePoll(ctx context.Context, poll models.Poll, counter uint64) error {
	const op = "storage.redis.SavePoll"

	seq, err := strconv.ParseUint(poll.ID, 10, 64)
	if err != nil {
		return fmt.Errorf("%s: poll id %q: %w", op, poll.ID, err)
	}
	if seq > counter {
		return fmt.Errorf("%s: %w", op, storage.ErrCounterBehind)
	}

	data, err := json.Marshal(poll)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, pollsKey, poll.ID, data)
		pipe.ZAddNX(ctx, orderKey, &redis.Z{Score: float64(seq), Member: poll.ID})
		pipe.Eval(ctx, advanceCounter, []string{counterKey}, strconv.FormatUint(counter, 10))
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
