package polls

import (
	"context"
	"errors"
	"fmt"
	"github.com/14kear/pollstore/internal/domain/models"
	"github.com/14kear/pollstore/internal/lib/identity"
	"github.com/14kear/sso-prettyslog/slogpretty/errors"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrDuplicateOptions = errors.New("poll options must be unique")
	ErrPollNotFound     = errors.New("poll not found")
	ErrInvalidOption    = errors.New("invalid option")
)

//go:generate mockgen -source=polls.go -destination=mocks/mocks.go -package=mocks

// Persister is the durable substrate behind the store. SavePoll must write
// the poll and the counter atomically.
type Persister interface {
	Load(ctx context.Context) (models.Snapshot, error)
	SavePoll(ctx context.Context, poll models.Poll, counter uint64) error
}

// Publisher receives committed mutations. Implementations must not block
// for long; errors are logged and dropped.
type Publisher interface {
	PollCreated(ctx context.Context, poll models.Poll) error
	VoteCast(ctx context.Context, pollID, option string) error
}

// state is immutable once published through Store.current.
type state struct {
	polls   map[string]models.Poll
	order   []string
	counter uint64
}

// Store owns every poll and the identifier counter. Writers are serialized
// by mu and publish a fresh state; readers never lock.
type Store struct {
	log       *slog.Logger
	persister Persister
	publisher Publisher
	now       func() time.Time

	mu      sync.Mutex
	current atomic.Pointer[state]
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithPublisher(p Publisher) Option {
	return func(s *Store) { s.publisher = p }
}

// New loads the persisted snapshot and returns a ready store.
func New(ctx context.Context, log *slog.Logger, persister Persister, opts ...Option) (*Store, error) {
	const op = "polls.New"

	s := &Store{
		log:       log,
		persister: persister,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}

	snap, err := persister.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	st := &state{
		polls:   make(map[string]models.Poll, len(snap.Polls)),
		order:   make([]string, 0, len(snap.Polls)),
		counter: snap.Counter,
	}
	for _, p := range snap.Polls {
		if _, dup := st.polls[p.ID]; !dup {
			st.order = append(st.order, p.ID)
		}
		st.polls[p.ID] = p.Clone()
		if n, err := strconv.ParseUint(p.ID, 10, 64); err == nil && n > st.counter {
			st.counter = n
		}
	}
	s.current.Store(st)

	log.Info("poll store loaded",
		slog.String("op", op),
		slog.Int("polls", len(st.order)),
		slog.Uint64("counter", st.counter),
	)

	return s, nil
}

// Create validates req and stores a new poll owned by the caller in ctx.
func (s *Store) Create(ctx context.Context, req models.CreatePollRequest) (models.Poll, error) {
	const op = "polls.Create"

	log := s.log.With(slog.String("op", op))

	if dup, ok := firstDuplicate(req.Options); ok {
		log.Warn("duplicate option", slog.String("option", dup))
		return models.Poll{}, fmt.Errorf("%s: %w: %q", op, ErrDuplicateOptions, dup)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current.Load()
	id, counter := generateID(cur.counter)

	votes := make(map[string]int, len(req.Options))
	for _, o := range req.Options {
		votes[o] = 0
	}
	poll := models.Poll{
		ID:        id,
		Question:  req.Question,
		Options:   append([]string(nil), req.Options...),
		Votes:     votes,
		CreatedBy: string(identity.Caller(ctx)),
		CreatedAt: s.now().Truncate(time.Microsecond),
	}

	if err := s.persister.SavePoll(ctx, poll, counter); err != nil {
		log.Error("failed to persist poll", sl.Err(err))
		return models.Poll{}, fmt.Errorf("%s: %w", op, err)
	}

	next := cur.with(poll)
	next.order = append(cur.order[:len(cur.order):len(cur.order)], id)
	next.counter = counter
	s.current.Store(next)

	log.Info("poll created", slog.String("id", id), slog.String("created_by", poll.CreatedBy))

	if s.publisher != nil {
		if err := s.publisher.PollCreated(ctx, poll.Clone()); err != nil {
			log.Warn("failed to publish poll created", sl.Err(err))
		}
	}

	return poll.Clone(), nil
}

// Vote adds exactly one vote for req.Option.
func (s *Store) Vote(ctx context.Context, req models.VoteRequest) error {
	const op = "polls.Vote"

	log := s.log.With(slog.String("op", op), slog.String("poll_id", req.PollID))

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current.Load()
	poll, ok := cur.polls[req.PollID]
	if !ok {
		log.Warn("poll not found")
		return fmt.Errorf("%s: %w", op, ErrPollNotFound)
	}
	if _, ok := poll.Votes[req.Option]; !ok {
		log.Warn("invalid option", slog.String("option", req.Option))
		return fmt.Errorf("%s: %w: %q", op, ErrInvalidOption, req.Option)
	}

	updated := poll.Clone()
	updated.Votes[req.Option]++

	if err := s.persister.SavePoll(ctx, updated, cur.counter); err != nil {
		log.Error("failed to persist vote", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.current.Store(cur.with(updated))

	log.Info("vote cast", slog.String("option", req.Option), slog.Int("count", updated.Votes[req.Option]))

	if s.publisher != nil {
		if err := s.publisher.VoteCast(ctx, req.PollID, req.Option); err != nil {
			log.Warn("failed to publish vote", sl.Err(err))
		}
	}

	return nil
}

// Get returns a copy of the poll, or false when id is unknown.
func (s *Store) Get(id string) (models.Poll, bool) {
	p, ok := s.current.Load().polls[id]
	if !ok {
		return models.Poll{}, false
	}
	return p.Clone(), true
}

func (s *Store) GetResults(id string) (models.PollResult, bool) {
	p, ok := s.current.Load().polls[id]
	if !ok {
		return models.PollResult{}, false
	}
	return p.Result(), true
}

// ListAll returns every poll in creation order.
func (s *Store) ListAll() []models.Poll {
	cur := s.current.Load()
	out := make([]models.Poll, 0, len(cur.order))
	for _, id := range cur.order {
		out = append(out, cur.polls[id].Clone())
	}
	return out
}

// Len reports how many polls are stored.
func (s *Store) Len() int {
	return len(s.current.Load().order)
}

// Close releases nothing: every mutation is already durable when it returns.
func (s *Store) Close() {
	s.log.Info("poll store closed", slog.Uint64("counter", s.current.Load().counter))
}

// with returns a copy of st in which poll replaces (or adds) its entry.
func (st *state) with(poll models.Poll) *state {
	polls := make(map[string]models.Poll, len(st.polls)+1)
	for k, v := range st.polls {
		polls[k] = v
	}
	polls[poll.ID] = poll
	return &state{polls: polls, order: st.order, counter: st.counter}
}

func generateID(counter uint64) (string, uint64) {
	counter++
	return strconv.FormatUint(counter, 10), counter
}

func firstDuplicate(options []string) (string, bool) {
	seen := make(map[string]struct{}, len(options))
	for _, o := range options {
		if _, ok := seen[o]; ok {
			return o, true
		}
		seen[o] = struct{}{}
	}
	return "", false
}
