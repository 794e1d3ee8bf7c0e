package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/14kear/pollstore/internal/domain/models"
	"github.com/14kear/pollstore/internal/storage"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"strconv"
	"time"
)

const (
	DriverPQ  = "postgres"
	DriverPGX = "pgx"
)

type Storage struct {
	db *sql.DB
}

// New opens dsn with the given database/sql driver ("postgres" or "pgx") and
// waits until the server answers.
func New(ctx context.Context, driver, dsn string) (*Storage, error) {
	const op = "storage.postgres.New"

	if driver == "" {
		driver = DriverPQ
	}
	if driver != DriverPQ && driver != DriverPGX {
		return nil, fmt.Errorf("%s: unsupported driver %q", op, driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := waitForDB(ctx, db, 2*time.Minute); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error { return s.db.Close() }

func (s *Storage) Load(ctx context.Context) (models.Snapshot, error) {
	const op = "storage.postgres.Load"

	query := `SELECT id, question, options, votes, created_by, created_at FROM polls ORDER BY seq`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var snap models.Snapshot
	for rows.Next() {
		var (
			poll           models.Poll
			options, votes []byte
		)
		if err := rows.Scan(&poll.ID, &poll.Question, &options, &votes, &poll.CreatedBy, &poll.CreatedAt); err != nil {
			return models.Snapshot{}, fmt.Errorf("%s: scan: %w", op, err)
		}
		if err := json.Unmarshal(options, &poll.Options); err != nil {
			return models.Snapshot{}, fmt.Errorf("%s: poll %s options: %w", op, poll.ID, storage.ErrCorruptPoll)
		}
		if err := json.Unmarshal(votes, &poll.Votes); err != nil {
			return models.Snapshot{}, fmt.Errorf("%s: poll %s votes: %w", op, poll.ID, storage.ErrCorruptPoll)
		}
		poll.CreatedAt = poll.CreatedAt.UTC()
		snap.Polls = append(snap.Polls, poll)
	}

	if err := rows.Err(); err != nil {
		return models.Snapshot{}, fmt.Errorf("%s: rows error: %w", op, err)
	}

	var counter int64
	err = s.db.QueryRowContext(ctx, `SELECT value FROM poll_counter WHERE id`).Scan(&counter)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return models.Snapshot{}, fmt.Errorf("%s: counter: %w", op, err)
	}
	snap.Counter = uint64(counter)

	return snap, nil
}

// SavePoll upserts the poll row and advances the counter in one transaction.
func (s *Storage) SavePoll(ctx context.Context, poll models.Poll, counter uint64) error {
	const op = "storage.postgres.SavePoll"

	seq, err := strconv.ParseInt(poll.ID, 10, 64)
	if err != nil {
		return fmt.Errorf("%s: poll id %q: %w", op, poll.ID, err)
	}
	if uint64(seq) > counter {
		return fmt.Errorf("%s: %w", op, storage.ErrCounterBehind)
	}

	options, err := json.Marshal(poll.Options)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	votes, err := json.Marshal(poll.Votes)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	defer tx.Rollback()

	const upsertPoll = `INSERT INTO polls (id, seq, question, options, votes, created_by, created_at)
		VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6, $7)
		ON CONFLICT (id) DO UPDATE SET votes = EXCLUDED.votes`

	if _, err := tx.ExecContext(ctx, upsertPoll,
		poll.ID, seq, poll.Question, string(options), string(votes), poll.CreatedBy, poll.CreatedAt,
	); err != nil {
		return fmt.Errorf("%s: poll: %w", op, err)
	}

	const upsertCounter = `INSERT INTO poll_counter (id, value) VALUES (TRUE, $1)
		ON CONFLICT (id) DO UPDATE SET value = GREATEST(poll_counter.value, EXCLUDED.value)`

	if _, err := tx.ExecContext(ctx, upsertCounter, int64(counter)); err != nil {
		return fmt.Errorf("%s: counter: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}

func waitForDB(ctx context.Context, db *sql.DB, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if err := db.PingContext(ctx); err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("database not ready after %s", timeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
}
