package models

import (
	"slices"
	"time"
)

// Poll is a question with a fixed set of distinct options and a running
// count per option.
type Poll struct {
	ID        string         `json:"id"`
	Question  string         `json:"question"`
	Options   []string       `json:"options"`
	Votes     map[string]int `json:"votes"`
	CreatedBy string         `json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
}

// PollResult is the tally view of a poll.
type PollResult struct {
	Question string         `json:"question"`
	Options  []string       `json:"options"`
	Votes    map[string]int `json:"votes"`
}

type CreatePollRequest struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type VoteRequest struct {
	PollID string `json:"poll_id"`
	Option string `json:"option"`
}

// Snapshot is the durable image of the store: polls in creation order and
// the last identifier handed out.
type Snapshot struct {
	Polls   []Poll
	Counter uint64
}

// Clone returns a deep copy of p.
func (p Poll) Clone() Poll {
	c := p
	c.Options = slices.Clone(p.Options)
	c.Votes = cloneVotes(p.Votes)
	return c
}

// Result projects p onto its tally view. The returned value shares nothing
// with p.
func (p Poll) Result() PollResult {
	return PollResult{
		Question: p.Question,
		Options:  slices.Clone(p.Options),
		Votes:    cloneVotes(p.Votes),
	}
}

func cloneVotes(v map[string]int) map[string]int {
	if v == nil {
		return nil
	}
	c := make(map[string]int, len(v))
	for k, n := range v {
		c[k] = n
	}
	return c
}
