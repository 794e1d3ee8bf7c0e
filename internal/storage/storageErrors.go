package storage

import "errors"

var (
	ErrCounterBehind = errors.New("counter is behind stored poll ids")
	ErrCorruptPoll   = errors.New("stored poll is corrupt")
)
