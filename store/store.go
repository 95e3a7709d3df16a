// Package store holds the values the protocol's timestamps guard. The
// engine never reads or writes values; it only tells the store which
// timestamp a write is staged under and which timestamp just committed.
// Transferring the staged bytes between nodes is the application's
// concern, same as the value payloads the protocol deliberately keeps
// off its own wire.
package store

import (
	"sync"

	"github.com/akatsarakis/galene/galene"
)

// Staged is one value waiting for (or arrived at) visibility.
type Staged struct {
	TS    galene.Timestamp
	Value []byte
}

// Mem is an in-memory store, enough for tests and demos.
type Mem struct {
	mu      sync.Mutex
	staged  map[galene.Timestamp][]byte
	cur     []byte
	curTS   galene.Timestamp
	hasCur  bool
	stages  []galene.Timestamp
	commits []galene.Timestamp
}

// NewMem returns an empty in-memory store.
func NewMem() *Mem {
	return &Mem{staged: make(map[galene.Timestamp][]byte)}
}

// PutStaged records the value bytes for a staged timestamp.
func (s *Mem) PutStaged(ts galene.Timestamp, val []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staged[ts] = val
}

// Stage implements galene.Staging.
func (s *Mem) Stage(ts galene.Timestamp) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.staged[ts]; !ok {
		s.staged[ts] = nil
	}
	s.stages = append(s.stages, ts)
}

// Publish implements galene.Staging: the staged value for ts becomes the
// visible one.
func (s *Mem) Publish(ts galene.Timestamp) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = s.staged[ts]
	s.curTS = ts
	s.hasCur = true
	s.commits = append(s.commits, ts)
}

// Current returns the visible value and its guarding timestamp.
func (s *Mem) Current() (galene.Timestamp, []byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.curTS, s.cur, s.hasCur
}

// History returns the stage and publish notifications seen, in order.
func (s *Mem) History() (stages, commits []galene.Timestamp) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]galene.Timestamp(nil), s.stages...),
		append([]galene.Timestamp(nil), s.commits...)
}
