// Package bus provides the in-process broadcast channel used by tests,
// the harness and single-process runs. It implements the append-only
// multiset contract the protocol assumes: messages are never removed,
// never deduplicated, and carry no ordering guarantee beyond being
// eventually observable by everyone.
package bus

import (
	"sync"

	"github.com/akatsarakis/galene/galene"
)

// Memory is a concurrent-safe append-only message log.
type Memory struct {
	mu   sync.Mutex
	log  []galene.Message
	wake chan struct{}
}

// NewMemory returns an empty in-memory bus.
func NewMemory() *Memory {
	return &Memory{wake: make(chan struct{}, 1)}
}

// Send appends m. Duplicates are kept; nothing is ever dropped.
func (b *Memory) Send(m galene.Message) {
	b.mu.Lock()
	b.log = append(b.log, m)
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// Observe returns a snapshot of everything sent so far.
func (b *Memory) Observe() []galene.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]galene.Message, len(b.log))
	copy(out, b.log)
	return out
}

// Wake receives after new messages become observable.
func (b *Memory) Wake() <-chan struct{} {
	return b.wake
}

// Len reports how many messages have been sent, duplicates included.
func (b *Memory) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.log)
}
