package galene

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// Bus is the broadcast channel the engine publishes to and observes.
// Implementations must behave as an append-only multiset: a sent message
// is never removed, and Observe may return messages in any order, any
// number of times. The engine is correct under arbitrary duplication and
// reordering; it relies on nothing stronger.
type Bus interface {
	Send(Message)
	// Observe returns a snapshot of every currently-buffered message.
	Observe() []Message
}

// Waker is an optional bus capability: a channel that receives (or is
// closed) when new messages may be observable. Engines fall back to
// polling when the bus does not provide one.
type Waker interface {
	Wake() <-chan struct{}
}

// Staging is the value-store collaborator. The engine never touches the
// value itself; it only reports which timestamp now guards it. Stage is
// called when a write begins locally or an invalidation is adopted, and
// Publish when the matching commit makes the value visible.
type Staging interface {
	Stage(Timestamp)
	Publish(Timestamp)
}

// Engine drives one node's protocol actions. Every node runs the same
// engine: coordinator and follower are roles a node plays per write, not
// fixed assignments. All actions are guard-checked; a failed guard is a
// no-op, never an error.
type Engine struct {
	self    NodeID
	cfg     Config
	bus     Bus
	staging Staging

	// mu is the per-record exclusive-access primitive: actions on this
	// node's record are serialized, cross-node state never is.
	mu  sync.Mutex
	rec record
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithStaging attaches a value-store collaborator.
func WithStaging(s Staging) Option {
	return func(e *Engine) { e.staging = s }
}

// NewEngine creates the engine for self. The configuration must list
// self among the participants.
func NewEngine(self NodeID, cfg Config, b Bus, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.contains(self) {
		return nil, fmt.Errorf("engine %s: not in participant set", self)
	}
	if b == nil {
		return nil, fmt.Errorf("engine %s: nil bus", self)
	}
	e := &Engine{
		self: self,
		cfg:  cfg,
		bus:  b,
		rec:  newRecord(cfg.InitialTimestamp()),
	}
	for _, o := range opts {
		o(e)
	}
	return e, nil
}

// ID returns the engine's node id.
func (e *Engine) ID() NodeID { return e.self }

// Snapshot returns the current state and timestamp.
func (e *Engine) Snapshot() (State, Timestamp) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rec.state, e.rec.ts
}

// Acks returns a copy of the acknowledger set of the write in flight.
func (e *Engine) Acks() []NodeID {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]NodeID, 0, len(e.rec.acks))
	for id := range e.rec.acks {
		out = append(out, id)
	}
	return out
}

// Read serves a linearizable read: it returns the current timestamp and
// true only while the record is Valid. Fetching the guarded value is the
// store collaborator's job.
func (e *Engine) Read() (Timestamp, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.rec.state != Valid {
		return Timestamp{}, false
	}
	return e.rec.ts, true
}

// WriteInitiate starts a write coordinated by this node. Enabled only
// while Valid and below the configured version cap. On success the node
// is Writing with a fresh timestamp tagged by its own id, and the
// invalidation has been broadcast. The returned timestamp is what the
// caller should stage its value under.
func (e *Engine) WriteInitiate() (Timestamp, bool) {
	e.mu.Lock()
	if e.rec.state != Valid {
		e.mu.Unlock()
		return Timestamp{}, false
	}
	if e.cfg.MaxVersion > 0 && e.rec.ts.Version >= e.cfg.MaxVersion {
		e.mu.Unlock()
		return Timestamp{}, false
	}
	ts := Timestamp{Version: e.rec.ts.Version + 1, TieBreaker: e.self}
	e.rec.ts = ts
	e.rec.state = Writing
	e.rec.acks = make(map[NodeID]struct{})
	e.mu.Unlock()

	if e.staging != nil {
		e.staging.Stage(ts)
	}
	e.bus.Send(NewInvalidate(e.self, ts))
	return ts, true
}

// Step observes the bus and fires every currently-enabled receive
// action. It returns the number of actions that fired. Calling Step
// again on the same bus contents fires nothing: all handlers are
// idempotent under duplicate delivery.
func (e *Engine) Step() int {
	fired := 0
	for _, m := range e.bus.Observe() {
		switch m.Kind {
		case KindInvalidate:
			if e.receiveInvalidate(m) {
				fired++
			}
		case KindAck:
			if e.receiveAck(m) {
				fired++
			}
			if e.tryCommit() {
				fired++
			}
		case KindUpdate:
			if e.receiveUpdate(m) {
				fired++
			}
		}
	}
	// A commit may also be enabled with no ack in this snapshot (e.g.
	// a single-peer cluster whose ack arrived in an earlier Step).
	if e.tryCommit() {
		fired++
	}
	return fired
}

// Run steps the engine until ctx is done, waking on bus notification
// when available and polling otherwise.
func (e *Engine) Run(ctx context.Context) {
	var wake <-chan struct{}
	if w, ok := e.bus.(Waker); ok {
		wake = w.Wake()
	}
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-wake:
		case <-ticker.C:
		}
		e.Step()
	}
}

// receiveInvalidate handles an INV from another node. Exactly one of two
// sub-paths can fire:
//
//   - adopt: the incoming timestamp is strictly newer, so the node takes
//     it, becomes Invalid and acknowledges. This is the only path under
//     SWMR.
//   - concur (MWMR only): the incoming timestamp is not newer, so the
//     node acknowledges without touching its own record, letting the
//     concurrent coordinator collect the acks it needs. The acked set
//     keeps a re-delivered INV from being acknowledged twice.
func (e *Engine) receiveInvalidate(m Message) bool {
	if m.Sender == e.self {
		return false
	}
	e.mu.Lock()
	if m.TS.After(e.rec.ts) {
		e.rec.ts = m.TS
		e.rec.state = Invalid
		e.rec.acks = make(map[NodeID]struct{})
		e.rec.acked[m.TS] = struct{}{}
		e.mu.Unlock()

		if e.staging != nil {
			e.staging.Stage(m.TS)
		}
		e.bus.Send(NewAck(e.self, m.TS))
		return true
	}
	if e.cfg.MultiWriter {
		if _, done := e.rec.acked[m.TS]; !done {
			e.rec.acked[m.TS] = struct{}{}
			e.mu.Unlock()
			e.bus.Send(NewAck(e.self, m.TS))
			return true
		}
	}
	e.mu.Unlock()
	return false
}

// receiveAck records an acknowledgment of the write in flight. Acks for
// superseded timestamps and duplicates are no-ops.
func (e *Engine) receiveAck(m Message) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.rec.state != Writing {
		return false
	}
	if m.Sender == e.self || !e.cfg.contains(m.Sender) {
		return false
	}
	if !m.TS.Equal(e.rec.ts) {
		return false
	}
	if _, dup := e.rec.acks[m.Sender]; dup {
		return false
	}
	e.rec.acks[m.Sender] = struct{}{}
	return true
}

// tryCommit broadcasts the update once every other participant has
// acknowledged. Acknowledgment is required from all peers, not a
// majority: a missing ack stalls the write indefinitely, which is the
// protocol's stated liveness gap.
func (e *Engine) tryCommit() bool {
	e.mu.Lock()
	if e.rec.state != Writing {
		e.mu.Unlock()
		return false
	}
	for _, p := range e.cfg.peers(e.self) {
		if _, ok := e.rec.acks[p]; !ok {
			e.mu.Unlock()
			return false
		}
	}
	ts := e.rec.ts
	e.rec.state = Valid
	e.mu.Unlock()

	log.Printf("[%s] committed %s", e.self, ts)
	if e.staging != nil {
		e.staging.Publish(ts)
	}
	e.bus.Send(NewUpdate(ts))
	return true
}

// receiveUpdate returns the node to Valid when the commit for exactly
// its current timestamp arrives. Updates for any other timestamp are
// stale or belong to a different concurrent write and are ignored.
func (e *Engine) receiveUpdate(m Message) bool {
	e.mu.Lock()
	if e.rec.state == Valid || !m.TS.Equal(e.rec.ts) {
		e.mu.Unlock()
		return false
	}
	e.rec.state = Valid
	e.mu.Unlock()

	if e.staging != nil {
		e.staging.Publish(m.TS)
	}
	return true
}
