package galene

import "fmt"

// State is the readable/unreadable status of a node's record.
type State int

const (
	// Valid is the initial state; reads are served from it.
	Valid State = iota
	// Invalid means a higher-timestamped write is in flight elsewhere
	// and this node is waiting for its matching update.
	Invalid
	// Writing means this node is coordinating its own write and is
	// collecting acknowledgments.
	Writing
)

func (s State) String() string {
	switch s {
	case Valid:
		return "Valid"
	case Invalid:
		return "Invalid"
	case Writing:
		return "Writing"
	}
	panic(fmt.Sprintf("unknown state %d", int(s)))
}

// record is a node's mutable protocol state. It is owned exclusively by
// that node's engine; other nodes only ever see its emitted messages.
type record struct {
	state State
	ts    Timestamp
	// acks collects acknowledgers of the write in flight. Only
	// meaningful while state == Writing.
	acks map[NodeID]struct{}
	// acked remembers every timestamp this node has acknowledged
	// without adopting (MWMR path), keyed by exact timestamp so a
	// re-delivered invalidation is not acknowledged twice.
	acked map[Timestamp]struct{}
}

func newRecord(initial Timestamp) record {
	return record{
		state: Valid,
		ts:    initial,
		acks:  make(map[NodeID]struct{}),
		acked: make(map[Timestamp]struct{}),
	}
}
