package galene

import "fmt"

// Kind discriminates the three message types carried on the bus.
type Kind string

const (
	// KindInvalidate announces a write: the coordinator's new timestamp.
	KindInvalidate Kind = "INV"
	// KindAck acknowledges an invalidation for exactly one timestamp.
	KindAck Kind = "ACK"
	// KindUpdate commits a write; it carries metadata only, never a value.
	KindUpdate Kind = "UPD"
)

// Message is one immutable bus entry. Sender is empty for updates: a
// commit is anonymous, identified entirely by its timestamp.
type Message struct {
	Kind   Kind      `json:"kind"`
	Sender NodeID    `json:"sender,omitempty"`
	TS     Timestamp `json:"ts"`
}

// NewInvalidate builds the write announcement for ts, tagged with the
// coordinator's own id.
func NewInvalidate(sender NodeID, ts Timestamp) Message {
	return Message{Kind: KindInvalidate, Sender: sender, TS: ts}
}

// NewAck builds a follower's acknowledgment of ts.
func NewAck(sender NodeID, ts Timestamp) Message {
	return Message{Kind: KindAck, Sender: sender, TS: ts}
}

// NewUpdate builds the commit notification for ts.
func NewUpdate(ts Timestamp) Message {
	return Message{Kind: KindUpdate, TS: ts}
}

func (m Message) String() string {
	if m.Kind == KindUpdate {
		return fmt.Sprintf("%s%s", m.Kind, m.TS)
	}
	return fmt.Sprintf("%s%s from %s", m.Kind, m.TS, m.Sender)
}
