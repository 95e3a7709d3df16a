package galene

import "fmt"

// NodeID identifies one participant in a run. IDs compare lexically, and
// that ordering is what breaks ties between writes issued at the same
// version by different coordinators.
type NodeID string

// Timestamp is the metadata guarded by the protocol: a version counter
// plus the id of the node that issued it. Two timestamps are ordered by
// version first, tie-breaker second, which makes the order total even
// across concurrent writers.
type Timestamp struct {
	Version    uint64 `json:"version"`
	TieBreaker NodeID `json:"tie_breaker"`
}

// Compare returns -1 if a < b, 0 if a == b and 1 if a > b.
func (a Timestamp) Compare(b Timestamp) int {
	if a.Version < b.Version {
		return -1
	}
	if a.Version > b.Version {
		return 1
	}
	// INVAR: a.Version == b.Version
	if a.TieBreaker < b.TieBreaker {
		return -1
	}
	if a.TieBreaker > b.TieBreaker {
		return 1
	}
	return 0
}

// Equal reports whether both fields match exactly.
func (a Timestamp) Equal(b Timestamp) bool {
	return a.Version == b.Version && a.TieBreaker == b.TieBreaker
}

// After reports whether a is strictly greater than b.
func (a Timestamp) After(b Timestamp) bool {
	return a.Compare(b) > 0
}

func (a Timestamp) String() string {
	return fmt.Sprintf("(%d,%s)", a.Version, a.TieBreaker)
}
