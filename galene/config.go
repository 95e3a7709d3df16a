package galene

import "fmt"

// Config is the static run configuration shared by every engine in a
// cluster. It never changes after the run starts: the protocol has no
// membership changes.
type Config struct {
	// Participants is the full set of node ids, including the local one.
	Participants []NodeID
	// MaxVersion caps how far the version counter may advance. Zero
	// means unbounded; a bound is only useful to force termination in
	// test harnesses.
	MaxVersion uint64
	// MultiWriter selects the MWMR variant: followers acknowledge
	// concurrent writes they will not adopt, so several coordinators can
	// commit at the same version and the tie-break picks the survivor.
	// When false (SWMR) at most one write can ever commit per version.
	MultiWriter bool
}

// Validate checks the configuration is usable for a run.
func (c Config) Validate() error {
	if len(c.Participants) == 0 {
		return fmt.Errorf("config: participant set is empty")
	}
	seen := make(map[NodeID]struct{}, len(c.Participants))
	for _, id := range c.Participants {
		if id == "" {
			return fmt.Errorf("config: empty participant id")
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("config: duplicate participant %q", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// InitialTimestamp is version zero tagged with the smallest participant
// id, so every node starts out agreeing on the same timestamp.
func (c Config) InitialTimestamp() Timestamp {
	min := c.Participants[0]
	for _, id := range c.Participants[1:] {
		if id < min {
			min = id
		}
	}
	return Timestamp{Version: 0, TieBreaker: min}
}

func (c Config) contains(id NodeID) bool {
	for _, p := range c.Participants {
		if p == id {
			return true
		}
	}
	return false
}

// peers returns every participant except self.
func (c Config) peers(self NodeID) []NodeID {
	out := make([]NodeID, 0, len(c.Participants)-1)
	for _, p := range c.Participants {
		if p != self {
			out = append(out, p)
		}
	}
	return out
}
