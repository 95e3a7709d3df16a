package harness

import (
	"fmt"

	"github.com/akatsarakis/galene/galene"
)

// Check verifies the protocol's global invariants against the current
// cluster state and the bus history. It is meant to be called between
// actions; it never mutates anything.
func (c *Cluster) Check() error {
	if err := c.checkWellFormed(); err != nil {
		return err
	}
	if err := c.checkConsistency(); err != nil {
		return err
	}
	if !c.cfg.MultiWriter {
		if err := c.checkWriteUniqueness(); err != nil {
			return err
		}
	}
	return nil
}

// checkWellFormed: every ack set excludes its owner and stays within the
// participant set, and no version exceeds the configured bound.
func (c *Cluster) checkWellFormed() error {
	for _, id := range c.order {
		e := c.engines[id]
		_, ts := e.Snapshot()
		if c.cfg.MaxVersion > 0 && ts.Version > c.cfg.MaxVersion {
			return fmt.Errorf("well-formedness: %s at version %d, cap %d", id, ts.Version, c.cfg.MaxVersion)
		}
		for _, acker := range e.Acks() {
			if acker == id {
				return fmt.Errorf("well-formedness: %s counts its own ack", id)
			}
			ok := false
			for _, p := range c.cfg.Participants {
				if p == acker {
					ok = true
					break
				}
			}
			if !ok {
				return fmt.Errorf("well-formedness: %s counts ack from stranger %s", id, acker)
			}
		}
	}
	return nil
}

// checkConsistency: any two nodes both in Valid state agree on the
// current timestamp.
func (c *Cluster) checkConsistency() error {
	var ref *galene.Timestamp
	var refID galene.NodeID
	for _, id := range c.order {
		state, ts := c.engines[id].Snapshot()
		if state != galene.Valid {
			continue
		}
		if ref == nil {
			t := ts
			ref, refID = &t, id
			continue
		}
		if !ts.Equal(*ref) {
			return fmt.Errorf("consistency: %s=%s and %s=%s both Valid", refID, *ref, id, ts)
		}
	}
	return nil
}

// checkWriteUniqueness (SWMR): no two committed updates share a version
// with different tie-breakers.
func (c *Cluster) checkWriteUniqueness() error {
	winners := make(map[uint64]galene.NodeID)
	for _, m := range c.Bus.Observe() {
		if m.Kind != galene.KindUpdate {
			continue
		}
		if prev, ok := winners[m.TS.Version]; ok && prev != m.TS.TieBreaker {
			return fmt.Errorf("write uniqueness: version %d committed by both %s and %s",
				m.TS.Version, prev, m.TS.TieBreaker)
		}
		winners[m.TS.Version] = m.TS.TieBreaker
	}
	return nil
}
