// Package harness drives a whole cluster in-process for verification:
// every engine on one memory bus, stepped under an adversarial random
// schedule, with the protocol's global invariants checked after every
// action.
package harness

import (
	"fmt"
	"math/rand"

	"github.com/akatsarakis/galene/bus"
	"github.com/akatsarakis/galene/galene"
)

// Cluster is a set of engines sharing one memory bus.
type Cluster struct {
	cfg     galene.Config
	Bus     *bus.Memory
	engines map[galene.NodeID]*galene.Engine
	order   []galene.NodeID
}

// NewCluster builds one engine per participant.
func NewCluster(cfg galene.Config) (*Cluster, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Cluster{
		cfg:     cfg,
		Bus:     bus.NewMemory(),
		engines: make(map[galene.NodeID]*galene.Engine, len(cfg.Participants)),
		order:   append([]galene.NodeID(nil), cfg.Participants...),
	}
	for _, id := range cfg.Participants {
		e, err := galene.NewEngine(id, cfg, c.Bus)
		if err != nil {
			return nil, err
		}
		c.engines[id] = e
	}
	return c, nil
}

// Engine returns the engine for id.
func (c *Cluster) Engine(id galene.NodeID) *galene.Engine {
	return c.engines[id]
}

// StepAll lets every engine process the bus once, returning the number
// of actions that fired.
func (c *Cluster) StepAll() int {
	fired := 0
	for _, id := range c.order {
		fired += c.engines[id].Step()
	}
	return fired
}

// Settle steps everyone until no action fires or rounds are exhausted.
// It reports whether the cluster went quiescent.
func (c *Cluster) Settle(rounds int) bool {
	for i := 0; i < rounds; i++ {
		if c.StepAll() == 0 {
			return true
		}
	}
	return c.StepAll() == 0
}

// Explore runs a seeded adversarial schedule: each step picks a random
// node and either initiates a write or processes one bus snapshot, then
// rechecks every invariant. Any violation is reported with the seed so
// the interleaving can be replayed.
func (c *Cluster) Explore(seed int64, steps int) error {
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < steps; i++ {
		id := c.order[rng.Intn(len(c.order))]
		e := c.engines[id]
		if rng.Intn(2) == 0 {
			e.WriteInitiate()
		} else {
			e.Step()
		}
		if err := c.Check(); err != nil {
			return fmt.Errorf("seed %d step %d: %w", seed, i, err)
		}
	}
	return nil
}
