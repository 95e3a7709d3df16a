package transport

import (
	"io"
	"log"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	pb "github.com/akatsarakis/galene/proto"
)

// Faults injects delivery misbehavior per destination. All of it is
// allowed by the bus contract: the relay retains every envelope, so a
// dropped delivery resurfaces through backlog replay when the node
// reconnects, and duplicates and delays are exactly what the protocol
// must already tolerate.
type Faults struct {
	DropProb        float64
	DupeProb        float64
	ReorderProb     float64
	ReorderMinDelay time.Duration
	ReorderMaxDelay time.Duration
}

type relayNode struct {
	id     string
	stream pb.Relay_StreamServer
	sendMu sync.Mutex
	alive  atomic.Bool
}

func (n *relayNode) send(env *pb.Envelope) {
	if !n.alive.Load() {
		return
	}
	n.sendMu.Lock()
	err := n.stream.Send(env)
	n.sendMu.Unlock()
	if err != nil {
		log.Printf("[CTRL] send to %s failed: %v", n.id, err)
	}
}

// Relay is the broadcast controller. Every envelope received on any
// stream is appended to a retained backlog and fanned out to every
// connected node, the sender included. A node that connects late (or
// reconnects) is replayed the whole backlog first, which is what makes
// "every sent message is eventually observable by every node" hold even
// under injected drops.
type Relay struct {
	pb.UnimplementedRelayServer

	faults Faults

	mu      sync.Mutex
	nodes   map[string]*relayNode
	backlog []*pb.Envelope

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewRelay creates a relay with the given fault injection; a zero Faults
// value delivers everything exactly once, in send order per stream.
func NewRelay(f Faults) *Relay {
	return &Relay{
		faults: f,
		nodes:  make(map[string]*relayNode),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Stream implements the Relay service. The first envelope on a stream
// must be a HELLO carrying the node id.
func (r *Relay) Stream(stream pb.Relay_StreamServer) error {
	first, err := stream.Recv()
	if err != nil {
		return err
	}
	if first.Kind != kindHello || first.Sender == "" {
		log.Printf("[CTRL] rejecting stream: first envelope %q is not a hello", first.Kind)
		return nil
	}
	nodeID := first.Sender

	n := &relayNode{id: nodeID, stream: stream}
	n.alive.Store(true)

	r.mu.Lock()
	r.nodes[nodeID] = n
	replay := make([]*pb.Envelope, len(r.backlog))
	copy(replay, r.backlog)
	r.mu.Unlock()

	log.Printf("[CTRL] node registered: %s (replaying %d envelopes)", nodeID, len(replay))
	for _, env := range replay {
		n.send(env)
	}

	for {
		env, err := stream.Recv()
		if err == io.EOF {
			r.remove(nodeID)
			return nil
		}
		if err != nil {
			r.remove(nodeID)
			return err
		}
		r.deliver(env)
	}
}

func (r *Relay) remove(nodeID string) {
	r.mu.Lock()
	if n, ok := r.nodes[nodeID]; ok {
		n.alive.Store(false)
		delete(r.nodes, nodeID)
	}
	r.mu.Unlock()
	log.Printf("[CTRL] node disconnected: %s", nodeID)
}

func (r *Relay) deliver(env *pb.Envelope) {
	r.mu.Lock()
	r.backlog = append(r.backlog, env)
	targets := make([]*relayNode, 0, len(r.nodes))
	for _, n := range r.nodes {
		targets = append(targets, n)
	}
	r.mu.Unlock()

	for _, n := range targets {
		r.forward(n, env)
	}
}

func (r *Relay) forward(n *relayNode, env *pb.Envelope) {
	if r.chance(r.faults.DropProb) {
		log.Printf("[CTRL] dropping %s -> %s (%s)", env.Sender, n.id, env.Kind)
		return
	}
	if r.chance(r.faults.ReorderProb) {
		delay := r.faults.ReorderMinDelay
		if span := r.faults.ReorderMaxDelay - r.faults.ReorderMinDelay; span > 0 {
			delay += time.Duration(r.int63n(int64(span)))
		}
		go func() {
			time.Sleep(delay)
			n.send(env)
		}()
	} else {
		n.send(env)
	}
	if r.chance(r.faults.DupeProb) {
		n.send(env)
	}
}

func (r *Relay) chance(p float64) bool {
	if p <= 0 {
		return false
	}
	r.rngMu.Lock()
	defer r.rngMu.Unlock()
	return r.rng.Float64() < p
}

func (r *Relay) int63n(n int64) int64 {
	r.rngMu.Lock()
	defer r.rngMu.Unlock()
	return r.rng.Int63n(n)
}

// Backlog returns how many envelopes the relay has retained.
func (r *Relay) Backlog() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.backlog)
}
