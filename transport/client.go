package transport

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/akatsarakis/galene/galene"
	pb "github.com/akatsarakis/galene/proto"
)

// Client connects one node to the relay and presents the stream as a
// bus: everything received is retained in a local append-only log, so
// Observe keeps multiset semantics even though the wire delivers each
// envelope once (or more, under fault injection).
type Client struct {
	id     galene.NodeID
	conn   *grpc.ClientConn
	stream pb.Relay_StreamClient
	cancel context.CancelFunc

	sendMu sync.Mutex

	mu  sync.Mutex
	log []galene.Message

	wake      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Dial connects to the relay at addr, registers id and starts receiving.
func Dial(ctx context.Context, addr string, id galene.NodeID) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("connect relay at %s: %w", addr, err)
	}

	streamCtx, cancel := context.WithCancel(context.Background())
	stream, err := pb.NewRelayClient(conn).Stream(streamCtx)
	if err != nil {
		cancel()
		conn.Close()
		return nil, fmt.Errorf("open stream: %w", err)
	}

	c := &Client{
		id:     id,
		conn:   conn,
		stream: stream,
		cancel: cancel,
		wake:   make(chan struct{}, 1),
	}

	hello := &pb.Envelope{Id: uuid.NewString(), Kind: kindHello, Sender: string(id)}
	if err := stream.Send(hello); err != nil {
		c.Close()
		return nil, fmt.Errorf("hello failed: %w", err)
	}

	c.wg.Add(1)
	go c.recvLoop()

	return c, nil
}

// Send publishes m to every node through the relay. The bus contract is
// fire-and-forget; a dead stream is logged, not returned, and shows up
// as the protocol-level stall it causes.
func (c *Client) Send(m galene.Message) {
	c.sendMu.Lock()
	err := c.stream.Send(toEnvelope(m))
	c.sendMu.Unlock()
	if err != nil {
		log.Printf("[%s] relay send failed: %v", c.id, err)
	}
}

// Observe returns a snapshot of every message received so far.
func (c *Client) Observe() []galene.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]galene.Message, len(c.log))
	copy(out, c.log)
	return out
}

// Wake receives after new messages become observable.
func (c *Client) Wake() <-chan struct{} {
	return c.wake
}

// Close tears the stream down and waits for the receive loop.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.sendMu.Lock()
		c.stream.CloseSend()
		c.sendMu.Unlock()
		c.cancel()
		c.conn.Close()
		c.wg.Wait()
	})
}

func (c *Client) recvLoop() {
	defer c.wg.Done()
	for {
		env, err := c.stream.Recv()
		if err == io.EOF {
			return
		}
		if err != nil {
			return
		}
		m, err := fromEnvelope(env)
		if err != nil {
			log.Printf("[%s] %v", c.id, err)
			continue
		}

		c.mu.Lock()
		c.log = append(c.log, m)
		c.mu.Unlock()

		select {
		case c.wake <- struct{}{}:
		default:
		}
	}
}
