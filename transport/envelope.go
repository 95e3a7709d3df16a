// Package transport carries protocol messages between processes through
// a central relay, the production form of the broadcast bus. The relay
// guarantees at-least-once delivery of every envelope to every connected
// node and nothing more; duplication and reordering are fair game, and
// the fault injector can dial both up on purpose.
package transport

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/akatsarakis/galene/galene"
	pb "github.com/akatsarakis/galene/proto"
)

// kindHello registers a node on its stream; it never reaches engines.
const kindHello = "HELLO"

func toEnvelope(m galene.Message) *pb.Envelope {
	return &pb.Envelope{
		Id:         uuid.NewString(),
		Kind:       string(m.Kind),
		Sender:     string(m.Sender),
		Version:    m.TS.Version,
		TieBreaker: string(m.TS.TieBreaker),
	}
}

func fromEnvelope(env *pb.Envelope) (galene.Message, error) {
	switch galene.Kind(env.Kind) {
	case galene.KindInvalidate, galene.KindAck, galene.KindUpdate:
	default:
		return galene.Message{}, fmt.Errorf("envelope %s: unknown kind %q", env.Id, env.Kind)
	}
	return galene.Message{
		Kind:   galene.Kind(env.Kind),
		Sender: galene.NodeID(env.Sender),
		TS: galene.Timestamp{
			Version:    env.Version,
			TieBreaker: galene.NodeID(env.TieBreaker),
		},
	}, nil
}
