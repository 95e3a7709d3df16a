package main

import (
	"flag"
	"log"
	"net"
	"time"

	"google.golang.org/grpc"

	pb "github.com/akatsarakis/galene/proto"
	"github.com/akatsarakis/galene/transport"
)

func main() {
	listen := flag.String("listen", ":50051", "relay listen address")
	drop := flag.Float64("drop", 0, "per-delivery drop probability")
	dupe := flag.Float64("dupe", 0, "per-delivery duplicate probability")
	reorder := flag.Float64("reorder", 0, "per-delivery delay probability")
	flag.Parse()

	relay := transport.NewRelay(transport.Faults{
		DropProb:        *drop,
		DupeProb:        *dupe,
		ReorderProb:     *reorder,
		ReorderMinDelay: 5 * time.Millisecond,
		ReorderMaxDelay: 50 * time.Millisecond,
	})

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		log.Fatal(err)
	}

	grpcServer := grpc.NewServer()
	pb.RegisterRelayServer(grpcServer, relay)

	log.Printf("galene relay ready on %s", *listen)
	if err := grpcServer.Serve(lis); err != nil {
		log.Fatal(err)
	}
}
