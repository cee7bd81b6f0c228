// Command brain-stub serves the BrainServer RPC with a fixed or random
// policy, for running the observer without a trained model.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"github.com/banshee-data/arena.observer/internal/brain"
	"github.com/banshee-data/arena.observer/internal/brain/pb"
	"github.com/banshee-data/arena.observer/internal/monitoring"
	"github.com/banshee-data/arena.observer/internal/version"
)

var (
	listen   = flag.String("listen", ":50052", "gRPC listen address")
	action   = flag.Int("action", int(brain.Stop), "Action code returned when -random is off")
	random   = flag.Bool("random", false, "Draw actions uniformly at random")
	seed     = flag.Uint64("seed", 1, "Random seed")
	logLevel = flag.String("log-level", "info", "Log level: debug, info, warn, error")
)

func main() {
	flag.Parse()

	logger, err := monitoring.NewLogger(*logLevel)
	if err != nil {
		log.Fatalf("brain-stub: %v", err)
	}
	monitoring.Use(logger)
	defer monitoring.Sync()

	policy, err := newPolicy(brain.Action(*action), *random, *seed)
	if err != nil {
		log.Fatalf("brain-stub: %v", err)
	}

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		log.Fatalf("brain-stub: failed to listen on %s: %v", *listen, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, lis, policy); err != nil {
		log.Fatalf("brain-stub: %v", err)
	}
}

func newPolicy(fixed brain.Action, random bool, seed uint64) (*brain.StubPolicy, error) {
	if !fixed.Valid() {
		return nil, fmt.Errorf("invalid action code %d", int(fixed))
	}
	return &brain.StubPolicy{Fixed: fixed, Random: random, Seed: seed}, nil
}

// serve runs the gRPC server on lis until ctx is done, then stops it
// gracefully.
func serve(ctx context.Context, lis net.Listener, policy pb.BrainServerServer) error {
	srv := grpc.NewServer()
	pb.RegisterBrainServerServer(srv, policy)

	errCh := make(chan error, 1)
	go func() {
		monitoring.Logf("[brain-stub] %s listening on %s", version.String(), lis.Addr())
		errCh <- srv.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		monitoring.Logf("[brain-stub] shutting down")
		srv.GracefulStop()
		return nil
	case err := <-errCh:
		return err
	}
}
