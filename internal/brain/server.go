package brain

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/banshee-data/arena.observer/internal/brain/pb"
)

// Ensure StubPolicy implements the gRPC interface.
var _ pb.BrainServerServer = (*StubPolicy)(nil)

// StubPolicy answers every robot without looking at the observations. With
// Random unset it always returns Fixed; otherwise it draws uniformly from
// the action space using Seed.
type StubPolicy struct {
	pb.UnimplementedBrainServerServer

	Fixed  Action
	Random bool
	Seed   uint64

	mu  sync.Mutex
	rng *rand.Rand
}

// GetAction implements pb.BrainServerServer.
func (p *StubPolicy) GetAction(_ context.Context, req *pb.BrainActionRequest) (*pb.BrainActionResponse, error) {
	resp := &pb.BrainActionResponse{Actions: make([]*pb.RobotAction, 0, len(req.GetObservations()))}
	for _, o := range req.GetObservations() {
		resp.Actions = append(resp.Actions, &pb.RobotAction{ArucoMarkerID: o.GetArucoMarkerID(), Action: int32(p.next())})
	}
	return resp, nil
}

func (p *StubPolicy) next() Action {
	if !p.Random {
		return p.Fixed
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.rng == nil {
		p.rng = rand.New(rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15))
	}
	return Action(p.rng.IntN(NumActions))
}
