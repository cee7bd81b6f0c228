package brain

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/banshee-data/arena.observer/internal/arena/observation"
	"github.com/banshee-data/arena.observer/internal/arena/scene"
	"github.com/banshee-data/arena.observer/internal/brain/pb"
	"github.com/banshee-data/arena.observer/internal/monitoring"
)

// ErrUnavailable is returned when the policy server cannot be reached.
var ErrUnavailable = errors.New("brain server unavailable")

// DefaultTimeout bounds a single GetAction call.
const DefaultTimeout = 2 * time.Second

// Client calls a remote BrainServer.
type Client struct {
	conn      *grpc.ClientConn
	rpc       pb.BrainServerClient
	target    string
	timeout   time.Duration
	available atomic.Bool
}

// Dial creates a client for target. The connection is established lazily;
// extra options are applied after the insecure transport default.
func Dial(target string, timeout time.Duration, opts ...grpc.DialOption) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	all := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}, opts...)
	conn, err := grpc.NewClient(target, all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create brain client for %s: %w", target, err)
	}
	c := &Client{conn: conn, rpc: pb.NewBrainServerClient(conn), target: target, timeout: timeout}
	c.available.Store(true)
	monitoring.Logf("[brain] client for %s (timeout %s)", target, timeout)
	return c, nil
}

// Available reports whether the last call reached the server.
func (c *Client) Available() bool { return c.available.Load() }

// Close releases the connection.
func (c *Client) Close() error { return c.conn.Close() }

// Call sends one raw request.
func (c *Client) Call(ctx context.Context, req *pb.BrainActionRequest) (*pb.BrainActionResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.rpc.GetAction(ctx, req)
	if status.Code(err) == codes.Unavailable {
		if c.available.Swap(false) {
			monitoring.Logf("[brain] %s cannot be reached: %v", c.target, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err != nil {
		return nil, fmt.Errorf("GetAction: %w", err)
	}
	if !c.available.Swap(true) {
		monitoring.Logf("[brain] %s reachable again", c.target)
	}
	return resp, nil
}

// GetActions asks the policy for one action per robot.
func (c *Client) GetActions(ctx context.Context, obs map[scene.ObjectID]observation.Pair) (map[scene.ObjectID]Action, error) {
	resp, err := c.Call(ctx, NewRequest(obs))
	if err != nil {
		return nil, err
	}
	return Actions(resp), nil
}

// Actions maps a response to per-robot actions. Robots the server does not
// answer for are absent; invalid action codes are replaced with Stop.
func Actions(resp *pb.BrainActionResponse) map[scene.ObjectID]Action {
	out := make(map[scene.ObjectID]Action, len(resp.GetActions()))
	for _, ra := range resp.GetActions() {
		a := Action(ra.GetAction())
		if !a.Valid() {
			monitoring.Logf("[brain] robot %d: invalid action code %d, stopping", ra.GetArucoMarkerID(), ra.GetAction())
			a = Stop
		}
		out[scene.ObjectID(ra.GetArucoMarkerID())] = a
	}
	return out
}

// NewRequest builds a request with robots in ascending marker id order.
func NewRequest(obs map[scene.ObjectID]observation.Pair) *pb.BrainActionRequest {
	ids := make([]scene.ObjectID, 0, len(obs))
	for id := range obs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	req := &pb.BrainActionRequest{Observations: make([]*pb.Observations, 0, len(ids))}
	for _, id := range ids {
		p := obs[id]
		req.Observations = append(req.Observations, &pb.Observations{
			LowerObservations: p.Lower,
			UpperObservations: p.Upper,
			ArucoMarkerID:     int32(id),
		})
	}
	return req
}
