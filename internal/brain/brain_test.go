package brain

import (
	"context"
	"errors"
	"math"
	"net"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/testing/protocmp"

	"github.com/banshee-data/arena.observer/internal/arena/observation"
	"github.com/banshee-data/arena.observer/internal/arena/scene"
	"github.com/banshee-data/arena.observer/internal/brain/pb"
	"github.com/banshee-data/arena.observer/internal/monitoring"
)

func init() {
	monitoring.SetLogger(nil)
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "stop", Stop.String())
	assert.Equal(t, "forward_left", ForwardLeft.String())
	assert.Equal(t, "action(9)", Action(9).String())
	assert.False(t, Action(-1).Valid())
	assert.True(t, TurnAntiClockwise.Valid())
}

func TestObservations_WireFormat(t *testing.T) {
	o := &pb.Observations{LowerObservations: []float32{1, 0.5}, ArucoMarkerID: 3}
	var want []byte
	want = protowire.AppendTag(want, 1, protowire.BytesType)
	want = protowire.AppendVarint(want, 8)
	want = protowire.AppendFixed32(want, math.Float32bits(1))
	want = protowire.AppendFixed32(want, math.Float32bits(0.5))
	want = protowire.AppendTag(want, 3, protowire.VarintType)
	want = protowire.AppendVarint(want, 3)

	got, err := proto.MarshalOptions{Deterministic: true}.Marshal(o)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("wire bytes mismatch (-want +got):\n%s", diff)
	}
}

func TestObservations_UnpackedAndUnknownFields(t *testing.T) {
	id := int32(-4)
	var b []byte
	b = protowire.AppendTag(b, 2, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, math.Float32bits(0.25))
	b = protowire.AppendTag(b, 9, protowire.BytesType) // unknown
	b = protowire.AppendBytes(b, []byte("ignored"))
	b = protowire.AppendTag(b, 2, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, math.Float32bits(1))
	b = protowire.AppendTag(b, 3, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(int64(id)))

	var o pb.Observations
	require.NoError(t, proto.Unmarshal(b, &o))
	assert.Equal(t, []float32{0.25, 1}, o.GetUpperObservations())
	assert.Nil(t, o.GetLowerObservations())
	assert.Equal(t, id, o.GetArucoMarkerID())
}

func TestUnmarshal_Malformed(t *testing.T) {
	truncated := protowire.AppendTag(nil, 1, protowire.BytesType)
	truncated = protowire.AppendVarint(truncated, 12)
	assert.Error(t, proto.Unmarshal(truncated, &pb.Observations{}))

	ragged := protowire.AppendTag(nil, 1, protowire.BytesType)
	ragged = protowire.AppendBytes(ragged, []byte{1, 2, 3})
	assert.Error(t, proto.Unmarshal(ragged, &pb.Observations{}))

	nested := protowire.AppendTag(nil, 1, protowire.BytesType)
	nested = protowire.AppendBytes(nested, ragged)
	assert.Error(t, proto.Unmarshal(nested, &pb.BrainActionRequest{}))
}

func TestNewRequest_SortsAndRoundTrips(t *testing.T) {
	req := NewRequest(map[scene.ObjectID]observation.Pair{
		7: {Lower: observation.Vector{0, 1, 0.3}, Upper: observation.Vector{0, 1, 0.3}},
		2: {Lower: observation.Vector{1, 0, 1}, Upper: observation.Vector{1, 0, 1}},
	})
	require.Len(t, req.GetObservations(), 2)
	assert.Equal(t, int32(2), req.GetObservations()[0].GetArucoMarkerID(), "robots sorted by id")

	b, err := proto.Marshal(req)
	require.NoError(t, err)
	got := &pb.BrainActionRequest{}
	require.NoError(t, proto.Unmarshal(b, got))
	if diff := cmp.Diff(req, got, protocmp.Transform()); diff != "" {
		t.Errorf("request mismatch (-want +got):\n%s", diff)
	}
}

func TestActions(t *testing.T) {
	resp := &pb.BrainActionResponse{Actions: []*pb.RobotAction{
		{ArucoMarkerID: 2, Action: int32(Backward)},
		{ArucoMarkerID: 7, Action: 42},
	}}
	assert.Equal(t, map[scene.ObjectID]Action{2: Backward, 7: Stop}, Actions(resp))
	assert.Empty(t, Actions(nil))
}

func TestStubPolicy(t *testing.T) {
	req := &pb.BrainActionRequest{Observations: []*pb.Observations{{ArucoMarkerID: 1}, {ArucoMarkerID: 4}}}

	fixed := &StubPolicy{Fixed: TurnClockwise}
	resp, err := fixed.GetAction(context.Background(), req)
	require.NoError(t, err)
	want := &pb.BrainActionResponse{Actions: []*pb.RobotAction{
		{ArucoMarkerID: 1, Action: int32(TurnClockwise)},
		{ArucoMarkerID: 4, Action: int32(TurnClockwise)},
	}}
	if diff := cmp.Diff(want, resp, protocmp.Transform()); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}

	a := &StubPolicy{Random: true, Seed: 42}
	b := &StubPolicy{Random: true, Seed: 42}
	for i := 0; i < 20; i++ {
		ra, _ := a.GetAction(context.Background(), req)
		rb, _ := b.GetAction(context.Background(), req)
		require.Empty(t, cmp.Diff(ra, rb, protocmp.Transform()), "same seed must give the same actions")
		for _, act := range ra.GetActions() {
			assert.True(t, Action(act.GetAction()).Valid())
		}
	}
}

type policyFunc struct {
	pb.UnimplementedBrainServerServer
	fn func(context.Context, *pb.BrainActionRequest) (*pb.BrainActionResponse, error)
}

func (p policyFunc) GetAction(ctx context.Context, req *pb.BrainActionRequest) (*pb.BrainActionResponse, error) {
	return p.fn(ctx, req)
}

// startServer serves srv on an in-memory listener and returns a client.
func startServer(t *testing.T, srv pb.BrainServerServer) *Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	pb.RegisterBrainServerServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	c, err := Dial("passthrough:///bufnet", 0, grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestClient_GetActions(t *testing.T) {
	var seen *pb.BrainActionRequest
	c := startServer(t, policyFunc{fn: func(_ context.Context, req *pb.BrainActionRequest) (*pb.BrainActionResponse, error) {
		seen = req
		return &pb.BrainActionResponse{Actions: []*pb.RobotAction{
			{ArucoMarkerID: 3, Action: int32(Forward)},
			{ArucoMarkerID: 5, Action: 42},
		}}, nil
	}})

	obs := map[scene.ObjectID]observation.Pair{
		3: {Lower: observation.Vector{0, 1, 0.5}, Upper: observation.Vector{0, 0, 1}},
		5: {Lower: observation.Vector{1, 0, 0.1}, Upper: observation.Vector{1, 0, 0.1}},
	}
	actions, err := c.GetActions(context.Background(), obs)
	require.NoError(t, err)
	assert.Equal(t, map[scene.ObjectID]Action{3: Forward, 5: Stop}, actions)
	assert.True(t, c.Available())

	require.NotNil(t, seen)
	require.Len(t, seen.GetObservations(), 2)
	assert.Equal(t, []float32{0, 1, 0.5}, seen.GetObservations()[0].GetLowerObservations())
	assert.Equal(t, []float32{0, 0, 1}, seen.GetObservations()[0].GetUpperObservations())
}

func TestClient_ServerError(t *testing.T) {
	c := startServer(t, policyFunc{fn: func(context.Context, *pb.BrainActionRequest) (*pb.BrainActionResponse, error) {
		return nil, status.Error(codes.Internal, "model not loaded")
	}})
	_, err := c.GetActions(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(errors.Unwrap(err)))
	assert.True(t, c.Available(), "non-transport errors keep the client available")
}

func TestClient_Unimplemented(t *testing.T) {
	c := startServer(t, pb.UnimplementedBrainServerServer{})
	_, err := c.GetActions(context.Background(), map[scene.ObjectID]observation.Pair{1: {}})
	require.Error(t, err)
	assert.Equal(t, codes.Unimplemented, status.Code(errors.Unwrap(err)))
}

func TestClient_StubPolicy(t *testing.T) {
	c := startServer(t, &StubPolicy{Fixed: ForwardRight})
	actions, err := c.GetActions(context.Background(), map[scene.ObjectID]observation.Pair{
		1: {Lower: observation.Vector{0, 1}, Upper: observation.Vector{0, 1}},
		9: {Lower: observation.Vector{1, 0}, Upper: observation.Vector{1, 0}},
	})
	require.NoError(t, err)
	assert.Equal(t, map[scene.ObjectID]Action{1: ForwardRight, 9: ForwardRight}, actions)
}

func TestClient_Unavailable(t *testing.T) {
	lis := bufconn.Listen(1024)
	require.NoError(t, lis.Close())
	c, err := Dial("passthrough:///bufnet", 0, grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	require.NoError(t, err)
	defer c.Close()

	_, err = c.GetActions(context.Background(), map[scene.ObjectID]observation.Pair{1: {}})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, c.Available())
}
