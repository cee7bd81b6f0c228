package main

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/arena.observer/internal/arena/observation"
	"github.com/banshee-data/arena.observer/internal/arena/scene"
	"github.com/banshee-data/arena.observer/internal/brain"
)

func TestNewPolicy(t *testing.T) {
	t.Parallel()

	p, err := newPolicy(brain.Forward, false, 1)
	require.NoError(t, err)
	assert.Equal(t, brain.Forward, p.Fixed)

	_, err = newPolicy(brain.Action(42), false, 1)
	assert.Error(t, err)
}

func TestServeAnswersAndStops(t *testing.T) {
	t.Parallel()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, lis, &brain.StubPolicy{Fixed: brain.TurnClockwise}) }()

	client, err := brain.Dial(lis.Addr().String(), 2*time.Second)
	require.NoError(t, err)

	obs := map[scene.ObjectID]observation.Pair{
		4: {Lower: observation.Vector{0, 1}, Upper: observation.Vector{1, 0}},
	}
	actions, err := client.GetActions(context.Background(), obs)
	require.NoError(t, err)
	assert.Equal(t, map[scene.ObjectID]brain.Action{4: brain.TurnClockwise}, actions)

	require.NoError(t, client.Close())
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
