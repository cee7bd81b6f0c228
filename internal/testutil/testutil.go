// Package testutil provides shared arena fixtures for tests.
//
// The standard arena is a 1200 x 800 box centred on the origin with a short
// wall 300 units ahead of the origin, plus empty pools for both robot teams
// and both energy core colours.
package testutil

import (
	"math"
	"testing"

	"github.com/banshee-data/arena.observer/internal/arena/geom"
	"github.com/banshee-data/arena.observer/internal/arena/observation"
	"github.com/banshee-data/arena.observer/internal/arena/raycast"
	"github.com/banshee-data/arena.observer/internal/arena/scene"
)

// Fixture dimensions.
const (
	RobotHalfWidth  = 35
	RobotHalfLength = 45
	CoreRadius      = 10
	RayLength       = 500
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// NewModel returns the standard arena.
func NewModel(t testing.TB) *scene.Model {
	t.Helper()
	body, err := geom.Rect(RobotHalfWidth, RobotHalfLength)
	AssertNoError(t, err)
	core, err := geom.NewDisc(geom.V(0, 0), CoreRadius)
	AssertNoError(t, err)
	m, err := scene.NewModel(
		scene.PoolSpec{Category: scene.FriendlyRobot, Template: body},
		scene.PoolSpec{Category: scene.EnemyRobot, Template: body},
		scene.PoolSpec{Category: scene.PositiveCore, Template: core},
		scene.PoolSpec{Category: scene.NegativeCore, Template: core},
	)
	AssertNoError(t, err)

	for _, pts := range [][]geom.Vec{
		{geom.V(-600, -400), geom.V(600, -400), geom.V(600, 400), geom.V(-600, 400), geom.V(-600, -400)},
		{geom.V(-20, 300), geom.V(20, 300)},
	} {
		chain, err := geom.NewLineChain(pts)
		AssertNoError(t, err)
		_, err = m.CreateStatic(scene.Wall, chain)
		AssertNoError(t, err)
	}
	return m
}

// NewCaster returns a caster covering ±90° with raysPerSide bundles a side.
func NewCaster(t testing.TB, raysPerSide int) *raycast.Caster {
	t.Helper()
	c, err := raycast.NewCaster(raycast.Config{
		MaxAnglePerSide: math.Pi / 2,
		RaysPerSide:     raysPerSide,
		RayLength:       RayLength,
		RayWidth:        5,
		FrontRayWidth:   8,
	})
	AssertNoError(t, err)
	return c
}

// NewEncoder returns an encoder with the default lower and upper filters.
func NewEncoder(t testing.TB, raysPerSide int) *observation.Encoder {
	t.Helper()
	return observation.NewEncoder(NewCaster(t, raysPerSide), observation.DefaultLowerFilter, observation.DefaultUpperFilter)
}

// AssertValidPair checks both vectors of p against the default filters.
func AssertValidPair(t testing.TB, p observation.Pair) {
	t.Helper()
	if err := observation.Check(p.Lower, observation.DefaultLowerFilter.Width()); err != nil {
		t.Errorf("lower vector: %v", err)
	}
	if err := observation.Check(p.Upper, observation.DefaultUpperFilter.Width()); err != nil {
		t.Errorf("upper vector: %v", err)
	}
}
