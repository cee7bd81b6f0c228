package observation

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/arena.observer/internal/arena/geom"
	"github.com/banshee-data/arena.observer/internal/arena/raycast"
	"github.com/banshee-data/arena.observer/internal/arena/scene"
)

func newTestEncoder(t testing.TB) *Encoder {
	t.Helper()
	c, err := raycast.NewCaster(raycast.Config{
		MaxAnglePerSide: math.Pi / 2,
		RaysPerSide:     4,
		RayLength:       600,
		RayWidth:        5,
		FrontRayWidth:   10,
	})
	require.NoError(t, err)
	return NewEncoder(c, DefaultLowerFilter, DefaultUpperFilter)
}

func newTestModel(t testing.TB) *scene.Model {
	t.Helper()
	core, err := geom.NewDisc(geom.V(0, 0), 12)
	require.NoError(t, err)
	robot, err := geom.Rect(35, 45)
	require.NoError(t, err)
	m, err := scene.NewModel(
		scene.PoolSpec{Category: scene.FriendlyRobot, Template: robot},
		scene.PoolSpec{Category: scene.EnemyRobot, Template: robot},
		scene.PoolSpec{Category: scene.PositiveCore, Template: core},
		scene.PoolSpec{Category: scene.NegativeCore, Template: core},
	)
	require.NoError(t, err)

	border, err := geom.NewLineChain([]geom.Vec{
		geom.V(-500, -400), geom.V(500, -400), geom.V(500, 400), geom.V(-500, 400), geom.V(-500, -400),
	})
	require.NoError(t, err)
	_, err = m.CreateStatic(scene.Wall, border)
	require.NoError(t, err)

	goal, err := geom.NewPolygon([]geom.Vec{geom.V(-60, 380), geom.V(60, 380), geom.V(60, 400), geom.V(-60, 400)})
	require.NoError(t, err)
	_, err = m.CreateStatic(scene.EnemyGoal, goal)
	require.NoError(t, err)
	return m
}

func TestDefaultFilters(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 7, DefaultLowerFilter.Len())
	assert.Equal(t, 7, DefaultUpperFilter.Len())
	assert.True(t, DefaultLowerFilter.Tracks(scene.PositiveCore))
	assert.False(t, DefaultUpperFilter.Tracks(scene.PositiveCore))
	assert.False(t, DefaultUpperFilter.Tracks(scene.NegativeCore))
	assert.Equal(t, "friendly_goal|enemy_goal|friendly_robot|enemy_robot|skip|skip|wall", DefaultUpperFilter.String())
}

func TestEncode_Lengths(t *testing.T) {
	t.Parallel()
	e := newTestEncoder(t)
	m := newTestModel(t)
	pair := e.Encode(m, scene.NewPose(0, 0, 0))

	assert.Len(t, pair.Lower, 9*9)
	assert.Len(t, pair.Upper, 9*9)
	assert.Equal(t, e.LowerLen(), len(pair.Lower))
	assert.Equal(t, Len(e.Caster().Angles(), DefaultUpperFilter), len(pair.Upper))
	require.NoError(t, Check(pair.Lower, DefaultLowerFilter.Width()))
	require.NoError(t, Check(pair.Upper, DefaultUpperFilter.Width()))
}

func TestEncode_UpperIgnoresCores(t *testing.T) {
	t.Parallel()
	e := newTestEncoder(t)
	m := newTestModel(t)
	require.NoError(t, m.SyncDynamic(scene.PositiveCore, scene.IndexedDetections([]scene.Pose{scene.NewPose(0, 150, 0)})))
	require.NoError(t, m.SyncDynamic(scene.NegativeCore, scene.IndexedDetections([]scene.Pose{scene.NewPose(-150, 0, 0)})))

	pair := e.Encode(m, scene.NewPose(0, 0, 0))
	width := DefaultLowerFilter.Width()
	front := 4

	lowerFront := pair.Lower[front*width : (front+1)*width]
	assert.Equal(t, float32(1), lowerFront[4], "lower front sector should see the positive core")

	upperFront := pair.Upper[front*width : (front+1)*width]
	assert.Equal(t, float32(1), upperFront[1], "upper front sector should see the enemy goal behind the core")
	for g := 0; g*width < len(pair.Upper); g++ {
		group := pair.Upper[g*width : (g+1)*width]
		assert.Zero(t, group[4], "sector %d", g)
		assert.Zero(t, group[5], "sector %d", g)
	}
}

func TestEncode_DualConsistencyWithoutCores(t *testing.T) {
	t.Parallel()
	e := newTestEncoder(t)
	m := newTestModel(t)
	require.NoError(t, m.SyncDynamic(scene.EnemyRobot, map[scene.ObjectID]scene.Pose{7: scene.NewPose(200, 100, 0.4)}))

	pair := e.Encode(m, scene.NewPose(-30, -50, 0.2))
	if diff := cmp.Diff(pair.Lower, pair.Upper); diff != "" {
		t.Errorf("expected identical vectors without cores (-lower +upper):\n%s", diff)
	}
}

func TestEncodeRobots(t *testing.T) {
	t.Parallel()
	e := newTestEncoder(t)
	m := newTestModel(t)
	robots := map[scene.ObjectID]scene.Pose{
		1: scene.NewPose(-200, 0, 0),
		2: scene.NewPose(200, 0, math.Pi),
	}
	require.NoError(t, m.SyncDynamic(scene.FriendlyRobot, robots))

	out := e.EncodeRobots(m, robots)
	require.Len(t, out, 2)
	for id, pair := range out {
		assert.NoError(t, Check(pair.Lower, DefaultLowerFilter.Width()), "robot %d", id)
		assert.Equal(t, e.Encode(m, robots[id]), pair, "robot %d", id)
	}
	assert.Nil(t, e.EncodeRobots(m, nil))
}

func TestCheck(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		vec  Vector
		ok   bool
	}{
		{"hit", Vector{0, 1, 0, 0.4}, true},
		{"miss", Vector{0, 0, 1, 1}, true},
		{"miss with short distance", Vector{0, 0, 1, 0.5}, false},
		{"miss with slot", Vector{1, 0, 1, 1}, false},
		{"hit without slot", Vector{0, 0, 0, 0.5}, false},
		{"two slots", Vector{1, 1, 0, 0.5}, false},
		{"distance out of range", Vector{1, 0, 0, 1.2}, false},
		{"ragged", Vector{1, 0, 0, 0.2, 1}, false},
	}
	for _, tc := range cases {
		err := Check(tc.vec, 4)
		if tc.ok {
			assert.NoError(t, err, tc.name)
		} else {
			assert.ErrorIs(t, err, ErrInvalidVector, tc.name)
		}
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()
	out := Format(Vector{0, 1, 0, 0.25, 0, 0, 1, 1}, []float64{math.Pi / 6, -math.Pi / 6}, 4)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, " +30.0° [0 1 | 0] 0.250", lines[0])
	assert.Equal(t, " -30.0° [0 0 | 1] 1.000", lines[1])
}

// FuzzEncodeInvariants places a robot, a core and an enemy anywhere in the
// arena and checks every produced vector.
func FuzzEncodeInvariants(f *testing.F) {
	f.Add(0.0, 0.0, 0.0, 100.0, 100.0, -200.0, 50.0)
	f.Add(-450.0, 350.0, 3.0, -440.0, 340.0, 0.0, 0.0)
	f.Add(10.0, -20.0, -1.2, 5000.0, 5000.0, 480.0, -390.0)

	e := newTestEncoder(f)
	m := newTestModel(f)
	lw, uw := DefaultLowerFilter.Width(), DefaultUpperFilter.Width()

	f.Fuzz(func(t *testing.T, rx, ry, rh, cx, cy, ex, ey float64) {
		for _, v := range []float64{rx, ry, rh, cx, cy, ex, ey} {
			if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > 1e6 {
				t.Skip()
			}
		}
		robot := map[scene.ObjectID]scene.Pose{1: scene.NewPose(rx, ry, rh)}
		require.NoError(t, m.SyncDynamic(scene.FriendlyRobot, robot))
		require.NoError(t, m.SyncDynamic(scene.PositiveCore, map[scene.ObjectID]scene.Pose{0: scene.NewPose(cx, cy, 0)}))
		require.NoError(t, m.SyncDynamic(scene.EnemyRobot, map[scene.ObjectID]scene.Pose{3: scene.NewPose(ex, ey, rh)}))

		pair := e.EncodeRobots(m, robot)[1]
		require.NoError(t, Check(pair.Lower, lw))
		require.NoError(t, Check(pair.Upper, uw))
		require.Equal(t, pair, e.Encode(m, robot[1]), "encoding must be deterministic")
	})
}
