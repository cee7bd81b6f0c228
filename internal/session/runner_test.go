package session

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/arena.observer/internal/arena/frame"
	"github.com/banshee-data/arena.observer/internal/arena/observation"
	"github.com/banshee-data/arena.observer/internal/arena/scene"
	"github.com/banshee-data/arena.observer/internal/brain"
	"github.com/banshee-data/arena.observer/internal/brain/pb"
	"github.com/banshee-data/arena.observer/internal/monitoring"
	"github.com/banshee-data/arena.observer/internal/recorder"
	"github.com/banshee-data/arena.observer/internal/testutil"
	"github.com/banshee-data/arena.observer/internal/timeutil"
)

func init() {
	monitoring.SetLogger(nil)
}

// Three ticks: observed, robot lost, observed again.
const ticks = `{"robots":{"2":{"x":320,"y":240,"rotation_deg":0}},"objects":{"positive_energy_core":[{"x":320,"y":140}]}}
{"robots":{},"objects":{"positive_energy_core":[{"x":320,"y":140}]}}
{"robots":{"2":{"x":300,"y":240,"rotation_deg":10}},"objects":{"enemy_robot":[{"id":9,"x":500,"y":240}]}}
`

func newRunner(t *testing.T, input string) (*Runner, *frame.Replay) {
	t.Helper()
	replay := frame.NewReplay(strings.NewReader(input), scene.ImageFrame{Width: 640, Height: 480})
	o, err := frame.NewOrchestrator(replay, testutil.NewModel(t), testutil.NewEncoder(t, 2))
	require.NoError(t, err)
	return &Runner{
		Source:       replay,
		Orchestrator: o,
		Clock:        timeutil.NewStepClock(time.Unix(0, 0), time.Millisecond),
	}, replay
}

type fakePolicy struct {
	calls int
	err   error
}

func (p *fakePolicy) GetActions(_ context.Context, obs map[scene.ObjectID]observation.Pair) (map[scene.ObjectID]brain.Action, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	out := make(map[scene.ObjectID]brain.Action, len(obs))
	for id := range obs {
		out[id] = brain.Forward
	}
	out[99] = brain.Backward // not a controlled robot; ignored
	return out, nil
}

type fakeActuator struct{ got []map[scene.ObjectID]brain.Action }

func (a *fakeActuator) Act(_ context.Context, actions map[scene.ObjectID]brain.Action) error {
	a.got = append(a.got, actions)
	return nil
}

type memSink struct{ ticks []recorder.TickRecord }

func (s *memSink) RecordTick(_ recorder.SessionID, t recorder.TickRecord) error {
	s.ticks = append(s.ticks, t)
	return nil
}

func TestRun_StopsRobotsOnSkippedTick(t *testing.T) {
	r, _ := newRunner(t, ticks)
	policy := &fakePolicy{}
	act := &fakeActuator{}
	sink := &memSink{}
	r.Policy, r.Actuator, r.Sink = policy, act, sink

	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, Stats{Ticks: 3, Observed: 2, Skipped: 1}, r.Stats())
	assert.Equal(t, 2, policy.calls, "policy is not called on skipped ticks")
	require.Len(t, act.got, 3)
	assert.Equal(t, map[scene.ObjectID]brain.Action{2: brain.Forward}, act.got[0])
	assert.Equal(t, map[scene.ObjectID]brain.Action{2: brain.Stop}, act.got[1])
	assert.Equal(t, map[scene.ObjectID]brain.Action{2: brain.Forward}, act.got[2])

	require.Len(t, sink.ticks, 3)
	first, skipped := sink.ticks[0], sink.ticks[1]
	assert.Equal(t, "observed", first.Outcome)
	assert.Equal(t, 2, first.RobotID)
	assert.Len(t, first.Lower, 5*9)
	testutil.AssertValidPair(t, observation.Pair{Lower: first.Lower, Upper: first.Upper})
	assert.Equal(t, "missing_robot_pose", skipped.Outcome)
	assert.Nil(t, skipped.Lower)
	assert.Equal(t, int(brain.Stop), skipped.Action)
	assert.Equal(t, time.Millisecond, first.Capture)
	assert.Equal(t, time.Millisecond, first.Observe)
}

func TestRun_StopsRobotFirstSeenOnEmptyTick(t *testing.T) {
	input := `{"robots":{"5":{"x":320,"y":240,"rotation_deg":0}},"objects":{}}
{"objects":{}}
`
	r, _ := newRunner(t, input)
	act := &fakeActuator{}
	sink := &memSink{}
	r.Policy, r.Actuator, r.Sink = &fakePolicy{}, act, sink

	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, Stats{Ticks: 2, Skipped: 2}, r.Stats())
	require.Len(t, act.got, 2)
	assert.Equal(t, map[scene.ObjectID]brain.Action{5: brain.Stop}, act.got[0], "detected robot is stopped")
	assert.Equal(t, map[scene.ObjectID]brain.Action{5: brain.Stop}, act.got[1], "robot stays known after the empty tick")

	require.Len(t, sink.ticks, 2)
	assert.Equal(t, "empty_detection_set", sink.ticks[0].Outcome)
	assert.Equal(t, 5, sink.ticks[0].RobotID)
	assert.Equal(t, "missing_robot_pose", sink.ticks[1].Outcome)
	assert.Equal(t, 5, sink.ticks[1].RobotID)
}

func TestRun_PolicyErrorStopsRobots(t *testing.T) {
	r, _ := newRunner(t, ticks)
	r.Policy = &fakePolicy{err: brain.ErrUnavailable}
	act := &fakeActuator{}
	r.Actuator = act

	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 2, r.Stats().BrainErrors)
	for _, a := range act.got {
		for id, action := range a {
			assert.Equal(t, brain.Stop, action, "robot %d", id)
		}
	}
}

func TestRun_SkipWithoutKnownRobots(t *testing.T) {
	r, _ := newRunner(t, `{"robots":{},"objects":{}}`+"\n")
	sink := &memSink{}
	r.Sink = sink

	require.NoError(t, r.Run(context.Background()))
	require.Len(t, sink.ticks, 1)
	assert.Equal(t, recorder.NoRobot, sink.ticks[0].RobotID)
	assert.Equal(t, "missing_robot_pose", sink.ticks[0].Outcome)
}

func TestRun_Paces(t *testing.T) {
	r, _ := newRunner(t, ticks)
	r.TickInterval = 50 * time.Millisecond
	clock := r.Clock.(*timeutil.StepClock)

	require.NoError(t, r.Run(context.Background()))
	waits := clock.Waits()
	require.Len(t, waits, 3)
	for _, w := range waits {
		assert.Greater(t, w, time.Duration(0))
		assert.Less(t, w, 50*time.Millisecond)
	}
}

func TestRun_ContextCancelled(t *testing.T) {
	r, _ := newRunner(t, ticks)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, r.Run(ctx), context.Canceled)
	assert.Zero(t, r.Stats().Ticks)
}

func TestRun_DetectionErrorIsFatal(t *testing.T) {
	r, _ := newRunner(t, `{"robots":{"1":{"x":1,"y":1}},"objects":{"wall":[{"x":1,"y":1}]}}`+"\n")
	err := r.Run(context.Background())
	assert.ErrorIs(t, err, scene.ErrUnknownCategory)
}

func TestRun_SourceError(t *testing.T) {
	r, _ := newRunner(t, "not json\n")
	err := r.Run(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, context.Canceled))
}

func TestRun_RecordsToSQLite(t *testing.T) {
	r, _ := newRunner(t, ticks)
	rec, err := recorder.Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	defer rec.Close()

	id, err := rec.StartSession(recorder.SessionMeta{Version: "test"})
	require.NoError(t, err)
	r.Sink, r.Session = rec, id
	r.Policy = &fakePolicy{}

	require.NoError(t, r.Run(context.Background()))
	stored, err := rec.Ticks(id)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, int(brain.Forward), stored[0].Action)
	assert.Equal(t, uint64(2), stored[1].Seq)
}

func TestRun_WithStubBrain(t *testing.T) {
	// The stub policy answers through the same request type the client sends.
	r, _ := newRunner(t, ticks)
	stub := &brain.StubPolicy{Fixed: brain.TurnClockwise}
	r.Policy = policyAdapter{stub}
	act := &fakeActuator{}
	r.Actuator = act

	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, brain.TurnClockwise, act.got[0][2])
}

type policyAdapter struct{ srv pb.BrainServerServer }

func (p policyAdapter) GetActions(ctx context.Context, obs map[scene.ObjectID]observation.Pair) (map[scene.ObjectID]brain.Action, error) {
	resp, err := p.srv.GetAction(ctx, brain.NewRequest(obs))
	if err != nil {
		return nil, err
	}
	return brain.Actions(resp), nil
}
