// Package session runs the observe-decide loop: one frame at a time through
// the orchestrator, the policy and the actuator, recording every tick.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/banshee-data/arena.observer/internal/arena/frame"
	"github.com/banshee-data/arena.observer/internal/arena/observation"
	"github.com/banshee-data/arena.observer/internal/arena/scene"
	"github.com/banshee-data/arena.observer/internal/brain"
	"github.com/banshee-data/arena.observer/internal/monitoring"
	"github.com/banshee-data/arena.observer/internal/recorder"
	"github.com/banshee-data/arena.observer/internal/timeutil"
)

// FrameSource yields frames until it returns io.EOF.
type FrameSource interface {
	Next() (frame.Frame, error)
}

// Policy chooses one action per observed robot.
type Policy interface {
	GetActions(ctx context.Context, obs map[scene.ObjectID]observation.Pair) (map[scene.ObjectID]brain.Action, error)
}

// Actuator delivers actions to the robots.
type Actuator interface {
	Act(ctx context.Context, actions map[scene.ObjectID]brain.Action) error
}

// TickSink stores tick records; *recorder.Recorder satisfies it.
type TickSink interface {
	RecordTick(id recorder.SessionID, t recorder.TickRecord) error
}

// Stats counts ticks by kind.
type Stats struct {
	Ticks       int
	Observed    int
	Skipped     int
	BrainErrors int
}

// Runner is a sequential tick loop. Policy, Actuator and Sink are optional:
// without a Policy every robot is told to stop.
type Runner struct {
	Source       FrameSource
	Orchestrator *frame.Orchestrator
	Policy       Policy
	Actuator     Actuator
	Sink         TickSink
	Session      recorder.SessionID
	Clock        timeutil.Clock
	// TickInterval paces the loop; zero runs as fast as frames arrive.
	TickInterval time.Duration

	known []scene.ObjectID // robots told to act or stop on the last tick
	stats Stats
}

// Stats returns the counters so far.
func (r *Runner) Stats() Stats { return r.stats }

// Run processes frames until the source is exhausted or ctx is done. A
// clean end of input returns nil.
func (r *Runner) Run(ctx context.Context) error {
	if r.Clock == nil {
		r.Clock = timeutil.RealClock{}
	}
	monitoring.Logf("[session] started %s", r.Session)
	defer func() {
		monitoring.Logf("[session] finished: %d ticks, %d observed, %d skipped, %d brain errors",
			r.stats.Ticks, r.stats.Observed, r.stats.Skipped, r.stats.BrainErrors)
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := r.Clock.Now()
		f, err := r.Source.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("next frame: %w", err)
		}
		if err := r.tick(ctx, f, start); err != nil {
			return err
		}
		if err := r.pace(ctx, start); err != nil {
			return err
		}
	}
}

func (r *Runner) tick(ctx context.Context, f frame.Frame, start time.Time) error {
	captured := r.Clock.Now()
	res, err := r.Orchestrator.Step(f)
	if err != nil {
		return fmt.Errorf("tick %d: %w", f.Seq, err)
	}
	observed := r.Clock.Now()
	r.stats.Ticks++

	var actions map[scene.ObjectID]brain.Action
	var brainTime time.Duration
	if res.Observed() {
		r.stats.Observed++
		r.known = sortedIDs(res.Observations)
		actions = r.decide(ctx, res)
		brainTime = r.Clock.Since(observed)
	} else {
		r.stats.Skipped++
		monitoring.Logf("[session] tick %d: no observations (%v), stopping robots", f.Seq, res.Outcome)
		actions = make(map[scene.ObjectID]brain.Action, len(r.known)+len(res.Robots))
		for _, id := range r.known {
			actions[id] = brain.Stop
		}
		for id := range res.Robots {
			actions[id] = brain.Stop
		}
		r.known = sortedIDs(actions)
	}

	if r.Actuator != nil && len(actions) > 0 {
		if err := r.Actuator.Act(ctx, actions); err != nil {
			monitoring.Logf("[session] tick %d: actuator: %v", f.Seq, err)
		}
	}
	return r.record(f.Seq, res, actions, captured.Sub(start), observed.Sub(captured), brainTime)
}

// decide asks the policy and fills Stop for every robot it does not answer.
func (r *Runner) decide(ctx context.Context, res frame.Result) map[scene.ObjectID]brain.Action {
	actions := make(map[scene.ObjectID]brain.Action, len(res.Observations))
	for id := range res.Observations {
		actions[id] = brain.Stop
	}
	if r.Policy == nil {
		return actions
	}
	got, err := r.Policy.GetActions(ctx, res.Observations)
	if err != nil {
		r.stats.BrainErrors++
		monitoring.Logf("[session] tick %d: policy: %v", res.Seq, err)
		return actions
	}
	for id, a := range got {
		if _, ok := actions[id]; ok {
			actions[id] = a
		}
	}
	return actions
}

func (r *Runner) record(seq uint64, res frame.Result, actions map[scene.ObjectID]brain.Action, capture, observe, brainTime time.Duration) error {
	if r.Sink == nil {
		return nil
	}
	base := recorder.TickRecord{
		Seq:     seq,
		Outcome: res.Outcome.String(),
		Capture: capture,
		Observe: observe,
		Brain:   brainTime,
	}
	if len(actions) == 0 {
		base.RobotID = recorder.NoRobot
		return r.sinkTick(base)
	}
	for _, id := range sortedIDs(actions) {
		t := base
		t.RobotID = int(id)
		t.Action = int(actions[id])
		if pair, ok := res.Observations[id]; ok {
			t.Lower, t.Upper = pair.Lower, pair.Upper
		}
		if err := r.sinkTick(t); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) sinkTick(t recorder.TickRecord) error {
	if err := r.Sink.RecordTick(r.Session, t); err != nil {
		return fmt.Errorf("record tick %d: %w", t.Seq, err)
	}
	return nil
}

func (r *Runner) pace(ctx context.Context, start time.Time) error {
	if r.TickInterval <= 0 {
		return nil
	}
	wait := r.TickInterval - r.Clock.Since(start)
	if wait <= 0 {
		return nil
	}
	timer := r.Clock.NewTimer(wait)
	select {
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	case <-timer.C():
		return nil
	}
}

func sortedIDs[V any](m map[scene.ObjectID]V) []scene.ObjectID {
	ids := make([]scene.ObjectID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
