// Command observer replays recorded detections through the scene model and
// ray-cast encoder, asks the brain for actions and records every tick.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/banshee-data/arena.observer/internal/arena/frame"
	"github.com/banshee-data/arena.observer/internal/arena/observation"
	"github.com/banshee-data/arena.observer/internal/arena/raycast"
	"github.com/banshee-data/arena.observer/internal/arena/scene"
	"github.com/banshee-data/arena.observer/internal/brain"
	"github.com/banshee-data/arena.observer/internal/config"
	"github.com/banshee-data/arena.observer/internal/monitoring"
	"github.com/banshee-data/arena.observer/internal/recorder"
	"github.com/banshee-data/arena.observer/internal/session"
	"github.com/banshee-data/arena.observer/internal/version"
)

var (
	configPath   = flag.String("config", config.DefaultConfigPath, "Path to the parameters file (.yaml or .json)")
	replayPath   = flag.String("replay", "-", "Detection replay file (JSON lines); - reads stdin")
	logLevel     = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	recordPath   = flag.String("record", "", "SQLite recorder path (overrides recorder.path)")
	brainTarget  = flag.String("brain", "", "Brain server address (overrides brain_server)")
	tickInterval = flag.Duration("tick", 0, "Minimum time per tick; 0 runs as fast as frames arrive")
	testMode     = flag.Bool("test-mode", false, "Run without a brain; every robot is told to stop")
	showVersion  = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		monitoring.Sync()
		log.Fatalf("observer: %v", err)
	}
	monitoring.Sync()
}

func run(ctx context.Context) error {
	params, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger, err := monitoring.NewLogger(*logLevel)
	if err != nil {
		return err
	}
	monitoring.Use(logger)
	monitoring.Logf("[observer] %s starting with %s", version.String(), *configPath)

	model, err := params.BuildModel()
	if err != nil {
		return fmt.Errorf("failed to build scene: %w", err)
	}
	caster, err := raycast.NewCaster(params.RaycastConfig())
	if err != nil {
		return err
	}
	encoder := observation.NewEncoder(caster, observation.DefaultLowerFilter, observation.DefaultUpperFilter)

	in, closeIn, err := openReplay(*replayPath)
	if err != nil {
		return err
	}
	defer closeIn()

	replay := frame.NewReplay(in, params.GetImageFrame())
	orch, err := frame.NewOrchestrator(replay, model, encoder)
	if err != nil {
		return err
	}

	runner := &session.Runner{
		Source:       replay,
		Orchestrator: orch,
		Actuator:     logActuator{},
		TickInterval: *tickInterval,
	}

	if !*testMode {
		target := *brainTarget
		if target == "" {
			target = params.BrainTarget()
		}
		client, err := brain.Dial(target, params.GetBrainTimeout())
		if err != nil {
			return err
		}
		defer client.Close()
		runner.Policy = client
		monitoring.Logf("[observer] brain at %s", target)
	}

	path := *recordPath
	if path == "" {
		path = params.GetRecorderPath()
	}
	if path != "" {
		rec, err := recorder.Open(path)
		if err != nil {
			return err
		}
		defer rec.Close()

		lower, upper := encoder.Filters()
		id, err := rec.StartSession(recorder.SessionMeta{
			Started:     time.Now(),
			Version:     version.String(),
			Angles:      caster.Angles(),
			LowerFilter: lower.String(),
			UpperFilter: upper.String(),
		})
		if err != nil {
			return err
		}
		runner.Sink = rec
		runner.Session = id
	}

	err = runner.Run(ctx)
	if errors.Is(err, context.Canceled) {
		monitoring.Logf("[observer] interrupted")
		return nil
	}
	return err
}

func openReplay(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open replay: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// logActuator prints the actions it would send.
type logActuator struct{}

func (logActuator) Act(_ context.Context, actions map[scene.ObjectID]brain.Action) error {
	for id, a := range actions {
		monitoring.Logf("[actuator] robot %d: %s", id, a)
	}
	return nil
}
