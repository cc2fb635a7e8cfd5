// Command flockrun steps a flock without a window, optionally recording
// snapshot frames, or replays a recording and prints a per-frame summary.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/lao-tseu-is-alive/go-flock/pkg/simulation"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func main() {
	configFile := flag.String("config", "", "JSON or YAML config file (defaults when empty)")
	steps := flag.Int("steps", 600, "number of steps to run")
	dt := flag.Float64("dt", 1.0/60, "step length in seconds")
	record := flag.String("record", "", "write snapshot frames to this file")
	every := flag.Int("every", 10, "record one frame every N steps")
	replay := flag.String("replay", "", "print a summary of a recording and exit")
	flag.Parse()

	if *replay != "" {
		if err := runReplay(*replay); err != nil {
			log.Fatal(err)
		}
		return
	}

	cfg := simulation.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(*configFile); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if err := run(context.Background(), cfg, *steps, float32(*dt), *record, max(*every, 1)); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *simulation.Config, steps int, dt float32, recordPath string, every int) error {
	logger := golog.New(golog.InfoLevel, os.Stderr)
	system, err := actor.NewActorSystem("FlockRun", actor.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return fmt.Errorf("failed to start actor system: %w", err)
	}
	defer system.Stop(ctx)

	pid, err := system.Spawn(ctx, "flock", simulation.NewFlockActor(nil, cfg))
	if err != nil {
		return fmt.Errorf("failed to spawn flock: %w", err)
	}

	var rec *simulation.Recorder
	if recordPath != "" {
		f, err := os.Create(recordPath)
		if err != nil {
			return fmt.Errorf("failed to create recording: %w", err)
		}
		defer f.Close()
		rec = simulation.NewRecorder(bufio.NewWriter(f))
	}

	start := time.Now()
	tick := simulation.NewTick(dt)
	var last *simulation.Snapshot
	for i := 1; i <= steps; i++ {
		if err := actor.Tell(ctx, pid, tick); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if i != steps && (rec == nil || i%every != 0) {
			continue
		}
		if last, err = fetch(ctx, pid); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if rec != nil {
			if err := rec.Record(last); err != nil {
				return err
			}
		}
	}
	if last == nil {
		if last, err = fetch(ctx, pid); err != nil {
			return err
		}
	}

	if rec != nil {
		if err := rec.Flush(); err != nil {
			return fmt.Errorf("failed to write recording %s: %w", recordPath, err)
		}
	}

	logger.Infof("ran %d steps of %.4fs in %s: %d boids, avg speed %.2f, centroid %s",
		last.Step, dt, time.Since(start).Round(time.Millisecond), len(last.Boids), last.AverageSpeed(), last.Centroid())
	if rec != nil {
		logger.Infof("recorded %d frames to %s", rec.Frames(), recordPath)
	}
	return nil
}

func fetch(ctx context.Context, pid *actor.PID) (*simulation.Snapshot, error) {
	resp, err := actor.Ask(ctx, pid, &emptypb.Empty{}, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("ask snapshot: %w", err)
	}
	b, ok := resp.(*wrapperspb.BytesValue)
	if !ok {
		return nil, fmt.Errorf("unexpected snapshot response %T", resp)
	}
	return simulation.DecodeSnapshot(b.GetValue())
}

func runReplay(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open recording: %w", err)
	}
	defer f.Close()

	frames := 0
	err = simulation.ReadFrames(f, func(s *simulation.Snapshot) error {
		frames++
		fmt.Printf("step %6d  boids %5d  targets %2d  avg speed %7.2f  centroid %s\n",
			s.Step, len(s.Boids), len(s.Targets), s.AverageSpeed(), s.Centroid())
		return nil
	})
	if err != nil {
		return fmt.Errorf("replay %s after %d frames: %w", path, frames, err)
	}
	return nil
}
