package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-flock/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-flock/pkg/viewer"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
)

func main() {
	configFile := flag.String("config", "", "JSON or YAML config file (defaults when empty)")
	quiet := flag.Bool("quiet", false, "only log warnings and errors")
	flag.Parse()

	ctx := context.Background()

	// 1. Load configuration
	cfg := simulation.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(*configFile); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	// 2. Start the actor system
	level := golog.InfoLevel
	if *quiet {
		level = golog.WarningLevel
	}
	system, err := actor.NewActorSystem("FlockWorld",
		actor.WithLogger(golog.New(level, os.Stderr)),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		log.Fatalf("Failed to create actor system: %v", err)
	}
	if err := system.Start(ctx); err != nil {
		log.Fatalf("Failed to start actor system: %v", err)
	}
	defer system.Stop(ctx)

	// 3. Run the window
	game, err := viewer.NewGame(ctx, cfg, system)
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("Boids")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
