// Command flockterm runs a flock in the terminal. Click to drop a steering
// target, space pauses, q or Esc quits.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-flock/internal/terminal"
	"github.com/lao-tseu-is-alive/go-flock/pkg/bounce"
	"github.com/lao-tseu-is-alive/go-flock/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flock/pkg/simulation"
	"go.uber.org/zap"
)

type app struct {
	cfg    *simulation.Config
	engine *flock.Engine
	boids  []flock.Boid
	swarm  *bounce.Swarm
	bounce []bounce.Boid
	screen tcell.Screen
	view   *terminal.View
	logger *zap.Logger

	steps     uint64
	paused    bool
	mouseDown bool
}

func main() {
	configFile := flag.String("config", "", "JSON or YAML config file (defaults when empty)")
	logFile := flag.String("log", "flockterm.log", "log file, the terminal is busy drawing")
	fps := flag.Int("fps", 30, "frames per second")
	flag.Parse()

	// The screen owns stdout, so logs go to a file.
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{*logFile}
	zcfg.ErrorOutputPaths = []string{*logFile}
	zcfg.DisableCaller = true
	logger, err := zcfg.Build()
	if err != nil {
		log.Fatalf("Failed to open log: %v", err)
	}
	defer logger.Sync()

	cfg := simulation.DefaultConfig()
	if *configFile != "" {
		if cfg, err = simulation.LoadConfig(*configFile); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	a := newApp(cfg, screen, logger)
	a.run(time.Second / time.Duration(max(*fps, 1)))
}

func newApp(cfg *simulation.Config, screen tcell.Screen, logger *zap.Logger) *app {
	a := &app{
		cfg:    cfg,
		engine: flock.New(cfg.EngineOptions()...),
		screen: screen,
		view:   terminal.NewView(screen, cfg.WorldWidth, cfg.WorldHeight),
		logger: logger,
	}
	for _, t := range cfg.Targets {
		a.engine.AddSteeringTarget(t)
	}
	rnd := cfg.SpawnRandom()
	if cfg.Bounce {
		a.bounce, a.swarm = simulation.SpawnBounce(cfg, rnd)
	} else {
		a.boids = simulation.SpawnFlock(cfg, rnd)
	}
	logger.Info("flock spawned",
		zap.Int("boids", cfg.NumBoids),
		zap.Bool("bounce", cfg.Bounce),
		zap.Int("workers", cfg.Workers))
	return a
}

func (a *app) run(frame time.Duration) {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	dt := float32(frame.Seconds())
	lastLog := time.Now()
	stepped := 0
	for {
		select {
		case ev := <-events:
			if !a.handle(ev) {
				a.logger.Info("quit", zap.Uint64("steps", a.steps))
				return
			}

		case <-ticker.C:
			if !a.paused {
				a.step(dt)
				stepped++
			}
			a.view.Render(a.snapshot(), a.engine.MaxVelocity()*0.9, a.status())

			if time.Since(lastLog) >= time.Second {
				a.logger.Info("step rate", zap.Int("steps_per_sec", stepped), zap.Uint64("step", a.steps))
				stepped = 0
				lastLog = time.Now()
			}
		}
	}
}

func (a *app) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			a.paused = !a.paused
		}

	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !a.mouseDown {
			x, y := ev.Position()
			t := a.view.World(x, y)
			t.Z = a.cfg.WorldDepth / 2
			a.engine.AddSteeringTarget(t)
			a.logger.Info("target added", zap.Stringer("at", t))
		}
		a.mouseDown = down

	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *app) step(dt float32) {
	if a.cfg.Bounce {
		a.swarm.Simulate(a.bounce, dt)
	} else {
		a.engine.Step(a.boids, dt)
	}
	a.steps++
}

func (a *app) snapshot() *simulation.Snapshot {
	if a.cfg.Bounce {
		return simulation.NewBounceSnapshot(a.steps, a.bounce, a.engine.Targets())
	}
	return simulation.NewSnapshot(a.steps, a.boids, a.engine.Targets())
}

func (a *app) status() string {
	s := fmt.Sprintf(" step %d | boids %d | targets %d | click: target  space: pause  q: quit",
		a.steps, max(len(a.boids), len(a.bounce)), len(a.engine.Targets()))
	if a.paused {
		s += "  [PAUSED]"
	}
	return s
}
