// Package viewer renders a running flock with ebiten and turns mouse and
// panel input into messages for the flock actor.
package viewer

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-flock/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flock/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-flock/pkg/ui"
	"github.com/tochemey/goakt/v3/actor"
)

// triangles per DrawTriangles call, keeps indices inside uint16
const batchBoids = 20000

var (
	whiteImage *ebiten.Image
	background = color.RGBA{R: 10, G: 10, B: 30, A: 255}
	boidColor  = color.RGBA{R: 100, G: 200, B: 255, A: 255}
	rangeColor = color.RGBA{R: 50, G: 100, B: 255, A: 40}
	targetClr  = color.RGBA{R: 255, G: 90, B: 60, A: 255}
)

type forceControl struct {
	force    flock.Force
	weight   *ui.Slider
	distance flock.DistanceType
	button   *ui.Button
}

type Game struct {
	ctx        context.Context
	System     actor.ActorSystem
	flockPID   *actor.PID
	snapshotCh chan *simulation.Snapshot
	lastState  *simulation.Snapshot
	cfg        *simulation.Config

	// UI Controls
	panel            *ui.Panel
	widgetPerception *ui.Slider
	widgetBlindSpot  *ui.Slider
	widgetMaxAcc     *ui.Slider
	widgetMaxVel     *ui.Slider
	forces           []*forceControl
	widgetShowRange  *ui.Checkbox
	widgetShowTarget *ui.Checkbox
	pauseButton      *ui.Button
	paused           bool
	dirty            bool

	vertices []ebiten.Vertex
	indices  []uint16

	// Timing instrumentation
	updateAvg float64 // Rolling average in ms
	drawAvg   float64 // Rolling average in ms
}

// NewGame spawns the flock actor on system and builds the control panel.
func NewGame(ctx context.Context, cfg *simulation.Config, system actor.ActorSystem) (*Game, error) {
	// 1. Channel the actor pushes snapshots on
	snapshotCh := make(chan *simulation.Snapshot, 10)

	// 2. Spawn the flock
	pid, err := system.Spawn(ctx, "flock", simulation.NewFlockActor(snapshotCh, cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to spawn flock: %w", err)
	}

	g := &Game{
		ctx:        ctx,
		System:     system,
		flockPID:   pid,
		snapshotCh: snapshotCh,
		lastState:  &simulation.Snapshot{},
		cfg:        cfg,
	}

	// 3. Control panel
	p := cfg.Flock
	panel := ui.NewPanel(10, 10, 260, float64(cfg.WorldHeight)-20)

	panel.AddSection("Perception")
	g.widgetPerception = panel.AddSlider("Radius", 0, 150, float64(p.PerceptionRadius))
	g.widgetBlindSpot = panel.AddSlider("Blind spot", 0, 180, float64(p.BlindSpotAngle))
	g.widgetBlindSpot.Format = "%.0f deg"

	panel.AddSection("Limits")
	g.widgetMaxAcc = panel.AddSlider("Max acceleration", 0, 100, float64(p.MaxAcceleration))
	g.widgetMaxVel = panel.AddSlider("Max velocity", 0, 200, float64(p.MaxVelocity))

	panel.AddSection("Forces")
	for _, f := range []struct {
		force flock.Force
		max   float64
	}{
		{flock.Separation, 100},
		{flock.Alignment, 10},
		{flock.Cohesion, 10},
		{flock.Steering, 5},
	} {
		t := p.Term(f.force)
		fc := &forceControl{force: f.force, distance: t.Distance}
		fc.weight = panel.AddSlider(f.force.String(), 0, f.max, float64(t.Weight))
		fc.button = panel.AddButton(distanceLabel(f.force, t.Distance), func() {
			fc.distance = nextDistance(fc.distance)
			fc.button.Label = distanceLabel(fc.force, fc.distance)
			g.dirty = true
		})
		g.forces = append(g.forces, fc)
	}

	panel.AddSection("View")
	g.widgetShowRange = panel.AddCheckbox("Perception radius", false)
	g.widgetShowTarget = panel.AddCheckbox("Targets", true)
	g.pauseButton = panel.AddButton("Pause", g.togglePause)

	g.panel = panel
	return g, nil
}

func (g *Game) togglePause() {
	g.paused = !g.paused
	if g.paused {
		g.pauseButton.Label = "Resume"
	} else {
		g.pauseButton.Label = "Pause"
	}
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	// 1. Update UI Panel
	g.panel.Update()
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.togglePause()
	}

	// 2. A click on the world drops a steering target
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if !g.panel.Contains(float64(mx), float64(my)) {
			target := geometry.NewVector(float32(mx), float32(my), g.cfg.WorldDepth/2)
			if err := actor.Tell(g.ctx, g.flockPID, simulation.NewTargetMessage(target)); err != nil {
				return err
			}
		}
	}

	// 3. Push parameter changes
	if g.collectChanges() {
		msg, err := simulation.NewParamsUpdate(g.params())
		if err != nil {
			return err
		}
		if err := actor.Tell(g.ctx, g.flockPID, msg); err != nil {
			return err
		}
	}

	// 4. Retrieve Latest State (Non-blocking)
	select {
	case snap := <-g.snapshotCh:
		g.lastState = snap
	default:
	}

	// 5. Trigger Simulation Step
	if !g.paused {
		return actor.Tell(g.ctx, g.flockPID, simulation.NewTick(float32(1/float64(ebiten.TPS()))))
	}
	return nil
}

// collectChanges drains every slider's change flag and the button flag.
func (g *Game) collectChanges() bool {
	changed := g.dirty
	g.dirty = false
	for _, s := range []*ui.Slider{g.widgetPerception, g.widgetBlindSpot, g.widgetMaxAcc, g.widgetMaxVel} {
		changed = s.Changed() || changed
	}
	for _, fc := range g.forces {
		changed = fc.weight.Changed() || changed
	}
	return changed
}

func (g *Game) params() flock.Params {
	p := flock.Params{
		PerceptionRadius: float32(g.widgetPerception.Value),
		BlindSpotAngle:   float32(g.widgetBlindSpot.Value),
		MaxAcceleration:  float32(g.widgetMaxAcc.Value),
		MaxVelocity:      float32(g.widgetMaxVel.Value),
	}
	for _, fc := range g.forces {
		p.SetTerm(fc.force, flock.Term{Weight: float32(fc.weight.Value), Distance: fc.distance})
	}
	return p
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()
	if whiteImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
	}
	screen.Fill(background)

	// 1. Perception rings under the boids
	if g.widgetShowRange.Value {
		r := float32(g.widgetPerception.Value)
		for _, b := range g.lastState.Boids {
			vector.StrokeCircle(screen, b.Position.X, b.Position.Y, r, 1, rangeColor, true)
		}
	}

	// 2. Boids, batched
	g.drawBoids(screen)

	// 3. Targets
	if g.widgetShowTarget.Value {
		for _, t := range g.lastState.Targets {
			vector.StrokeCircle(screen, t.X, t.Y, 8, 2, targetClr, true)
			vector.FillCircle(screen, t.X, t.Y, 2, targetClr, true)
		}
	}

	// 4. Panel and stats
	g.panel.Draw(screen)

	msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\n\nStep:   %d\nBoids:  %d\nSpeed:  %.1f\n\nUpdate: %.2fms\nDraw:   %.2fms",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		g.lastState.Step,
		len(g.lastState.Boids),
		g.lastState.AverageSpeed(),
		g.updateAvg,
		g.drawAvg)
	if g.paused {
		msg += "\n\nPAUSED"
	}
	ebitenutil.DebugPrintAt(screen, msg, int(g.cfg.WorldWidth)-150, 10)
}

func (g *Game) drawBoids(screen *ebiten.Image) {
	boids := g.lastState.Boids
	for len(boids) > 0 {
		n := min(len(boids), batchBoids)
		g.vertices, g.indices = g.vertices[:0], g.indices[:0]
		for _, b := range boids[:n] {
			g.vertices, g.indices = appendTriangle(g.vertices, g.indices, b, boidColor)
		}
		screen.DrawTriangles(g.vertices, g.indices, whiteImage, &ebiten.DrawTrianglesOptions{})
		boids = boids[n:]
	}
}

func (g *Game) Layout(w, h int) (int, int) { return int(g.cfg.WorldWidth), int(g.cfg.WorldHeight) }

// appendTriangle adds a triangle pointing along the boid's velocity, projected
// on the XY plane.
func appendTriangle(vs []ebiten.Vertex, is []uint16, b simulation.BoidState, clr color.RGBA) ([]ebiten.Vertex, []uint16) {
	angle := math.Atan2(float64(b.Velocity.Y), float64(b.Velocity.X))
	x, y := float64(b.Position.X), float64(b.Position.Y)

	r, gr, bl, a := float32(clr.R)/255, float32(clr.G)/255, float32(clr.B)/255, float32(clr.A)/255
	base := uint16(len(vs))
	for _, p := range [3]struct{ off, size float64 }{{0, 6}, {2.5, 5}, {-2.5, 5}} {
		vs = append(vs, ebiten.Vertex{
			DstX: float32(x + math.Cos(angle+p.off)*p.size),
			DstY: float32(y + math.Sin(angle+p.off)*p.size),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: gr, ColorB: bl, ColorA: a,
		})
	}
	return vs, append(is, base, base+1, base+2)
}

func nextDistance(d flock.DistanceType) flock.DistanceType {
	switch d {
	case flock.Linear:
		return flock.InverseLinear
	case flock.InverseLinear:
		return flock.Quadratic
	case flock.Quadratic:
		return flock.InverseQuadratic
	default:
		return flock.Linear
	}
}

func distanceLabel(f flock.Force, d flock.DistanceType) string {
	return fmt.Sprintf("%s curve: %s", f, d)
}
