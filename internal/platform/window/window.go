// Package window runs the bird game in a desktop window with ebiten.
// Ebiten calls Update at the tick rate; each call feeds the frame's input
// to the router and advances the current loop by one tick.
package window

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/niftybird/internal/config"
	"github.com/vovakirdan/niftybird/internal/core"
	"github.com/vovakirdan/niftybird/internal/games/flappy"
)

// Options configures the window.
type Options struct {
	Game     config.GameConfig
	Seed     int64
	TickRate int
	Zoom     int     // Window pixels per world pixel
	Volume   float64 // 0 mutes
	Logger   *log.Logger
}

// driver owns the game loop: it turns routed input into activations and
// keeps exactly one loop ticking.
type driver struct {
	game    *flappy.Game
	router  *core.Router
	speaker core.Speaker
	logger  *log.Logger
	loop    uint64 // Token of the loop being ticked
	running bool
}

func newDriver(game *flappy.Game, speaker core.Speaker, logger *log.Logger) *driver {
	return &driver{
		game:    game,
		router:  core.NewRouter(),
		speaker: speaker,
		logger:  logger,
	}
}

// frame processes one Update: input first, then one tick of the loop.
func (d *driver) frame(events []core.Event) {
	for _, ev := range events {
		if d.router.Route(ev) != core.ActionActivate {
			continue
		}
		d.apply(d.game.Activate())
	}

	if !d.running {
		return
	}
	result, ok := d.game.Tick(d.loop)
	if !ok {
		d.running = false
		return
	}
	d.apply(result)
}

// apply plays a result's cues and follows its loop.
func (d *driver) apply(result core.StepResult) {
	core.PlayAll(d.speaker, result.Cues)
	if result.Restarted {
		d.loop = result.Token
		d.logger.Debug("loop started", "token", result.Token)
	}
	d.running = result.Continue
	if result.State.GameOver() {
		d.logger.Info("game over", "score", result.State.Score, "frames", result.State.Frame)
	}
}

// app adapts the driver to ebiten.Game.
type app struct {
	driver *driver
	canvas *ImageCanvas
	width  int
	height int
}

// Update implements ebiten.Game.
func (a *app) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	a.driver.frame(pollEvents())
	return nil
}

// Draw implements ebiten.Game.
func (a *app) Draw(screen *ebiten.Image) {
	a.canvas.Target(screen)
	a.driver.game.Render(a.canvas)
}

// Layout implements ebiten.Game. The screen is always the world size.
func (a *app) Layout(_, _ int) (int, int) {
	return a.width, a.height
}

// pollEvents collects this frame's input. Touches come before the mouse so
// the router can swallow a click synthesized from the same touch.
func pollEvents() []core.Event {
	var events []core.Event
	for range inpututil.AppendJustPressedTouchIDs(nil) {
		events = append(events, core.Event{Kind: core.EventTap})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		events = append(events, core.Event{Kind: core.EventClick})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		events = append(events, core.Event{Kind: core.EventKey, Key: core.KeySpace})
	}
	return events
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.Zoom <= 0 {
		opts.Zoom = 2
	}

	var speaker core.Speaker
	if opts.Volume > 0 {
		speaker = NewSpeaker(audio.NewContext(sampleRate), opts.Volume, logger)
	}

	w, h := int(opts.Game.Canvas.Width), int(opts.Game.Canvas.Height)
	a := &app{
		driver: newDriver(flappy.New(opts.Game, opts.Seed), speaker, logger),
		canvas: NewImageCanvas(),
		width:  w,
		height: h,
	}

	ebiten.SetWindowTitle(a.driver.game.Title())
	ebiten.SetWindowSize(w*opts.Zoom, h*opts.Zoom)
	ebiten.SetTPS(opts.TickRate)

	if err := ebiten.RunGame(a); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
