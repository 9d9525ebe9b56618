// Package flappy implements a Flappy Bird-style game.
// The player taps to lift a bird through gaps in scrolling pipe pairs.
//
// The game is a pure state machine: the platform feeds it activations and
// ticks and plays back the cues it returns. Nothing here blocks or logs.
package flappy

import (
	"fmt"

	"github.com/vovakirdan/niftybird/internal/config"
	"github.com/vovakirdan/niftybird/internal/core"
)

// On-canvas text, centered on the canvas width.
const (
	promptText    = "Tap, or Press Space to Start"
	gameOverText  = "Game Over!"
	startPromptY  = 220
	startPromptPx = 22
	scoreY        = 40
	scorePx       = 20
	gameOverY     = 200
	gameOverPx    = 28
	overPromptY   = 230
	overPromptPx  = 16
)

// Game implements the bird game logic.
type Game struct {
	cfg        config.GameConfig
	difficulty *config.DifficultyManager
	bird       Bird
	field      *Field
	frame      int
	score      int
	phase      core.Phase
	token      uint64 // Bumped on every (re)start
}

// New creates a game in the Start phase.
func New(cfg config.GameConfig, seed int64) *Game {
	diff := config.NewDifficultyManager(cfg.Difficulty)
	g := &Game{
		cfg:        cfg,
		difficulty: diff,
		field:      NewField(seed, cfg, diff),
		phase:      core.PhaseStart,
	}
	g.bird.Reset(cfg.Player.StartY)
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Nifty Bird"
}

// Config returns the configuration the game was built with.
func (g *Game) Config() config.GameConfig {
	return g.cfg
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Frame: g.frame,
		Score: g.score,
		Phase: g.phase,
	}
}

// Token returns the generation of the current loop.
func (g *Game) Token() uint64 {
	return g.token
}

// Bird returns a copy of the bird's physics state.
func (g *Game) Bird() Bird {
	return g.bird
}

// Obstacles returns a snapshot of the live pipes, oldest first.
func (g *Game) Obstacles() []Obstacle {
	return g.field.Obstacles()
}

// Activate handles one logical player action.
// In Start or Over it (re)starts the run; while Playing it flaps.
func (g *Game) Activate() core.StepResult {
	if g.phase != core.PhasePlaying {
		g.restart()
		return g.result(nil, true)
	}

	g.bird.Lift(g.cfg.Physics.Lift)
	return g.result([]core.Cue{core.CueFly}, false)
}

// Tick advances the game if token belongs to the current loop.
// A stale token is dropped and reported with ok == false.
func (g *Game) Tick(token uint64) (core.StepResult, bool) {
	if token != g.token {
		return core.StepResult{}, false
	}
	return g.Step(), true
}

// Step advances the simulation by one tick. It is a no-op outside Playing.
func (g *Game) Step() core.StepResult {
	if g.phase != core.PhasePlaying {
		return g.result(nil, false)
	}

	g.frame++
	g.bird.Fall(g.cfg.Physics.Gravity, g.cfg.Physics.MaxFallSpeed)

	// Flying off the top restarts at once, without the overlay.
	if g.bird.Y < g.cfg.Physics.Ceiling {
		g.restart()
		return g.result([]core.Cue{core.CueDie}, true)
	}

	spawnEvery := g.difficulty.SpawnEvery(g.cfg.Obstacles.SpawnEvery, g.score, g.frame)
	if spawnEvery > 0 && g.frame%spawnEvery == 0 {
		g.field.Spawn(g.score, g.frame)
	}

	var cues []core.Cue
	box := g.bird.Box(g.cfg.Player)
	out := g.field.Advance(box, g.score, g.frame)

	for i := 0; i < out.Scored; i++ {
		g.score++
		cues = append(cues, core.CueScore)
	}

	grounded := box.Bottom() >= g.cfg.Canvas.GroundTop()
	if out.Collided || grounded {
		g.phase = core.PhaseOver
		cues = append(cues, core.CueDie)
	}

	return g.result(cues, false)
}

// restart resets the run and mints a new loop token.
// The RNG keeps its sequence so consecutive runs differ.
func (g *Game) restart() {
	g.bird.Reset(g.cfg.Player.StartY)
	g.field.Clear()
	g.frame = 0
	g.score = 0
	g.phase = core.PhasePlaying
	g.token++
	g.field.Spawn(0, 0)
}

func (g *Game) result(cues []core.Cue, restarted bool) core.StepResult {
	return core.StepResult{
		State:     g.State(),
		Cues:      cues,
		Token:     g.token,
		Restarted: restarted,
		Continue:  g.phase == core.PhasePlaying,
	}
}

// Render draws the current frame to the canvas.
func (g *Game) Render(c core.Canvas) {
	w, h := g.cfg.Canvas.Width, g.cfg.Canvas.Height
	player := g.cfg.Player

	c.ClearRect(0, 0, w, h)
	c.DrawImage(core.SpriteBackground, 0, 0, w, h)

	if g.phase == core.PhaseStart {
		g.drawGround(c)
		c.DrawImage(core.SpriteBird, player.X, g.bird.Y, player.Width, player.Height)
		c.FillText(promptText, w/2, startPromptY, startPromptPx)
		return
	}

	groundTop := g.cfg.Canvas.GroundTop()
	pipeW := g.cfg.Obstacles.Width
	for _, o := range g.field.Obstacles() {
		c.DrawImage(core.SpritePipeTop, o.X, 0, pipeW, o.GapTop)
		c.DrawImage(core.SpritePipeBottom, o.X, o.GapBottom, pipeW, groundTop-o.GapBottom)
	}

	g.drawGround(c)
	c.DrawImage(core.SpriteBird, player.X, g.bird.Y, player.Width, player.Height)
	c.FillText(fmt.Sprintf("Score: %d", g.score), w/2, scoreY, scorePx)

	if g.phase == core.PhaseOver {
		c.FillRect(0, 0, w, h, core.ShadeDim)
		c.FillText(gameOverText, w/2, gameOverY, gameOverPx)
		c.FillText(promptText, w/2, overPromptY, overPromptPx)
	}
}

// drawGround tiles the ground band across the canvas width.
func (g *Game) drawGround(c core.Canvas) {
	cv := g.cfg.Canvas
	tile := cv.GroundTile
	if tile <= 0 {
		tile = cv.Width
	}
	for x := 0.0; x < cv.Width; x += tile {
		c.DrawImage(core.SpriteGround, x, cv.GroundTop(), tile, cv.GroundHeight)
	}
}
