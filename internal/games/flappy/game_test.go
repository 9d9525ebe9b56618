package flappy

import (
	"math"
	"testing"

	"github.com/vovakirdan/niftybird/internal/config"
	"github.com/vovakirdan/niftybird/internal/core"
)

// hoverConfig keeps the bird still and every gap wide open so a run can
// last as long as a test needs.
func hoverConfig() config.GameConfig {
	cfg := config.DefaultGameConfig()
	cfg.Physics.Gravity = 0
	cfg.Obstacles.MinGapTop = 0
	cfg.Obstacles.GapTopRange = 100
	cfg.Obstacles.Gap = 1000
	return cfg
}

func TestGameStartsIdle(t *testing.T) {
	g := New(config.DefaultGameConfig(), 1)

	state := g.State()
	if state.Phase != core.PhaseStart {
		t.Fatalf("phase = %v, expected Start", state.Phase)
	}

	result := g.Step()
	if result.Continue || result.State.Frame != 0 {
		t.Errorf("Step() in Start should be a no-op, got %+v", result)
	}
	if len(g.Obstacles()) != 0 {
		t.Errorf("no pipes expected before the first activation, got %d", len(g.Obstacles()))
	}
}

func TestActivateStartsRun(t *testing.T) {
	cfg := config.DefaultGameConfig()
	g := New(cfg, 7)

	result := g.Activate()
	if !result.Restarted || !result.Continue {
		t.Errorf("first activation should start a loop, got %+v", result)
	}
	if result.State.Phase != core.PhasePlaying {
		t.Errorf("phase = %v, expected Playing", result.State.Phase)
	}
	if result.Token != 1 || g.Token() != 1 {
		t.Errorf("token = %d, expected 1", result.Token)
	}
	if len(result.Cues) != 0 {
		t.Errorf("starting should not play a cue, got %v", result.Cues)
	}

	obs := g.Obstacles()
	if len(obs) != 1 {
		t.Fatalf("restart should spawn exactly one pipe, got %d", len(obs))
	}
	o := obs[0]
	if o.X != cfg.Canvas.Width {
		t.Errorf("pipe x = %v, expected right edge %v", o.X, cfg.Canvas.Width)
	}
	if o.GapTop < 50 || o.GapTop >= 170 {
		t.Errorf("gap top = %v, expected within [50, 170)", o.GapTop)
	}
	if o.GapBottom-o.GapTop != cfg.Obstacles.Gap {
		t.Errorf("gap height = %v, expected %v", o.GapBottom-o.GapTop, cfg.Obstacles.Gap)
	}
}

func TestActivateWhilePlayingFlaps(t *testing.T) {
	g := New(config.DefaultGameConfig(), 1)
	g.Activate()

	result := g.Activate()
	if result.Restarted {
		t.Error("flapping must not restart the run")
	}
	if len(result.Cues) != 1 || result.Cues[0] != core.CueFly {
		t.Errorf("cues = %v, expected [Fly]", result.Cues)
	}
	if g.Bird().Velocity != -7 {
		t.Errorf("velocity = %v, expected lift -7", g.Bird().Velocity)
	}

	g.Step()
	b := g.Bird()
	if math.Abs(b.Velocity-(-6.6)) > 1e-9 || math.Abs(b.Y-143.4) > 1e-9 {
		t.Errorf("after one tick bird = %+v, expected velocity -6.6 at y 143.4", b)
	}
}

func TestGroundEndsRunAndKeepsScore(t *testing.T) {
	g := New(config.DefaultGameConfig(), 3)
	g.Activate()

	// Swap the spawned pipe for one the bird has already cleared.
	g.field.Clear()
	g.field.obstacles.PushBack(Obstacle{X: 10, GapTop: 0, GapBottom: 1000})

	var result core.StepResult
	for i := 0; i < 100; i++ {
		result = g.Step()
		if result.State.GameOver() {
			break
		}
	}

	if !result.State.GameOver() {
		t.Fatal("a bird that never flaps should hit the ground")
	}
	// 150 + 0.2*n*(n+1) + 24 >= 390 first holds at n = 33.
	if result.State.Frame != 33 {
		t.Errorf("game over at frame %d, expected 33", result.State.Frame)
	}
	if result.State.Score != 1 {
		t.Errorf("score = %d, expected 1 to survive game over", result.State.Score)
	}
	if result.Continue {
		t.Error("no further tick should be scheduled after game over")
	}
	if n := len(result.Cues); n == 0 || result.Cues[n-1] != core.CueDie {
		t.Errorf("cues = %v, expected to end with Die", result.Cues)
	}

	frozen := g.Step()
	if frozen.State != result.State {
		t.Errorf("Step() after game over changed state: %+v -> %+v", result.State, frozen.State)
	}
}

func TestCeilingRestartsWithoutOverlay(t *testing.T) {
	g := New(config.DefaultGameConfig(), 5)
	g.Activate()
	before := g.Token()

	var result core.StepResult
	restarted := false
	for i := 0; i < 100; i++ {
		g.Activate()
		result = g.Step()
		if result.Restarted {
			restarted = true
			break
		}
	}

	if !restarted {
		t.Fatal("flapping every tick should carry the bird past the ceiling")
	}
	if result.State.Phase != core.PhasePlaying {
		t.Errorf("phase = %v, expected Playing right after a ceiling exit", result.State.Phase)
	}
	if len(result.Cues) != 1 || result.Cues[0] != core.CueDie {
		t.Errorf("cues = %v, expected [Die]", result.Cues)
	}
	if result.Token != before+1 {
		t.Errorf("token = %d, expected %d", result.Token, before+1)
	}
	if !result.Continue {
		t.Error("the new loop should be scheduled")
	}
	if result.State.Frame != 0 || result.State.Score != 0 {
		t.Errorf("state = %+v, expected a fresh run", result.State)
	}
	if g.Bird().Y != 150 {
		t.Errorf("bird y = %v, expected start height 150", g.Bird().Y)
	}
}

func TestTickDropsStaleToken(t *testing.T) {
	g := New(config.DefaultGameConfig(), 1)

	if _, ok := g.Tick(g.Token()); !ok {
		t.Error("the current token should always be accepted")
	}

	g.Activate()
	old := g.Token()
	if _, ok := g.Tick(old - 1); ok {
		t.Error("a token from before the restart should be dropped")
	}

	result, ok := g.Tick(old)
	if !ok || result.State.Frame != 1 {
		t.Errorf("Tick(current) = %+v, %v; expected frame 1", result, ok)
	}
}

func TestSpawnCadenceAndScoring(t *testing.T) {
	g := New(hoverConfig(), 9)
	g.Activate()

	for i := 0; i < 99; i++ {
		g.Step()
	}
	if n := len(g.Obstacles()); n != 1 {
		t.Fatalf("pipes at frame 99 = %d, expected 1", n)
	}

	g.Step()
	obs := g.Obstacles()
	if len(obs) != 2 {
		t.Fatalf("pipes at frame 100 = %d, expected 2", len(obs))
	}
	if obs[0].X != 100 || obs[1].X != 298 {
		t.Errorf("pipe xs = %v, %v; expected 100, 298 (oldest first)", obs[0].X, obs[1].X)
	}

	// The first pipe's right edge passes x=70 on frame 141.
	for g.State().Frame < 140 {
		g.Step()
	}
	if g.State().Score != 0 {
		t.Fatalf("score at frame 140 = %d, expected 0", g.State().Score)
	}

	result := g.Step()
	if result.State.Score != 1 {
		t.Errorf("score at frame 141 = %d, expected 1", result.State.Score)
	}
	if len(result.Cues) != 1 || result.Cues[0] != core.CueScore {
		t.Errorf("cues = %v, expected [Score]", result.Cues)
	}
}

func TestDifficultyPresetNarrowsGap(t *testing.T) {
	cfg := config.DefaultGameConfig()
	if err := config.ApplyGamePreset(&cfg, config.DifficultyHard); err != nil {
		t.Fatal(err)
	}

	g := New(cfg, 1)
	g.Activate()

	o := g.Obstacles()[0]
	if gap := o.GapBottom - o.GapTop; math.Abs(gap-99) > 1e-9 {
		t.Errorf("gap = %v, expected 99 at the hard preset", gap)
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() (core.GameState, []Obstacle) {
		g := New(config.DefaultGameConfig(), 12345)
		for i := 0; i < 400; i++ {
			if i%15 == 0 {
				g.Activate()
			}
			g.Step()
		}
		return g.State(), g.Obstacles()
	}

	s1, o1 := run()
	s2, o2 := run()

	if s1 != s2 {
		t.Errorf("states differ: %+v vs %+v", s1, s2)
	}
	if len(o1) != len(o2) {
		t.Fatalf("pipe counts differ: %d vs %d", len(o1), len(o2))
	}
	for i := range o1 {
		if o1[i] != o2[i] {
			t.Errorf("pipe %d differs: %+v vs %+v", i, o1[i], o2[i])
		}
	}
}

type drawCall struct {
	op     string
	sprite core.Sprite
	text   string
	x, y   float64
	w, h   float64
	size   float64
}

type recordingCanvas struct {
	calls []drawCall
}

func (c *recordingCanvas) ClearRect(x, y, w, h float64) {
	c.calls = append(c.calls, drawCall{op: "clear", x: x, y: y, w: w, h: h})
}

func (c *recordingCanvas) DrawImage(img core.Sprite, x, y, w, h float64) {
	c.calls = append(c.calls, drawCall{op: "image", sprite: img, x: x, y: y, w: w, h: h})
}

func (c *recordingCanvas) FillRect(x, y, w, h float64, _ core.Shade) {
	c.calls = append(c.calls, drawCall{op: "fill", x: x, y: y, w: w, h: h})
}

func (c *recordingCanvas) FillText(text string, x, y, size float64) {
	c.calls = append(c.calls, drawCall{op: "text", text: text, x: x, y: y, size: size})
}

func (c *recordingCanvas) count(op string, sprite core.Sprite) int {
	n := 0
	for _, call := range c.calls {
		if call.op == op && (op != "image" || call.sprite == sprite) {
			n++
		}
	}
	return n
}

func (c *recordingCanvas) text(s string) (drawCall, bool) {
	for _, call := range c.calls {
		if call.op == "text" && call.text == s {
			return call, true
		}
	}
	return drawCall{}, false
}

func TestRenderStartScreen(t *testing.T) {
	g := New(config.DefaultGameConfig(), 1)
	c := &recordingCanvas{}
	g.Render(c)

	if len(c.calls) == 0 || c.calls[0].op != "clear" {
		t.Fatal("render should start by clearing the canvas")
	}
	if n := c.count("image", core.SpriteGround); n != 4 {
		t.Errorf("ground tiles = %d, expected 4 across 300px", n)
	}
	if n := c.count("image", core.SpritePipeTop); n != 0 {
		t.Errorf("start screen drew %d pipes", n)
	}

	call, ok := c.text("Tap, or Press Space to Start")
	if !ok {
		t.Fatal("start prompt not drawn")
	}
	if call.x != 150 || call.y != 220 || call.size != 22 {
		t.Errorf("start prompt at (%v, %v) size %v, expected (150, 220) size 22", call.x, call.y, call.size)
	}
	if _, ok := c.text("Score: 0"); ok {
		t.Error("start screen should not show the score")
	}
}

func TestRenderPlayingAndOver(t *testing.T) {
	g := New(config.DefaultGameConfig(), 1)
	g.Activate()

	c := &recordingCanvas{}
	g.Render(c)

	if _, ok := c.text("Score: 0"); !ok {
		t.Error("score HUD not drawn")
	}
	if n := c.count("image", core.SpritePipeTop); n != 1 {
		t.Errorf("top pipes = %d, expected 1", n)
	}
	for _, call := range c.calls {
		if call.op == "image" && call.sprite == core.SpritePipeBottom {
			o := g.Obstacles()[0]
			if call.y != o.GapBottom || call.h != 390-o.GapBottom {
				t.Errorf("bottom pipe y=%v h=%v, expected to fill gap bottom to ground", call.y, call.h)
			}
		}
	}
	if n := c.count("fill", 0); n != 0 {
		t.Error("overlay should only be drawn after game over")
	}

	for !g.State().GameOver() {
		g.Step()
	}

	c = &recordingCanvas{}
	g.Render(c)
	if n := c.count("fill", 0); n != 1 {
		t.Errorf("overlay fills = %d, expected 1", n)
	}
	if call, ok := c.text("Game Over!"); !ok || call.y != 200 || call.size != 28 {
		t.Errorf("game over text = %+v, %v", call, ok)
	}
	if call, ok := c.text("Tap, or Press Space to Start"); !ok || call.y != 230 || call.size != 16 {
		t.Errorf("restart prompt = %+v, %v", call, ok)
	}
}
