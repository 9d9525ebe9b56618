package flappy

import (
	"math/rand"

	"github.com/gammazero/deque"

	"github.com/vovakirdan/niftybird/internal/config"
	"github.com/vovakirdan/niftybird/internal/core"
)

// Obstacle is a pipe pair with a gap for the bird to pass through.
// GapBottom is always GapTop plus the gap height at spawn time.
type Obstacle struct {
	X         float64 // Left edge
	GapTop    float64 // Bottom edge of the top pipe
	GapBottom float64 // Top edge of the bottom pipe
	Scored    bool    // Whether the bird has passed this pipe
}

// Outcome reports what happened to the field during one tick.
type Outcome struct {
	Collided bool // The bird hit at least one pipe
	Scored   int  // Pipes passed for the first time this tick
}

// Field owns the live pipes, oldest (leftmost) first.
// Pipes scroll at the same speed, so the oldest is always the first to
// leave the screen and eviction only ever pops the front.
type Field struct {
	obstacles  deque.Deque[Obstacle]
	rng        *rand.Rand
	canvas     config.GameCanvas
	cfg        config.GameObstacles
	difficulty *config.DifficultyManager
}

// NewField creates an empty field with the given RNG seed.
func NewField(seed int64, cfg config.GameConfig, diff *config.DifficultyManager) *Field {
	f := &Field{
		canvas:     cfg.Canvas,
		cfg:        cfg.Obstacles,
		difficulty: diff,
	}
	f.Reset(seed)
	return f
}

// Reset clears all pipes and reseeds the RNG.
func (f *Field) Reset(seed int64) {
	f.obstacles.Clear()
	f.rng = rand.New(rand.NewSource(seed))
}

// Clear removes all pipes, keeping the RNG sequence going.
func (f *Field) Clear() {
	f.obstacles.Clear()
}

// Len returns the number of live pipes.
func (f *Field) Len() int {
	return f.obstacles.Len()
}

// Obstacles returns a snapshot of the live pipes, oldest first.
func (f *Field) Obstacles() []Obstacle {
	out := make([]Obstacle, f.obstacles.Len())
	for i := range out {
		out[i] = f.obstacles.At(i)
	}
	return out
}

// Spawn adds a pipe at the right edge of the canvas with its gap at a
// uniformly random height.
func (f *Field) Spawn(score, ticks int) {
	gapTop := f.cfg.MinGapTop
	if f.cfg.GapTopRange > 0 {
		gapTop += float64(f.rng.Intn(f.cfg.GapTopRange))
	}
	gap := f.difficulty.Gap(f.cfg.Gap, score, ticks)

	f.obstacles.PushBack(Obstacle{
		X:         f.canvas.Width,
		GapTop:    gapTop,
		GapBottom: gapTop + gap,
	})
}

// Advance scrolls every pipe left, tests it against the bird, scores
// passed pipes once and evicts pipes that left the screen.
func (f *Field) Advance(bird core.Box, score, ticks int) Outcome {
	var out Outcome
	speed := f.difficulty.ScrollSpeed(f.cfg.ScrollSpeed, score, ticks)

	for i := 0; i < f.obstacles.Len(); i++ {
		o := f.obstacles.At(i)
		o.X -= speed

		if f.Collides(o, bird) {
			out.Collided = true
		}

		// Passed once the trailing edge is strictly behind the bird.
		if !o.Scored && o.X+f.cfg.Width < bird.X {
			o.Scored = true
			out.Scored++
		}

		f.obstacles.Set(i, o)
	}

	for f.obstacles.Len() > 0 && f.obstacles.Front().X+f.cfg.Width < 0 {
		f.obstacles.PopFront()
	}

	return out
}

// Collides reports whether the bird overlaps the pipe horizontally while
// being outside its gap. Touching a gap edge exactly is not a collision.
func (f *Field) Collides(o Obstacle, bird core.Box) bool {
	pipe := core.NewBox(o.X, 0, f.cfg.Width, f.canvas.Height)
	if !bird.OverlapsX(pipe) {
		return false
	}
	return bird.Y < o.GapTop || bird.Bottom() > o.GapBottom
}
