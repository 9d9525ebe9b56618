package config

import "math"

// Lower bounds that keep the game playable at maximum difficulty.
const (
	minGap        = 60.0 // Pixels; two and a half bird heights
	minSpawnEvery = 40   // Frames between pipes
	minScroll     = 1.0  // Pixels per tick
)

// DifficultyManager calculates dynamic game parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
// A disabled manager reports level 0, so every parameter keeps its base value.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.cfg.Enabled {
		return 0
	}
	if d.cfg.Progression.Type == "none" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// ScrollSpeed returns the pipe scroll step for the current difficulty.
func (d *DifficultyManager) ScrollSpeed(base float64, score int, ticks int) float64 {
	level := d.Level(score, ticks)
	if level == 0 {
		return base
	}
	return math.Max(minScroll, base*(1.0+level*d.cfg.Scaling.SpeedMultiplier))
}

// Gap returns the gap height for the current difficulty.
func (d *DifficultyManager) Gap(base float64, score int, ticks int) float64 {
	level := d.Level(score, ticks)
	if level == 0 {
		return base
	}
	return math.Max(minGap, base-level*d.cfg.Scaling.GapReduction)
}

// SpawnEvery returns the number of frames between spawns for the current difficulty.
func (d *DifficultyManager) SpawnEvery(base int, score int, ticks int) int {
	level := d.Level(score, ticks)
	if level == 0 {
		return base
	}
	result := base - int(level*float64(d.cfg.Scaling.SpawnReduction))
	if result < minSpawnEvery {
		result = minSpawnEvery
	}
	return result
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
