// Package config provides YAML-based configuration loading for the game and
// the chat assistant, with environment overrides and difficulty management.
package config

import "time"

// GameConfig contains all configuration for the bird game.
type GameConfig struct {
	Canvas     GameCanvas       `yaml:"canvas"`
	Physics    GamePhysics      `yaml:"physics"`
	Obstacles  GameObstacles    `yaml:"obstacles"`
	Player     GamePlayer       `yaml:"player"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GameCanvas defines the world dimensions in pixels.
type GameCanvas struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundHeight float64 `yaml:"ground_height"` // Grass band at the bottom
	GroundTile   float64 `yaml:"ground_tile"`   // Width of one grass tile
}

// GroundTop returns the y-coordinate where the ground band starts.
func (c GameCanvas) GroundTop() float64 {
	return c.Height - c.GroundHeight
}

// GamePhysics defines physics parameters. Values are per tick.
type GamePhysics struct {
	Gravity      float64 `yaml:"gravity" env:"NIFTYBIRD_GAME_GRAVITY"`
	Lift         float64 `yaml:"lift" env:"NIFTYBIRD_GAME_LIFT"`                     // Velocity set by a flap (negative = up)
	MaxFallSpeed float64 `yaml:"max_fall_speed" env:"NIFTYBIRD_GAME_MAX_FALL_SPEED"` // 0 disables the cap
	Ceiling      float64 `yaml:"ceiling" env:"NIFTYBIRD_GAME_CEILING"`               // Flying above this restarts the run
}

// GameObstacles defines pipe parameters.
type GameObstacles struct {
	Width       float64 `yaml:"width"`
	Gap         float64 `yaml:"gap" env:"NIFTYBIRD_GAME_GAP"`
	ScrollSpeed float64 `yaml:"scroll_speed" env:"NIFTYBIRD_GAME_SCROLL_SPEED"`
	SpawnEvery  int     `yaml:"spawn_every" env:"NIFTYBIRD_GAME_SPAWN_EVERY"` // Frames between spawns
	MinGapTop   float64 `yaml:"min_gap_top"`
	GapTopRange int     `yaml:"gap_top_range"` // Gap top is MinGapTop + rand[0, GapTopRange)
}

// GamePlayer defines the bird's fixed column and hitbox.
type GamePlayer struct {
	X      float64 `yaml:"x"`
	StartY float64 `yaml:"start_y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to scroll speed at max difficulty
	GapReduction    float64 `yaml:"gap_reduction"`    // Gap height removed at max difficulty
	SpawnReduction  int     `yaml:"spawn_reduction"`  // Frames removed from the spawn cadence at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ChatConfig contains the assistant's settings and vocabulary.
type ChatConfig struct {
	Settings ChatSettings `yaml:"settings"`
	Replies  ChatReplies  `yaml:"replies"`
	Triggers []Trigger    `yaml:"triggers"`
	Known    []string     `yaml:"known_phrases"`
	Rules    []Rule       `yaml:"rules"`
}

// ChatSettings holds the tunable scalars of the assistant.
type ChatSettings struct {
	Tolerance      int           `yaml:"tolerance" env:"NIFTYBIRD_CHAT_TOLERANCE"`
	ModeCommand    string        `yaml:"mode_command" env:"NIFTYBIRD_CHAT_MODE_COMMAND"`
	DefaultMode    string        `yaml:"default_mode" env:"NIFTYBIRD_CHAT_MODE"` // "strict" or "smart"
	ReplyDelay     time.Duration `yaml:"reply_delay" env:"NIFTYBIRD_CHAT_REPLY_DELAY"`
	RevealInterval time.Duration `yaml:"reveal_interval" env:"NIFTYBIRD_CHAT_REVEAL_INTERVAL"`
}

// ChatReplies holds the fixed replies that are not tied to a trigger.
type ChatReplies struct {
	Greeting   string `yaml:"greeting"`
	ModeSwitch string `yaml:"mode_switch"` // Format string, %s is STRICT or SMART
	Misspelled string `yaml:"misspelled"`
	Help       string `yaml:"help"`
	Unknown    string `yaml:"unknown"`
}

// Trigger maps an exact substring to a canned reply.
type Trigger struct {
	Match string `yaml:"match"`
	Reply string `yaml:"reply"`
}

// Rule answers when the message contains any of its keywords.
type Rule struct {
	Keywords []string `yaml:"keywords"`
	Reply    string   `yaml:"reply"`
}
