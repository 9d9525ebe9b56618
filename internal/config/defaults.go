package config

import (
	_ "embed"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

//go:embed defaults/chat.yaml
var defaultChatYAML []byte

// DefaultGameConfig returns the default game configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Canvas: GameCanvas{
			Width:        300,
			Height:       450,
			GroundHeight: 60,
			GroundTile:   80,
		},
		Physics: GamePhysics{
			Gravity:      0.4,
			Lift:         -7,
			MaxFallSpeed: 0,
			Ceiling:      -30,
		},
		Obstacles: GameObstacles{
			Width:       50,
			Gap:         120,
			ScrollSpeed: 2,
			SpawnEvery:  100,
			MinGapTop:   50,
			GapTopRange: 120,
		},
		Player: GamePlayer{
			X:      70,
			StartY: 150,
			Width:  30,
			Height: 24,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 40,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.75,
				GapReduction:    30,
				SpawnReduction:  35,
			},
		},
	}
}

// DefaultChatConfig returns the default chat configuration, vocabulary included.
// The vocabulary only exists in the embedded YAML; if that fails to parse the
// settings fall back to hardcoded values with an empty vocabulary.
func DefaultChatConfig() ChatConfig {
	var cfg ChatConfig
	if err := yaml.Unmarshal(defaultChatYAML, &cfg); err != nil {
		return ChatConfig{Settings: defaultChatSettings()}
	}
	return cfg
}

func defaultChatSettings() ChatSettings {
	return ChatSettings{
		Tolerance:      3,
		ModeCommand:    "/mode",
		DefaultMode:    "strict",
		ReplyDelay:     200 * time.Millisecond,
		RevealInterval: 15 * time.Millisecond,
	}
}

// GetDefaultYAML returns the embedded default YAML for a config name.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "game":
		return defaultGameYAML
	case "chat":
		return defaultChatYAML
	default:
		return nil
	}
}
