package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// LoadGame loads the game configuration.
// Search order: customPath -> ~/.niftybird/configs/game.yaml -> ./configs/game.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides the
// keys it names. NIFTYBIRD_GAME_* environment variables are applied last.
func LoadGame(customPath string) (GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := load("game", customPath, &cfg); err != nil {
		return cfg, err
	}
	if err := ParseEnv(&cfg.Physics); err != nil {
		return cfg, err
	}
	if err := ParseEnv(&cfg.Obstacles); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadChat loads the chat configuration.
// Search order: customPath -> ~/.niftybird/configs/chat.yaml -> ./configs/chat.yaml -> embedded default.
// NIFTYBIRD_CHAT_* environment variables are applied last.
func LoadChat(customPath string) (ChatConfig, error) {
	cfg := DefaultChatConfig()
	if err := load("chat", customPath, &cfg); err != nil {
		return cfg, err
	}
	if err := ParseEnv(&cfg.Settings); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ParseEnv applies environment variables to the tagged fields of target.
// Fields whose variable is unset keep their current value.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

// load decodes the first config file found for name into out.
// A custom path that cannot be read or parsed is an error; the other
// locations are best-effort and silently skipped.
func load(name, customPath string, out any) error {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return nil
	}

	filename := name + ".yaml"
	for _, path := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, out); err == nil {
			return nil
		}
	}

	// Embedded defaults are what Default*Config already returned.
	return nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".niftybird", "configs", filename)
}

// ApplyGamePreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyGamePreset(cfg *GameConfig, preset DifficultyPreset) error {
	switch preset {
	case "":
		return nil
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	default:
		return fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", preset)
	}
	return nil
}
