package config

import "testing"

func TestDifficultyDisabledKeepsBaseValues(t *testing.T) {
	d := NewDifficultyManager(DefaultGameConfig().Difficulty)

	if d.IsEnabled() {
		t.Fatal("default difficulty should be disabled")
	}
	if got := d.ScrollSpeed(2, 100, 10000); got != 2 {
		t.Errorf("ScrollSpeed() = %v, expected base 2", got)
	}
	if got := d.Gap(120, 100, 10000); got != 120 {
		t.Errorf("Gap() = %v, expected base 120", got)
	}
	if got := d.SpawnEvery(100, 100, 10000); got != 100 {
		t.Errorf("SpawnEvery() = %d, expected base 100", got)
	}
}

func TestDifficultyScoreProgression(t *testing.T) {
	cfg := DefaultGameConfig().Difficulty
	cfg.Enabled = true
	d := NewDifficultyManager(cfg)

	if got := d.Level(0, 0); got != 0 {
		t.Errorf("Level(0) = %v, expected 0", got)
	}
	if got := d.Level(20, 0); got != 0.5 {
		t.Errorf("Level(20) = %v, expected 0.5", got)
	}
	if got := d.Level(400, 0); got != 1 {
		t.Errorf("Level beyond max_at = %v, expected 1", got)
	}

	if got := d.ScrollSpeed(2, 40, 0); got != 3.5 {
		t.Errorf("ScrollSpeed at max = %v, expected 3.5", got)
	}
	if got := d.Gap(120, 40, 0); got != 90 {
		t.Errorf("Gap at max = %v, expected 90", got)
	}
	if got := d.SpawnEvery(100, 40, 0); got != 65 {
		t.Errorf("SpawnEvery at max = %d, expected 65", got)
	}
}

func TestDifficultyFloors(t *testing.T) {
	cfg := DefaultGameConfig().Difficulty
	cfg.Enabled = true
	cfg.Scaling.GapReduction = 1000
	cfg.Scaling.SpawnReduction = 1000
	d := NewDifficultyManager(cfg)

	if got := d.Gap(120, 40, 0); got != minGap {
		t.Errorf("Gap() = %v, expected floor %v", got, minGap)
	}
	if got := d.SpawnEvery(100, 40, 0); got != minSpawnEvery {
		t.Errorf("SpawnEvery() = %d, expected floor %d", got, minSpawnEvery)
	}
}

func TestDifficultyInitialLevel(t *testing.T) {
	cfg := DefaultGameConfig().Difficulty
	cfg.Enabled = true
	cfg.InitialLevel = InitialLevelForPreset(DifficultyNormal)
	d := NewDifficultyManager(cfg)

	if got := d.Level(0, 0); got != 0.3 {
		t.Errorf("Level(0) with normal preset = %v, expected 0.3", got)
	}
}
