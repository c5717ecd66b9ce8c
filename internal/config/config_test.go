package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.99, cfg.Game.HeatDecayRate)
	assert.Equal(t, 12, cfg.Security.BcryptCost)
}

func TestLoadWritesDefaultsOnFirstRun(t *testing.T) {
	path := Path(t.TempDir())
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "heat_decay_rate: 0.99")
	assert.Contains(t, string(data), "color_theme: crimson")
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("game:\n  difficulty: ghost\n  enable_streaks: false\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ghost", cfg.Game.Difficulty)
	assert.False(t, cfg.Game.EnableStreaks)
	assert.True(t, cfg.Game.EnableRandomEvents)
	assert.Equal(t, 1000, cfg.Game.StartingCredits)
}

func TestValidationBounds(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero decay", func(c *Config) { c.Game.HeatDecayRate = 0 }},
		{"decay above one", func(c *Config) { c.Game.HeatDecayRate = 1.01 }},
		{"event chance", func(c *Config) { c.Game.EventChance = 1.5 }},
		{"bcrypt too low", func(c *Config) { c.Security.BcryptCost = 3 }},
		{"bcrypt too high", func(c *Config) { c.Security.BcryptCost = 32 }},
		{"short passwords", func(c *Config) { c.Security.MinPasswordLength = 3 }},
		{"theme", func(c *Config) { c.Display.ColorTheme = "pastel" }},
		{"difficulty", func(c *Config) { c.Game.Difficulty = "easy" }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("security:\n  bcrypt_cost: 99\n"), 0o644))
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	require.NoError(t, os.WriteFile(path, []byte("game: [\n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}

func TestHeatFactor(t *testing.T) {
	for difficulty, want := range map[string]float64{"script": 0.75, "hacker": 1, "ghost": 1.25, "phantom": 1.5} {
		assert.Equal(t, want, Game{Difficulty: difficulty}.HeatFactor(), difficulty)
	}
}

func TestDataDir(t *testing.T) {
	dir, err := DataDir("/tmp/flag")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/flag", dir)

	t.Setenv(DataDirEnv, "/tmp/env")
	dir, err = DataDir("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env", dir)

	t.Setenv(DataDirEnv, "")
	dir, err = DataDir("")
	require.NoError(t, err)
	assert.Equal(t, defaultDirName, filepath.Base(dir))
}
