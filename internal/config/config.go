package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// DataDirEnv overrides the data directory when no flag is given.
	DataDirEnv = "REDLINE_DATA_DIR"
	// FileName is the config file inside the data directory.
	FileName = "config.yaml"
	// DatabaseName is the SQLite file inside the data directory.
	DatabaseName = "redline.db"
	// LogName is the debug log inside the data directory.
	LogName = "redline_debug.log"

	defaultDirName = ".crimson_redline"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the contents of config.yaml.
type Config struct {
	Display  Display  `yaml:"display"`
	Security Security `yaml:"security"`
	Game     Game     `yaml:"game"`
}

// Display controls presentation.
type Display struct {
	TypingSpeedMS   int     `yaml:"typing_speed_ms" validate:"gte=0,lte=1000"`
	GlitchIntensity float64 `yaml:"glitch_intensity" validate:"gte=0,lte=1"`
	UseAnimations   bool    `yaml:"use_animations"`
	ColorTheme      string  `yaml:"color_theme" validate:"oneof=crimson blood neon terminal"`
}

// Security controls accounts and passwords.
type Security struct {
	MinPasswordLength     int  `yaml:"min_password_length" validate:"gte=4"`
	RequireSpecialChars   bool `yaml:"require_special_chars"`
	MaxLoginAttempts      int  `yaml:"max_login_attempts" validate:"gte=1"`
	SessionTimeoutMinutes int  `yaml:"session_timeout_minutes" validate:"gte=1"`
	BcryptCost            int  `yaml:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// Game controls balance.
type Game struct {
	StartingCredits    int     `yaml:"starting_credits" validate:"gte=0"`
	MaxHeatLevel       float64 `yaml:"max_heat_level" validate:"gt=0,lte=100"`
	HeatDecayRate      float64 `yaml:"heat_decay_rate" validate:"gt=0,lte=1"`
	EnableRandomEvents bool    `yaml:"enable_random_events"`
	EventChance        float64 `yaml:"event_chance" validate:"gte=0,lte=1"`
	Difficulty         string  `yaml:"difficulty" validate:"oneof=script hacker ghost phantom"`
	EnableStreaks      bool    `yaml:"enable_streaks"`
}

// HeatFactor scales heat gains by difficulty.
func (g Game) HeatFactor() float64 {
	switch g.Difficulty {
	case "script":
		return 0.75
	case "ghost":
		return 1.25
	case "phantom":
		return 1.5
	default:
		return 1.0
	}
}

// Default returns the configuration written on first run.
func Default() Config {
	return Config{
		Display: Display{
			TypingSpeedMS:   15,
			GlitchIntensity: 0.1,
			UseAnimations:   true,
			ColorTheme:      "crimson",
		},
		Security: Security{
			MinPasswordLength:     8,
			RequireSpecialChars:   true,
			MaxLoginAttempts:      5,
			SessionTimeoutMinutes: 30,
			BcryptCost:            12,
		},
		Game: Game{
			StartingCredits:    1000,
			MaxHeatLevel:       100,
			HeatDecayRate:      0.99,
			EnableRandomEvents: true,
			EventChance:        0.1,
			Difficulty:         "hacker",
			EnableStreaks:      true,
		},
	}
}

var validate = validator.New()

// Validate checks every field against its bounds.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// DataDir resolves the data directory: the flag value, then $REDLINE_DATA_DIR,
// then ~/.crimson_redline.
func DataDir(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env := os.Getenv(DataDirEnv); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find the user's home directory: %w", err)
	}
	return filepath.Join(home, defaultDirName), nil
}

// Path returns the config file path inside dataDir.
func Path(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

// Load reads the config at path, writing the defaults first if the file
// does not exist. Keys missing from the file keep their default values.
func Load(path string) (Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := Save(path, Default()); err != nil {
			return Config{}, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read the config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse the config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create the config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write the config file: %w", err)
	}
	return nil
}
